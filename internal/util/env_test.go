package util

import (
	"strings"
	"testing"
)

func TestRequireEnv_AllPresent(t *testing.T) {
	t.Setenv("TEST_REQUIRE_A", "alpha")
	t.Setenv("TEST_REQUIRE_B", "beta")

	values, err := RequireEnv("TEST_REQUIRE_A", "TEST_REQUIRE_B")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if values["TEST_REQUIRE_A"] != "alpha" || values["TEST_REQUIRE_B"] != "beta" {
		t.Fatalf("unexpected values: %v", values)
	}
}

func TestRequireEnv_ReportsEveryMissingVariable(t *testing.T) {
	t.Setenv("TEST_REQUIRE_A", "alpha")
	t.Setenv("TEST_REQUIRE_EMPTY", "")

	_, err := RequireEnv("TEST_REQUIRE_A", "TEST_REQUIRE_EMPTY", "TEST_REQUIRE_ABSENT")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "TEST_REQUIRE_EMPTY") {
		t.Fatalf("empty variable should be reported, got %v", err)
	}
	if !strings.Contains(err.Error(), "TEST_REQUIRE_ABSENT") {
		t.Fatalf("absent variable should be reported, got %v", err)
	}
	if strings.Contains(err.Error(), "TEST_REQUIRE_A,") {
		t.Fatalf("present variable should not be reported, got %v", err)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT", "25")
	if got := GetEnvInt("TEST_INT", 5); got != 25 {
		t.Fatalf("expected 25, got %d", got)
	}

	t.Setenv("TEST_INT", "not-a-number")
	if got := GetEnvInt("TEST_INT", 5); got != 5 {
		t.Fatalf("expected default 5 for malformed value, got %d", got)
	}

	if got := GetEnvInt("TEST_INT_ABSENT", 7); got != 7 {
		t.Fatalf("expected default 7 for absent key, got %d", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")
	if !GetEnvBool("TEST_BOOL", false) {
		t.Fatal("expected true")
	}

	t.Setenv("TEST_BOOL", "yes")
	if GetEnvBool("TEST_BOOL", false) {
		t.Fatal("expected default for non true/false value")
	}
}
