package graph

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func schemaRunner() *fakeRunner {
	return &fakeRunner{
		rows: map[string][]map[string]any{
			nodePropertiesQuery: {
				{"nodeLabels": []any{"Asset"}, "propertyName": "Display_Name", "propertyTypes": []any{"String"}},
				{"nodeLabels": []any{"Asset"}, "propertyName": "ID", "propertyTypes": []any{"String"}},
				{"nodeLabels": []any{"Domain"}, "propertyName": "Name", "propertyTypes": []any{"String"}},
			},
			relPropertiesQuery: {
				{"relType": ":`HAS_ASSET`", "propertyName": "since", "propertyTypes": []any{"Long"}},
				{"relType": ":`GOVERNS`", "propertyName": nil, "propertyTypes": nil},
			},
			relPatternsQuery: {
				{"from": []any{"Domain"}, "rel": "HAS_ASSET", "to": []any{"Asset"}},
			},
		},
	}
}

func TestGetSchema_BuildsDescription(t *testing.T) {
	runner := schemaRunner()
	client := newTestClient(runner)

	schema, err := client.GetSchema(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Node properties:",
		"Asset {Display_Name: String, ID: String}",
		"Domain {Name: String}",
		"Relationship properties:",
		"HAS_ASSET {since: Long}",
		"GOVERNS {}",
		"The relationships:",
		"(:Domain)-[:HAS_ASSET]->(:Asset)",
	} {
		if !strings.Contains(schema, want) {
			t.Fatalf("schema missing %q:\n%s", want, schema)
		}
	}
}

func TestGetSchema_CachesUntilRefresh(t *testing.T) {
	runner := schemaRunner()
	client := newTestClient(runner)

	ctx := context.Background()
	if _, err := client.GetSchema(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	callsAfterFirst := len(runner.executed)

	if _, err := client.GetSchema(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.executed) != callsAfterFirst {
		t.Fatalf("second GetSchema should be served from cache, calls went %d -> %d", callsAfterFirst, len(runner.executed))
	}

	if _, err := client.RefreshSchema(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.executed) == callsAfterFirst {
		t.Fatal("RefreshSchema should hit the database again")
	}
}

func TestGetSchema_UnreachableDatabase(t *testing.T) {
	runner := &fakeRunner{err: errors.New("connection refused")}
	client := newTestClient(runner)

	_, err := client.GetSchema(context.Background())
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
}
