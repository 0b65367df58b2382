package ai

import "testing"

type verdict struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

func TestUnmarshalFlexible(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  verdict
	}{
		{
			name:  "standard json",
			input: `{"valid": true, "message": ""}`,
			want:  verdict{Valid: true},
		},
		{
			name:  "double encoded",
			input: `"{\"valid\": false, \"message\": \"unexpected token\"}"`,
			want:  verdict{Valid: false, Message: "unexpected token"},
		},
		{
			name:  "malformed but repairable",
			input: `{valid: true, message: ''}`,
			want:  verdict{Valid: true},
		},
		{
			name:  "surrounding whitespace",
			input: "\n  {\"valid\": true, \"message\": \"\"}  \n",
			want:  verdict{Valid: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got verdict
			if err := UnmarshalFlexible(tt.input, &got); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("unexpected result: got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUnmarshalFlexible_Unrepairable(t *testing.T) {
	var got verdict
	if err := UnmarshalFlexible("not json at all", &got); err == nil {
		t.Fatal("expected error, got nil")
	}
}
