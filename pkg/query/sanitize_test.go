package query

import "testing"

func TestSanitizeCypher(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "bare query passes through",
			raw:  "MATCH (n) RETURN n",
			want: "MATCH (n) RETURN n",
		},
		{
			name: "fenced block keeps keyword line intact",
			raw:  "```\nMATCH (n) RETURN n\n```",
			want: "MATCH (n) RETURN n",
		},
		{
			name: "fenced block with language tag",
			raw:  "```cypher\nMATCH (n) RETURN n\n```",
			want: "MATCH (n) RETURN n",
		},
		{
			name: "fenced block surrounded by prose",
			raw:  "Here is the query you asked for:\n```cypher\nMATCH (a:Asset) RETURN a.name\n```\nLet me know if you need anything else!",
			want: "MATCH (a:Asset) RETURN a.name",
		},
		{
			name: "leading prose without fences is discarded",
			raw:  "Sure, here:\nMATCH (n) RETURN n LIMIT 5",
			want: "MATCH (n) RETURN n LIMIT 5",
		},
		{
			name: "lines after the first clause line are kept",
			raw:  "The query is:\nMATCH (a:Asset)\nRETURN a.name\nORDER BY a.name",
			want: "MATCH (a:Asset)\nRETURN a.name\nORDER BY a.name",
		},
		{
			name: "lowercase clause keyword is recognized",
			raw:  "here you go:\nmatch (n) return n",
			want: "match (n) return n",
		},
		{
			name: "no keyword anywhere falls back to trimmed raw text",
			raw:  "  I cannot answer that question.  ",
			want: "I cannot answer that question.",
		},
		{
			name: "keyword must be a full word",
			raw:  "MATCHING is fun\nMATCH (n) RETURN n",
			want: "MATCH (n) RETURN n",
		},
		{
			name: "call clause with parenthesis",
			raw:  "Use this:\nCALL db.labels()",
			want: "CALL db.labels()",
		},
		{
			name: "empty input",
			raw:  "   \n ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeCypher(tt.raw)
			if got != tt.want {
				t.Fatalf("unexpected sanitized query:\ngot  %q\nwant %q", got, tt.want)
			}
		})
	}
}
