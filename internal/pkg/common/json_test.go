package common_test

import (
	"testing"

	"meal-planner/internal/pkg/common"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"markdown fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding prose", `以下是結果：{"a":1} 希望有幫助`, `{"a":1}`},
		{"nested braces keep outer", `{"a":{"b":2}}`, `{"a":{"b":2}}`},
		{"no object returns input", "no json here", "no json here"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := common.ExtractJSONObject(tc.content)
			if got != tc.want {
				t.Errorf("ExtractJSONObject(%q) = %q; want %q", tc.content, got, tc.want)
			}
		})
	}
}

func TestQuoteJSONKeys(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"unquoted keys", `{name: "x", amount: 3}`, `{"name": "x", "amount": 3}`},
		{"already quoted untouched", `{"name": "x"}`, `{"name": "x"}`},
		{"nested", `{a: {b: 1}}`, `{"a": {"b": 1}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := common.QuoteJSONKeys(tc.raw)
			if got != tc.want {
				t.Errorf("QuoteJSONKeys(%q) = %q; want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestParseJSONRejectsTrailingData(t *testing.T) {
	var v map[string]interface{}
	if err := common.ParseJSON(`{"a":1}{"b":2}`, &v); err == nil {
		t.Error("expected error for trailing JSON document")
	}
	if err := common.ParseJSON(`{"a":1}`, &v); err != nil {
		t.Errorf("ParseJSON valid input err = %v", err)
	}
}

func TestParseJSONStrict(t *testing.T) {
	type target struct {
		Name string `json:"name"`
	}
	var v target
	if err := common.ParseJSONStrict(`{"name":"x","extra":true}`, &v); err == nil {
		t.Error("expected error for unknown field")
	}
}
