package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"valid", `{"headline":"h","advice":"a"}`, true},
		{"missing field", `{"headline":"h"}`, false},
		{"extra field", `{"headline":"h","advice":"a","x":1}`, false},
		{"wrong type", `{"headline":2,"advice":"a"}`, false},
		{"not json", `headline: h`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(insightSchema, json.RawMessage(tt.raw))
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var inv *ErrInvalidResponse
			if !tt.ok && !errors.As(err, &inv) {
				t.Fatalf("want ErrInvalidResponse, got %v", err)
			}
		})
	}
}

func TestValidateNilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything`)); err != nil {
		t.Fatal(err)
	}
}

func TestDecode(t *testing.T) {
	var out struct{ Headline, Advice string }
	err := Decode(&Response{Content: json.RawMessage(`{"headline":"h","advice":"a"}`)}, insightSchema, &out)
	if err != nil || out.Headline != "h" || out.Advice != "a" {
		t.Fatalf("Decode = %+v, %v", out, err)
	}
}
