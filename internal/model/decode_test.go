package model

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseBoardAcceptsExportedDocument(t *testing.T) {
	b := sampleBoard()
	raw, err := EncodeBoard(b)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(raw), "\n  \"lists\": [") {
		t.Fatalf("expected two-space indentation, got:\n%s", raw)
	}
	got, err := ParseBoard(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !reflect.DeepEqual(got, b) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", *got, *b)
	}
}

func TestParseBoardRejections(t *testing.T) {
	cases := []struct {
		name     string
		in       string
		wantPath string
	}{
		{"syntax", `{"lists": [`, ""},
		{"missing cards", `{"lists":["x"]}`, "$"},
		{"missing lists", `{"cards":{}}`, "$"},
		{"empty lists", `{"lists":[],"cards":{}}`, "$.lists"},
		{"card without list", `{"lists":["a"],"cards":{"c":{"id":"c","title":"t"}}}`, "$.cards.c"},
		{"labels wrong type", `{"lists":["a"],"cards":{"c":{"id":"c","title":"t","list":"a","labels":"x"}}}`, "$.cards.c.labels"},
		{"unknown list", `{"lists":["a"],"cards":{"c":{"id":"c","title":"t","list":"b"}}}`, ""},
		{"key mismatch", `{"lists":["a"],"cards":{"c":{"id":"d","title":"t","list":"a"}}}`, ""},
		{"array document", `[1,2]`, "$"},
	}
	for _, tc := range cases {
		_, err := ParseBoard([]byte(tc.in))
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !errors.Is(err, ErrInvalidBoard) {
			t.Fatalf("%s: expected ErrInvalidBoard, got %v", tc.name, err)
		}
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("%s: expected DecodeError, got %T", tc.name, err)
		}
		if de.Path != tc.wantPath {
			t.Fatalf("%s: path = %q, want %q (%v)", tc.name, de.Path, tc.wantPath, err)
		}
	}
}

func TestParseBoardAllowsEmptyTitlesAndCustomLists(t *testing.T) {
	got, err := ParseBoard([]byte(`{"lists":["x","y"],"cards":{"k":{"id":"k","title":"","list":"y"}}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got.Lists) != 2 || got.Cards.Len() != 1 {
		t.Fatalf("unexpected board: %#v", got)
	}
}
