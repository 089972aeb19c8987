package alert

import (
	"reflect"
	"testing"
)

func TestParseKeywords(t *testing.T) {
	got := ParseKeywords(" React, , Remote ,")
	want := []string{"react", "remote"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseKeywords = %v, want %v", got, want)
	}

	if got := ParseKeywords(""); len(got) != 0 {
		t.Fatalf("expected no terms for empty string, got %v", got)
	}
	if got := ParseKeywords(" , ,, "); len(got) != 0 {
		t.Fatalf("expected no terms for separators only, got %v", got)
	}
}

func TestMatches(t *testing.T) {
	fields := []string{"Senior React Engineer", "Acme Co", "Remote role building UIs"}

	if !Matches("react, remote", fields...) {
		t.Fatalf("expected react/remote alert to match")
	}
	if Matches("cobol", fields...) {
		t.Fatalf("expected cobol alert not to match")
	}
	if Matches("", fields...) {
		t.Fatalf("an alert with no parseable terms must never match")
	}
}

func TestMatches_PlainSubstring(t *testing.T) {
	// Containment is substring, not word-boundary: "go" hits "Good".
	if !Matches("go", "Good communication skills required") {
		t.Fatalf("expected substring containment to match inside words")
	}
	if !Matches("ember", "Remember to apply", "Acme") {
		t.Fatalf("expected substring containment across field text")
	}
}

func TestMatches_CaseInsensitive(t *testing.T) {
	if !Matches("REACT", "react developer wanted") {
		t.Fatalf("expected case-insensitive keyword match")
	}
	if !Matches("react", "REACT DEVELOPER WANTED") {
		t.Fatalf("expected case-insensitive job text match")
	}
}
