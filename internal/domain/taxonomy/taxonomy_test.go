package taxonomy

import (
	"strings"
	"testing"
)

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

func TestExtract_WholeWordBoundary(t *testing.T) {
	tax := Default()

	got := tax.Extract("we ship javascript to production")
	if !contains(got, "JavaScript") {
		t.Fatalf("expected JavaScript in %v", got)
	}

	got = tax.Extract("prefixjavascriptsuffix")
	if contains(got, "JavaScript") {
		t.Fatalf("javascript inside a larger token must not match, got %v", got)
	}

	got = tax.Extract("we are going places")
	if contains(got, "Go") {
		t.Fatalf("go inside 'going' must not match, got %v", got)
	}
}

func TestExtract_EscapedMetacharacters(t *testing.T) {
	tax := Default()

	got := tax.Extract("I know C++ and .NET well")
	if !contains(got, "C++") {
		t.Fatalf("expected C++ in %v", got)
	}
	if !contains(got, "C#") {
		t.Fatalf("expected C# (via .net) in %v", got)
	}
}

func TestExtract_Dedup(t *testing.T) {
	tax := Default()

	got := tax.Extract("react, reactjs and react.js experience")
	count := 0
	for _, v := range got {
		if v == "React" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected React exactly once, got %v", got)
	}
}

func TestExtract_CaseInsensitive(t *testing.T) {
	tax := Default()
	got := tax.Extract("Looking for a ReactJS expert")
	if !contains(got, "React") {
		t.Fatalf("expected React in %v", got)
	}
}

func TestExtract_EmptyText(t *testing.T) {
	tax := Default()
	if got := tax.Extract(""); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
	if got := tax.Extract("   \n\t "); len(got) != 0 {
		t.Fatalf("expected empty result for whitespace, got %v", got)
	}
}

// Every shipped variation must survive pattern compilation and match itself
// in context. A broken variation is a construction-time defect, so this is
// where it has to surface.
func TestDefault_EveryVariationMatches(t *testing.T) {
	tax := Default()

	for _, e := range tax.Entries() {
		for _, v := range e.Variations {
			if strings.TrimSpace(v) == "" {
				t.Fatalf("entry %s has an empty variation", e.Canonical)
			}
			owner, ok := tax.Canonical(v)
			if !ok {
				t.Fatalf("variation %q has no canonical owner", v)
			}
			got := tax.Extract("the team uses " + v + " heavily")
			if !contains(got, owner) {
				t.Fatalf("variation %q did not extract %q, got %v", v, owner, got)
			}
		}
	}
}

func TestDefault_CollisionLastWins(t *testing.T) {
	tax := Default()

	// "asp.net" appears under both C# and ASP.NET; the later entry owns it.
	owner, ok := tax.Canonical("asp.net")
	if !ok || owner != "ASP.NET" {
		t.Fatalf("expected asp.net -> ASP.NET, got %q ok=%v", owner, ok)
	}

	owner, ok = tax.Canonical("laravel")
	if !ok || owner != "Laravel" {
		t.Fatalf("expected laravel -> Laravel, got %q ok=%v", owner, ok)
	}
}

func TestNew_RejectsMalformedEntries(t *testing.T) {
	if _, err := New([]Entry{{Canonical: "X", Variations: []string{""}}}); err == nil {
		t.Fatalf("expected error for empty variation")
	}
	if _, err := New([]Entry{{Canonical: "X"}}); err == nil {
		t.Fatalf("expected error for entry without variations")
	}
	if _, err := New([]Entry{{Canonical: "", Variations: []string{"x"}}}); err == nil {
		t.Fatalf("expected error for empty canonical name")
	}
}
