package alert

import "strings"

// ParseKeywords splits a user-authored, comma-separated keyword string into
// lower-cased, trimmed terms, dropping empties. An alert whose keywords parse
// to nothing never matches any job.
func ParseKeywords(keywords string) []string {
	parts := strings.Split(keywords, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		term := strings.ToLower(strings.TrimSpace(p))
		if term == "" {
			continue
		}
		out = append(out, term)
	}
	return out
}

// Matches reports whether any parsed keyword term occurs in the concatenated
// job fields. Containment is plain substring, deliberately looser than the
// extractor's whole-word matching: short terms over-match ("go" hits "good"),
// which is the documented contract of user alerts, not a defect.
func Matches(keywords string, jobFields ...string) bool {
	terms := ParseKeywords(keywords)
	if len(terms) == 0 {
		return false
	}

	jobText := strings.ToLower(strings.Join(jobFields, " "))
	for _, term := range terms {
		if strings.Contains(jobText, term) {
			return true
		}
	}
	return false
}
