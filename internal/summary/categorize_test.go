package summary

import "testing"

func TestCategorize(t *testing.T) {
	tests := []struct {
		name  string
		desc  string
		tools []string
		want  string
	}{
		{"bug fix", "Fixed the login race condition", nil, CategoryBugFix},
		{"resolve counts as fix", "Resolved flaky CI timeouts", nil, CategoryBugFix},
		{"feature", "Added retry logic to the fetcher", nil, CategoryFeature},
		{"implement counts as feature", "Implemented token refresh", nil, CategoryFeature},
		{"question", "Explained how the scheduler works", nil, CategoryQuestion},
		{"config by description", "Updated the settings for deployment", nil, CategoryConfig},
		{"config by tool extension", "Tweaked things", []string{"Modified app.yaml"}, CategoryConfig},
		{"search by tools", "Looked around", []string{"Searched codebase"}, CategorySearch},
		{"code by tools", "", []string{"Modified a.ts", "Modified b.ts"}, CategoryCode},
		{"analysis", "Reviewed the migration plan", nil, CategoryAnalysis},
		{"default", "Wrapped up the remaining work", nil, CategoryDefault},
		{"empty input", "", nil, CategoryDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.desc, tt.tools); got != tt.want {
				t.Errorf("Categorize(%q, %v) = %q, want %q", tt.desc, tt.tools, got, tt.want)
			}
		})
	}
}

// TestCategorizePrecedence pins the rule order: a description matching
// several rules resolves to the earliest one.
func TestCategorizePrecedence(t *testing.T) {
	// "fixed" and "added" both present: bug fix wins.
	if got := Categorize("Fixed the bug and added a test", nil); got != CategoryBugFix {
		t.Errorf("bug+feature = %q, want %q", got, CategoryBugFix)
	}
	// Description keywords beat tool-derived categories.
	if got := Categorize("Added the feature", []string{"Searched codebase"}); got != CategoryFeature {
		t.Errorf("feature+search tools = %q, want %q", got, CategoryFeature)
	}
}

// TestCategorizeTotal checks the classifier always lands in the known
// category set, whatever the input.
func TestCategorizeTotal(t *testing.T) {
	known := make(map[string]bool, len(Categories))
	for _, c := range Categories {
		known[c] = true
	}

	inputs := []string{
		"", "???", "zzz", "Fixed", "a very long unrelated sentence about gardening",
	}
	for _, in := range inputs {
		got := Categorize(in, []string{in})
		if !known[got] {
			t.Errorf("Categorize(%q) produced unknown category %q", in, got)
		}
	}
}

// TestCategorizeIdempotent verifies classifying a message that embeds its
// own category does not shift the result to a different category family.
func TestCategorizeIdempotent(t *testing.T) {
	for _, desc := range []string{"Fixed the parser bug", "Reviewed the design"} {
		first := Categorize(desc, nil)
		second := Categorize(first+": "+desc, nil)
		if first != second {
			t.Errorf("category drifted: %q then %q for %q", first, second, desc)
		}
	}
}
