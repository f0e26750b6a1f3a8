package summary

import "strings"

// The fixed closed set of completion categories.
const (
	CategoryBugFix   = "Bug fixed"
	CategoryFeature  = "Feature added"
	CategoryQuestion = "Question answered"
	CategoryConfig   = "Configuration updated"
	CategorySearch   = "Search completed"
	CategoryCode     = "Code updated"
	CategoryAnalysis = "Analysis complete"
	CategoryDefault  = "Task completed"
)

// Categories lists every category the classifier can produce.
var Categories = []string{
	CategoryBugFix, CategoryFeature, CategoryQuestion, CategoryConfig,
	CategorySearch, CategoryCode, CategoryAnalysis, CategoryDefault,
}

var configExtensions = []string{".env", ".json", ".yaml", ".yml", ".toml", ".ini"}

// Categorize classifies a completion by its description text and the raw
// tool-call descriptions. Rules are checked in a fixed precedence order
// and the first match wins: a message carrying both a bug-fix verb and a
// feature verb always resolves to a bug fix. The function is total; the
// fallback category always applies.
func Categorize(description string, toolDescriptions []string) string {
	desc := strings.ToLower(description)
	tools := strings.ToLower(strings.Join(toolDescriptions, " "))

	switch {
	case containsAny(desc, "fix", "patch", "debug", "resolv", "repair"):
		return CategoryBugFix
	case containsAny(desc, "add", "creat", "implement", "built", "new "):
		return CategoryFeature
	case containsAny(desc, "explain", "answer", "describ", "what ", "why ", "how "):
		return CategoryQuestion
	case containsAny(desc, "config", "setting", "env ") || containsAny(tools, configExtensions...):
		return CategoryConfig
	case containsAny(tools, "search", "grep", "glob", "web"):
		return CategorySearch
	case containsAny(tools, "modified", "created", "edit", "writ"):
		return CategoryCode
	case containsAny(desc, "analyz", "research", "investigat", "explor", "review"):
		return CategoryAnalysis
	default:
		return CategoryDefault
	}
}

func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
