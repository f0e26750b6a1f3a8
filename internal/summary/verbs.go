package summary

// actionVerbs are past-tense verbs that open a completion statement.
// The extraction cascade matches the first line beginning with one of
// these followed by a short clause.
var actionVerbs = []string{
	"Fixed", "Created", "Added", "Updated", "Installed", "Configured",
	"Removed", "Refactored", "Built", "Implemented", "Resolved",
	"Completed", "Deleted", "Renamed", "Moved", "Copied", "Merged",
	"Deployed", "Published", "Released", "Upgraded", "Downgraded",
	"Migrated", "Converted", "Optimized", "Improved", "Cleaned",
	"Formatted", "Restructured", "Reorganized", "Simplified", "Extracted",
	"Replaced", "Restored", "Reverted", "Patched", "Debugged",
	"Corrected", "Repaired", "Adjusted", "Modified", "Changed",
	"Rewrote", "Redesigned", "Generated", "Initialized", "Scaffolded",
	"Integrated", "Connected", "Linked", "Registered", "Enabled",
	"Disabled", "Activated", "Deactivated", "Verified", "Validated",
	"Tested", "Checked", "Analyzed", "Reviewed", "Documented",
	"Annotated", "Commented", "Exported", "Imported", "Synced",
	"Cached", "Indexed", "Compiled", "Bundled", "Minified",
	"Processed", "Parsed", "Finished", "Applied", "Set",
}

// fillerOpeners disqualify a sentence from being the "first meaningful
// sentence" fallback.
var fillerOpeners = []string{
	"yes", "no", "sure", "ok", "okay", "here", "here's", "let me",
	"i'll", "i will", "i've", "i have", "i can", "now", "first",
	"next", "great", "perfect", "done!", "alright", "certainly",
	"of course", "absolutely",
}
