package summary

import (
	"regexp"
	"strings"
)

// Summary is the extracted completion result for one turn.
type Summary struct {
	Category    string
	Description string
}

// Message renders the final completion message. Very short descriptions
// collapse to the bare category.
func (s Summary) Message() string {
	if len(s.Description) > 3 {
		return s.Category + ": " + s.Description
	}
	return s.Category
}

// Input is the raw material the cascade works on.
type Input struct {
	Text          string   // last assistant text in the turn window
	Descriptions  []string // ordered tool-call descriptions
	Modifications []string // file-modifying subset of Descriptions
}

// rule is one step of the extraction cascade: a pure transform that
// either yields a description or defers to the next rule.
type rule struct {
	name    string
	extract func(Input) string
}

// cascade is evaluated in priority order; the first non-empty result
// wins and later rules are not consulted.
var cascade = []rule{
	{"marker", extractMarker},
	{"heading", extractHeading},
	{"action-verb", extractActionVerb},
	{"tool-calls", summarizeToolCalls},
	{"question", extractQuestionTopic},
	{"first-sentence", extractFirstSentence},
}

// Extract produces the completion summary for a turn. It never returns
// an empty description when any signal exists: the cascade falls through
// until something non-trivial is produced, and concrete file-modification
// evidence overrides a weak textual match.
func Extract(in Input) Summary {
	var desc string
	for _, r := range cascade {
		if desc = r.extract(in); desc != "" {
			break
		}
	}

	// File evidence is more trustworthy than fuzzy text matching.
	if len(in.Modifications) > 0 && len(desc) < 10 {
		desc = combineDescriptions(dedupe(in.Modifications))
	}

	desc = CleanForSpeech(desc)
	desc = truncateWords(desc, 10)

	return Summary{
		Category:    Categorize(desc, in.Descriptions),
		Description: desc,
	}
}

var (
	markerRe   = regexp.MustCompile(`(?mi)^\s*(?:🎯\s*)?\**\s*(?:COMPLETED|Done)\s*\**\s*:\s*\**\s*(.+)$`)
	agentTagRe = regexp.MustCompile(`^\[[^\]]+\]:?\s*`)
	headingRe  = regexp.MustCompile(`(?mi)^#{1,6}\s*(?:Summary|Done|Complete)\s*:?\s*$`)
	topicRe    = regexp.MustCompile(`(?i)\b(?:about|regarding|for|with|the)\s+([A-Za-z0-9][^.!?\n,]{2,40})`)
	verbRe     *regexp.Regexp
)

func init() {
	verbRe = regexp.MustCompile(`(?m)^\s*[*_]{0,3}(` + strings.Join(actionVerbs, "|") + `)\b\s*([^.!?\n]{5,80})(?:[.!?\n]|$)`)
}

// extractMarker matches an explicit completion marker line, with or
// without the 🎯 emoji and bold markup, and strips any leading agent-tag
// prefix from the remainder.
func extractMarker(in Input) string {
	m := markerRe.FindStringSubmatch(in.Text)
	if m == nil {
		return ""
	}
	rest := strings.TrimSpace(m[1])
	rest = agentTagRe.ReplaceAllString(rest, "")
	return strings.TrimSpace(rest)
}

// extractHeading finds a "Summary"/"Done"/"Complete" markdown heading and
// returns its first non-empty, non-heading body line.
func extractHeading(in Input) string {
	loc := headingRe.FindStringIndex(in.Text)
	if loc == nil {
		return ""
	}
	for _, line := range strings.Split(in.Text[loc[1]:], "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return stripEmphasis(line)
	}
	return ""
}

// extractActionVerb matches the first line opening with a recognized
// past-tense action verb followed by a short clause.
func extractActionVerb(in Input) string {
	m := verbRe.FindStringSubmatch(in.Text)
	if m == nil {
		return ""
	}
	return stripEmphasis(strings.TrimSpace(m[1] + " " + strings.TrimSpace(m[2])))
}

// summarizeToolCalls derives a description from the tool activity alone.
// Pure reads and searches are excluded first; if that filters everything
// out but tools did run, the last raw entry is used.
func summarizeToolCalls(in Input) string {
	raw := dedupe(in.Descriptions)
	if len(raw) == 0 {
		return ""
	}

	var filtered []string
	for _, d := range raw {
		if strings.HasPrefix(d, "Read ") || strings.HasPrefix(d, "Searched") {
			continue
		}
		filtered = append(filtered, d)
	}

	if len(filtered) == 0 {
		return raw[len(raw)-1]
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return combineDescriptions(filtered)
}

// combineDescriptions merges several tool descriptions into one phrase.
// Descriptions sharing the Modified/Created verb combine up to three
// basenames; heterogeneous entries join the first two with "and".
func combineDescriptions(descs []string) string {
	for _, verb := range []string{"Modified ", "Created "} {
		var files []string
		for _, d := range descs {
			if strings.HasPrefix(d, verb) {
				files = append(files, strings.TrimPrefix(d, verb))
			}
		}
		if len(files) == len(descs) && len(files) > 1 {
			if len(files) > 3 {
				files = files[:3]
			}
			return verb + joinAnd(files)
		}
	}
	if len(descs) >= 2 {
		return descs[0] + " and " + descs[1]
	}
	return descs[0]
}

// extractQuestionTopic handles pure Q&A turns: a question mark with no
// modification activity yields a short topic phrase after a preposition.
func extractQuestionTopic(in Input) string {
	if !strings.Contains(in.Text, "?") || len(in.Modifications) > 0 {
		return ""
	}
	m := topicRe.FindStringSubmatch(in.Text)
	if m == nil {
		return ""
	}
	topic := strings.TrimSpace(stripEmphasis(m[1]))
	if topic == "" {
		return ""
	}
	return "Answered question about " + topic
}

// extractFirstSentence takes the first sentence that is neither a short
// fragment nor a filler opener.
func extractFirstSentence(in Input) string {
	for _, sentence := range regexp.MustCompile(`[.!?\n]+`).Split(in.Text, -1) {
		sentence = strings.TrimSpace(stripEmphasis(sentence))
		if len(sentence) <= 15 {
			continue
		}
		lower := strings.ToLower(sentence)
		filler := false
		for _, opener := range fillerOpeners {
			if strings.HasPrefix(lower, opener) {
				filler = true
				break
			}
		}
		if !filler {
			return sentence
		}
	}
	return ""
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

func joinAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

func truncateWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ")
}
