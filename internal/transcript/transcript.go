package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Event is one line of the session transcript (JSONL).
type Event struct {
	Type    string   `json:"type"`
	Message *Message `json:"message,omitempty"`
}

// Message carries the content blocks, token usage and model of an event.
type Message struct {
	Content json.RawMessage `json:"content,omitempty"`
	Usage   *Usage          `json:"usage,omitempty"`
	Model   string          `json:"model,omitempty"`
}

// Usage holds per-event token counts.
type Usage struct {
	InputTokens     int `json:"input_tokens"`
	OutputTokens    int `json:"output_tokens"`
	CacheReadTokens int `json:"cache_read_input_tokens"`
}

// ContentBlock is a typed block inside a message. Content can be a bare
// string (treated as a single text block) or an ordered block array.
type ContentBlock struct {
	Type    string         `json:"type"`
	Text    string         `json:"text,omitempty"`
	Name    string         `json:"name,omitempty"`
	Input   map[string]any `json:"input,omitempty"`
	Content json.RawMessage `json:"content,omitempty"`
}

// ToolCall is a tool invocation observed in the turn window.
type ToolCall struct {
	Name  string
	Input map[string]any
}

// UsageTotals accumulates usage across every assistant event in the window.
type UsageTotals struct {
	InputTokens     int
	OutputTokens    int
	CacheReadTokens int
	Model           string
}

// Total returns the combined token count.
func (u UsageTotals) Total() int {
	return u.InputTokens + u.OutputTokens + u.CacheReadTokens
}

// Analysis is everything extracted from the current turn window.
type Analysis struct {
	AssistantText string   // last non-empty assistant text
	ToolCalls     []ToolCall
	Descriptions  []string // ordered human descriptions of tool calls
	Modifications []string // subset of Descriptions that modify files
	Skills        []string // de-duplicated skill names used
	Agents        []string // de-duplicated subagent types spawned
	Usage         UsageTotals
}

// ParseLine decodes a single transcript line. Callers skip lines that
// fail to parse; corrupt lines are tolerated, not fatal.
func ParseLine(line []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(line, &ev); err != nil {
		return Event{}, fmt.Errorf("unmarshal transcript line: %w", err)
	}
	return ev, nil
}

// Blocks normalizes message content into a block list. A bare string
// becomes one text block.
func (m *Message) Blocks() []ContentBlock {
	if m == nil || len(m.Content) == 0 {
		return nil
	}

	var blocks []ContentBlock
	if err := json.Unmarshal(m.Content, &blocks); err == nil {
		return blocks
	}

	var text string
	if err := json.Unmarshal(m.Content, &text); err == nil && text != "" {
		return []ContentBlock{{Type: "text", Text: text}}
	}

	return nil
}

// isTurnBoundary reports whether ev is a true user turn: a user event
// whose content is not wholly composed of tool_result blocks. A user
// event that only echoes tool results is not a boundary.
func isTurnBoundary(ev Event) bool {
	if ev.Type != "user" {
		return false
	}
	blocks := ev.Message.Blocks()
	if len(blocks) == 0 {
		return true
	}
	for _, b := range blocks {
		if b.Type != "tool_result" {
			return true
		}
	}
	return false
}

// AnalyzeFile reads and analyzes the transcript at path.
func AnalyzeFile(path string) (*Analysis, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()
	return Analyze(f)
}

// Analyze scans the transcript, locates the most recent true user turn
// and collects everything that happened after it. Unparseable lines are
// skipped silently. If no boundary exists the window is the whole log.
func Analyze(r io.Reader) (*Analysis, error) {
	scanner := bufio.NewScanner(r)
	// Allow large payloads such as embedded file contents.
	const maxCapacity = 8 * 1024 * 1024
	scanner.Buffer(make([]byte, 1024), maxCapacity)

	var events []Event
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		ev, err := ParseLine(line)
		if err != nil {
			continue
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan transcript: %w", err)
	}

	start := 0
	for i := len(events) - 1; i >= 0; i-- {
		if isTurnBoundary(events[i]) {
			start = i
			break
		}
	}

	analysis := &Analysis{}
	seenSkills := map[string]bool{}
	seenAgents := map[string]bool{}

	for _, ev := range events[start:] {
		if ev.Type != "assistant" {
			continue
		}
		if ev.Message != nil && ev.Message.Usage != nil {
			analysis.Usage.InputTokens += ev.Message.Usage.InputTokens
			analysis.Usage.OutputTokens += ev.Message.Usage.OutputTokens
			analysis.Usage.CacheReadTokens += ev.Message.Usage.CacheReadTokens
		}
		if ev.Message != nil && ev.Message.Model != "" {
			analysis.Usage.Model = ev.Message.Model
		}
		for _, b := range ev.Message.Blocks() {
			switch b.Type {
			case "text":
				if strings.TrimSpace(b.Text) != "" {
					// Only the most recent assistant message survives.
					analysis.AssistantText = b.Text
				}
			case "tool_use":
				call := ToolCall{Name: b.Name, Input: b.Input}
				analysis.ToolCalls = append(analysis.ToolCalls, call)

				if desc, modifies := DescribeToolCall(call); desc != "" {
					analysis.Descriptions = append(analysis.Descriptions, desc)
					if modifies {
						analysis.Modifications = append(analysis.Modifications, desc)
					}
				}

				switch b.Name {
				case "Skill":
					if name := inputString(b.Input, "skill", "command", "name"); name != "" && !seenSkills[name] {
						seenSkills[name] = true
						analysis.Skills = append(analysis.Skills, name)
					}
				case "Task":
					if agent := inputString(b.Input, "subagent_type"); agent != "" && !seenAgents[agent] {
						seenAgents[agent] = true
						analysis.Agents = append(analysis.Agents, agent)
					}
				}
			}
		}
	}

	return analysis, nil
}

// DescribeToolCall maps a tool invocation to a short human description.
// The second return reports whether the call modifies files. Tools with
// no mapping yield an empty description and are discarded.
func DescribeToolCall(call ToolCall) (string, bool) {
	switch call.Name {
	case "Edit", "MultiEdit", "NotebookEdit":
		if path := inputString(call.Input, "file_path", "notebook_path"); path != "" {
			return "Modified " + filepath.Base(path), true
		}
		return "", false
	case "Write":
		if path := inputString(call.Input, "file_path"); path != "" {
			return "Created " + filepath.Base(path), true
		}
		return "", false
	case "Bash":
		return inputString(call.Input, "description"), false
	case "Read":
		if path := inputString(call.Input, "file_path"); path != "" {
			return "Read " + filepath.Base(path), false
		}
		return "", false
	case "Glob", "Grep":
		return "Searched codebase", false
	case "Task":
		if desc := inputString(call.Input, "description"); desc != "" {
			return desc, false
		}
		return "Ran subagent task", false
	case "WebFetch", "WebSearch":
		return "Searched the web", false
	}
	return "", false
}

func inputString(input map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := input[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
