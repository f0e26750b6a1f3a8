package usage

import (
	"fmt"
	"math"
	"strings"
)

// FormatDuration renders a millisecond duration as natural spoken
// English: "1 second", "2 minutes", "1 minute and 1 second".
func FormatDuration(ms int64) string {
	if ms <= 0 {
		return ""
	}
	seconds := int(math.Round(float64(ms) / 1000))
	if seconds < 1 {
		return "less than a second"
	}
	if seconds < 60 {
		return plural(seconds, "second")
	}
	minutes := seconds / 60
	rest := seconds % 60
	if rest == 0 {
		return plural(minutes, "minute")
	}
	return plural(minutes, "minute") + " and " + plural(rest, "second")
}

// FormatTokensForVoice rounds a token count to a contextually natural
// granularity and phrases it for speech. The rounding granularity is
// monotonically non-decreasing as the count grows.
func FormatTokensForVoice(tokens int) string {
	switch {
	case tokens <= 0:
		return ""
	case tokens < 950:
		hundreds := int(math.Round(float64(tokens)/100)) * 100
		if hundreds < 100 {
			hundreds = 100
		}
		return fmt.Sprintf("about %d tokens", hundreds)
	case tokens < 9_500:
		thousands := int(math.Round(float64(tokens) / 1000))
		if thousands <= 1 {
			return "about a thousand tokens"
		}
		return fmt.Sprintf("about %d thousand tokens", thousands)
	case tokens < 99_500:
		thousands := int(math.Round(float64(tokens) / 1000))
		return fmt.Sprintf("about %d thousand tokens", thousands)
	case tokens < 950_000:
		tenThousands := int(math.Round(float64(tokens)/10_000)) * 10
		return fmt.Sprintf("about %d thousand tokens", tenThousands)
	default:
		millions := int(math.Round(float64(tokens) / 1_000_000))
		if millions <= 1 {
			return "about a million tokens"
		}
		return fmt.Sprintf("about %d million tokens", millions)
	}
}

// FormatCostForVoice renders a dollar amount for speech.
func FormatCostForVoice(cost float64) string {
	switch {
	case cost <= 0:
		return ""
	case cost < 0.01:
		return "less than a cent"
	case cost < 1.0:
		cents := int(math.Round(cost * 100))
		return plural(cents, "cent")
	default:
		return fmt.Sprintf("$%.2f dollars", cost)
	}
}

// FormatDurationShort renders a terminal-display duration: "45s", "2m5s".
func FormatDurationShort(ms int64) string {
	if ms <= 0 {
		return "0s"
	}
	seconds := int(math.Round(float64(ms) / 1000))
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds%60 == 0 {
		return fmt.Sprintf("%dm", seconds/60)
	}
	return fmt.Sprintf("%dm%ds", seconds/60, seconds%60)
}

// FormatTokensShort renders a terminal-display token count: "120K tokens".
func FormatTokensShort(tokens int) string {
	switch {
	case tokens <= 0:
		return "0 tokens"
	case tokens < 1000:
		return fmt.Sprintf("%d tokens", tokens)
	case tokens < 1_000_000:
		return fmt.Sprintf("%dK tokens", int(math.Round(float64(tokens)/1000)))
	default:
		return fmt.Sprintf("%.1fM tokens", float64(tokens)/1_000_000)
	}
}

// FormatCostShort renders a terminal-display cost: "$0.48".
func FormatCostShort(cost float64) string {
	return fmt.Sprintf("$%.2f", cost)
}

// JoinClauses joins spoken clauses with commas and a trailing "and"
// before the last item.
func JoinClauses(clauses []string) string {
	var present []string
	for _, c := range clauses {
		if c != "" {
			present = append(present, c)
		}
	}
	switch len(present) {
	case 0:
		return ""
	case 1:
		return present[0]
	case 2:
		return present[0] + " and " + present[1]
	default:
		return strings.Join(present[:len(present)-1], ", ") + " and " + present[len(present)-1]
	}
}

// Stats is everything the spoken summary can mention beyond the
// completion message itself.
type Stats struct {
	DurationMS int64
	Tokens     int
	Agents     []string
	Skills     []string
	Cost       float64
}

// BuildSpokenMessage concatenates the completion message with a natural
// clause listing whichever stats are non-zero.
func BuildSpokenMessage(completion string, stats Stats) string {
	var clauses []string
	if d := FormatDuration(stats.DurationMS); d != "" {
		clauses = append(clauses, "took "+d)
	}
	if t := FormatTokensForVoice(stats.Tokens); t != "" {
		clauses = append(clauses, "used "+t)
	}
	if n := len(stats.Agents); n > 0 {
		clauses = append(clauses, "spawned "+plural(n, "agent"))
	}
	if n := len(stats.Skills); n > 0 {
		clauses = append(clauses, "used "+plural(n, "skill"))
	}
	if c := FormatCostForVoice(stats.Cost); c != "" {
		clauses = append(clauses, "cost "+c)
	}

	if len(clauses) == 0 {
		return completion
	}
	return completion + ". This " + JoinClauses(clauses) + "."
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
