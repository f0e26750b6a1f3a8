// Command hook is the transcript analyzer invoked once per
// conversational turn. It reads the hook payload on stdin (time-boxed),
// extracts a completion summary from the session transcript, prints a
// terminal summary block and fires one best-effort notification at the
// local server. It always exits 0: voice is an enhancement, never a
// reason to fail the host application.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"voicebox/internal/config"
	"voicebox/internal/models"
	"voicebox/internal/notify"
	"voicebox/internal/summary"
	"voicebox/internal/transcript"
	"voicebox/internal/usage"
)

// hookPayload is what the host application writes to stdin.
type hookPayload struct {
	SessionID      string `json:"session_id"`
	TranscriptPath string `json:"transcript_path"`
	HookEventName  string `json:"hook_event_name"`
}

func main() {
	// Hooks must stay quiet on stdout except for intentional output.
	log.SetOutput(io.Discard)

	_ = godotenv.Load()
	cfg := config.Load()

	payload := readPayload(cfg.StdinTimeout)

	markers := usage.NewFileMarkerStore(cfg.MarkerDir)

	// The same binary serves both hook events: prompt submission
	// records the marker, completion consumes it.
	if payload.HookEventName == "UserPromptSubmit" {
		if payload.SessionID != "" {
			_ = markers.Put(payload.SessionID, time.Now())
		}
		return
	}

	run(cfg, payload, markers)
}

// readPayload races the stdin read against a short timer. If no input
// arrives in time we proceed with an empty payload rather than blocking
// the host; the in-flight read is abandoned, not cancelled.
func readPayload(timeout time.Duration) hookPayload {
	type result struct {
		data []byte
	}
	ch := make(chan result, 1)
	go func() {
		data, _ := io.ReadAll(os.Stdin)
		ch <- result{data}
	}()

	var payload hookPayload
	select {
	case r := <-ch:
		_ = json.Unmarshal(r.data, &payload)
	case <-time.After(timeout):
	}
	return payload
}

func run(cfg *config.Config, payload hookPayload, markers usage.MarkerStore) {
	if payload.TranscriptPath == "" {
		return
	}

	analysis, err := transcript.AnalyzeFile(payload.TranscriptPath)
	if err != nil {
		return
	}

	extracted := summary.Extract(summary.Input{
		Text:          analysis.AssistantText,
		Descriptions:  analysis.Descriptions,
		Modifications: analysis.Modifications,
	})
	completion := extracted.Message()

	durationMS := usage.ElapsedSince(markers, payload.SessionID)
	cost := usage.CalculateCost(analysis.Usage.Model,
		analysis.Usage.InputTokens, analysis.Usage.OutputTokens, analysis.Usage.CacheReadTokens)

	stats := usage.Stats{
		DurationMS: durationMS,
		Tokens:     analysis.Usage.Total(),
		Agents:     analysis.Agents,
		Skills:     analysis.Skills,
		Cost:       cost,
	}
	spoken := usage.BuildSpokenMessage(completion, stats)

	printSummaryBlock(completion, analysis, durationMS, cost)

	// Fire-and-forget: a server that is not running is not an error.
	client := notify.NewClient(cfg.ServerURL, cfg.NotifyTimeout)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.NotifyTimeout)
	defer cancel()
	_ = client.Send(ctx, models.NotificationRequest{
		Title:   extracted.Category,
		Message: spoken,
	})
}

// printSummaryBlock writes the boxed completion summary to the
// terminal using the dense display formatters.
func printSummaryBlock(completion string, analysis *transcript.Analysis, durationMS int64, cost float64) {
	var lines []string
	lines = append(lines, completion)

	var stats []string
	if durationMS > 0 {
		stats = append(stats, usage.FormatDurationShort(durationMS))
	}
	if analysis.Usage.Total() > 0 {
		stats = append(stats, usage.FormatTokensShort(analysis.Usage.Total()))
	}
	if cost > 0 {
		stats = append(stats, usage.FormatCostShort(cost))
	}
	if len(stats) > 0 {
		lines = append(lines, strings.Join(stats, " · "))
	}
	if len(analysis.Skills) > 0 {
		lines = append(lines, "skills: "+strings.Join(analysis.Skills, ", "))
	}
	if len(analysis.Agents) > 0 {
		lines = append(lines, "agents: "+strings.Join(analysis.Agents, ", "))
	}

	width := 0
	for _, l := range lines {
		if len(l) > width {
			width = len(l)
		}
	}

	fmt.Println("┌─" + strings.Repeat("─", width) + "─┐")
	for _, l := range lines {
		fmt.Printf("│ %-*s │\n", width, l)
	}
	fmt.Println("└─" + strings.Repeat("─", width) + "─┘")
}
