package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/alfredjeanlab/soloforge/internal/model"
	"github.com/alfredjeanlab/soloforge/internal/presence"
	"github.com/alfredjeanlab/soloforge/internal/ui"
)

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// printPartnerActivity renders polled events for the player.
func printPartnerActivity(events []model.Event) {
	if jsonOutput {
		printJSON(events)
		return
	}
	width := ui.Width(100)
	fmt.Println(ui.Accent("Partner activity:"))
	for _, e := range events {
		ts := ui.Muted(e.TS.Local().Format("Jan 2 15:04"))
		fmt.Printf("  %s  %s  %s%s\n", ts, e.Player, e.Type, truncate(describeEvent(e), width-40))
	}
}

func truncate(s string, max int) string {
	if max < 8 {
		max = 8
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func describeEvent(e model.Event) string {
	switch e.Type {
	case model.TypeProposeTruth:
		return fmt.Sprintf(": [%s] %s", e.String("category"), e.String("option_summary"))
	case model.TypeAcceptTruth:
		return fmt.Sprintf(": [%s] %s", e.String("category"), e.String("option_summary"))
	case model.TypeSharedVowCreated:
		return fmt.Sprintf(": %s (%s)", e.String("description"), e.String("rank"))
	case model.TypeSharedVowProgress, model.TypeSharedVowFulfilled:
		return fmt.Sprintf(": %s", e.String("description"))
	case model.TypeInterpret:
		return fmt.Sprintf(": %s %q", e.String("oracle"), e.String("text"))
	default:
		return ""
	}
}

func printRoster(entries []presence.Entry) {
	if len(entries) == 0 {
		return
	}
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PARTNER\tLAST SEEN\tLAST EVENT\tEVENTS")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", e.Player, e.LastSeen.Local().Format(time.RFC822), e.LastEvent, e.EventCount)
	}
	_ = w.Flush()
}

func printProposals(proposals []model.TruthProposal) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tPROPOSED BY\tOPTION")
	for _, p := range proposals {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Category, p.Proposer, p.OptionSummary)
	}
	_ = w.Flush()
}
