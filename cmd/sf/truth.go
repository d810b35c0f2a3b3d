package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/soloforge/internal/model"
	"github.com/alfredjeanlab/soloforge/internal/ui"
)

var truthCmd = &cobra.Command{
	Use:   "truth",
	Short: "Propose, review, and accept campaign truths",
}

var truthProposeCmd = &cobra.Command{
	Use:   "propose <category> <option>",
	Short: "Propose a truth (applied immediately in solo play)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		custom, _ := cmd.Flags().GetString("text")

		res, err := s.svc.ProposeTruth(args[0], args[1], custom)
		if err != nil {
			return err
		}
		switch res {
		case model.Accepted:
			fmt.Printf("Truth set: [%s] %s\n", ui.Accent(args[0]), args[1])
		default:
			fmt.Printf("Truth proposal submitted: [%s] %s\n", ui.Accent(args[0]), args[1])
			fmt.Println(ui.Muted("  Waiting for a partner to review (`sf truth review`, `sf truth accept`)."))
		}
		s.pollAndShow(false)
		return nil
	},
}

var truthReviewCmd = &cobra.Command{
	Use:   "review",
	Short: "List pending truth proposals",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		s.pollAndShow(false)

		proposals := s.svc.PendingProposals()
		if jsonOutput {
			printJSON(proposals)
			return nil
		}
		if len(proposals) == 0 {
			fmt.Println(ui.Muted("No pending truth proposals."))
			return nil
		}
		printProposals(proposals)
		return nil
	},
}

var truthAcceptCmd = &cobra.Command{
	Use:   "accept <category>",
	Short: "Accept a pending truth proposal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		s.pollAndShow(false)

		truth, err := s.svc.AcceptTruth(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Truth accepted: [%s] %s\n", ui.Accent(truth.Category), ui.Success(truth.OptionSummary))
		return nil
	},
}

var truthCounterCmd = &cobra.Command{
	Use:   "counter <category> <option>",
	Short: "Counter-propose a different option for a pending category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		s.pollAndShow(false)

		custom, _ := cmd.Flags().GetString("text")
		if _, err := s.svc.CounterTruth(args[0], args[1], custom); err != nil {
			return err
		}
		fmt.Printf("Counter-proposal submitted: [%s] %s\n", ui.Accent(args[0]), args[1])
		return nil
	},
}

var truthShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show accepted campaign truths",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		if s.campaign == nil {
			fmt.Println(ui.Muted("No campaign active; personal truths live in your character save."))
			return nil
		}
		truths := s.campaign.Campaign.Truths
		if jsonOutput {
			printJSON(truths)
			return nil
		}
		if len(truths) == 0 {
			fmt.Println(ui.Muted("No truths accepted yet."))
			return nil
		}
		for _, t := range truths {
			fmt.Printf("  [%s] %s\n", ui.Accent(t.Category), t.OptionSummary)
			if t.CustomText != "" {
				fmt.Printf("    %s\n", ui.Muted(t.CustomText))
			}
		}
		return nil
	},
}

func init() {
	truthProposeCmd.Flags().String("text", "", "custom truth text")
	truthCounterCmd.Flags().String("text", "", "custom truth text")

	truthCmd.AddCommand(truthProposeCmd)
	truthCmd.AddCommand(truthReviewCmd)
	truthCmd.AddCommand(truthAcceptCmd)
	truthCmd.AddCommand(truthCounterCmd)
	truthCmd.AddCommand(truthShowCmd)
}
