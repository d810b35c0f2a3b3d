package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/soloforge/internal/ui"
)

var vowCmd = &cobra.Command{
	Use:   "vow",
	Short: "Manage shared campaign vows",
}

var vowAddCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Swear a shared campaign vow visible to all players",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		rank, _ := cmd.Flags().GetString("rank")

		if err := s.svc.CreateSharedVow(args[0], rank); err != nil {
			return err
		}
		fmt.Printf("Shared vow sworn (%s): %s\n", rank, ui.Accent(args[0]))
		s.pollAndShow(false)
		return nil
	},
}

var vowProgressCmd = &cobra.Command{
	Use:   "progress <description>",
	Short: "Mark progress on a shared vow",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		ticks, _ := cmd.Flags().GetInt("ticks")

		vow, err := s.svc.ProgressSharedVow(args[0], ticks)
		if err != nil {
			return err
		}
		fmt.Printf("Progress on %s: %s\n", ui.Accent(vow.Description), ui.Success(fmt.Sprintf("%d ticks", vow.Progress)))
		s.pollAndShow(false)
		return nil
	},
}

var vowFulfillCmd = &cobra.Command{
	Use:   "fulfill <description>",
	Short: "Mark a shared vow fulfilled",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		vow, err := s.svc.FulfillSharedVow(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Vow fulfilled: %s\n", ui.Success(vow.Description))
		s.pollAndShow(false)
		return nil
	},
}

var vowListCmd = &cobra.Command{
	Use:   "list",
	Short: "List shared campaign vows",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		if s.campaign == nil {
			fmt.Println(ui.Muted("No campaign active."))
			return nil
		}
		s.pollAndShow(false)

		vows := s.campaign.Campaign.SharedVows
		if jsonOutput {
			printJSON(vows)
			return nil
		}
		if len(vows) == 0 {
			fmt.Println(ui.Muted("No shared vows yet."))
			return nil
		}
		for _, v := range vows {
			status := fmt.Sprintf("%d ticks", v.Progress)
			if v.Fulfilled {
				status = ui.Success("fulfilled")
			}
			fmt.Printf("  %s (%s): %s %s\n", ui.Accent(v.Description), v.Rank, status, ui.Muted("by "+v.CreatedBy))
		}
		return nil
	},
}

func init() {
	vowAddCmd.Flags().String("rank", "dangerous", "vow rank (troublesome, dangerous, formidable, extreme, epic)")
	vowProgressCmd.Flags().Int("ticks", 1, "progress ticks to add")

	vowCmd.AddCommand(vowAddCmd)
	vowCmd.AddCommand(vowProgressCmd)
	vowCmd.AddCommand(vowFulfillCmd)
	vowCmd.AddCommand(vowListCmd)
}
