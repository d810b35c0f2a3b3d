package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/soloforge/internal/state"
	"github.com/alfredjeanlab/soloforge/internal/ui"
)

var campaignCmd = &cobra.Command{
	Use:   "campaign",
	Short: "Create, join, and inspect co-op campaigns",
}

var campaignCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new campaign and join it as the first player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		player, _ := cmd.Flags().GetString("player")
		if player == "" {
			return fmt.Errorf("--player is required")
		}

		store := state.NewStore(cfg.CampaignsDir)
		campaign, dir, err := store.Create(args[0], player)
		if err != nil {
			return err
		}
		if err := saveSessionConfig(SessionConfig{Active: campaign.Slug, Player: player}); err != nil {
			return err
		}

		fmt.Printf("Campaign %s created.\n", ui.Accent(campaign.Name))
		fmt.Printf("  Slug:      %s\n", campaign.Slug)
		fmt.Printf("  Directory: %s\n", dir)
		fmt.Println(ui.Muted("  Share the campaign directory (Dropbox, Syncthing, a LAN share) so others can join."))
		return nil
	},
}

var campaignJoinCmd = &cobra.Command{
	Use:   "join <slug>",
	Short: "Join an existing campaign",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		player, _ := cmd.Flags().GetString("player")
		if player == "" {
			return fmt.Errorf("--player is required")
		}

		store := state.NewStore(cfg.CampaignsDir)
		dir := store.CampaignDir(args[0])
		campaign, err := state.Join(dir, player)
		if err != nil {
			return err
		}
		if err := saveSessionConfig(SessionConfig{Active: campaign.Slug, Player: player}); err != nil {
			return err
		}

		fmt.Printf("Joined campaign %s as %s.\n", ui.Accent(campaign.Name), player)
		return nil
	},
}

var campaignListCmd = &cobra.Command{
	Use:   "list",
	Short: "List campaigns under the campaigns root",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := state.NewStore(cfg.CampaignsDir)
		slugs, err := store.List()
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(slugs)
			return nil
		}
		if len(slugs) == 0 {
			fmt.Println(ui.Muted("No campaigns found."))
			return nil
		}
		for _, slug := range slugs {
			fmt.Println(slug)
		}
		return nil
	},
}

var campaignStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active campaign, players, and pending proposals",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		if s.campaign == nil {
			fmt.Println(ui.Muted("No campaign active; playing solo. Use `sf campaign create` or `sf campaign join`."))
			return nil
		}

		// Catch up before reporting so the roster reflects partner files.
		s.pollAndShow(false)

		c := s.campaign.Campaign
		if jsonOutput {
			printJSON(c)
			return nil
		}

		fmt.Printf("Campaign: %s\n", ui.Accent(c.Name))
		fmt.Printf("  Created: %s\n", c.Created.Local().Format(time.RFC822))
		fmt.Printf("  Dir:     %s\n", s.campaign.Dir)
		fmt.Println("  Players:")
		for id, info := range c.Players {
			fmt.Printf("    %s %s\n", id, ui.Muted("joined "+info.Joined.Local().Format("Jan 2 2006")))
		}

		if len(c.Pending) > 0 {
			fmt.Println()
			fmt.Println(ui.Warn("Pending truth proposals:"))
			printProposals(s.svc.PendingProposals())
			fmt.Println(ui.Muted("  Use `sf truth accept <category>` to agree, or `sf truth counter` to propose an alternative."))
		}

		if s.svc.Presence != nil {
			printRoster(s.svc.Presence.Roster(0))
		}
		return nil
	},
}

var campaignLeaveCmd = &cobra.Command{
	Use:   "leave",
	Short: "Leave the active campaign and return to solo mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := loadSessionConfig()
		if err != nil {
			return err
		}
		if sess.Active == "" {
			return fmt.Errorf("no campaign active")
		}
		name := sess.Active
		sess.Active = ""
		if err := saveSessionConfig(sess); err != nil {
			return err
		}
		fmt.Printf("Left campaign %s. Playing in solo mode.\n", ui.Accent(name))
		return nil
	},
}

func init() {
	campaignCreateCmd.Flags().String("player", "", "player identity for this campaign")
	campaignJoinCmd.Flags().String("player", "", "player identity for this campaign")

	campaignCmd.AddCommand(campaignCreateCmd)
	campaignCmd.AddCommand(campaignJoinCmd)
	campaignCmd.AddCommand(campaignListCmd)
	campaignCmd.AddCommand(campaignStatusCmd)
	campaignCmd.AddCommand(campaignLeaveCmd)
}
