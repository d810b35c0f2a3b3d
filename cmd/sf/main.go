// Command sf is the soloforge CLI: a journaling companion for solo and
// co-op tabletop play. Co-op campaigns sync through per-player event logs
// in a shared directory; see internal/sync.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/soloforge/internal/config"
	"github.com/alfredjeanlab/soloforge/internal/coop"
	"github.com/alfredjeanlab/soloforge/internal/presence"
	"github.com/alfredjeanlab/soloforge/internal/state"
	syncport "github.com/alfredjeanlab/soloforge/internal/sync"
	"github.com/alfredjeanlab/soloforge/internal/ui"
)

var (
	jsonOutput bool
	noColorOpt bool

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "sf",
	Short:         "Solo and co-op campaign companion",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if noColorOpt || !ui.ShouldUseColor() {
			ui.ForceNoColor()
		}
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		return nil
	},
}

// session is the per-invocation wiring: the active campaign (if any), the
// sync adapter for the local player, and the coop service over both.
type session struct {
	cfg      *config.Config
	store    *state.Store
	player   string
	campaign *state.ActiveCampaign // nil in solo mode
	svc      *coop.Service
}

// newSession loads the session file and wires up solo or co-op mode.
func newSession() (*session, error) {
	sess, err := loadSessionConfig()
	if err != nil {
		return nil, err
	}

	player := cfg.Player
	if player == "" {
		player = sess.Player
	}
	if player == "" {
		player = "wanderer"
	}

	store := state.NewStore(cfg.CampaignsDir)
	s := &session{cfg: cfg, store: store, player: player}

	if sess.Active == "" {
		s.svc = &coop.Service{
			Sync:   syncport.NewLocalAdapter(player),
			Record: loadPlayerTruths(store.Root(), player),
			Logger: logger,
		}
		return s, nil
	}

	dir := store.CampaignDir(sess.Active)
	campaign, err := state.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("active campaign %q: %w", sess.Active, err)
	}
	adapter, err := syncport.NewFileLogAdapter(dir, player, logger)
	if err != nil {
		return nil, err
	}
	s.campaign = &state.ActiveCampaign{Campaign: campaign, Dir: dir}
	s.svc = &coop.Service{
		Sync:     adapter,
		Campaign: campaign,
		Dir:      dir,
		Record:   loadPlayerTruths(dir, player),
		Save:     state.Save,
		Presence: presence.New(),
		Logger:   logger,
	}
	return s, nil
}

// pollAndShow polls once and prints partner activity, mirroring the
// poll-after-command cycle of the interactive loop.
func (s *session) pollAndShow(explicit bool) {
	events, err := s.svc.Poll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ui.Warn(fmt.Sprintf("sync poll: %v", err)))
		return
	}
	if len(events) == 0 {
		if explicit {
			fmt.Println(ui.Muted("No partner activity."))
		}
		return
	}
	printPartnerActivity(events)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColorOpt, "no-color", false, "disable color output")

	rootCmd.AddCommand(campaignCmd)
	rootCmd.AddCommand(truthCmd)
	rootCmd.AddCommand(vowCmd)
	rootCmd.AddCommand(interpretCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(backupCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.Error("Error:"), err)
		os.Exit(1)
	}
}
