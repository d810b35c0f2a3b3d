package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/soloforge/internal/ui"
)

var interpretCmd = &cobra.Command{
	Use:   "interpret <oracle> <text>",
	Short: "Hand an oracle interpretation to your partner",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		if err := s.svc.Interpret(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Interpretation sent: %s %q\n", ui.Accent(args[0]), args[1])
		s.pollAndShow(false)
		return nil
	},
}

var interpretAcceptCmd = &cobra.Command{
	Use:   "accept",
	Short: "Acknowledge the pending partner interpretation",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		// The pending slot is in-memory, so poll first to surface the
		// latest partner interpretation.
		s.pollAndShow(false)

		event, err := s.svc.AcceptInterpretation()
		if err != nil {
			return err
		}
		fmt.Printf("Accepted %s's interpretation: %q\n", ui.Accent(event.Player), event.String("text"))
		return nil
	},
}

func init() {
	interpretCmd.AddCommand(interpretAcceptCmd)
}
