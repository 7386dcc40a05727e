package cli

import (
	"github.com/spf13/cobra"
)

func newReportsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Riepilogo compensi (solo admin e superadmin)",
	}
	cmd.AddCommand(newReportsShowCmd(app))
	cmd.AddCommand(newReportsProLocoCmd(app))
	return cmd
}

func newReportsShowCmd(app *App) *cobra.Command {
	var details bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Riepilogo complessivo dei compensi",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := newController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := requireSession(cmd, ctrl); err != nil {
				return writeErr(cmd, err)
			}
			r, err := ctrl.FetchReports(cmd.Context(), details)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": r})
		},
	}

	cmd.Flags().BoolVar(&details, "details", false, "Includi il dettaglio per evento")
	return cmd
}

func newReportsProLocoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "proloco",
		Short: "Compensi della Pro Loco",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := newController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := requireSession(cmd, ctrl); err != nil {
				return writeErr(cmd, err)
			}
			p, err := ctrl.FetchProLocoEarnings(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}
}
