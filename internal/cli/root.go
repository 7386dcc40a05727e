// Package cli wires the cobra commands. Every command builds a controller
// against the configured backend; without a subcommand the binary opens the
// interactive TUI.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"palchi-cli/internal/api"
	"palchi-cli/internal/config"
	"palchi-cli/internal/format"
	"palchi-cli/internal/logging"
	"palchi-cli/internal/model"
	"palchi-cli/internal/session"
	"palchi-cli/internal/state"
	"palchi-cli/internal/store"
	"palchi-cli/internal/tui"
)

type App struct {
	BaseURL    string
	Dir        string
	PrettyJSON bool
	Format     string

	log *zap.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "palchi [destinazione]",
		Short:        "Gestione Palchi: CLI + TUI per eventi, associazioni e compensi",
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		Example: strings.TrimSpace(`
  # Apri la TUI interattiva
  palchi

  # Apri la TUI su una sezione
  palchi events

  # Comandi scriptabili
  palchi auth login --username mario
  palchi events list --status "To Be Scheduled"
  palchi reports show --details --pretty
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app, args)
		},
	}

	cmd.PersistentFlags().StringVar(&app.BaseURL, "api", envOr("PALCHI_API_URL", ""), "API base URL (es. http://localhost:8000/api/v1)")
	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("PALCHI_CONFIG_DIR", ""), "Workspace directory (default ~/.palchi)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("PALCHI_FORMAT", "json"), "Output format (json)")

	cmd.AddCommand(newAuthCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newAssociationsCmd(app))
	cmd.AddCommand(newReportsCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App, args []string) error {
	ctrl, st, err := newController(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	if len(args) == 1 {
		d, ok := model.ParseDestination(args[0])
		if !ok {
			return writeErr(cmd, fmt.Errorf("destinazione sconosciuta: %s", args[0]))
		}
		if ts, err := st.LoadTUIState(); err == nil {
			ts.Destination = string(d)
			_ = st.SaveTUIState(ts)
		}
	}
	// Best-effort: a stale or missing session just opens the login screen.
	ctrl.RestoreSession(cmd.Context())
	if ctrl.SignedIn() {
		ctrl.PrimeFromCache(cmd.Context())
	}
	return tui.Run(ctrl, st)
}

// newController assembles the client stack: config, logger, session store,
// HTTP client, and the state controller bound together.
func newController(app *App) (*state.Controller, store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, store.Store{}, err
	}

	dir := app.Dir
	if dir == "" {
		dir = cfg.Dir
	}
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return nil, store.Store{}, err
		}
		dir = d
	}
	st := store.Store{Dir: dir}

	base := cfg.BaseURL
	if app.BaseURL != "" {
		base = strings.TrimRight(strings.TrimSpace(app.BaseURL), "/")
	} else if os.Getenv("PALCHI_API_URL") == "" {
		// Flag and env unset: the workspace config may pin a backend.
		if gc, err := st.LoadConfig(); err == nil && gc.APIBaseURL != "" {
			base = strings.TrimRight(strings.TrimSpace(gc.APIBaseURL), "/")
		}
	}

	log, err := logging.New(dir, cfg.Debug)
	if err != nil {
		return nil, store.Store{}, err
	}
	app.log = log

	sess := session.Store{Dir: dir}
	ctrl := state.New(sess, st, log)
	client := api.New(base,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithSessionStore(&sess),
		api.WithLogger(log),
		api.WithBusyFunc(ctrl.AddBusy),
		api.WithAuthExpiredFunc(ctrl.HandleAuthExpired),
	)
	ctrl.SetAPI(client)
	return ctrl, st, nil
}

// requireSession restores the persisted session for a scriptable command.
func requireSession(cmd *cobra.Command, ctrl *state.Controller) error {
	if ctrl.RestoreSession(cmd.Context()) {
		return nil
	}
	return errors.New("sessione non attiva: esegui `palchi auth login`")
}

// confirm asks on stdin before a destructive operation. --yes skips the
// prompt; anything but an explicit yes declines.
func confirm(cmd *cobra.Command, prompt string, yes bool) bool {
	if yes {
		return true
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s [s/N]: ", prompt)
	sc := bufio.NewScanner(cmd.InOrStdin())
	if !sc.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(sc.Text())) {
	case "s", "si", "sì", "y", "yes":
		return true
	}
	return false
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
