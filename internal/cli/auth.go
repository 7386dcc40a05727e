package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"palchi-cli/internal/form"
)

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sessione e account",
	}
	cmd.AddCommand(newAuthLoginCmd(app))
	cmd.AddCommand(newAuthLogoutCmd(app))
	cmd.AddCommand(newAuthWhoamiCmd(app))
	cmd.AddCommand(newAuthRegisterCmd(app))
	cmd.AddCommand(newAuthProfileCmd(app))
	return cmd
}

func newAuthLoginCmd(app *App) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Accedi e salva il token di sessione",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := newController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if password == "" {
				password, err = promptLine(cmd, "Password: ")
				if err != nil {
					return writeErr(cmd, err)
				}
			}
			f := form.LoginForm{Username: username, Password: password}
			if err := ctrl.Login(cmd.Context(), f); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": ctrl.User()})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Nome utente")
	cmd.Flags().StringVar(&password, "password", "", "Password (se assente viene richiesta)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newAuthLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Elimina la sessione locale",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := newController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctrl.Logout()
			return writeOut(cmd, app, map[string]any{"data": "disconnesso"})
		},
	}
}

func newAuthWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Mostra l'utente della sessione corrente",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := newController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := requireSession(cmd, ctrl); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": ctrl.User()})
		},
	}
}

func newAuthRegisterCmd(app *App) *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Registra un nuovo account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := newController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if password == "" {
				password, err = promptLine(cmd, "Password: ")
				if err != nil {
					return writeErr(cmd, err)
				}
			}
			f := form.RegisterForm{Username: username, Email: email, Password: password}
			u, err := ctrl.RegisterAccount(cmd.Context(), f)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": u})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Nome utente")
	cmd.Flags().StringVar(&email, "email", "", "Email")
	cmd.Flags().StringVar(&password, "password", "", "Password (se assente viene richiesta)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newAuthProfileCmd(app *App) *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Aggiorna il profilo dell'utente corrente",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := newController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := requireSession(cmd, ctrl); err != nil {
				return writeErr(cmd, err)
			}
			u := ctrl.User()
			f := form.ProfileForm{Username: u.Username, Email: u.Email, Password: password}
			if username != "" {
				f.Username = username
			}
			if email != "" {
				f.Email = email
			}
			updated, err := ctrl.SaveProfile(cmd.Context(), f)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": updated})
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Nuovo nome utente")
	cmd.Flags().StringVar(&email, "email", "", "Nuova email")
	cmd.Flags().StringVar(&password, "password", "", "Nuova password")
	return cmd
}

func promptLine(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	sc := bufio.NewScanner(cmd.InOrStdin())
	if !sc.Scan() {
		return "", sc.Err()
	}
	return strings.TrimSpace(sc.Text()), nil
}
