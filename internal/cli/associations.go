package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"palchi-cli/internal/form"
)

func newAssociationsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "associations",
		Aliases: []string{"assoc"},
		Short:   "Associazioni e volontari",
	}
	cmd.AddCommand(newAssociationsListCmd(app))
	cmd.AddCommand(newAssociationsShowCmd(app))
	cmd.AddCommand(newAssociationsCreateCmd(app))
	cmd.AddCommand(newAssociationsUpdateCmd(app))
	cmd.AddCommand(newAssociationsDeleteCmd(app))
	cmd.AddCommand(newVolunteersCmd(app))
	return cmd
}

func newAssociationsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Elenca le associazioni con i rispettivi volontari",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := newController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := requireSession(cmd, ctrl); err != nil {
				return writeErr(cmd, err)
			}
			if err := ctrl.ReloadAssociations(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": ctrl.Associations()})
		},
	}
}

func newAssociationsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <association-id>",
		Short: "Dettagli di un'associazione",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "associazione")
			if err != nil {
				return writeErr(cmd, err)
			}
			ctrl, _, err := newController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := requireSession(cmd, ctrl); err != nil {
				return writeErr(cmd, err)
			}
			if err := ctrl.ReloadAssociations(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			a, ok := ctrl.AssociationByID(id)
			if !ok {
				return writeErr(cmd, fmt.Errorf("associazione non trovata: %d", id))
			}
			return writeOut(cmd, app, map[string]any{"data": a})
		},
	}
}

func associationFormFlags(cmd *cobra.Command, f *form.AssociationForm) {
	cmd.Flags().StringVar(&f.Name, "name", f.Name, "Nome")
	cmd.Flags().StringVar(&f.ContactPerson, "contact", f.ContactPerson, "Referente")
	cmd.Flags().StringVar(&f.TaxCode, "tax-code", f.TaxCode, "Codice fiscale")
	cmd.Flags().StringVar(&f.IBAN, "iban", f.IBAN, "IBAN")
	cmd.Flags().StringVar(&f.Headquarters, "headquarters", f.Headquarters, "Sede")
}

func newAssociationsCreateCmd(app *App) *cobra.Command {
	f := form.NewAssociationForm()

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Crea un'associazione",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := newController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := requireSession(cmd, ctrl); err != nil {
				return writeErr(cmd, err)
			}
			a, err := ctrl.SaveAssociation(cmd.Context(), f)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": a})
		},
	}

	associationFormFlags(cmd, &f)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newAssociationsUpdateCmd(app *App) *cobra.Command {
	var override form.AssociationForm

	cmd := &cobra.Command{
		Use:   "update <association-id>",
		Short: "Aggiorna un'associazione (i flag non passati restano invariati)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "associazione")
			if err != nil {
				return writeErr(cmd, err)
			}
			ctrl, _, err := newController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := requireSession(cmd, ctrl); err != nil {
				return writeErr(cmd, err)
			}
			if err := ctrl.ReloadAssociations(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			current, ok := ctrl.AssociationByID(id)
			if !ok {
				return writeErr(cmd, fmt.Errorf("associazione non trovata: %d", id))
			}
			f := form.AssociationFormFrom(current)

			set := func(flag string, dst *string, v string) {
				if cmd.Flags().Changed(flag) {
					*dst = v
				}
			}
			set("name", &f.Name, override.Name)
			set("contact", &f.ContactPerson, override.ContactPerson)
			set("tax-code", &f.TaxCode, override.TaxCode)
			set("iban", &f.IBAN, override.IBAN)
			set("headquarters", &f.Headquarters, override.Headquarters)

			a, err := ctrl.SaveAssociation(cmd.Context(), f)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": a})
		},
	}

	associationFormFlags(cmd, &override)
	return cmd
}

func newAssociationsDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <association-id>",
		Short: "Elimina un'associazione",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "associazione")
			if err != nil {
				return writeErr(cmd, err)
			}
			ctrl, _, err := newController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := requireSession(cmd, ctrl); err != nil {
				return writeErr(cmd, err)
			}
			if !confirm(cmd, fmt.Sprintf("Eliminare l'associazione %d?", id), yes) {
				return writeOut(cmd, app, map[string]any{"data": "annullato"})
			}
			if err := ctrl.DeleteAssociation(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "eliminata"})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Non chiedere conferma")
	return cmd
}

func newVolunteersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "volunteers",
		Short: "Volontari di un'associazione",
	}
	cmd.AddCommand(newVolunteersListCmd(app))
	cmd.AddCommand(newVolunteersAddCmd(app))
	cmd.AddCommand(newVolunteersUpdateCmd(app))
	cmd.AddCommand(newVolunteersDeleteCmd(app))
	return cmd
}

func newVolunteersListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <association-id>",
		Short: "Elenca i volontari di un'associazione",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "associazione")
			if err != nil {
				return writeErr(cmd, err)
			}
			ctrl, _, err := newController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := requireSession(cmd, ctrl); err != nil {
				return writeErr(cmd, err)
			}
			vs, err := ctrl.Volunteers(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": vs})
		},
	}
}

func volunteerFormFlags(cmd *cobra.Command, f *form.VolunteerForm) {
	cmd.Flags().StringVar(&f.FirstName, "first-name", f.FirstName, "Nome")
	cmd.Flags().StringVar(&f.LastName, "last-name", f.LastName, "Cognome")
	cmd.Flags().StringVar(&f.DateOfBirth, "born", f.DateOfBirth, "Data di nascita (AAAA-MM-GG)")
	cmd.Flags().BoolVar(&f.IsCertified, "certified", f.IsCertified, "Abilitato al montaggio certificato")
}

func newVolunteersAddCmd(app *App) *cobra.Command {
	var f form.VolunteerForm

	cmd := &cobra.Command{
		Use:   "add <association-id>",
		Short: "Aggiungi un volontario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "associazione")
			if err != nil {
				return writeErr(cmd, err)
			}
			ctrl, _, err := newController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := requireSession(cmd, ctrl); err != nil {
				return writeErr(cmd, err)
			}
			f.AssociationID = id
			v, err := ctrl.SaveVolunteer(cmd.Context(), f)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": v})
		},
	}

	volunteerFormFlags(cmd, &f)
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("last-name")
	return cmd
}

func newVolunteersUpdateCmd(app *App) *cobra.Command {
	var override form.VolunteerForm

	cmd := &cobra.Command{
		Use:   "update <association-id> <volunteer-id>",
		Short: "Aggiorna un volontario (i flag non passati restano invariati)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			assocID, err := parseID(args[0], "associazione")
			if err != nil {
				return writeErr(cmd, err)
			}
			volID, err := parseID(args[1], "volontario")
			if err != nil {
				return writeErr(cmd, err)
			}
			ctrl, _, err := newController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := requireSession(cmd, ctrl); err != nil {
				return writeErr(cmd, err)
			}
			vs, err := ctrl.Volunteers(cmd.Context(), assocID)
			if err != nil {
				return writeErr(cmd, err)
			}
			var f form.VolunteerForm
			found := false
			for _, v := range vs {
				if v.ID == volID {
					f = form.VolunteerFormFrom(v)
					found = true
					break
				}
			}
			if !found {
				return writeErr(cmd, fmt.Errorf("volontario non trovato: %d", volID))
			}

			if cmd.Flags().Changed("first-name") {
				f.FirstName = override.FirstName
			}
			if cmd.Flags().Changed("last-name") {
				f.LastName = override.LastName
			}
			if cmd.Flags().Changed("born") {
				f.DateOfBirth = override.DateOfBirth
			}
			if cmd.Flags().Changed("certified") {
				f.IsCertified = override.IsCertified
			}
			f.AssociationID = assocID

			v, err := ctrl.SaveVolunteer(cmd.Context(), f)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": v})
		},
	}

	volunteerFormFlags(cmd, &override)
	return cmd
}

func newVolunteersDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <association-id> <volunteer-id>",
		Short: "Elimina un volontario",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			assocID, err := parseID(args[0], "associazione")
			if err != nil {
				return writeErr(cmd, err)
			}
			volID, err := parseID(args[1], "volontario")
			if err != nil {
				return writeErr(cmd, err)
			}
			ctrl, _, err := newController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := requireSession(cmd, ctrl); err != nil {
				return writeErr(cmd, err)
			}
			if !confirm(cmd, fmt.Sprintf("Eliminare il volontario %d?", volID), yes) {
				return writeOut(cmd, app, map[string]any{"data": "annullato"})
			}
			if err := ctrl.DeleteVolunteer(cmd.Context(), assocID, volID); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "eliminato"})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Non chiedere conferma")
	return cmd
}
