package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"palchi-cli/internal/form"
	"palchi-cli/internal/model"
)

func newEventsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Eventi e assegnazioni",
	}
	cmd.AddCommand(newEventsListCmd(app))
	cmd.AddCommand(newEventsShowCmd(app))
	cmd.AddCommand(newEventsCreateCmd(app))
	cmd.AddCommand(newEventsUpdateCmd(app))
	cmd.AddCommand(newEventsDeleteCmd(app))
	cmd.AddCommand(newEventsExportCmd(app))
	cmd.AddCommand(newEventsAssignCmd(app))
	cmd.AddCommand(newEventsUnassignCmd(app))
	return cmd
}

func parseID(arg, kind string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id %s non valido: %s", kind, arg)
	}
	return id, nil
}

func statusFlag(cmd *cobra.Command, value string) (*model.EventStatus, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	s, ok := model.ParseEventStatus(value)
	if !ok {
		return nil, fmt.Errorf("stato sconosciuto: %s", value)
	}
	return &s, nil
}

func newEventsListCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Elenca gli eventi",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := newController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := requireSession(cmd, ctrl); err != nil {
				return writeErr(cmd, err)
			}
			st, err := statusFlag(cmd, status)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctrl.SetStatusFilter(st)
			if err := ctrl.ReloadEvents(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": ctrl.Events()})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", `Filtra per stato (es. "To Be Scheduled")`)
	return cmd
}

func newEventsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <event-id>",
		Short: "Dettagli di un evento con le assegnazioni",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "evento")
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
			ev, err := ctrl.EventDetail(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": ev})
		},
	}
}

// eventFormFlags binds the event form fields to cobra flags so create and
// update share one definition.
func eventFormFlags(cmd *cobra.Command, f *form.EventForm) {
	cmd.Flags().StringVar(&f.Title, "title", f.Title, "Titolo")
	cmd.Flags().StringVar(&f.StartDatetime, "start", f.StartDatetime, "Inizio (AAAA-MM-GG HH:MM)")
	cmd.Flags().StringVar(&f.EndDatetime, "end", f.EndDatetime, "Fine (AAAA-MM-GG HH:MM)")
	cmd.Flags().StringVar(&f.Location, "location", f.Location, "Luogo")
	cmd.Flags().StringVar(&f.StageSize, "stage-size", f.StageSize, "Dimensione del palco in m²")
	cmd.Flags().StringVar(&f.Requester, "requester", f.Requester, "Richiedente")
	cmd.Flags().StringVar(&f.RequestReceivedDate, "received", f.RequestReceivedDate, "Data di ricezione (AAAA-MM-GG)")
	cmd.Flags().StringVar(&f.AssemblyDatetime, "assembly", f.AssemblyDatetime, "Montaggio (facoltativo)")
	cmd.Flags().StringVar(&f.DisassemblyDatetime, "disassembly", f.DisassemblyDatetime, "Smontaggio (facoltativo)")
}

func newEventsCreateCmd(app *App) *cobra.Command {
	f := form.NewEventForm()
	var status string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Crea un evento",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := newController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := requireSession(cmd, ctrl); err != nil {
				return writeErr(cmd, err)
			}
			if st, err := statusFlag(cmd, status); err != nil {
				return writeErr(cmd, err)
			} else if st != nil {
				f.Status = *st
			}
			ev, err := ctrl.SaveEvent(cmd.Context(), f)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": ev})
		},
	}

	eventFormFlags(cmd, &f)
	cmd.Flags().StringVar(&status, "status", "", "Stato iniziale")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("location")
	_ = cmd.MarkFlagRequired("stage-size")
	_ = cmd.MarkFlagRequired("requester")
	return cmd
}

func newEventsUpdateCmd(app *App) *cobra.Command {
	var override form.EventForm
	var status string

	cmd := &cobra.Command{
		Use:   "update <event-id>",
		Short: "Aggiorna un evento (i flag non passati restano invariati)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "evento")
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

			current, err := ctrl.EventDetail(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			f := form.EventFormFrom(current)

			set := func(flag string, dst *string, v string) {
				if cmd.Flags().Changed(flag) {
					*dst = v
				}
			}
			set("title", &f.Title, override.Title)
			set("start", &f.StartDatetime, override.StartDatetime)
			set("end", &f.EndDatetime, override.EndDatetime)
			set("location", &f.Location, override.Location)
			set("stage-size", &f.StageSize, override.StageSize)
			set("requester", &f.Requester, override.Requester)
			set("received", &f.RequestReceivedDate, override.RequestReceivedDate)
			set("assembly", &f.AssemblyDatetime, override.AssemblyDatetime)
			set("disassembly", &f.DisassemblyDatetime, override.DisassemblyDatetime)
			if cmd.Flags().Changed("status") {
				st, err := statusFlag(cmd, status)
				if err != nil {
					return writeErr(cmd, err)
				}
				if st != nil {
					f.Status = *st
				}
			}

			ev, err := ctrl.SaveEvent(cmd.Context(), f)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": ev})
		},
	}

	eventFormFlags(cmd, &override)
	cmd.Flags().StringVar(&status, "status", "", "Nuovo stato")
	return cmd
}

func newEventsDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <event-id>",
		Short: "Elimina un evento",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "evento")
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
			if !confirm(cmd, fmt.Sprintf("Eliminare l'evento %d?", id), yes) {
				return writeOut(cmd, app, map[string]any{"data": "annullato"})
			}
			if err := ctrl.DeleteEvent(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "eliminato"})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Non chiedere conferma")
	return cmd
}

func newEventsExportCmd(app *App) *cobra.Command {
	var status, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Esporta gli eventi in CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := newController(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := requireSession(cmd, ctrl); err != nil {
				return writeErr(cmd, err)
			}
			st, err := statusFlag(cmd, status)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctrl.SetStatusFilter(st)
			path, err := ctrl.ExportEvents(cmd.Context(), out)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{"path": path}})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filtra per stato")
	cmd.Flags().StringVar(&out, "out", "", "File o directory di destinazione")
	return cmd
}

func newEventsAssignCmd(app *App) *cobra.Command {
	var associationID, count int
	var volunteers []int

	cmd := &cobra.Command{
		Use:   "assign <event-id>",
		Short: "Assegna un'associazione a un evento",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "evento")
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
			f := form.AssignmentForm{
				EventID:        id,
				AssociationID:  associationID,
				VolunteerCount: strconv.Itoa(count),
				VolunteerIDs:   volunteers,
			}
			ev, err := ctrl.Assign(cmd.Context(), f)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": ev})
		},
	}

	cmd.Flags().IntVar(&associationID, "association", 0, "Id dell'associazione")
	cmd.Flags().IntVar(&count, "count", 1, "Numero di volontari")
	cmd.Flags().IntSliceVar(&volunteers, "volunteers", nil, "Id dei volontari (facoltativo)")
	_ = cmd.MarkFlagRequired("association")
	return cmd
}

func newEventsUnassignCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "unassign <event-id> <association-id>",
		Short: "Rimuovi un'associazione da un evento",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := parseID(args[0], "evento")
			if err != nil {
				return writeErr(cmd, err)
			}
			assocID, err := parseID(args[1], "associazione")
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
			if !confirm(cmd, fmt.Sprintf("Rimuovere l'associazione %d dall'evento %d?", assocID, eventID), yes) {
				return writeOut(cmd, app, map[string]any{"data": "annullato"})
			}
			ev, err := ctrl.RemoveAssignment(cmd.Context(), eventID, assocID)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": ev})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Non chiedere conferma")
	return cmd
}
