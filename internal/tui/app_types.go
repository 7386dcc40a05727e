package tui

import (
	"palchi-cli/internal/model"
)

type view int

const (
	viewLogin view = iota
	viewDashboard
	viewEvents
	viewAssociations
	viewReports
)

func viewFor(d model.Destination) view {
	switch d {
	case model.DestEvents:
		return viewEvents
	case model.DestAssociations:
		return viewAssociations
	case model.DestReports:
		return viewReports
	default:
		return viewDashboard
	}
}

func destFor(v view) model.Destination {
	switch v {
	case viewEvents:
		return model.DestEvents
	case viewAssociations:
		return model.DestAssociations
	case viewReports:
		return model.DestReports
	default:
		return model.DestDashboard
	}
}

type pane int

const (
	paneList pane = iota
	paneDetail
)

type modalKind int

const (
	modalNone modalKind = iota
	modalEventForm
	modalAssociationForm
	modalVolunteerForm
	modalAssignment
	modalRemoveAssignment
	modalStatusFilter
	modalProfile
	modalConfirmDelete
	modalHelp
)

type confirmTarget int

const (
	confirmNone confirmTarget = iota
	confirmDeleteEvent
	confirmDeleteAssociation
	confirmDeleteVolunteer
	confirmRemoveAssignment
)

// Messages produced by tea commands. Operations that change server state all
// funnel through opDoneMsg; the toast and list refresh handling is uniform.
type (
	loginDoneMsg struct{ err error }

	primaryLoadedMsg struct{ err error }

	secondaryLoadedMsg struct{}

	eventsReloadedMsg struct{ err error }

	associationsReloadedMsg struct{ err error }

	eventDetailMsg struct {
		event model.Event
		err   error
	}

	opDoneMsg struct {
		note   string       // toast text on success
		detail *model.Event // refreshed detail, when the op re-fetched one
		err    error
	}

	exportDoneMsg struct {
		path string
		err  error
	}

	toastExpireMsg struct{ seq int }

	busyTickMsg struct{}
)
