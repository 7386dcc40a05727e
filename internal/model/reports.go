package model

// Reports is the aggregate payload from GET /reports/. OverallTotals is the
// authoritative revenue source for the dashboard.
type Reports struct {
	AssociationEarnings []AssociationEarnings `json:"association_earnings"`
	ProLocoEarnings     ProLocoEarnings       `json:"pro_loco_earnings"`
	OverallTotals       OverallTotals         `json:"overall_totals"`
	EventsWithEarnings  []EventEarningsDetail `json:"events_with_earnings,omitempty"`
}

type AssociationEarnings struct {
	AssociationID   int     `json:"association_id"`
	AssociationName string  `json:"association_name"`
	TotalEarnings   float64 `json:"total_earnings"`
	EventsCount     int     `json:"events_count"`
}

type ProLocoEarnings struct {
	TotalEarnings float64 `json:"total_earnings"`
	EventsCount   int     `json:"events_count"`
}

type OverallTotals struct {
	TotalEvents              int     `json:"total_events"`
	TotalRevenue             float64 `json:"total_revenue"`
	TotalProLocoEarnings     float64 `json:"total_pro_loco_earnings"`
	TotalAssociationEarnings float64 `json:"total_association_earnings"`
	TotalCertificationCosts  float64 `json:"total_certification_costs"`
}

type EventEarningsDetail struct {
	EventID           int     `json:"event_id"`
	EventTitle        string  `json:"event_title"`
	TotalCost         float64 `json:"total_cost"`
	ProLocoShare      float64 `json:"pro_loco_share"`
	CertificationCost float64 `json:"certification_cost"`
}
