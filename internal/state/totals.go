package state

// Totals is the dashboard summary. Counts come from the cached lists; the
// revenue figures come from the reports payload and fall back to zero when
// the secondary load failed or has not landed yet.
type Totals struct {
	TotalEvents       int
	TotalAssociations int
	TotalVolunteers   int

	TotalRevenue        float64
	ProLocoEarnings     float64
	AssociationEarnings float64
	CertificationCosts  float64
	RevenueFromReports  bool
}

// Totals derives the dashboard numbers from whatever is currently loaded.
func (c *Controller) Totals() Totals {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := Totals{
		TotalEvents:       len(c.events),
		TotalAssociations: len(c.associations),
	}
	for _, a := range c.associations {
		t.TotalVolunteers += len(a.Volunteers)
	}
	if c.reports != nil {
		ot := c.reports.OverallTotals
		t.TotalRevenue = ot.TotalRevenue
		t.ProLocoEarnings = ot.TotalProLocoEarnings
		t.AssociationEarnings = ot.TotalAssociationEarnings
		t.CertificationCosts = ot.TotalCertificationCosts
		t.RevenueFromReports = true
		if ot.TotalEvents > t.TotalEvents {
			t.TotalEvents = ot.TotalEvents
		}
	}
	return t
}
