package state

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"palchi-cli/internal/model"
	"palchi-cli/internal/store"
)

// LoadPrimary fetches the event and association lists concurrently. On
// success the snapshot cache is refreshed. The reporting payloads load in a
// separate secondary phase (LoadSecondary) so callers can show the lists as
// soon as they land.
func (c *Controller) LoadPrimary(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.ReloadEvents(gctx) })
	g.Go(func() error { return c.ReloadAssociations(gctx) })
	if err := g.Wait(); err != nil {
		return err
	}
	c.saveSnapshot(ctx)
	return nil
}

// LoadSecondary fetches the reporting payloads. Failures degrade: the
// dashboard falls back to locally derived totals, and the error is only
// logged, never surfaced.
func (c *Controller) LoadSecondary(ctx context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := c.api.Reports(gctx, true)
		if err != nil {
			c.log.Warn("reports load failed", zap.Error(err))
			return nil
		}
		c.mu.Lock()
		c.reports = &r
		c.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		p, err := c.api.ProLocoEarnings(gctx)
		if err != nil {
			c.log.Warn("pro loco earnings load failed", zap.Error(err))
			return nil
		}
		c.mu.Lock()
		c.proLoco = &p
		c.mu.Unlock()
		return nil
	})
	_ = g.Wait()
}

// FetchReports fetches the reporting payload synchronously and caches it.
// Unlike LoadSecondary, failures surface to the caller.
func (c *Controller) FetchReports(ctx context.Context, includeDetails bool) (model.Reports, error) {
	r, err := c.api.Reports(ctx, includeDetails)
	if err != nil {
		return model.Reports{}, err
	}
	c.mu.Lock()
	c.reports = &r
	c.mu.Unlock()
	return r, nil
}

// FetchProLocoEarnings fetches the pro loco payload synchronously.
func (c *Controller) FetchProLocoEarnings(ctx context.Context) (model.ProLocoEarnings, error) {
	p, err := c.api.ProLocoEarnings(ctx)
	if err != nil {
		return model.ProLocoEarnings{}, err
	}
	c.mu.Lock()
	c.proLoco = &p
	c.mu.Unlock()
	return p, nil
}

// ReloadEvents replaces the events cache with a fresh fetch scoped by the
// current status filter. If another reload started after this one, the
// response is stale and gets dropped.
func (c *Controller) ReloadEvents(ctx context.Context) error {
	c.mu.Lock()
	c.eventsGen++
	gen := c.eventsGen
	filter := c.statusFilter
	c.mu.Unlock()

	evs, err := c.api.Events(ctx, filter)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.eventsGen {
		c.log.Debug("stale events response dropped", zap.Int("gen", gen))
		return nil
	}
	c.events = evs
	c.fromCache = false
	return nil
}

// ReloadAssociations replaces the associations cache, same discipline as
// ReloadEvents.
func (c *Controller) ReloadAssociations(ctx context.Context) error {
	c.mu.Lock()
	c.associationsGen++
	gen := c.associationsGen
	c.mu.Unlock()

	as, err := c.api.Associations(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.associationsGen {
		c.log.Debug("stale associations response dropped", zap.Int("gen", gen))
		return nil
	}
	c.associations = as
	c.fromCache = false
	return nil
}

// PrimeFromCache loads the persisted snapshot into still-empty caches so the
// TUI has something to draw while the fresh load is in flight. A no-op once
// any real load has landed.
func (c *Controller) PrimeFromCache(ctx context.Context) {
	snap, err := c.store.LoadSnapshot(ctx)
	if err != nil {
		c.log.Debug("snapshot load failed", zap.Error(err))
		return
	}
	if len(snap.Events) == 0 && len(snap.Associations) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.eventsGen > 0 || c.associationsGen > 0 {
		return
	}
	c.events = snap.Events
	c.associations = snap.Associations
	c.fromCache = true
}

// FromCache reports whether the lists are still the startup snapshot rather
// than fresh backend data.
func (c *Controller) FromCache() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fromCache
}

func (c *Controller) saveSnapshot(ctx context.Context) {
	c.mu.Lock()
	snap := &store.Snapshot{
		Events:       c.events,
		Associations: c.associations,
		SavedAt:      time.Now().UTC(),
	}
	c.mu.Unlock()
	if err := c.store.SaveSnapshot(ctx, snap); err != nil {
		c.log.Debug("snapshot save failed", zap.Error(err))
	}
}

// Events returns the cached events list.
func (c *Controller) Events() []model.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Event, len(c.events))
	copy(out, c.events)
	return out
}

// Associations returns the cached associations list.
func (c *Controller) Associations() []model.Association {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Association, len(c.associations))
	copy(out, c.associations)
	return out
}

// Reports returns the last reporting payload, or nil when it never loaded.
func (c *Controller) Reports() *model.Reports {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reports
}

// ProLoco returns the last pro loco earnings payload, or nil.
func (c *Controller) ProLoco() *model.ProLocoEarnings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.proLoco
}

// EventByID finds an event in the cached list.
func (c *Controller) EventByID(id int) (model.Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ev := range c.events {
		if ev.ID == id {
			return ev, true
		}
	}
	return model.Event{}, false
}

// AssociationByID finds an association in the cached list.
func (c *Controller) AssociationByID(id int) (model.Association, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, a := range c.associations {
		if a.ID == id {
			return a, true
		}
	}
	return model.Association{}, false
}
