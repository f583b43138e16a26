package session

import (
	"go.uber.org/zap"

	"github.com/tessro/gifly/internal/core"
)

// Dispatch routes one surface event to the matching controller callback and
// returns the resulting display.
//
// Events tagged with a binding other than the current track's belong to a
// track that has since been replaced, and are dropped. So is an ended event
// that arrives after the surface was started again.
func (c *Controller) Dispatch(ev core.SurfaceEvent) (core.Display, error) {
	if ev.Binding != c.binding {
		c.log.Debug("stale surface event dropped",
			zap.Stringer("type", ev.Type),
			zap.Uint64("binding", ev.Binding),
			zap.Uint64("current", c.binding))
		return c.Display(), nil
	}

	switch ev.Type {
	case core.EventTimeUpdate:
		return c.OnTimeUpdate(ev.Elapsed, ev.Total), nil
	case core.EventMetadataLoaded:
		return c.OnMetadataLoaded(ev.Total), nil
	case core.EventEnded:
		if !c.surface.Paused() {
			c.log.Debug("ended event for a restarted track dropped")
			return c.Display(), nil
		}
		err := c.OnPlaybackEnded()
		return c.Display(), err
	default:
		c.log.Warn("unknown surface event", zap.Stringer("type", ev.Type))
		return c.Display(), nil
	}
}

// Events returns the surface event channel. Feed every event back through
// Dispatch on the controller's event loop.
func (c *Controller) Events() <-chan core.SurfaceEvent {
	return c.surface.Events()
}
