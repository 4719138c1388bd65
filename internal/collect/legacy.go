package collect

import (
	"github.com/rs/zerolog"

	"github.com/wlkit/lswt/internal/logger"
	"github.com/wlkit/lswt/internal/snapshot"
	"github.com/wlkit/lswt/internal/wayland"
)

// legacyAdapter translates zwlr_foreign_toplevel_manager_v1 events into
// store mutations. It holds no per-toplevel state of its own; everything
// buffers in the store's records until the done event commits them.
type legacyAdapter struct {
	store *snapshot.Store
	log   *zerolog.Logger
}

func newLegacyAdapter(store *snapshot.Store) *legacyAdapter {
	return &legacyAdapter{store: store, log: logger.WithComponent("legacy-adapter")}
}

// NewToplevel allocates the record for a freshly announced toplevel and
// returns the event sink for it.
func (a *legacyAdapter) NewToplevel(release func()) wayland.ToplevelEvents {
	return &legacyToplevel{a: a, t: a.store.NewToplevel(release)}
}

type legacyToplevel struct {
	a *legacyAdapter
	t *snapshot.Toplevel
}

func (lt *legacyToplevel) Title(title string) {
	lt.t.Title = snapshot.Text{Value: title, Set: true}
}

func (lt *legacyToplevel) AppID(appID string) {
	lt.t.AppID = snapshot.Text{Value: appID, Set: true}
}

func (lt *legacyToplevel) OutputEnter(output uint32) {
	o, ok := lt.a.store.ResolveOutput(output)
	if !ok {
		// A toplevel referencing an output that was never advertised is a
		// protocol anomaly. Drop the membership, keep the toplevel.
		lt.a.log.Warn().
			Uint32("output", output).
			Msg("toplevel reports membership on unadvertised output, dropping")
		return
	}
	lt.a.store.Attach(lt.t, o)
}

// State replaces all four flags from the complete set the server sent.
// The event carries the full current state, never a delta, so merging
// incrementally would be wrong.
func (lt *legacyToplevel) State(states []wayland.ToplevelState) {
	lt.t.Maximized = false
	lt.t.Minimized = false
	lt.t.Activated = false
	lt.t.Fullscreen = false
	for _, s := range states {
		switch s {
		case wayland.StateMaximized:
			lt.t.Maximized = true
		case wayland.StateMinimized:
			lt.t.Minimized = true
		case wayland.StateActivated:
			lt.t.Activated = true
		case wayland.StateFullscreen:
			lt.t.Fullscreen = true
		}
	}
}

func (lt *legacyToplevel) Done() {
	lt.a.store.Commit(lt.t)
}

func (lt *legacyToplevel) Closed() {
	// The snapshot keeps records for windows closed mid-query; the handle
	// is destroyed with everything else at teardown.
}
