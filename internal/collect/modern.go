package collect

import (
	"github.com/rs/zerolog"

	"github.com/wlkit/lswt/internal/logger"
	"github.com/wlkit/lswt/internal/snapshot"
	"github.com/wlkit/lswt/internal/wayland"
)

// modernAdapter translates ext_foreign_toplevel_list_v1 events into store
// mutations. The protocol has no output membership, so every committed
// toplevel lands in the no-output bucket.
type modernAdapter struct {
	store *snapshot.Store
	log   *zerolog.Logger
}

func newModernAdapter(store *snapshot.Store) *modernAdapter {
	return &modernAdapter{store: store, log: logger.WithComponent("modern-adapter")}
}

// NewToplevel allocates the record for a freshly announced toplevel and
// returns the event sink for it.
func (a *modernAdapter) NewToplevel(release func()) wayland.ListToplevelEvents {
	return &modernToplevel{a: a, t: a.store.NewToplevel(release)}
}

type modernToplevel struct {
	a *modernAdapter
	t *snapshot.Toplevel
}

func (mt *modernToplevel) Title(title string) {
	mt.t.Title = snapshot.Text{Value: title, Set: true}
}

func (mt *modernToplevel) AppID(appID string) {
	mt.t.AppID = snapshot.Text{Value: appID, Set: true}
}

// Identifier is set-once by protocol contract. A compositor re-setting it
// is a violation; tolerated with a warning, and the new value wins.
func (mt *modernToplevel) Identifier(id string) {
	if mt.t.Identifier.Set && mt.t.Identifier.Value != id {
		mt.a.log.Warn().
			Str("old", mt.t.Identifier.Value).
			Str("new", id).
			Msg("compositor changed a toplevel identifier, which the protocol forbids")
	}
	mt.t.Identifier = snapshot.Text{Value: id, Set: true}
}

func (mt *modernToplevel) Done() {
	mt.a.store.Commit(mt.t)
}

func (mt *modernToplevel) Closed() {}
