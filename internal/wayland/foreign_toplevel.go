package wayland

import (
	"github.com/wlkit/lswt/internal/wire"
)

// ToplevelState is one entry of the zwlr toplevel state array.
type ToplevelState uint32

const (
	StateMaximized ToplevelState = iota
	StateMinimized
	StateActivated
	StateFullscreen
)

// ToplevelEvents receives the decoded per-toplevel events of the zwlr
// protocol. Events for one toplevel arrive in server-emission order; nothing
// is final until Done.
type ToplevelEvents interface {
	Title(title string)
	AppID(appID string)
	// OutputEnter reports the wl_output object the toplevel became visible
	// on, by object ID.
	OutputEnter(output uint32)
	// State carries the complete current state set, not a delta.
	State(states []ToplevelState)
	Done()
	Closed()
}

// ForeignToplevelManager wraps a bound zwlr_foreign_toplevel_manager_v1.
// OnToplevel is called for every toplevel the server announces and returns
// the sink for that toplevel's events.
type ForeignToplevelManager struct {
	conn       *wire.Conn
	ID         uint32
	OnToplevel func(h *ForeignToplevelHandle) ToplevelEvents
}

// BindForeignToplevelManager binds the manager global. The caller must set
// OnToplevel before the next dispatch; the server starts announcing
// toplevels immediately after the bind.
func BindForeignToplevelManager(r *Registry, g Global, version uint32) (*ForeignToplevelManager, error) {
	id, err := r.Bind(g, version)
	if err != nil {
		return nil, err
	}
	m := &ForeignToplevelManager{conn: r.conn, ID: id}
	r.conn.Register(m.ID, m.event)
	return m, nil
}

func (m *ForeignToplevelManager) event(opcode uint16, d *wire.Decoder) {
	if opcode != 0 { // toplevel; finished needs no action in a one-shot run
		return
	}
	// The handle ID is server-allocated.
	h := &ForeignToplevelHandle{conn: m.conn, ID: d.Uint32()}
	if d.Err() != nil || m.OnToplevel == nil {
		return
	}
	sink := m.OnToplevel(h)
	m.conn.Register(h.ID, func(opcode uint16, d *wire.Decoder) {
		h.event(sink, opcode, d)
	})
}

// Stop asks the server to quit announcing toplevels and forgets the
// manager. The protocol has no destructor request for it.
func (m *ForeignToplevelManager) Stop() {
	m.conn.Send(m.ID, 0, nil)
	m.conn.Unregister(m.ID)
}

// ForeignToplevelHandle wraps one zwlr_foreign_toplevel_handle_v1.
type ForeignToplevelHandle struct {
	conn *wire.Conn
	ID   uint32
}

func (h *ForeignToplevelHandle) event(sink ToplevelEvents, opcode uint16, d *wire.Decoder) {
	switch opcode {
	case 0: // title
		if s := d.String(); d.Err() == nil {
			sink.Title(s)
		}
	case 1: // app_id
		if s := d.String(); d.Err() == nil {
			sink.AppID(s)
		}
	case 2: // output_enter
		if id := d.Uint32(); d.Err() == nil {
			sink.OutputEnter(id)
		}
	case 3: // output_leave, irrelevant for a snapshot
	case 4: // state
		raw := d.Uint32Array()
		states := make([]ToplevelState, len(raw))
		for i, v := range raw {
			states[i] = ToplevelState(v)
		}
		sink.State(states)
	case 5: // done
		sink.Done()
	case 6: // closed
		sink.Closed()
	case 7: // parent, since v3; toplevel nesting is not rendered
	}
}

// Destroy sends the handle destructor and forgets the object.
func (h *ForeignToplevelHandle) Destroy() {
	h.conn.Send(h.ID, 7, nil)
	h.conn.Unregister(h.ID)
}
