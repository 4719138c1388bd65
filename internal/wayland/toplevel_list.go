package wayland

import (
	"github.com/wlkit/lswt/internal/wire"
)

// ListToplevelEvents receives the decoded per-toplevel events of the ext
// list protocol. It carries no state flags and no output membership, but
// does carry a stable identifier.
type ListToplevelEvents interface {
	Title(title string)
	AppID(appID string)
	Identifier(id string)
	Done()
	Closed()
}

// ForeignToplevelList wraps a bound ext_foreign_toplevel_list_v1.
type ForeignToplevelList struct {
	conn       *wire.Conn
	ID         uint32
	OnToplevel func(h *ListToplevelHandle) ListToplevelEvents
}

// BindForeignToplevelList binds the list global.
func BindForeignToplevelList(r *Registry, g Global, version uint32) (*ForeignToplevelList, error) {
	id, err := r.Bind(g, version)
	if err != nil {
		return nil, err
	}
	l := &ForeignToplevelList{conn: r.conn, ID: id}
	r.conn.Register(l.ID, l.event)
	return l, nil
}

func (l *ForeignToplevelList) event(opcode uint16, d *wire.Decoder) {
	if opcode != 0 { // toplevel; finished needs no action in a one-shot run
		return
	}
	h := &ListToplevelHandle{conn: l.conn, ID: d.Uint32()}
	if d.Err() != nil || l.OnToplevel == nil {
		return
	}
	sink := l.OnToplevel(h)
	l.conn.Register(h.ID, func(opcode uint16, d *wire.Decoder) {
		h.event(sink, opcode, d)
	})
}

// Destroy sends the list destructor and forgets the object.
func (l *ForeignToplevelList) Destroy() {
	l.conn.Send(l.ID, 1, nil)
	l.conn.Unregister(l.ID)
}

// ListToplevelHandle wraps one ext_foreign_toplevel_handle_v1.
type ListToplevelHandle struct {
	conn *wire.Conn
	ID   uint32
}

func (h *ListToplevelHandle) event(sink ListToplevelEvents, opcode uint16, d *wire.Decoder) {
	switch opcode {
	case 0: // closed
		sink.Closed()
	case 1: // done
		sink.Done()
	case 2: // title
		if s := d.String(); d.Err() == nil {
			sink.Title(s)
		}
	case 3: // app_id
		if s := d.String(); d.Err() == nil {
			sink.AppID(s)
		}
	case 4: // identifier
		if s := d.String(); d.Err() == nil {
			sink.Identifier(s)
		}
	}
}

// Destroy sends the handle destructor and forgets the object.
func (h *ListToplevelHandle) Destroy() {
	h.conn.Send(h.ID, 0, nil)
	h.conn.Unregister(h.ID)
}
