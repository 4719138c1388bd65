// Package wayland provides typed bindings for the handful of Wayland
// interfaces this tool speaks, layered over the wire transport. Only the
// events and requests the tool uses are decoded; everything else is ignored,
// the way a C listener table full of noops would.
package wayland

import (
	"github.com/wlkit/lswt/internal/wire"
)

// Interface names as advertised by wl_registry.global.
const (
	OutputInterface                 = "wl_output"
	ForeignToplevelManagerInterface = "zwlr_foreign_toplevel_manager_v1"
	ForeignToplevelListInterface    = "ext_foreign_toplevel_list_v1"
)

// Global is one wl_registry.global advertisement.
type Global struct {
	Name      uint32
	Interface string
	Version   uint32
}

// Registry wraps the wl_registry singleton. OnGlobal must be set before the
// first Dispatch; global_remove is ignored because a one-shot snapshot never
// outlives an advertisement.
type Registry struct {
	conn     *wire.Conn
	id       uint32
	OnGlobal func(Global)
}

// GetRegistry issues wl_display.get_registry and installs the event handler.
func GetRegistry(c *wire.Conn) (*Registry, error) {
	r := &Registry{conn: c, id: c.NewID()}
	c.Register(r.id, r.event)
	e := &wire.Encoder{}
	e.PutUint32(r.id)
	if err := c.Send(wire.DisplayID, 1, e); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) event(opcode uint16, d *wire.Decoder) {
	if opcode != 0 { // global
		return
	}
	g := Global{Name: d.Uint32(), Interface: d.String(), Version: d.Uint32()}
	if d.Err() == nil && r.OnGlobal != nil {
		r.OnGlobal(g)
	}
}

// Bind binds a registry global at the given version and returns the new
// object ID. The caller registers the event handler for it.
func (r *Registry) Bind(g Global, version uint32) (uint32, error) {
	id := r.conn.NewID()
	e := &wire.Encoder{}
	e.PutUint32(g.Name)
	e.PutString(g.Interface)
	e.PutUint32(version)
	e.PutUint32(id)
	if err := r.conn.Send(r.id, 0, e); err != nil {
		return 0, err
	}
	return id, nil
}
