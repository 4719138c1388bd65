package wayland

import (
	"github.com/wlkit/lswt/internal/wire"
)

// OutputNameSinceVersion is the wl_output version that introduced the name
// event. Older servers cannot label outputs usefully, so binding below this
// is refused.
const OutputNameSinceVersion = 4

// Output wraps one bound wl_output. Geometry, mode, scale and description
// events are ignored; only the name matters here.
type Output struct {
	conn   *wire.Conn
	ID     uint32
	OnName func(string)
}

// BindOutput binds a wl_output global.
func BindOutput(r *Registry, g Global, version uint32) (*Output, error) {
	id, err := r.Bind(g, version)
	if err != nil {
		return nil, err
	}
	o := &Output{conn: r.conn, ID: id}
	r.conn.Register(o.ID, o.event)
	return o, nil
}

func (o *Output) event(opcode uint16, d *wire.Decoder) {
	if opcode != 4 { // name
		return
	}
	name := d.String()
	if d.Err() == nil && o.OnName != nil {
		o.OnName(name)
	}
}

// Release sends wl_output.release and forgets the object.
func (o *Output) Release() {
	o.conn.Send(o.ID, 0, nil)
	o.conn.Unregister(o.ID)
}
