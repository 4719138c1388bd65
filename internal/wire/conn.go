package wire

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/wlkit/lswt/internal/logger"
)

// DisplayID is the implicit wl_display singleton every connection starts with.
const DisplayID = 1

// Client-allocated object IDs live in [2, 0xfeffffff]; the server allocates
// from 0xff000000 upward for IDs it creates in events.
const maxClientID = 0xfeffffff

// ErrNoRuntimeDir is returned when a relative display name cannot be
// resolved because XDG_RUNTIME_DIR is unset.
var ErrNoRuntimeDir = errors.New("wire: XDG_RUNTIME_DIR is not set")

// EventHandler receives every event the server emits for one object. The
// decoder holds the argument block; opcode numbering is per interface.
type EventHandler func(opcode uint16, d *Decoder)

// Conn is a Wayland client connection. It owns the socket, the client-side
// object table, and the read buffer. All methods must be called from one
// goroutine; the protocol layer above is single-threaded by design.
type Conn struct {
	sock    *net.UnixConn
	pending []byte
	scratch [4096]byte
	oob     [256]byte
	nextID  uint32
	objects map[uint32]EventHandler
	err     error
}

// Connect dials the compositor socket for the given display name. Absolute
// names are used as socket paths directly; relative names are resolved
// against XDG_RUNTIME_DIR. The display name is never defaulted here — the
// caller decides whether a missing WAYLAND_DISPLAY is an error.
func Connect(display string) (*Conn, error) {
	path := display
	if !filepath.IsAbs(path) {
		runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
		if runtimeDir == "" {
			return nil, ErrNoRuntimeDir
		}
		path = filepath.Join(runtimeDir, display)
	}

	sock, err := net.DialUnix("unix", nil, &net.UnixAddr{Name: path, Net: "unix"})
	if err != nil {
		return nil, fmt.Errorf("wire: connect %s: %w", path, err)
	}

	c := &Conn{
		sock:    sock,
		nextID:  DisplayID + 1,
		objects: make(map[uint32]EventHandler),
	}
	c.objects[DisplayID] = c.displayEvent
	return c, nil
}

// Close tears down the socket. Object handlers are dropped; no destructor
// requests are sent.
func (c *Conn) Close() error {
	c.objects = nil
	return c.sock.Close()
}

// NewID allocates a fresh client-side object ID with no handler attached.
func (c *Conn) NewID() uint32 {
	id := c.nextID
	if id > maxClientID {
		panic("wire: client object IDs exhausted")
	}
	c.nextID++
	return id
}

// Register installs the event handler for an object, client- or
// server-allocated.
func (c *Conn) Register(id uint32, h EventHandler) {
	c.objects[id] = h
}

// Unregister drops an object from the table. Later events for the ID are
// logged and skipped, which covers events already in flight at destroy time.
func (c *Conn) Unregister(id uint32) {
	delete(c.objects, id)
}

// Send encodes and writes one request. The encoder may be nil for requests
// without arguments.
func (c *Conn) Send(object uint32, opcode uint16, e *Encoder) error {
	if c.err != nil {
		return c.err
	}
	if e == nil {
		e = &Encoder{}
	}
	if _, err := c.sock.Write(e.message(object, opcode)); err != nil {
		c.err = fmt.Errorf("wire: write: %w", err)
		return c.err
	}
	return nil
}

// Sync issues a wl_display.sync barrier. fn runs when the server has
// processed everything sent before the barrier.
func (c *Conn) Sync(fn func()) error {
	id := c.NewID()
	c.Register(id, func(opcode uint16, d *Decoder) {
		if opcode != 0 { // wl_callback has only done
			return
		}
		c.Unregister(id)
		fn()
	})
	e := &Encoder{}
	e.PutUint32(id)
	return c.Send(DisplayID, 0, e) // wl_display.sync
}

// Dispatch blocks until one event arrives and delivers it. This is the only
// suspension point in the program; everything between two Dispatch calls
// runs to completion.
func (c *Conn) Dispatch() error {
	if c.err != nil {
		return c.err
	}

	if err := c.need(headerSize); err != nil {
		return err
	}
	object := order.Uint32(c.pending)
	sizeOp := order.Uint32(c.pending[4:])
	size := int(sizeOp >> 16)
	opcode := uint16(sizeOp & 0xffff)
	if size < headerSize {
		c.err = fmt.Errorf("wire: malformed message header (size %d)", size)
		return c.err
	}
	if err := c.need(size); err != nil {
		return err
	}

	args := c.pending[headerSize:size]
	c.pending = c.pending[size:]

	h, ok := c.objects[object]
	if !ok {
		logger.WithComponent("wire").Debug().
			Uint32("object", object).
			Uint16("opcode", opcode).
			Msg("event for unknown object, skipping")
		return c.err
	}
	h(opcode, NewDecoder(args))
	return c.err
}

// need fills the read buffer until n bytes are available.
func (c *Conn) need(n int) error {
	for len(c.pending) < n {
		bn, oobn, _, _, err := c.sock.ReadMsgUnix(c.scratch[:], c.oob[:])
		if err != nil {
			c.err = fmt.Errorf("wire: read: %w", err)
			return c.err
		}
		if oobn > 0 {
			c.closeAncillaryFds(c.oob[:oobn])
		}
		c.pending = append(c.pending, c.scratch[:bn]...)
	}
	return nil
}

// closeAncillaryFds drains SCM_RIGHTS control messages. None of the bound
// interfaces deliver file descriptors, but a file descriptor the kernel
// handed us must not leak even so.
func (c *Conn) closeAncillaryFds(oob []byte) {
	msgs, err := unix.ParseSocketControlMessage(oob)
	if err != nil {
		return
	}
	for _, m := range msgs {
		fds, err := unix.ParseUnixRights(&m)
		if err != nil {
			continue
		}
		for _, fd := range fds {
			unix.Close(fd)
		}
	}
}

// displayEvent handles the wl_display events: fatal protocol errors and
// server-side object ID retirement.
func (c *Conn) displayEvent(opcode uint16, d *Decoder) {
	switch opcode {
	case 0: // error
		object := d.Uint32()
		code := d.Uint32()
		message := d.String()
		c.err = fmt.Errorf("wire: protocol error on object %d (code %d): %s", object, code, message)
	case 1: // delete_id
		c.Unregister(d.Uint32())
	}
}
