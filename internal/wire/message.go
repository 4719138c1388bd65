package wire

import (
	"encoding/binary"
	"errors"
)

// Wayland messages are sequences of 32-bit words in host byte order. Every
// supported platform is little-endian, so the codec is fixed to that.
var order = binary.LittleEndian

// headerSize is the fixed message header: object ID, then a word holding the
// total message size in its upper 16 bits and the opcode in its lower 16.
const headerSize = 8

var errShortMessage = errors.New("wire: argument past end of message")

// Encoder builds the argument block of one outgoing message.
type Encoder struct {
	b []byte
}

func (e *Encoder) PutUint32(v uint32) {
	e.b = order.AppendUint32(e.b, v)
}

func (e *Encoder) PutInt32(v int32) {
	e.PutUint32(uint32(v))
}

// PutString writes a string argument: 32-bit length including the NUL
// terminator, the bytes, and zero padding up to a word boundary.
func (e *Encoder) PutString(s string) {
	e.PutUint32(uint32(len(s) + 1))
	e.b = append(e.b, s...)
	e.b = append(e.b, 0)
	for len(e.b)%4 != 0 {
		e.b = append(e.b, 0)
	}
}

// message prepends the header for the finished argument block.
func (e *Encoder) message(object uint32, opcode uint16) []byte {
	size := headerSize + len(e.b)
	msg := make([]byte, 0, size)
	msg = order.AppendUint32(msg, object)
	msg = order.AppendUint32(msg, uint32(size)<<16|uint32(opcode))
	return append(msg, e.b...)
}

// Decoder reads the argument block of one incoming message. A short or
// malformed block poisons the decoder instead of panicking; the first error
// sticks and subsequent reads return zero values.
type Decoder struct {
	b   []byte
	err error
}

// NewDecoder wraps a raw argument block. Exported so protocol bindings can
// be exercised with synthetic payloads.
func NewDecoder(b []byte) *Decoder {
	return &Decoder{b: b}
}

func (d *Decoder) Err() error {
	return d.err
}

func (d *Decoder) Uint32() uint32 {
	if d.err != nil {
		return 0
	}
	if len(d.b) < 4 {
		d.err = errShortMessage
		return 0
	}
	v := order.Uint32(d.b)
	d.b = d.b[4:]
	return v
}

func (d *Decoder) Int32() int32 {
	return int32(d.Uint32())
}

// String reads a string argument. A zero length marks a protocol-level null
// string, returned as "".
func (d *Decoder) String() string {
	n := d.Uint32()
	if d.err != nil || n == 0 {
		return ""
	}
	padded := (int(n) + 3) &^ 3
	if len(d.b) < padded {
		d.err = errShortMessage
		return ""
	}
	s := string(d.b[:n-1]) // strip NUL
	d.b = d.b[padded:]
	return s
}

// Array reads an array argument as raw bytes.
func (d *Decoder) Array() []byte {
	n := d.Uint32()
	if d.err != nil {
		return nil
	}
	padded := (int(n) + 3) &^ 3
	if len(d.b) < padded {
		d.err = errShortMessage
		return nil
	}
	a := d.b[:n]
	d.b = d.b[padded:]
	return a
}

// Uint32Array reads an array argument and reinterprets it as 32-bit words,
// the layout wl_array uses for state enums.
func (d *Decoder) Uint32Array() []uint32 {
	raw := d.Array()
	out := make([]uint32, 0, len(raw)/4)
	for len(raw) >= 4 {
		out = append(out, order.Uint32(raw))
		raw = raw[4:]
	}
	return out
}
