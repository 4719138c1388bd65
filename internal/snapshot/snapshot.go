// Package snapshot holds the aggregation model: the entities accumulated
// from protocol events and the store that owns them until they are rendered
// and released.
package snapshot

// Text is a string attribute that may never arrive. The zero value reads as
// "not set", which is distinct from an empty string the server did send.
type Text struct {
	Value string
	Set   bool
}

// Capabilities records which optional toplevel attributes the negotiated
// protocol can populate. Read-only after negotiation; it gates what the
// renderers print, never the correctness of collection.
type Capabilities struct {
	Identifier bool
	Fullscreen bool
	Activated  bool
	Minimized  bool
	Maximized  bool
}

// Toplevel is one open application window. Attributes buffer in place until
// the protocol's done event commits the record.
type Toplevel struct {
	Title      Text
	AppID      Text
	Identifier Text

	Maximized  bool
	Minimized  bool
	Activated  bool
	Fullscreen bool

	// Outputs the toplevel is visible on. Filled by membership events, or
	// with the no-output bucket at commit time if empty.
	Outputs []*Output

	committed bool
	release   func()
}

// Committed reports whether the terminal done event has been seen.
func (t *Toplevel) Committed() bool {
	return t.committed
}

// Output is one display output, or the synthetic bucket for toplevels not on
// any output.
type Output struct {
	// GlobalName is the registry name the server assigned, the fallback
	// label when no name event ever fires. Zero for the synthetic bucket.
	GlobalName uint32
	Name       Text

	// Toplevels committed with membership on this output.
	Toplevels []*Toplevel

	synthetic bool
	release   func()
}

// Synthetic reports whether this is the no-output bucket rather than a
// server-advertised output.
func (o *Output) Synthetic() bool {
	return o.synthetic
}
