package snapshot

import (
	"github.com/wlkit/lswt/internal/logger"
)

// Store owns every toplevel and output for the duration of one run. It is
// append-only while events are collected and read-only once the final
// barrier fires; Release must run exactly once on either path.
type Store struct {
	// all holds every allocated toplevel, committed or not, so an aborted
	// run can still close the handles of records whose done event never
	// arrived.
	all       []*Toplevel
	toplevels []*Toplevel
	outputs   []*Output
	byHandle  map[uint32]*Output
	noOutput  *Output
}

func NewStore() *Store {
	return &Store{byHandle: make(map[uint32]*Output)}
}

// RegisterOutput records a server-advertised output under its protocol
// object ID. release is invoked once when the store lets go of the entity.
func (s *Store) RegisterOutput(handle, globalName uint32, release func()) *Output {
	o := &Output{GlobalName: globalName, release: release}
	s.outputs = append(s.outputs, o)
	s.byHandle[handle] = o
	return o
}

// ResolveOutput maps a protocol object ID back to its output entity.
func (s *Store) ResolveOutput(handle uint32) (*Output, bool) {
	o, ok := s.byHandle[handle]
	return o, ok
}

// SetOutputName applies the server's naming event. It may fire at any point
// during collection, or never.
func (s *Store) SetOutputName(o *Output, name string) {
	o.Name = Text{Value: name, Set: true}
}

// NewToplevel allocates an uncommitted toplevel record.
func (s *Store) NewToplevel(release func()) *Toplevel {
	t := &Toplevel{release: release}
	s.all = append(s.all, t)
	return t
}

// Attach records mutual membership between a toplevel and an output.
func (s *Store) Attach(t *Toplevel, o *Output) {
	o.Toplevels = append(o.Toplevels, t)
	t.Outputs = append(t.Outputs, o)
}

// Commit finalizes a toplevel on its done event. The committed flag is the
// sole idempotence guard: a duplicate done event is a silent no-op, so every
// committed toplevel appears in the collection exactly once. A toplevel with
// no output membership lands in the lazily created no-output bucket.
func (s *Store) Commit(t *Toplevel) {
	if t.committed {
		logger.WithComponent("snapshot").Debug().Msg("duplicate done event, ignoring")
		return
	}
	t.committed = true
	s.toplevels = append(s.toplevels, t)

	if len(t.Outputs) == 0 {
		s.Attach(t, s.noOutputBucket())
	}
}

func (s *Store) noOutputBucket() *Output {
	if s.noOutput == nil {
		s.noOutput = &Output{synthetic: true}
	}
	return s.noOutput
}

// Toplevels returns every committed toplevel in commit order.
func (s *Store) Toplevels() []*Toplevel {
	return s.toplevels
}

// Outputs returns the server-advertised outputs in advertisement order.
func (s *Store) Outputs() []*Output {
	return s.outputs
}

// AllOutputs returns the outputs plus the no-output bucket, if it was ever
// materialized, as the final entry.
func (s *Store) AllOutputs() []*Output {
	if s.noOutput == nil {
		return s.outputs
	}
	return append(append([]*Output{}, s.outputs...), s.noOutput)
}

// Release closes the protocol handles behind every entity. Used after
// rendering, or straight away when a fatal condition aborts the run early;
// either way no handle leaks regardless of which phase was reached.
func (s *Store) Release() {
	for _, t := range s.all {
		if t.release != nil {
			t.release()
			t.release = nil
		}
	}
	for _, o := range s.outputs {
		if o.release != nil {
			o.release()
			o.release = nil
		}
	}
}
