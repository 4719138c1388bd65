// Package collect drives one query cycle against the compositor: registry
// enumeration, protocol negotiation, event collection, and the two-barrier
// handshake that makes the final snapshot race-free.
package collect

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/wlkit/lswt/internal/logger"
	"github.com/wlkit/lswt/internal/snapshot"
	"github.com/wlkit/lswt/internal/wayland"
	"github.com/wlkit/lswt/internal/wire"
)

// Phase is the linear state of a run. There is no branching back; a fatal
// condition in any phase sends the run straight to teardown.
type Phase int

const (
	PhaseEnumerating Phase = iota
	PhaseNegotiated
	PhaseCollecting
	PhaseFinalized
)

// Result is what negotiation settled on, needed by the render path.
type Result struct {
	Protocol Protocol
	Caps     snapshot.Capabilities
}

// Session is the run context threaded through one query cycle. No globals:
// every piece of state a callback touches lives here.
type Session struct {
	conn     *wire.Conn
	store    *snapshot.Store
	registry *wayland.Registry

	phase Phase
	// Globals buffered during enumeration. Binding is deferred to the first
	// barrier because binding a toplevel protocol before all outputs are
	// bound makes the server silently omit output_enter events.
	legacy *wayland.Global
	modern *wayland.Global

	protocol Protocol
	caps     snapshot.Capabilities
	// teardown releases the bound manager or list object once the snapshot
	// is frozen. Toplevel handles are released separately by the store.
	teardown func()
	fatal    error
	log      *zerolog.Logger
}

// Run performs one full query cycle and returns once the store is frozen.
// On error the store may hold partially collected entities; the caller
// releases it either way.
func Run(conn *wire.Conn, store *snapshot.Store) (*Result, error) {
	s := &Session{
		conn:  conn,
		store: store,
		log:   logger.WithComponent("collect"),
	}

	registry, err := wayland.GetRegistry(conn)
	if err != nil {
		return nil, err
	}
	s.registry = registry
	registry.OnGlobal = s.global

	if err := conn.Sync(s.firstBarrier); err != nil {
		return nil, err
	}

	for s.phase != PhaseFinalized && s.fatal == nil {
		if err := conn.Dispatch(); err != nil {
			return nil, err
		}
	}
	if s.fatal != nil {
		return nil, s.fatal
	}
	if s.teardown != nil {
		s.teardown()
	}

	s.log.Debug().
		Stringer("protocol", s.protocol).
		Int("toplevels", len(store.Toplevels())).
		Int("outputs", len(store.Outputs())).
		Msg("snapshot finalized")
	return &Result{Protocol: s.protocol, Caps: s.caps}, nil
}

// global handles one registry advertisement during enumeration. Outputs are
// bound immediately; the listing protocols are only recorded until the
// first barrier confirms enumeration is complete.
func (s *Session) global(g wayland.Global) {
	switch g.Interface {
	case wayland.OutputInterface:
		if g.Version < wayland.OutputNameSinceVersion {
			s.fatal = fmt.Errorf("compositor advertises wl_output version %d, need %d or newer", g.Version, wayland.OutputNameSinceVersion)
			return
		}
		out, err := wayland.BindOutput(s.registry, g, wayland.OutputNameSinceVersion)
		if err != nil {
			s.fatal = err
			return
		}
		rec := s.store.RegisterOutput(out.ID, g.Name, out.Release)
		out.OnName = func(name string) {
			s.store.SetOutputName(rec, name)
		}
	case wayland.ForeignToplevelManagerInterface:
		g := g
		s.legacy = &g
	case wayland.ForeignToplevelListInterface:
		g := g
		s.modern = &g
	}
}

// firstBarrier fires when the registry has finished advertising globals and
// every output is bound. Now the one irreversible negotiation decision is
// made, the chosen protocol is bound, and the second barrier is requested.
func (s *Session) firstBarrier() {
	s.phase = PhaseNegotiated

	protocol, err := chooseProtocol(s.legacy, s.modern)
	if err != nil {
		s.fatal = err
		return
	}

	switch protocol {
	case ProtocolLegacy:
		err = s.bindLegacy()
	case ProtocolModern:
		err = s.bindModern()
	}
	if err != nil {
		s.fatal = err
		return
	}

	s.protocol = protocol
	s.phase = PhaseCollecting
	if err := s.conn.Sync(s.secondBarrier); err != nil {
		s.fatal = err
	}
}

// secondBarrier fires when the server has delivered every event for the
// objects that existed at bind time. The store is now a frozen snapshot;
// anything the compositor does afterwards is out of scope.
func (s *Session) secondBarrier() {
	s.phase = PhaseFinalized
}

func (s *Session) bindLegacy() error {
	manager, err := wayland.BindForeignToplevelManager(s.registry, *s.legacy, LegacyMinVersion)
	if err != nil {
		return err
	}
	adapter := newLegacyAdapter(s.store)
	manager.OnToplevel = func(h *wayland.ForeignToplevelHandle) wayland.ToplevelEvents {
		return adapter.NewToplevel(h.Destroy)
	}
	s.teardown = manager.Stop
	s.caps = legacyCapabilities()
	return nil
}

func (s *Session) bindModern() error {
	list, err := wayland.BindForeignToplevelList(s.registry, *s.modern, ModernMinVersion)
	if err != nil {
		return err
	}
	adapter := newModernAdapter(s.store)
	list.OnToplevel = func(h *wayland.ListToplevelHandle) wayland.ListToplevelEvents {
		return adapter.NewToplevel(h.Destroy)
	}
	s.teardown = list.Destroy
	s.caps = modernCapabilities()
	return nil
}
