package collect

import (
	"errors"

	"github.com/wlkit/lswt/internal/snapshot"
	"github.com/wlkit/lswt/internal/wayland"
)

// Version floors for the two listing protocols. They are deliberately
// independent constants: the floors come from different protocol revisions
// and must not be assumed interchangeable.
const (
	// LegacyMinVersion is the zwlr_foreign_toplevel_manager_v1 floor. The
	// two-barrier handshake was written against revision 3.
	LegacyMinVersion = 3
	// ModernMinVersion is the ext_foreign_toplevel_list_v1 floor.
	ModernMinVersion = 1
)

// ErrUnsupported means the server advertises neither listing protocol at a
// usable version.
var ErrUnsupported = errors.New("compositor supports neither zwlr-foreign-toplevel-management-v1 nor ext-foreign-toplevel-list-v1 at a usable version")

// Protocol identifies the listing protocol a run negotiated.
type Protocol int

const (
	ProtocolNone Protocol = iota
	// ProtocolLegacy is zwlr_foreign_toplevel_manager_v1: state flags and
	// output membership, but no stable identifier.
	ProtocolLegacy
	// ProtocolModern is ext_foreign_toplevel_list_v1: stable identifier,
	// but no state flags and no output membership.
	ProtocolModern
)

func (p Protocol) String() string {
	switch p {
	case ProtocolLegacy:
		return "zwlr-foreign-toplevel-management-v1"
	case ProtocolModern:
		return "ext-foreign-toplevel-list-v1"
	default:
		return "none"
	}
}

// chooseProtocol picks the one protocol to activate from the globals
// buffered during enumeration. The legacy protocol wins when both are
// usable: it carries strictly more data.
func chooseProtocol(legacy, modern *wayland.Global) (Protocol, error) {
	if legacy != nil && legacy.Version >= LegacyMinVersion {
		return ProtocolLegacy, nil
	}
	if modern != nil && modern.Version >= ModernMinVersion {
		return ProtocolModern, nil
	}
	return ProtocolNone, ErrUnsupported
}

func legacyCapabilities() snapshot.Capabilities {
	return snapshot.Capabilities{
		Fullscreen: true,
		Activated:  true,
		Minimized:  true,
		Maximized:  true,
	}
}

func modernCapabilities() snapshot.Capabilities {
	return snapshot.Capabilities{Identifier: true}
}
