package render

import (
	"io"

	"github.com/wlkit/lswt/internal/snapshot"
)

// Options selects and parameterizes the output strategy.
type Options struct {
	Mode   Mode
	Custom CustomFormat
	Caps   snapshot.Capabilities
	// Grouped permits the by-output human variant and the output columns of
	// the JSON and TSV modes. It is set only when the legacy protocol was
	// active, the one source of output membership.
	Grouped bool
}

// Render writes the frozen snapshot to w. The store must not be mutated
// concurrently; by the time this runs the collection phase is over.
func Render(w io.Writer, store *snapshot.Store, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return renderJSON(w, store, opts.Caps, opts.Grouped)
	case ModeTSV:
		return renderTSV(w, store, opts.Caps, opts.Grouped)
	case ModeCustom:
		return renderCustom(w, store, opts.Caps, opts.Custom)
	default:
		if opts.Grouped && len(store.AllOutputs()) > 1 {
			return renderGroupedHuman(w, store)
		}
		return renderHuman(w, store)
	}
}
