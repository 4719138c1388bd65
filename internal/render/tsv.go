package render

import (
	"io"
	"strconv"
	"strings"

	"github.com/wlkit/lswt/internal/snapshot"
)

// renderTSV writes one tab-separated row per toplevel: title, app-id, the
// four state flags, and the output memberships. Unlike custom output, text
// columns are always quoted, so a tab inside a title cannot shift columns.
// Fields the active protocol cannot populate render the unsupported
// sentinel, keeping the column count constant.
func renderTSV(w io.Writer, store *snapshot.Store, caps snapshot.Capabilities, withOutputs bool) error {
	var b strings.Builder
	for _, t := range store.Toplevels() {
		b.Reset()
		b.WriteString(quotedText(t.Title))
		b.WriteByte('\t')
		b.WriteString(quotedText(t.AppID))
		b.WriteByte('\t')
		b.WriteString(tsvBool(t.Maximized, caps.Maximized))
		b.WriteByte('\t')
		b.WriteString(tsvBool(t.Minimized, caps.Minimized))
		b.WriteByte('\t')
		b.WriteString(tsvBool(t.Activated, caps.Activated))
		b.WriteByte('\t')
		b.WriteString(tsvBool(t.Fullscreen, caps.Fullscreen))
		b.WriteByte('\t')
		writeTSVOutputs(&b, t, withOutputs)
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// writeTSVOutputs renders the membership column: "none" for toplevels in the
// no-output bucket, otherwise a comma-joined list of output names. Unnamed
// outputs fall back to their quoted global name.
func writeTSVOutputs(b *strings.Builder, t *snapshot.Toplevel, withOutputs bool) {
	if !withOutputs {
		// The modern protocol carries no output membership at all.
		b.WriteString(unsupportedSentinel)
		return
	}
	if len(t.Outputs) == 0 {
		b.WriteString("none")
		return
	}
	for i, out := range t.Outputs {
		if out.Synthetic() {
			b.WriteString("none")
			return
		}
		if i > 0 {
			b.WriteByte(',')
		}
		if out.Name.Set {
			b.WriteString(quote(out.Name.Value))
		} else {
			b.WriteString(quote(strconv.FormatUint(uint64(out.GlobalName), 10)))
		}
	}
}

// quotedText always quotes, absent values included. TSV consumers split on
// tabs, so every text column keeps the same shape.
func quotedText(t snapshot.Text) string {
	if !t.Set {
		return quote(nullText)
	}
	return quote(t.Value)
}

func tsvBool(v, supported bool) string {
	if !supported {
		return unsupportedSentinel
	}
	return strconv.FormatBool(v)
}
