package render

import (
	"io"
	"strconv"
	"strings"

	"github.com/wlkit/lswt/internal/snapshot"
)

// unsupportedSentinel is printed for fields the active protocol cannot
// populate. Rendering a sentinel instead of omitting the field keeps the
// column count constant across rows.
const unsupportedSentinel = "<unsupported>"

func renderCustom(w io.Writer, store *snapshot.Store, caps snapshot.Capabilities, f CustomFormat) error {
	var b strings.Builder
	for _, t := range store.Toplevels() {
		b.Reset()
		for i, field := range f.Fields {
			if i > 0 {
				b.WriteByte(f.Delim)
			}
			b.WriteString(customField(t, caps, field))
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// customField renders one field raw: no quoting ever, absent text as the
// empty string.
func customField(t *snapshot.Toplevel, caps snapshot.Capabilities, f Field) string {
	switch f {
	case FieldTitle:
		return t.Title.Value
	case FieldAppID:
		return t.AppID.Value
	case FieldIdentifier:
		if !caps.Identifier {
			return unsupportedSentinel
		}
		return t.Identifier.Value
	case FieldActivated:
		return customBool(t.Activated, caps.Activated)
	case FieldFullscreen:
		return customBool(t.Fullscreen, caps.Fullscreen)
	case FieldMinimized:
		return customBool(t.Minimized, caps.Minimized)
	case FieldMaximized:
		return customBool(t.Maximized, caps.Maximized)
	}
	return unsupportedSentinel
}

func customBool(v, supported bool) string {
	if !supported {
		return unsupportedSentinel
	}
	return strconv.FormatBool(v)
}
