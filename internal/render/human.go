package render

import (
	"fmt"
	"io"

	"github.com/wlkit/lswt/internal/snapshot"
)

// maxAppIDPad caps the app-id column width so one absurdly named client
// cannot push every title off screen.
const maxAppIDPad = 40

func renderHuman(w io.Writer, store *snapshot.Store) error {
	width := appIDWidth(store.Toplevels())
	for _, t := range store.Toplevels() {
		if err := writeHumanLine(w, t, width); err != nil {
			return err
		}
	}
	return nil
}

// renderGroupedHuman prints toplevels grouped under their outputs' headings,
// with the no-output bucket as a distinctly labeled final group. A toplevel
// on several outputs appears under each of them.
func renderGroupedHuman(w io.Writer, store *snapshot.Store) error {
	width := appIDWidth(store.Toplevels())
	for i, o := range store.AllOutputs() {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s\n", outputHeading(o)); err != nil {
			return err
		}
		if len(o.Toplevels) == 0 {
			if _, err := fmt.Fprintln(w, "[none]"); err != nil {
				return err
			}
			continue
		}
		for _, t := range o.Toplevels {
			if err := writeHumanLine(w, t, width); err != nil {
				return err
			}
		}
	}
	return nil
}

func outputHeading(o *snapshot.Output) string {
	switch {
	case o.Synthetic():
		return "Toplevels not on any output:"
	case !o.Name.Set:
		return fmt.Sprintf("Output %d (global-name):", o.GlobalName)
	default:
		return humanText(o.Name) + ":"
	}
}

func writeHumanLine(w io.Writer, t *snapshot.Toplevel, width int) error {
	_, err := fmt.Fprintf(w, "%-*s %s\n", width+2, humanText(t.AppID), humanText(t.Title))
	return err
}

// appIDWidth is the width of the longest formatted app-id, capped.
func appIDWidth(toplevels []*snapshot.Toplevel) int {
	width := 0
	for _, t := range toplevels {
		if n := len(humanText(t.AppID)); n > width {
			width = n
		}
	}
	if width > maxAppIDPad {
		width = maxAppIDPad
	}
	return width
}
