package render

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/wlkit/lswt/internal/snapshot"
)

// jsonDoc is the top-level JSON shape: a capability map declaring which
// optional fields are populated, then the toplevels. Fields the active
// protocol cannot populate are omitted from the toplevel objects entirely.
type jsonDoc struct {
	Supported map[string]bool  `json:"supported-data"`
	Toplevels []map[string]any `json:"toplevels"`
}

func renderJSON(w io.Writer, store *snapshot.Store, caps snapshot.Capabilities, withOutputs bool) error {
	doc := jsonDoc{
		Supported: map[string]bool{
			"title":      true,
			"app-id":     true,
			"identifier": caps.Identifier,
			"activated":  caps.Activated,
			"fullscreen": caps.Fullscreen,
			"minimized":  caps.Minimized,
			"maximized":  caps.Maximized,
			"outputs":    withOutputs,
		},
		Toplevels: make([]map[string]any, 0, len(store.Toplevels())),
	}

	for _, t := range store.Toplevels() {
		obj := map[string]any{
			"title":  jsonText(t.Title),
			"app-id": jsonText(t.AppID),
		}
		if caps.Identifier {
			obj["identifier"] = jsonText(t.Identifier)
		}
		if caps.Activated {
			obj["activated"] = t.Activated
		}
		if caps.Fullscreen {
			obj["fullscreen"] = t.Fullscreen
		}
		if caps.Minimized {
			obj["minimized"] = t.Minimized
		}
		if caps.Maximized {
			obj["maximized"] = t.Maximized
		}
		if withOutputs {
			obj["outputs"] = outputLabels(t)
		}
		doc.Toplevels = append(doc.Toplevels, obj)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// jsonText maps an absent attribute to JSON null.
func jsonText(t snapshot.Text) any {
	if !t.Set {
		return nil
	}
	return t.Value
}

// outputLabels lists the outputs a toplevel is on, by name or global-name
// fallback. The synthetic bucket is not a real output and is skipped.
func outputLabels(t *snapshot.Toplevel) []string {
	labels := make([]string, 0, len(t.Outputs))
	for _, o := range t.Outputs {
		if o.Synthetic() {
			continue
		}
		if o.Name.Set {
			labels = append(labels, o.Name.Value)
		} else {
			labels = append(labels, strconv.FormatUint(uint64(o.GlobalName), 10))
		}
	}
	return labels
}
