// Package directive resolves per-cell rendering directives from notebook
// cell metadata.
//
// The only directive today is max-height: a request to cap the rendered
// height of the cell's editor widget. It lives under a namespace key:
//
//	"metadata": {"nbgrader": {"max_height": 200}}
//
// Two schemas exist in the wild: this nested form and a flattened
// top-level "max_height" key. The flattened variant probes the flat key
// but then dereferences the nested path anyway, which faults when the
// namespace is absent, so the nested schema is the only self-consistent
// reading and the one adopted here.
//
// Resolution is a single typed read. Malformed payloads (non-object
// namespace, non-numeric or negative value) resolve as absent; a
// directive must never make the pass disruptive.
package directive

import (
	"encoding/json"

	"github.com/notekit/cellview/internal/shared/types"
)

// Namespace is the metadata key the directive object nests under.
const Namespace = "nbgrader"

// MaxHeightKey is the directive field holding the height cap in pixels.
const MaxHeightKey = "max_height"

// Directive is a resolved rendering instruction for a single cell.
type Directive struct {
	MaxHeight types.Length
}

// Resolve reads the max-height directive from cell metadata. The second
// return value reports presence; malformed directives resolve as absent.
// Resolve never mutates the metadata map.
func Resolve(metadata map[string]interface{}) (Directive, bool) {
	if metadata == nil {
		return Directive{}, false
	}

	ns, ok := metadata[Namespace].(map[string]interface{})
	if !ok {
		return Directive{}, false
	}

	raw, ok := ns[MaxHeightKey]
	if !ok {
		return Directive{}, false
	}

	height, ok := asPixels(raw)
	if !ok || !height.Constrained() {
		return Directive{}, false
	}

	return Directive{MaxHeight: height}, true
}

// asPixels converts the decoded JSON value to a pixel length. JSON
// decoders hand numbers back as float64; int variants cover values built
// in-process.
func asPixels(v interface{}) (types.Length, bool) {
	switch n := v.(type) {
	case float64:
		return types.Length(n), true
	case int:
		return types.Length(n), true
	case int64:
		return types.Length(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return types.Length(f), true
	default:
		return 0, false
	}
}
