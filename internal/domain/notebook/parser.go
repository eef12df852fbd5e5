package notebook

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/notekit/cellview/internal/shared/types"
)

// SupportedFormat is the nbformat major version the parser accepts.
const SupportedFormat = 4

// rawNotebook mirrors the on-disk .ipynb layout
type rawNotebook struct {
	Format      int                    `json:"nbformat"`
	FormatMinor int                    `json:"nbformat_minor"`
	Metadata    map[string]interface{} `json:"metadata"`
	Cells       []rawCell              `json:"cells"`
}

// rawCell mirrors a single on-disk cell. Source may be a string or an
// array of line strings.
type rawCell struct {
	ID       string                 `json:"id"`
	Type     string                 `json:"cell_type"`
	Source   interface{}            `json:"source"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Parse converts .ipynb JSON content to a Notebook.
//
// Cell metadata is carried over verbatim: the parser owns structure, not
// schema. Cells without an id get a deterministic generated one so the
// widget registry can address them.
func Parse(content []byte) (*types.Notebook, error) {
	var raw rawNotebook
	if err := sonic.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse notebook JSON: %w", err)
	}

	if raw.Format != SupportedFormat {
		return nil, fmt.Errorf("unsupported nbformat %d (want %d)", raw.Format, SupportedFormat)
	}

	cells := make([]types.Cell, 0, len(raw.Cells))
	for i, rc := range raw.Cells {
		cell, err := convertCell(rc, i)
		if err != nil {
			return nil, err
		}
		cells = append(cells, cell)
	}

	metadata := raw.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	return &types.Notebook{
		Format:      raw.Format,
		FormatMinor: raw.FormatMinor,
		Metadata:    metadata,
		Cells:       cells,
	}, nil
}

func convertCell(rc rawCell, index int) (types.Cell, error) {
	if rc.Type == "" {
		return types.Cell{}, fmt.Errorf("cell %d: cell_type is required", index)
	}

	source, err := normalizeSource(rc.Source)
	if err != nil {
		return types.Cell{}, fmt.Errorf("cell %d: %w", index, err)
	}

	id := rc.ID
	if id == "" {
		id = fmt.Sprintf("cell-%d", index)
	}

	metadata := rc.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	return types.Cell{
		ID:       id,
		Type:     types.CellType(rc.Type),
		Source:   source,
		Metadata: metadata,
	}, nil
}

// normalizeSource joins the nbformat line-array representation into a
// single string. Lines already carry their trailing newlines.
func normalizeSource(v interface{}) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	case []interface{}:
		var sb strings.Builder
		for _, line := range s {
			str, ok := line.(string)
			if !ok {
				return "", fmt.Errorf("source line is not a string")
			}
			sb.WriteString(str)
		}
		return sb.String(), nil
	default:
		return "", fmt.Errorf("source must be a string or array of strings")
	}
}
