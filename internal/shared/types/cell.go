package types

// CellType identifies the kind of content a cell holds
type CellType string

const (
	CellCode     CellType = "code"
	CellMarkdown CellType = "markdown"
	CellRaw      CellType = "raw"
)

// Cell represents a single unit of content in a notebook document.
//
// Metadata is owned by the host document; passes read it but never
// mutate it.
type Cell struct {
	ID       string                 `json:"id"`
	Type     CellType               `json:"cell_type"`
	Source   string                 `json:"source"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Notebook represents a parsed nbformat 4.x document
type Notebook struct {
	Name        string                 `json:"name,omitempty"`
	Format      int                    `json:"nbformat"`
	FormatMinor int                    `json:"nbformat_minor"`
	Metadata    map[string]interface{} `json:"metadata"`
	Cells       []Cell                 `json:"cells"`
}
