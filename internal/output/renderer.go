package output

import (
	"io"

	"github.com/halvard/gitprep/internal/prepare"
)

// Outcome classifies how a preparation run ended.
type Outcome string

const (
	// OutcomeReady means the directory is safe for a subsequent checkout.
	OutcomeReady Outcome = "READY"
	// OutcomeRejected means the directory failed the identity checks and
	// was left untouched.
	OutcomeRejected Outcome = "REJECTED"
	// OutcomeRecreate means the directory could not be prepared in place
	// and should be discarded and recreated.
	OutcomeRecreate Outcome = "RECREATE"
)

// Result is the renderable summary of one preparation run.
type Result struct {
	Path    string          `json:"path"`
	URL     string          `json:"url"`
	Ref     string          `json:"ref,omitempty"`
	Head    string          `json:"head,omitempty"`
	Outcome Outcome         `json:"outcome"`
	Reason  string          `json:"reason,omitempty"`
	Report  *prepare.Report `json:"report"`
}

// Renderer defines the interface for output renderers
type Renderer interface {
	// Render writes the preparation result to the writer
	Render(w io.Writer, result *Result) error
}

// Format represents an output format
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// NewRenderer creates a renderer for the given format
func NewRenderer(format Format, colorEnabled bool) Renderer {
	switch format {
	case FormatJSON:
		return &JSONRenderer{}
	default:
		return &TextRenderer{ColorEnabled: colorEnabled}
	}
}
