package output

import (
	"encoding/json"
	"io"
)

// JSONRenderer renders output in JSON format
type JSONRenderer struct{}

// jsonOutput is the structure for JSON output
type jsonOutput struct {
	Version string `json:"version"`
	*Result
}

// Render writes the preparation result in JSON format
func (r *JSONRenderer) Render(w io.Writer, result *Result) error {
	output := jsonOutput{
		Version: "1.0",
		Result:  result,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
