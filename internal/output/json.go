package output

import (
	"encoding/json"
	"io"

	"github.com/spiffcs/screener/internal/model"
	"github.com/spiffcs/screener/internal/schema"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format writes the report as a single JSON document. Applicants are
// always encoded as an array, never null.
func (f *JSONFormatter) Format(report *model.Report, w io.Writer) error {
	out := *report
	if out.Applicants == nil {
		out.Applicants = []model.EnrichedRecord{}
	}
	return f.encode(w, out)
}

func (f *JSONFormatter) encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	if f.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}

// Error types reported in ErrorOutput.
const (
	ErrorTypeSetup   = "SetupError"
	ErrorTypeGeneric = "Error"
)

// ErrorOutput is the document written when a run fails.
type ErrorOutput struct {
	Error string `json:"error"`
	Type  string `json:"type"`
}

// NewErrorOutput classifies err for the error document.
func NewErrorOutput(err error) ErrorOutput {
	t := ErrorTypeGeneric
	if schema.IsSetupError(err) {
		t = ErrorTypeSetup
	}
	return ErrorOutput{Error: err.Error(), Type: t}
}

// WriteError writes err as a JSON error document.
func WriteError(w io.Writer, err error) error {
	return (&JSONFormatter{}).encode(w, NewErrorOutput(err))
}
