package compare

import (
	"encoding/json"

	"github.com/rgehrsitz/rtgo/internal/domain"
)

// JSONFormatter formats comparisons and raw reports as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	return jf.marshal(compSet)
}

// FormatReport renders the engine report itself, ranked scenarios and tax lines included
func (jf *JSONFormatter) FormatReport(report *domain.ScenarioReport) (string, error) {
	return jf.marshal(report)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
