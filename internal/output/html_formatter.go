package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/rtgo/internal/compare"
	"github.com/rgehrsitz/rtgo/internal/domain"
)

// HTMLFormatter produces a standalone HTML page with the ranked scenarios and their line items.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"pct":   FormatPercent,
	"ratio": FormatRatio,
}).Parse(htmlTemplateSource))

// Format renders the report. comparison may be nil, in which case the recommendations
// section is left out.
func (h HTMLFormatter) Format(report *domain.ScenarioReport, comparison *compare.ComparisonSet) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.ScenarioReport
		Comparison *compare.ComparisonSet
	}{report, comparison}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
