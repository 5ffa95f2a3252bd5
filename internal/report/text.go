package report

import (
	"fmt"
	"io"
	"math"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erraggy/smdconv/aggregate"
)

const studiesTemplate = `{{printf "%-24s %9s %9s %9s %9s %9s" "Study" "lnOR" "selnOR" "OR" "SMD" "SE(SMD)"}}
{{range .}}{{printf "%-24s %9.4f %9.4f %9.4f %9.4f %9.4f" .Study .LogOR .SELogOR .OR .SMD .SESMD}}{{if not .Included}}  (not in subset){{else if .Excluded}}  (excluded){{end}}
{{end}}`

const summaryTemplate = `{{title "standardised mean difference meta-analysis"}}
Conversion: {{.MethodName}} ({{.Method}})
Studies: {{.K}} ({{.KPooled}} pooled)

{{template "studies" .Studies}}
{{with .Common}}{{title "common effect model"}}: {{estimate . $.LevelMA}}
{{end}}{{with .Random}}{{title "random effects model"}}: {{estimate . $.LevelMA}}
{{end}}{{with .Prediction}}{{title "prediction interval"}}: [{{num .Lower}}; {{num .Upper}}]
{{end}}{{with .Heterogeneity}}
{{title "heterogeneity"}}: tau^2 = {{num .Tau2}}, I^2 = {{percent .I2}}, H = {{num .H}}
Test of heterogeneity: Q = {{num .Q}}, df = {{.DF}}, p = {{pvalue .PValue}}
{{end}}{{range .Subgroups}}
{{title "subgroup"}} {{.Name}} (k = {{.K}})
{{with .Common}}  common: {{estimate . $.LevelMA}}
{{end}}{{with .Random}}  random: {{estimate . $.LevelMA}}
{{end}}{{end}}`

var templates = template.Must(
	template.Must(template.New("studies").Funcs(templateFuncs()).Parse(studiesTemplate)).
		New("summary").Parse(summaryTemplate),
)

// templateFuncs returns the helpers available to the report templates.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		// Casers hold state, so each call gets its own
		"title":    func(s string) string { return cases.Title(language.English).String(s) },
		"num":      formatNumber,
		"percent":  func(f float64) string { return fmt.Sprintf("%.1f%%", 100*f) },
		"pvalue":   formatPValue,
		"estimate": formatEstimate,
	}
}

func formatNumber(f float64) string {
	return fmt.Sprintf("%.4f", f)
}

func formatPValue(p float64) string {
	if p < 0.0001 {
		return "< 0.0001"
	}
	return fmt.Sprintf("%.4f", p)
}

func formatEstimate(e *aggregate.Estimate, level float64) string {
	return fmt.Sprintf("SMD %s  %g%%-CI [%s; %s]  z = %s  p = %s",
		formatNumber(e.TE), math.Round(level*1000)/10,
		formatNumber(e.Lower), formatNumber(e.Upper),
		formatNumber(e.Statistic), formatPValue(e.PValue))
}

// WriteSummary renders s as a plain-text report.
func WriteSummary(w io.Writer, s *Summary) error {
	return templates.ExecuteTemplate(w, "summary", s)
}

// WriteStudies renders rows as a plain-text table.
func WriteStudies(w io.Writer, rows []StudyRow) error {
	return templates.ExecuteTemplate(w, "studies", rows)
}
