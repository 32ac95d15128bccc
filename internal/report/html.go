package report

import (
	"fmt"
	"html"
	"html/template"
	"io"
	"strings"

	"github.com/echolens/echolens/internal/model"
)

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>EchoLens Report</title>
<style>
body { font-family: Georgia, serif; max-width: 60em; margin: 2em auto; color: #222; }
h1 { border-bottom: 2px solid #444; padding-bottom: .3em; }
.card { border: 1px solid #ccc; border-radius: 6px; padding: 1em 1.5em; margin: 1em 0; }
.verdict-likely { border-left: 6px solid #2a7a2a; }
.verdict-possibly { border-left: 6px solid #b8860b; }
.verdict-unlikely { border-left: 6px solid #a03030; }
.scores { color: #555; font-size: .9em; }
blockquote { border-left: 3px solid #ddd; margin-left: 0; padding-left: 1em; color: #333; }
mark.fact-match { background: #c9f0c9; }
mark.fact-conflict { background: #f3c3c3; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: .3em .8em; text-align: left; }
</style>
</head>
<body>
<h1>EchoLens Report</h1>
<p><strong>{{.Original.Title}}</strong><br>
<a href="{{.Original.URL}}">{{.Original.URL}}</a>
{{if .Original.PublishDate}}<br>Published: {{.Original.PublishDate}}{{end}}</p>
<p>Claim phrases: <em>{{.Claim.Phrases}}</em> (threshold {{.Claim.EffectiveThreshold}})</p>

<h2>Related Coverage ({{len .Verdicts}})</h2>
{{range .Verdicts}}
<div class="card {{verdictClass .Verdict}}">
<h3><a href="{{.URL}}">{{.Title}}</a></h3>
<p><strong>{{.Verdict.String}}</strong></p>
<p class="scores">Entity overlap: {{printf "%.2f" .EntityScore}} &middot;
Title similarity: {{printf "%.2f" .TitleScore}} &middot;
Date window: {{.SameDateWindow}}</p>
{{if .Matches}}
<h4>Supporting sentences</h4>
{{range .Matches}}
<blockquote>{{renderMarks .Sentence}}<br>
<span class="scores">{{printf "%.2f" .Score}} &mdash; &ldquo;{{.Phrase}}&rdquo;</span></blockquote>
{{end}}
{{else}}
<p class="scores">No sentences cleared the match threshold.</p>
{{end}}
</div>
{{end}}

{{if .FactChecks}}
<h2>Published Fact Checks</h2>
<table>
<tr><th>Claim</th><th>Publisher</th><th>Rating</th></tr>
{{range .FactChecks}}
<tr><td><a href="{{.URL}}">{{.ClaimText}}</a></td><td>{{.Publisher}}</td><td>{{.Rating}}</td></tr>
{{end}}
</table>
{{end}}

<p class="scores">Generated {{.GeneratedAt.Format "2006-01-02 15:04 MST"}}</p>
</body>
</html>
`

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"verdictClass": verdictClass,
	"renderMarks":  renderMarks,
}).Parse(htmlTemplate))

// RenderHTML writes the report as a standalone HTML page.
func RenderHTML(w io.Writer, rep *Report) error {
	if err := reportTemplate.Execute(w, rep); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

func verdictClass(v model.Verdict) string {
	switch v {
	case model.VerdictLikelySameIncident:
		return "verdict-likely"
	case model.VerdictPossiblyRelated:
		return "verdict-possibly"
	default:
		return "verdict-unlikely"
	}
}

// renderMarks escapes the sentence and swaps the highlight markers
// for <mark> tags.
func renderMarks(s string) template.HTML {
	escaped := html.EscapeString(s)
	r := strings.NewReplacer(
		matchedOpen, `<mark class="fact-match">`,
		matchedClose, `</mark>`,
		conflictOpen, `<mark class="fact-conflict">`,
		conflictClose, `</mark>`,
	)
	return template.HTML(r.Replace(escaped))
}
