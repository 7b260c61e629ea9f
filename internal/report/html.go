package report

import (
	"fmt"
	"html/template"
	"io"

	"github.com/signalnine/rmsedash/internal/config"
	"github.com/signalnine/rmsedash/internal/variant"
)

// IndexEntry is one generated table as listed on the index page.
type IndexEntry struct {
	Title       string
	Filename    string
	Description string
}

// pct and avg return template.HTML so the sign of a formatted float is not
// escaped to &#43;.
var funcs = template.FuncMap{
	"label":     variant.Label,
	"value":     func(v float64) string { return fmt.Sprintf("%.4f", v) },
	"pct":       func(v float64) template.HTML { return template.HTML(fmt.Sprintf("%+.1f%%", v)) },
	"avg":       func(v float64) template.HTML { return template.HTML(fmt.Sprintf("%+.2f%%", v)) },
	"limit":     func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"indexFile": func() string { return config.IndexFilename },
}

var (
	groupTemplate = template.Must(template.New("group").Funcs(funcs).Parse(groupHTML))
	indexTemplate = template.Must(template.New("index").Funcs(funcs).Parse(indexHTML))
)

// WriteGroupHTML renders a comparison table as a standalone page.
func WriteGroupHTML(w io.Writer, gt *GroupTable) error {
	return groupTemplate.Execute(w, gt)
}

// WriteIndexHTML renders the page linking every generated table.
func WriteIndexHTML(w io.Writer, entries []IndexEntry) error {
	return indexTemplate.Execute(w, entries)
}

const groupHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{ .Group.Title }}</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, sans-serif;
            margin: 20px;
            background-color: #f5f5f5;
        }
        h1 {
            color: #333;
            border-bottom: 2px solid #007bff;
            padding-bottom: 10px;
        }
        table {
            border-collapse: collapse;
            width: 100%;
            background-color: white;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
            margin-top: 20px;
        }
        th, td {
            border: 1px solid #ddd;
            padding: 12px 15px;
            text-align: center;
        }
        th {
            background-color: #007bff;
            color: white;
            font-weight: 600;
        }
        tr:nth-child(even) { background-color: #f8f9fa; }
        tr:hover { background-color: #e9ecef; }
        td:first-child {
            text-align: left;
            font-weight: 500;
        }
        .improvement { color: #28a745; font-weight: bold; }
        .degradation { color: #dc3545; font-weight: bold; }
        .best {
            background-color: #d4edda !important;
            font-weight: bold;
        }
        .outlier { color: #999; font-style: italic; }
        .avg-row {
            background-color: #fff3cd !important;
            font-weight: bold;
        }
        .nav { margin-bottom: 20px; }
        .nav a {
            margin-right: 15px;
            color: #007bff;
            text-decoration: none;
        }
        .nav a:hover { text-decoration: underline; }
    </style>
</head>
<body>
    <div class="nav">
        <a href="{{ indexFile }}">&larr; Back to Index</a>
    </div>
    <h1>{{ .Group.Title }}</h1>
    <p>RMSE values (median of runs). Lower is better. Green = best in row.{{ if .HasBase }} Last row shows average % change vs baseline.{{ end }}</p>
    <table>
        <thead>
            <tr>
                <th>Sequence</th>
{{- range .Columns }}
                <th>{{ label . }}</th>
{{- end }}
            </tr>
        </thead>
        <tbody>
{{- range .Rows }}
            <tr>
                <td>{{ .Sequence }}</td>
{{- range .Cells }}
{{- if not .Present }}
                <td>-</td>
{{- else if .Outlier }}
                <td class="outlier">&gt;{{ limit $.Threshold }}</td>
{{- else }}
                <td{{ if .Best }} class="best"{{ end }}>{{ value .Value }}{{ if .HasPct }} <span{{ with .Change.Class }} class="{{ . }}"{{ end }}>({{ pct .Pct }})</span>{{ end }}</td>
{{- end }}
{{- end }}
            </tr>
{{- end }}
{{- if .Summary }}
            <tr class="avg-row">
                <td><strong>Avg % Change vs Base</strong></td>
{{- range .Summary }}
{{- if or .Base (eq .Count 0) }}
                <td>-</td>
{{- else }}
                <td{{ with .Change.Class }} class="{{ . }}"{{ end }}><strong>{{ avg .Mean }}</strong></td>
{{- end }}
{{- end }}
            </tr>
{{- end }}
        </tbody>
    </table>
</body>
</html>
`

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>M3ED RMSE Comparison Tables</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, sans-serif;
            margin: 40px;
            background-color: #f5f5f5;
        }
        h1 { color: #333; }
        .card {
            background: white;
            padding: 20px;
            margin: 15px 0;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        .card h2 { margin-top: 0; color: #007bff; }
        .card a {
            color: #007bff;
            text-decoration: none;
            font-weight: 500;
        }
        .card a:hover { text-decoration: underline; }
        .card p { color: #666; margin-bottom: 0; }
    </style>
</head>
<body>
    <h1>M3ED RMSE Comparison Tables</h1>
    <p>Comparison tables using median RMSE values across runs.</p>
{{- range . }}
    <div class="card">
        <h2><a href="{{ .Filename }}">{{ .Title }}</a></h2>
        <p>{{ .Description }}</p>
    </div>
{{- else }}
    <p>No tables were generated.</p>
{{- end }}
</body>
</html>
`
