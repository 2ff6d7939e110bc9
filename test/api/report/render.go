/*
Copyright 2026 the Unikorn Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package report

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

type document struct {
	Title      string
	Name       string
	Generated  time.Time
	Started    time.Time
	Suites     []string
	SystemInfo []SystemInfo
	Entries    []Entry
	Passed     int
	Failed     int
	Skipped    int
}

//nolint:gochecknoglobals
var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"timestamp": func(t time.Time) string {
		return t.Format(timestampFormat)
	},
	"lower": func(s Status) string {
		return strings.ToLower(string(s))
	},
	"duration": func(e Entry) string {
		return e.Duration().Round(time.Millisecond).String()
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
<style>
body { background: #1e1e1e; color: #d4d4d4; font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; margin-bottom: 1em; }
td, th { border: 1px solid #3c3c3c; padding: 0.3em 0.6em; text-align: left; vertical-align: top; }
.pass { color: #4ec9b0; }
.fail { color: #f44747; }
.skip { color: #dcdcaa; }
.warning { color: #ce9178; }
.info { color: #9cdcfe; }
pre { white-space: pre-wrap; margin: 0; }
</style>
</head>
<body>
<h1>{{ .Name }}</h1>
<p>Started {{ timestamp .Started }}, generated {{ timestamp .Generated }}</p>
<table>
{{- range .SystemInfo }}
<tr><th>{{ .Key }}</th><td>{{ .Value }}</td></tr>
{{- end }}
{{- if .Suites }}
<tr><th>Suites</th><td>{{ range $i, $s := .Suites }}{{ if $i }}, {{ end }}{{ $s }}{{ end }}</td></tr>
{{- end }}
</table>
<p><span class="pass">{{ .Passed }} passed</span>, <span class="fail">{{ .Failed }} failed</span>, <span class="skip">{{ .Skipped }} skipped</span></p>
{{- range .Entries }}
<section class="test">
<h2 class="{{ lower .Status }}">{{ .Status }}: {{ .Name }}</h2>
{{- if .Description }}
<p>{{ .Description }}</p>
{{- end }}
{{- if .Labels }}
<p>Labels: {{ range $i, $l := .Labels }}{{ if $i }}, {{ end }}{{ $l }}{{ end }}</p>
{{- end }}
<p>Duration: {{ duration . }}</p>
{{- if .Failure }}
<pre class="fail">{{ .Failure }}</pre>
{{- end }}
<table>
{{- range .Logs }}
<tr><td>{{ timestamp .Time }}</td><td class="{{ lower .Status }}">{{ .Status }}</td><td><pre>{{ .Message }}</pre></td></tr>
{{- end }}
</table>
</section>
{{- end }}
</body>
</html>
`))

func render(w io.Writer, d *document) error {
	if err := reportTemplate.Execute(w, d); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	return nil
}
