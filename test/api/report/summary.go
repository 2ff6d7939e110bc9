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
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

//nolint:gochecknoglobals
var statusColors = map[Status]*color.Color{
	StatusPass: color.New(color.FgGreen),
	StatusFail: color.New(color.FgRed, color.Bold),
	StatusSkip: color.New(color.FgYellow),
}

func colorize(status Status) string {
	c, ok := statusColors[status]
	if !ok {
		return string(status)
	}

	return c.Sprint(string(status))
}

// WriteSummary prints one row per finalized test followed by totals.
func WriteSummary(w io.Writer, sink *Sink) {
	entries := sink.Entries()

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Status", "Test", "Labels", "Duration"})
	table.SetAutoWrapText(false)
	table.SetRowLine(false)

	counts := map[Status]int{}

	for i := range entries {
		e := &entries[i]
		counts[e.Status]++

		table.Append([]string{
			colorize(e.Status),
			e.Name,
			strings.Join(e.Labels, ","),
			e.Duration().Round(time.Millisecond).String(),
		})
	}

	table.SetFooter([]string{"", "Total", fmt.Sprint(len(entries)), ""})
	table.Render()

	fmt.Fprintf(w, "%s, %s, %s\nReport: %s\n",
		color.GreenString("%d passed", counts[StatusPass]),
		color.RedString("%d failed", counts[StatusFail]),
		color.YellowString("%d skipped", counts[StatusSkip]),
		sink.Path())
}
