package report

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"time"
)

// HTMLPresenter writes a standalone HTML page for the finished
// run. Building and QueueBuilt are no-ops.
type HTMLPresenter struct {
	outputDir string
}

// NewHTMLPresenter creates an HTMLPresenter writing
// report_<run id>.html into outputDir.
func NewHTMLPresenter(outputDir string) *HTMLPresenter {
	return &HTMLPresenter{outputDir: outputDir}
}

func (p *HTMLPresenter) Building() error { return nil }

func (p *HTMLPresenter) QueueBuilt(QueueStatus) error { return nil }

func (p *HTMLPresenter) Completed(summary *Summary) error {
	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return fmt.Errorf(
			"failed to create output directory: %w", err,
		)
	}

	path := filepath.Join(
		p.outputDir,
		fmt.Sprintf("report_%s.html", summary.RunID),
	)
	if err := os.WriteFile(
		path, GenerateHTML(summary), 0644,
	); err != nil {
		return fmt.Errorf("failed to write HTML report: %w", err)
	}
	return nil
}

// GenerateHTML renders a summary as an HTML page.
func GenerateHTML(summary *Summary) []byte {
	var buf bytes.Buffer
	WriteHTML(&buf, summary)
	return buf.Bytes()
}

// WriteHTML writes the HTML page for summary to w.
func WriteHTML(w io.Writer, summary *Summary) {
	writeHeader(w, "Test Report: "+summary.RunID)

	fmt.Fprintln(w, "<h1>Test Report</h1>")
	fmt.Fprintf(
		w,
		"<p><strong>Run ID:</strong> <code>%s</code></p>\n",
		html.EscapeString(summary.RunID),
	)
	fmt.Fprintf(
		w,
		"<p><strong>Generated:</strong> %s</p>\n",
		summary.GeneratedAt.Format(time.RFC3339),
	)

	cls := "status-passed"
	if !summary.Passed() {
		cls = "status-failed"
	}
	fmt.Fprintf(
		w,
		"<p class=\"%s\">%s</p>\n",
		cls, html.EscapeString(SummaryLine(summary.Totals)),
	)

	writeTotalsTable(w, summary)
	writeFailuresSection(w, summary)
	writeFooter(w)
}

func writeTotalsTable(w io.Writer, summary *Summary) {
	t := summary.Totals

	fmt.Fprintln(w, "<h2>Totals</h2>")
	fmt.Fprintln(w, "<table>")
	fmt.Fprintln(
		w,
		"<tr><th>Level</th><th>Total</th>"+
			"<th>Passed</th><th>Failed</th></tr>",
	)
	rows := []struct {
		name                  string
		total, passed, failed int
	}{
		{"Assertions", t.Assertions, t.AssertionsPassed, t.AssertionsFailed},
		{"Tests", t.Tests, t.TestsPassed, t.TestsFailed},
		{"Groups", t.Groups, t.GroupsPassed, t.GroupsFailed},
	}
	for _, r := range rows {
		fmt.Fprintf(
			w,
			"<tr><td>%s</td><td>%d</td>"+
				"<td class=\"status-passed\">%d</td>"+
				"<td class=\"status-failed\">%d</td></tr>\n",
			r.name, r.total, r.passed, r.failed,
		)
	}
	fmt.Fprintln(w, "</table>")

	fmt.Fprintln(w, "<table>")
	fmt.Fprintf(
		w,
		"<tr><td>Duration</td><td>%v</td></tr>\n",
		summary.Duration,
	)
	fmt.Fprintf(
		w,
		"<tr><td>Not Run</td><td>%d</td></tr>\n",
		summary.Skipped,
	)
	if summary.Fault != "" {
		fmt.Fprintf(
			w,
			"<tr><td>Fault</td>"+
				"<td class=\"status-failed\">%s</td></tr>\n",
			html.EscapeString(summary.Fault),
		)
	}
	fmt.Fprintln(w, "</table>")
}

func writeFailuresSection(w io.Writer, summary *Summary) {
	if len(summary.Failures) == 0 {
		return
	}

	fmt.Fprintln(w, "<h2>Failures</h2>")
	for _, f := range summary.Failures {
		fmt.Fprintf(
			w,
			"<div class=\"failed-result\">%s</div>\n",
			html.EscapeString(FailureLine(f)),
		)
		if f.Diff != "" {
			fmt.Fprintf(
				w,
				"<pre>%s</pre>\n",
				html.EscapeString(f.Diff),
			)
		}
	}
}

func writeHeader(w io.Writer, title string) {
	fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<style>
body {
  font-family: -apple-system, BlinkMacSystemFont,
    "Segoe UI", Roboto, sans-serif;
  max-width: 960px;
  margin: 0 auto;
  padding: 20px;
  color: #333;
  background: #f9f9f9;
}
h1 { color: #2c3e50; border-bottom: 2px solid #3498db; padding-bottom: 10px; }
h2 { color: #2c3e50; margin-top: 30px; }
table {
  border-collapse: collapse;
  width: 100%%;
  margin: 10px 0;
  background: #fff;
}
th, td {
  border: 1px solid #ddd;
  padding: 8px 12px;
  text-align: left;
}
th { background: #3498db; color: #fff; }
.status-passed { color: #27ae60; font-weight: bold; }
.status-failed { color: #e74c3c; font-weight: bold; }
.failed-result {
  border-left: 4px solid #e74c3c;
  background: #fff;
  margin: 8px 0;
  padding: 8px 12px;
}
pre { background: #ecf0f1; padding: 8px; overflow-x: auto; }
footer {
  margin-top: 40px;
  padding-top: 10px;
  border-top: 1px solid #ddd;
  color: #7f8c8d;
  font-size: 0.9em;
}
</style>
</head>
<body>
`, html.EscapeString(title))
}

func writeFooter(w io.Writer) {
	fmt.Fprintln(w, "<footer>")
	fmt.Fprintln(w, "<p>Generated by coccyx</p>")
	fmt.Fprintln(w, "</footer>")
	fmt.Fprintln(w, "</body>")
	fmt.Fprintln(w, "</html>")
}
