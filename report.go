// sidecarfix: HTML run report
package main

import (
	"fmt"
	"html"
	"log"
	"os"
	"time"
)

// writeHTMLReport generates an HTML report of the run: summary counts,
// updated files with their resolved dates, failures, orphaned sidecars,
// and collected warnings. Clickable file links throughout.
func writeHTMLReport(path string, updatedFiles [][2]string, failedFiles, orphanFiles, errorList []string, counters Counters, totalTime time.Duration) {
	f, err := os.Create(path)
	if err != nil {
		log.Printf("Could not create report: %v", err)
		return
	}
	defer f.Close()
	f.WriteString("<html><head><title>sidecarfix report</title></head><body>")
	f.WriteString("<h1>sidecarfix Report</h1>")
	f.WriteString("<h2>Summary</h2><ul>")
	f.WriteString(fmt.Sprintf("<li>Total time taken: %s</li>", totalTime))
	f.WriteString(fmt.Sprintf("<li>Media processed: %d</li>", counters.Processed))
	f.WriteString(fmt.Sprintf("<li>Metadata updated: %d</li>", counters.Updated))
	f.WriteString(fmt.Sprintf("<li>Updates failed: %d</li>", counters.Failed))
	f.WriteString(fmt.Sprintf("<li>Sidecars found: %d</li>", counters.JSONFound))
	f.WriteString(fmt.Sprintf("<li>Sidecars moved to backup: %d</li>", counters.JSONMoved))
	f.WriteString(fmt.Sprintf("<li>Orphan sidecars: %d</li>", counters.Orphans))
	f.WriteString("</ul>")

	f.WriteString("<h2>Updated Files</h2><ul>")
	for _, pair := range updatedFiles {
		p := html.EscapeString(pair[0])
		f.WriteString(fmt.Sprintf("<li><a href=\"file://%s\">%s</a> — %s</li>", p, p, html.EscapeString(pair[1])))
	}
	f.WriteString("</ul>")

	if len(failedFiles) > 0 {
		f.WriteString("<h2>Failed Updates</h2><ul>")
		for _, e := range failedFiles {
			f.WriteString(fmt.Sprintf("<li>%s</li>", html.EscapeString(e)))
		}
		f.WriteString("</ul>")
	}
	if len(orphanFiles) > 0 {
		f.WriteString("<h2>Orphan Sidecars</h2><ul>")
		for _, p := range orphanFiles {
			escaped := html.EscapeString(p)
			f.WriteString(fmt.Sprintf("<li><a href=\"file://%s\">%s</a></li>", escaped, escaped))
		}
		f.WriteString("</ul>")
	}
	if len(errorList) > 0 {
		f.WriteString("<h2>Warnings</h2><ul>")
		for _, e := range errorList {
			f.WriteString(fmt.Sprintf("<li>%s</li>", html.EscapeString(e)))
		}
		f.WriteString("</ul>")
	}
	f.WriteString("</body></html>")
}
