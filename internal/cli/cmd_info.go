package cli

import (
	"io"
	"time"
)

const infoHelp = `  info                   Show data file report`

func cmdInfo(out io.Writer, app *App, args []string) int {
	if hasHelpFlag(args) {
		fprintln(out, "Usage: examdesk info")
		fprintln(out, "")
		fprintln(out, "Show existence, size, and last-modified time of every data file.")

		return 0
	}

	report := app.Integrity.FileReport()

	fprintln(out, "data dir:  ", report.DataDir)
	fprintln(out, "db dir:    ", report.DBDir)
	fprintln(out, "images dir:", report.ImagesDir)
	fprintln(out, "")

	for _, file := range report.Files {
		if !file.Exists {
			fprintln(out, string(file.Kind)+": missing ("+file.Path+")")

			continue
		}

		fprintln(out, string(file.Kind)+":",
			file.Size, "bytes, modified",
			file.LastModified.Format(time.RFC3339), "("+file.Path+")")
	}

	return 0
}
