package cli

import "io"

const validateHelp = `  validate               Verify all data files`

func cmdValidate(out io.Writer, errOut io.Writer, app *App, args []string) int {
	if hasHelpFlag(args) {
		fprintln(out, "Usage: examdesk validate")
		fprintln(out, "")
		fprintln(out, "Verify every collection file without repairing anything.")

		return 0
	}

	report := app.Integrity.ValidateAll()

	for _, kind := range report.Valid {
		fprintln(out, "valid:", kind)
	}

	for _, issue := range report.Invalid {
		fprintln(errOut, "invalid:", issue.Kind, "-", issue.Reason)
	}

	if !report.Success {
		return 1
	}

	return 0
}
