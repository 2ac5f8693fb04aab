package cli

import "io"

const repairHelp = `  repair                 Regenerate invalid data files`

func cmdRepair(out io.Writer, errOut io.Writer, app *App, args []string) int {
	if hasHelpFlag(args) {
		fprintln(out, "Usage: examdesk repair")
		fprintln(out, "")
		fprintln(out, "Validate the store and regenerate every invalid collection file,")
		fprintln(out, "backing up the corrupt original first.")

		return 0
	}

	result := app.Integrity.RepairAll()

	if len(result.Repaired) == 0 && len(result.Failed) == 0 {
		fprintln(out, "Nothing to repair")

		return 0
	}

	for _, kind := range result.Repaired {
		fprintln(out, "repaired:", kind)
	}

	for _, kind := range result.Failed {
		fprintln(errOut, "error: failed to repair:", kind)
	}

	if !result.Success {
		return 1
	}

	return 0
}
