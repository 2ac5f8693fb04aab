package cli

import (
	"io"

	flag "github.com/spf13/pflag"
)

const initHelp = `  init [--force]         Create or repair the data files`

func cmdInit(out io.Writer, errOut io.Writer, app *App, args []string) int {
	if hasHelpFlag(args) {
		printInitHelp(out)

		return 0
	}

	flagSet := flag.NewFlagSet("init", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	force := flagSet.Bool("force", false, "Back up and regenerate every data file")

	parseErr := flagSet.Parse(args)
	if parseErr != nil {
		fprintln(errOut, "error:", parseErr)

		return 1
	}

	result := app.Integrity.InitializeAll(*force)

	for _, kind := range result.Initialized {
		fprintln(out, "initialized:", kind)
	}

	for _, kind := range result.Failed {
		fprintln(errOut, "error: failed to initialize:", kind)
	}

	if !result.Success {
		return 1
	}

	return 0
}

func printInitHelp(out io.Writer) {
	fprintln(out, "Usage: examdesk init [--force]")
	fprintln(out, "")
	fprintln(out, "Create the data directories and collection files. Invalid files are")
	fprintln(out, "backed up and regenerated from defaults; valid files are untouched.")
	fprintln(out, "")
	fprintln(out, "Options:")
	fprintln(out, "  --force    Back up and regenerate every data file")
}
