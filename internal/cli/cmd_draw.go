package cli

import (
	"io"

	flag "github.com/spf13/pflag"

	"examdesk/internal/schema"
)

const drawHelp = `  draw <project-id>      Draw questions for a project`

const fallbackDrawCount = 10

func cmdDraw(out io.Writer, errOut io.Writer, app *App, args []string) int {
	if hasHelpFlag(args) {
		printDrawHelp(out)

		return 0
	}

	flagSet := flag.NewFlagSet("draw", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	count := flagSet.Int("count", 0, "Number of questions to draw")

	parseErr := flagSet.Parse(args)
	if parseErr != nil {
		fprintln(errOut, "error:", parseErr)

		return 1
	}

	remaining := flagSet.Args()
	if len(remaining) == 0 {
		fprintln(errOut, "error:", errProjectIDRequired)

		return 1
	}

	projectID := remaining[0]

	if app.Projects.Get(projectID) == nil {
		fprintln(errOut, "error:", errProjectNotFound, projectID)

		return 1
	}

	drawCount := *count
	if drawCount <= 0 {
		drawCount = app.defaultQuestionCount()
	}

	questions := app.Questions.Draw(projectID, drawCount)

	for _, question := range questions {
		marker := " "
		if question.IsMandatory {
			marker = "*"
		}

		fprintln(out, marker, question.ID, question.Content)
	}

	fprintln(out, "drew", len(questions), "questions")

	return 0
}

// defaultQuestionCount reads the admin's defaultQuestionCount setting,
// falling back to 10.
func (a *App) defaultQuestionCount() int {
	settings := a.Accounts.Settings(schema.SeedAdminID)

	if value, ok := settings["defaultQuestionCount"]; ok {
		// JSON numbers decode as float64.
		if f, ok := value.(float64); ok && f > 0 {
			return int(f)
		}

		if n, ok := value.(int); ok && n > 0 {
			return n
		}
	}

	return fallbackDrawCount
}

func printDrawHelp(out io.Writer) {
	fprintln(out, "Usage: examdesk draw <project-id> [--count N]")
	fprintln(out, "")
	fprintln(out, "Draw a bounded random subset of a project's questions. Mandatory")
	fprintln(out, "questions are included first; the rest of the quota is filled from")
	fprintln(out, "the optional pool.")
	fprintln(out, "")
	fprintln(out, "Options:")
	fprintln(out, "  --count N  Questions to draw (default: admin defaultQuestionCount)")
}
