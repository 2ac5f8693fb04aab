package cli

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"examdesk/internal/records"
	"examdesk/internal/schema"
)

const consoleHelp = `  console                Interactive operations console`

var consoleCommands = []string{
	"login", "passwd", "settings",
	"projects", "project",
	"questions", "question",
	"candidates", "candidate",
	"draw", "help", "exit", "quit",
}

// console drives the operations surface interactively. Command handling is
// separated from the liner loop so it can be exercised without a terminal.
type console struct {
	app *App
	out io.Writer
}

func cmdConsole(in io.Reader, out io.Writer, errOut io.Writer, app *App) int {
	_ = in // the liner loop owns the terminal

	c := &console{app: app, out: out}

	line := liner.NewLiner()
	defer func() { _ = line.Close() }()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(prefix string) []string {
		var matches []string

		for _, cmd := range consoleCommands {
			if strings.HasPrefix(cmd, strings.ToLower(prefix)) {
				matches = append(matches, cmd)
			}
		}

		return matches
	})

	if f, err := os.Open(consoleHistoryFile()); err == nil {
		_, _ = line.ReadHistory(f)
		_ = f.Close()
	}

	fprintln(out, "examdesk console - type 'help' for available commands")

	for {
		input, err := line.Prompt("examdesk> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fprintln(out, "bye")

				break
			}

			fprintln(errOut, "error: reading input:", err)

			return 1
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		line.AppendHistory(input)

		if c.handle(input) {
			break
		}
	}

	if f, err := os.Create(consoleHistoryFile()); err == nil {
		_, _ = line.WriteHistory(f)
		_ = f.Close()
	}

	return 0
}

func consoleHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".examdesk_history")
}

// handle executes one console line. Returns true when the console should
// exit.
func (c *console) handle(input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "exit", "quit", "q":
		fprintln(c.out, "bye")

		return true
	case "help":
		c.printHelp()
	case "login":
		c.login(args)
	case "passwd":
		c.passwd(args)
	case "settings":
		c.settings(args)
	case "projects":
		c.listProjects()
	case "project":
		c.project(args)
	case "questions":
		c.listQuestions(args)
	case "question":
		c.question(args)
	case "candidates":
		c.listCandidates()
	case "candidate":
		c.candidate(args)
	case "draw":
		c.draw(args)
	default:
		fprintln(c.out, "unknown command:", cmd, "(type 'help')")
	}

	return false
}

func (c *console) printHelp() {
	fprintln(c.out, `Commands:
  login <username> <password>            Authenticate an account
  passwd <user-id> <new-password>        Change a password
  settings <user-id> [<key> <value>]     Show or update settings
  projects                               List projects
  project add <name> [description]       Create a project
  project rm <id>                        Delete a project (cascades)
  questions <project-id>                 List a project's questions
  question add [-m] <project-id> <text>  Create a question
  question rm <id>                       Delete a question
  candidates                             List candidates
  candidate add <name> <idCard> [proj]   Register a candidate
  candidate rm <idCard>                  Delete a candidate
  candidate clear                        Delete all candidates
  draw <project-id> [count]              Draw questions
  exit                                   Leave the console`)
}

func (c *console) login(args []string) {
	if len(args) != 2 {
		fprintln(c.out, "usage: login <username> <password>")

		return
	}

	account := c.app.Accounts.Authenticate(args[0], args[1])
	if account == nil {
		fprintln(c.out, "login failed: wrong username or password")

		return
	}

	fprintln(c.out, "logged in as", account.Username, "("+account.Role+", id "+account.ID+")")
}

func (c *console) passwd(args []string) {
	if len(args) != 2 {
		fprintln(c.out, "usage: passwd <user-id> <new-password>")

		return
	}

	ok, err := c.app.Accounts.UpdatePassword(args[0], args[1])
	if err != nil {
		fprintln(c.out, "error:", err)

		return
	}

	if !ok {
		fprintln(c.out, "no such user:", args[0])

		return
	}

	fprintln(c.out, "password updated")
}

func (c *console) settings(args []string) {
	switch len(args) {
	case 1:
		settings := c.app.Accounts.Settings(args[0])
		if settings == nil {
			fprintln(c.out, "no such user:", args[0])

			return
		}

		for key, value := range settings {
			fprintln(c.out, key, "=", value)
		}
	case 3:
		ok, err := c.app.Accounts.UpdateSettings(args[0], map[string]any{args[1]: parseSettingValue(args[2])})
		if err != nil {
			fprintln(c.out, "error:", err)

			return
		}

		if !ok {
			fprintln(c.out, "no such user:", args[0])

			return
		}

		fprintln(c.out, "settings updated")
	default:
		fprintln(c.out, "usage: settings <user-id> [<key> <value>]")
	}
}

func parseSettingValue(raw string) any {
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}

	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}

	return raw
}

func (c *console) listProjects() {
	projects := c.app.Projects.All()
	if len(projects) == 0 {
		fprintln(c.out, "no projects")

		return
	}

	for _, project := range projects {
		fprintln(c.out, project.ID, project.Status, project.Name)
	}
}

func (c *console) project(args []string) {
	if len(args) < 2 {
		fprintln(c.out, "usage: project add <name> [description] | project rm <id>")

		return
	}

	switch args[0] {
	case "add":
		input := records.ProjectInput{Name: args[1]}
		if len(args) > 2 {
			input.Description = strings.Join(args[2:], " ")
		}

		project, err := c.app.Projects.Create(input)
		if err != nil {
			fprintln(c.out, "error:", err)

			return
		}

		fprintln(c.out, "created project", project.ID)
	case "rm":
		ok, err := c.app.Projects.Delete(args[1])
		if err != nil {
			fprintln(c.out, "error:", err)

			return
		}

		if !ok {
			fprintln(c.out, "no such project:", args[1])

			return
		}

		fprintln(c.out, "deleted project", args[1])
	default:
		fprintln(c.out, "usage: project add <name> [description] | project rm <id>")
	}
}

func (c *console) listQuestions(args []string) {
	if len(args) != 1 {
		fprintln(c.out, "usage: questions <project-id>")

		return
	}

	questions := c.app.Questions.ByProject(args[0])
	if len(questions) == 0 {
		fprintln(c.out, "no questions")

		return
	}

	for _, question := range questions {
		marker := " "
		if question.IsMandatory {
			marker = "*"
		}

		fprintln(c.out, marker, question.ID, question.Type, question.Content)
	}
}

func (c *console) question(args []string) {
	if len(args) < 2 {
		fprintln(c.out, "usage: question add [-m] <project-id> <content> | question rm <id>")

		return
	}

	switch args[0] {
	case "add":
		rest := args[1:]
		mandatory := false

		if rest[0] == "-m" {
			mandatory = true
			rest = rest[1:]
		}

		if len(rest) < 2 {
			fprintln(c.out, "usage: question add [-m] <project-id> <content>")

			return
		}

		question, err := c.app.Questions.Create(records.QuestionInput{
			ProjectID:   rest[0],
			Content:     strings.Join(rest[1:], " "),
			IsMandatory: mandatory,
		})
		if err != nil {
			fprintln(c.out, "error:", err)

			return
		}

		fprintln(c.out, "created question", question.ID)
	case "rm":
		ok, err := c.app.Questions.Delete(args[1])
		if err != nil {
			fprintln(c.out, "error:", err)

			return
		}

		if !ok {
			fprintln(c.out, "no such question:", args[1])

			return
		}

		fprintln(c.out, "deleted question", args[1])
	default:
		fprintln(c.out, "usage: question add [-m] <project-id> <content> | question rm <id>")
	}
}

func (c *console) listCandidates() {
	candidates := c.app.Candidates.All()
	if len(candidates) == 0 {
		fprintln(c.out, "no candidates")

		return
	}

	for _, candidate := range candidates {
		fprintln(c.out, candidate.IDCard, candidate.Name, candidate.ProjectName)
	}
}

func (c *console) candidate(args []string) {
	if len(args) == 0 {
		fprintln(c.out, "usage: candidate add <name> <idCard> [project] | candidate rm <idCard> | candidate clear")

		return
	}

	switch args[0] {
	case "add":
		if len(args) < 3 {
			fprintln(c.out, "usage: candidate add <name> <idCard> [project]")

			return
		}

		candidate := schema.Candidate{Name: args[1], IDCard: args[2]}
		if len(args) > 3 {
			candidate.ProjectName = strings.Join(args[3:], " ")
		}

		ok, err := c.app.Candidates.Add(candidate)
		if err != nil {
			fprintln(c.out, "error:", err)

			return
		}

		if !ok {
			fprintln(c.out, "candidate already registered:", candidate.IDCard)

			return
		}

		account, err := c.app.Accounts.DeriveCandidateAccount(candidate)
		if err != nil {
			fprintln(c.out, "error:", err)

			return
		}

		fprintln(c.out, "registered", candidate.Name, "with login", account.Username)
	case "rm":
		if len(args) != 2 {
			fprintln(c.out, "usage: candidate rm <idCard>")

			return
		}

		ok, err := c.app.Candidates.Delete(args[1])
		if err != nil {
			fprintln(c.out, "error:", err)

			return
		}

		if !ok {
			fprintln(c.out, "no such candidate:", args[1])

			return
		}

		fprintln(c.out, "deleted candidate", args[1])
	case "clear":
		err := c.app.Candidates.Clear()
		if err != nil {
			fprintln(c.out, "error:", err)

			return
		}

		fprintln(c.out, "cleared candidates")
	default:
		fprintln(c.out, "usage: candidate add <name> <idCard> [project] | candidate rm <idCard> | candidate clear")
	}
}

func (c *console) draw(args []string) {
	if len(args) == 0 {
		fprintln(c.out, "usage: draw <project-id> [count]")

		return
	}

	count := c.app.defaultQuestionCount()

	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n <= 0 {
			fprintln(c.out, "invalid count:", args[1])

			return
		}

		count = n
	}

	questions := c.app.Questions.Draw(args[0], count)
	if len(questions) == 0 {
		fprintln(c.out, "no questions for project", args[0])

		return
	}

	for _, question := range questions {
		marker := " "
		if question.IsMandatory {
			marker = "*"
		}

		fprintln(c.out, marker, question.ID, question.Content)
	}
}
