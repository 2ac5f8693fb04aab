package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"examdesk/internal/records"
)

// runExamdesk invokes Run with the given working directory and arguments,
// capturing both streams.
func runExamdesk(t *testing.T, dir string, args ...string) (stdout, stderr string, code int) {
	t.Helper()

	var out, errOut strings.Builder

	argv := append([]string{"examdesk", "-C", dir}, args...)
	code = Run(strings.NewReader(""), &out, &errOut, argv, map[string]string{})

	return out.String(), errOut.String(), code
}

// newTestApp wires an App over <dir>/data, the directory the default config
// resolves to.
func newTestApp(t *testing.T, dir string) *App {
	t.Helper()

	return newApp(DefaultConfig(), filepath.Join(dir, "data"), nil)
}

func TestRun_NoArgsPrintsUsage(t *testing.T) {
	t.Parallel()

	var out, errOut strings.Builder

	code := Run(strings.NewReader(""), &out, &errOut, []string{"examdesk"}, nil)
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}

	if !strings.Contains(out.String(), "Usage: examdesk") {
		t.Errorf("usage not printed:\n%s", out.String())
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	t.Parallel()

	_, stderr, code := runExamdesk(t, t.TempDir(), "frobnicate")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}

	if !strings.Contains(stderr, "unknown command: frobnicate") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRun_UnknownGlobalFlag(t *testing.T) {
	t.Parallel()

	_, stderr, code := runExamdesk(t, t.TempDir(), "--bogus", "init")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}

	if !strings.Contains(stderr, "unknown flag") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRun_HelpFlag(t *testing.T) {
	t.Parallel()

	stdout, _, code := runExamdesk(t, t.TempDir(), "--help")
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}

	for _, cmd := range []string{"init", "validate", "repair", "info", "draw", "console", "print-config"} {
		if !strings.Contains(stdout, cmd) {
			t.Errorf("usage missing command %q:\n%s", cmd, stdout)
		}
	}
}

func TestInitCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	stdout, stderr, code := runExamdesk(t, dir, "init")
	if code != 0 {
		t.Fatalf("init failed: code %d, stderr %q", code, stderr)
	}

	for _, kind := range []string{"users", "projects", "questions", "candidates"} {
		if !strings.Contains(stdout, "initialized: "+kind) {
			t.Errorf("init output missing %q:\n%s", kind, stdout)
		}

		path := filepath.Join(dir, "data", "db", kind+".json")
		if _, err := os.Stat(path); err != nil {
			t.Errorf("collection file missing: %v", err)
		}
	}
}

func TestValidateCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	runExamdesk(t, dir, "init")

	stdout, _, code := runExamdesk(t, dir, "validate")
	if code != 0 {
		t.Fatalf("validate failed: code %d\n%s", code, stdout)
	}

	if !strings.Contains(stdout, "valid: users") {
		t.Errorf("validate output:\n%s", stdout)
	}

	corruptPath := filepath.Join(dir, "data", "db", "projects.json")

	err := os.WriteFile(corruptPath, []byte(`{ broken`), 0o600)
	if err != nil {
		t.Fatalf("corrupt projects: %v", err)
	}

	_, stderr, code := runExamdesk(t, dir, "validate")
	if code != 1 {
		t.Errorf("validate of corrupt store: code = %d, want 1", code)
	}

	if !strings.Contains(stderr, "invalid: projects") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRepairCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	runExamdesk(t, dir, "init")

	stdout, _, code := runExamdesk(t, dir, "repair")
	if code != 0 || !strings.Contains(stdout, "Nothing to repair") {
		t.Errorf("repair of clean store: code %d, out %q", code, stdout)
	}

	corruptPath := filepath.Join(dir, "data", "db", "questions.json")

	err := os.WriteFile(corruptPath, []byte(`nonsense`), 0o600)
	if err != nil {
		t.Fatalf("corrupt questions: %v", err)
	}

	stdout, stderr, code := runExamdesk(t, dir, "repair")
	if code != 0 {
		t.Fatalf("repair failed: code %d, stderr %q", code, stderr)
	}

	if !strings.Contains(stdout, "repaired: questions") {
		t.Errorf("repair output:\n%s", stdout)
	}

	_, _, code = runExamdesk(t, dir, "validate")
	if code != 0 {
		t.Error("store still invalid after repair")
	}
}

func TestInfoCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	stdout, _, code := runExamdesk(t, dir, "info")
	if code != 0 {
		t.Fatalf("info failed: code %d", code)
	}

	if !strings.Contains(stdout, "users: missing") {
		t.Errorf("info on empty dir should report missing files:\n%s", stdout)
	}

	runExamdesk(t, dir, "init")

	stdout, _, code = runExamdesk(t, dir, "info")
	if code != 0 {
		t.Fatalf("info failed: code %d", code)
	}

	if !strings.Contains(stdout, "bytes, modified") {
		t.Errorf("info after init:\n%s", stdout)
	}
}

func TestDrawCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	runExamdesk(t, dir, "init")

	_, stderr, code := runExamdesk(t, dir, "draw")
	if code != 1 || !strings.Contains(stderr, "project id is required") {
		t.Errorf("draw without id: code %d, stderr %q", code, stderr)
	}

	_, stderr, code = runExamdesk(t, dir, "draw", "proj_missing")
	if code != 1 || !strings.Contains(stderr, "project not found") {
		t.Errorf("draw of unknown project: code %d, stderr %q", code, stderr)
	}

	app := newTestApp(t, dir)

	project, err := app.Projects.Create(records.ProjectInput{Name: "Math"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	for i := range 3 {
		_, err := app.Questions.Create(records.QuestionInput{
			ProjectID:   project.ID,
			Content:     "question",
			IsMandatory: i == 0,
		})
		if err != nil {
			t.Fatalf("create question: %v", err)
		}
	}

	stdout, _, code := runExamdesk(t, dir, "draw", project.ID, "--count", "2")
	if code != 0 {
		t.Fatalf("draw failed: code %d", code)
	}

	if !strings.Contains(stdout, "drew 2 questions") {
		t.Errorf("draw output:\n%s", stdout)
	}
}

func TestPrintConfigCommand(t *testing.T) {
	t.Parallel()

	stdout, _, code := runExamdesk(t, t.TempDir(), "print-config")
	if code != 0 {
		t.Fatalf("print-config failed: code %d", code)
	}

	if !strings.Contains(stdout, `"data_dir": "data"`) {
		t.Errorf("print-config output:\n%s", stdout)
	}

	if !strings.Contains(stdout, "# Source: (defaults only)") {
		t.Errorf("source line missing:\n%s", stdout)
	}
}
