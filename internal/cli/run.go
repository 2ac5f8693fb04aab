// Package cli implements the examdesk command line: store bootstrap,
// validation, repair, diagnostics, question drawing, and an interactive
// operations console.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	minArgs      = 2
	consumedOne  = 1
	consumedTwo  = 2
	consumedNone = 0
	helpFlag     = "--help"
)

// Run is the main entry point. Returns exit code.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string) int {
	if len(args) < minArgs {
		printUsage(out)

		return 0
	}

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	// Default workDir to current directory
	workDir := flags.workDir
	if workDir == "" {
		workDir, err = os.Getwd()
		if err != nil {
			fprintln(errOut, "error: cannot get working directory:", err)

			return 1
		}
	}

	cfg, source, err := LoadConfig(workDir, flags.configPath, flags.dataDir, env)
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	// Resolve data directory to absolute path
	dataDirAbs := cfg.DataDir
	if !filepath.IsAbs(dataDirAbs) {
		dataDirAbs = filepath.Join(workDir, dataDirAbs)
	}

	if len(flags.remaining) == 0 {
		printUsage(out)

		return 0
	}

	cmd := flags.remaining[0]
	cmdArgs := flags.remaining[1:]

	if cmd == "-h" || cmd == helpFlag {
		printUsage(out)

		return 0
	}

	log := newLogger(errOut, flags.verbose)
	defer func() { _ = log.Sync() }()

	app := newApp(cfg, dataDirAbs, log)

	switch cmd {
	case "init":
		return cmdInit(out, errOut, app, cmdArgs)
	case "validate":
		return cmdValidate(out, errOut, app, cmdArgs)
	case "repair":
		return cmdRepair(out, errOut, app, cmdArgs)
	case "info":
		return cmdInfo(out, app, cmdArgs)
	case "draw":
		return cmdDraw(out, errOut, app, cmdArgs)
	case "console":
		return cmdConsole(in, out, errOut, app)
	case "print-config":
		return cmdPrintConfig(out, cfg, source)
	default:
		fprintln(errOut, "error: unknown command:", cmd)
		printUsage(errOut)

		return 1
	}
}

type globalFlags struct {
	workDir    string
	configPath string
	dataDir    string
	verbose    bool
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a flag at args[idx]. Returns number of args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	// -C/--cwd flag (work directory)
	if (arg == "-C" || arg == "--cwd") && idx+1 < len(args) {
		flags.workDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "-C"); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	if after, ok := strings.CutPrefix(arg, "--cwd="); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	// -c/--config flag
	if arg == "-c" || arg == "--config" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", errFlagRequiresArg, arg)
		}

		flags.configPath = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--config="); ok {
		flags.configPath = after

		return consumedOne, nil
	}

	// --data-dir flag
	if arg == "--data-dir" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", errFlagRequiresArg, arg)
		}

		flags.dataDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--data-dir="); ok {
		flags.dataDir = after

		return consumedOne, nil
	}

	if arg == "-v" || arg == "--verbose" {
		flags.verbose = true

		return consumedOne, nil
	}

	// -h/--help flags
	if arg == "-h" || arg == helpFlag {
		flags.remaining = []string{helpFlag}

		return len(args) - idx, nil
	}

	// Unknown flag
	if strings.HasPrefix(arg, "-") && arg != "-" {
		return consumedNone, fmt.Errorf("%w: %s", errUnknownFlag, arg)
	}

	// Not a flag
	return consumedNone, nil
}

func cmdPrintConfig(out io.Writer, cfg Config, source string) int {
	formatted, err := FormatConfig(cfg)
	if err != nil {
		return 1
	}

	fprintln(out, formatted)
	fprintln(out, "")

	if source != "" {
		fprintln(out, "# Source:", source)
	} else {
		fprintln(out, "# Source: (defaults only)")
	}

	return 0
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func hasHelpFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == helpFlag {
			return true
		}
	}

	return false
}

func printUsage(writer io.Writer) {
	fprintln(writer, `examdesk - local record store for exam administration

Usage: examdesk [options] <command> [args]

Options:
  -C, --cwd <dir>       Run as if started in <dir>
  -c, --config <file>   Use specified config file
      --data-dir <dir>  Override the data directory
  -v, --verbose         Enable debug logging

Commands:`)
	fprintln(writer, initHelp)
	fprintln(writer, validateHelp)
	fprintln(writer, repairHelp)
	fprintln(writer, infoHelp)
	fprintln(writer, drawHelp)
	fprintln(writer, consoleHelp)
	fprintln(writer, `  print-config           Show resolved configuration`)
}
