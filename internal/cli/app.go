package cli

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"examdesk/internal/docstore"
	"examdesk/internal/integrity"
	"examdesk/internal/records"
)

// App wires the store, integrity manager, and record managers for one
// resolved data directory.
type App struct {
	Config     Config
	DataDir    string
	Store      *docstore.Store
	Integrity  *integrity.Manager
	Accounts   *records.Accounts
	Projects   *records.Projects
	Questions  *records.Questions
	Candidates *records.Candidates
	Log        *zap.Logger
}

func newApp(cfg Config, dataDir string, log *zap.Logger) *App {
	store := docstore.New(dataDir, log)
	questions := records.NewQuestions(store, log)

	return &App{
		Config:     cfg,
		DataDir:    dataDir,
		Store:      store,
		Integrity:  integrity.New(store, log),
		Accounts:   records.NewAccounts(store, log),
		Projects:   records.NewProjects(store, questions, log),
		Questions:  questions,
		Candidates: records.NewCandidates(store, log),
		Log:        log,
	}
}

// newLogger builds a console logger writing to errOut. Warn and above by
// default, everything with verbose.
func newLogger(errOut io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(errOut),
		level,
	)

	return zap.New(core)
}
