package cli

import "errors"

var (
	errConfigFileNotFound = errors.New("config file not found")
	errConfigInvalid      = errors.New("invalid config file")
	errDataDirEmpty       = errors.New("data_dir cannot be empty")
	errFlagRequiresArg    = errors.New("flag requires an argument")
	errUnknownFlag        = errors.New("unknown flag")
	errProjectIDRequired  = errors.New("project id is required")
	errProjectNotFound    = errors.New("project not found")
)
