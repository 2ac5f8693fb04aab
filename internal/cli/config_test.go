package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, ConfigFileName)

	err := os.WriteFile(path, []byte(content), 0o600)
	if err != nil {
		t.Fatalf("write config: %v", err)
	}

	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg, source, err := LoadConfig(t.TempDir(), "", "", nil)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.DataDir != "data" {
		t.Errorf("DataDir = %q, want default data", cfg.DataDir)
	}

	if source != "" {
		t.Errorf("source = %q, want empty for defaults", source)
	}
}

func TestLoadConfig_ProjectFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeConfigFile(t, dir, `{"data_dir": "store"}`)

	cfg, source, err := LoadConfig(dir, "", "", nil)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.DataDir != "store" {
		t.Errorf("DataDir = %q, want store", cfg.DataDir)
	}

	if source != path {
		t.Errorf("source = %q, want %q", source, path)
	}
}

func TestLoadConfig_JSONCCommentsAndTrailingCommas(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfigFile(t, dir, `{
  // where the collections live
  "data_dir": "store", /* trailing comma below */
}`)

	cfg, _, err := LoadConfig(dir, "", "", nil)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.DataDir != "store" {
		t.Errorf("DataDir = %q, want store", cfg.DataDir)
	}
}

func TestLoadConfig_ExplicitEmptyDataDirIsAnError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfigFile(t, dir, `{"data_dir": ""}`)

	_, _, err := LoadConfig(dir, "", "", nil)
	if !errors.Is(err, errDataDirEmpty) {
		t.Errorf("err = %v, want errDataDirEmpty", err)
	}
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfigFile(t, dir, `{"data_dir": `)

	_, _, err := LoadConfig(dir, "", "", nil)
	if !errors.Is(err, errConfigInvalid) {
		t.Errorf("err = %v, want errConfigInvalid", err)
	}
}

func TestLoadConfig_ExplicitConfigPathMustExist(t *testing.T) {
	t.Parallel()

	_, _, err := LoadConfig(t.TempDir(), "missing.json", "", nil)
	if !errors.Is(err, errConfigFileNotFound) {
		t.Errorf("err = %v, want errConfigFileNotFound", err)
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfigFile(t, dir, `{"data_dir": "from-file"}`)

	env := map[string]string{EnvDataDir: "from-env"}

	cfg, _, err := LoadConfig(dir, "", "", env)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.DataDir != "from-env" {
		t.Errorf("env should override file: DataDir = %q", cfg.DataDir)
	}

	cfg, _, err = LoadConfig(dir, "", "from-flag", env)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.DataDir != "from-flag" {
		t.Errorf("flag should override env: DataDir = %q", cfg.DataDir)
	}
}
