// Package integrity orchestrates validation and recovery of the collection
// files: it bootstraps the directory layout, quarantines corrupt files to
// timestamped backups, and regenerates missing or invalid collections from
// their typed defaults.
package integrity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
	"go.uber.org/zap"

	"examdesk/internal/docstore"
	"examdesk/internal/schema"
)

// Manager runs the per-collection integrity state machine.
type Manager struct {
	store *docstore.Store
	log   *zap.Logger
}

// New creates a manager over the given store. A nil logger is replaced with
// a no-op one.
func New(store *docstore.Store, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}

	return &Manager{store: store, log: log}
}

// InitResult reports which kinds were initialized and which failed.
// Success is the conjunction over all kinds.
type InitResult struct {
	Success     bool
	Initialized []schema.Kind
	Failed      []schema.Kind
}

// Issue names an invalid collection and the reason it failed validation.
type Issue struct {
	Kind   schema.Kind
	Reason string
}

// ValidationReport partitions the kinds into valid and invalid.
type ValidationReport struct {
	Success bool
	Valid   []schema.Kind
	Invalid []Issue
}

// RepairResult reports which invalid kinds were regenerated.
type RepairResult struct {
	Success  bool
	Repaired []schema.Kind
	Failed   []schema.Kind
}

// EnsureDirectories creates the data directory layout idempotently.
func (m *Manager) EnsureDirectories() error {
	return m.store.EnsureDirectories()
}

// InitializeAll runs the integrity state machine for every kind. With force
// set, each existing file is backed up and regenerated regardless of state.
func (m *Manager) InitializeAll(force bool) InitResult {
	result := InitResult{Success: true}

	err := m.EnsureDirectories()
	if err != nil {
		m.log.Error("ensure directories", zap.Error(err))

		result.Success = false
		result.Failed = schema.Kinds()

		return result
	}

	for _, kind := range schema.Kinds() {
		err := m.InitializeFile(kind, force)
		if err != nil {
			m.log.Error("initialize collection", zap.String("kind", string(kind)), zap.Error(err))

			result.Success = false
			result.Failed = append(result.Failed, kind)

			continue
		}

		result.Initialized = append(result.Initialized, kind)
	}

	return result
}

// InitializeFile runs the state machine for one kind:
//
//	missing        -> regenerate defaults
//	corrupt        -> backup, then regenerate
//	valid, !force  -> untouched (read-only verification)
//	force          -> backup if present, then regenerate
func (m *Manager) InitializeFile(kind schema.Kind, force bool) error {
	path := m.store.FilePath(kind)

	_, statErr := os.Stat(path)
	exists := statErr == nil

	if exists && !force {
		err := m.validateFile(kind)
		if err == nil {
			return nil
		}

		m.log.Warn("collection invalid, regenerating",
			zap.String("kind", string(kind)), zap.Error(err))

		backupErr := m.backupCorrupted(path)
		if backupErr != nil {
			return backupErr
		}
	} else if exists {
		backupErr := m.backupCorrupted(path)
		if backupErr != nil {
			return backupErr
		}
	}

	return m.writeDefaults(kind)
}

// ValidateAll verifies every collection without repairing anything.
func (m *Manager) ValidateAll() ValidationReport {
	report := ValidationReport{Success: true}

	for _, kind := range schema.Kinds() {
		err := m.validateFile(kind)
		if err != nil {
			report.Success = false
			report.Invalid = append(report.Invalid, Issue{Kind: kind, Reason: err.Error()})

			continue
		}

		report.Valid = append(report.Valid, kind)
	}

	return report
}

// RepairAll validates the store and regenerates every invalid collection.
// A fully valid store reports zero repairs without touching disk.
func (m *Manager) RepairAll() RepairResult {
	validation := m.ValidateAll()
	if validation.Success {
		return RepairResult{Success: true}
	}

	result := RepairResult{Success: true}

	for _, issue := range validation.Invalid {
		m.log.Info("repairing collection",
			zap.String("kind", string(issue.Kind)), zap.String("reason", issue.Reason))

		err := m.InitializeFile(issue.Kind, true)
		if err != nil {
			m.log.Error("repair collection", zap.String("kind", string(issue.Kind)), zap.Error(err))

			result.Success = false
			result.Failed = append(result.Failed, issue.Kind)

			continue
		}

		result.Repaired = append(result.Repaired, issue.Kind)
	}

	return result
}

// validateFile runs document, envelope, and collection validation for one
// kind. It never writes.
func (m *Manager) validateFile(kind schema.Kind) error {
	path := m.store.FilePath(kind)

	raw, err := os.ReadFile(path) //nolint:gosec // path derives from configured data dir
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: file does not exist", schema.ErrParse)
		}

		return fmt.Errorf("%w: %v", schema.ErrParse, err)
	}

	doc, err := schema.ValidateDocument(raw)
	if err != nil {
		return err
	}

	records, err := schema.ValidateEnvelope(doc)
	if err != nil {
		return err
	}

	return schema.ValidateCollection(records, kind)
}

// writeDefaults regenerates a collection file from its default structure.
func (m *Manager) writeDefaults(kind schema.Kind) error {
	err := m.EnsureDirectories()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(schema.DefaultDocument(kind), "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal defaults for %s: %v", docstore.ErrWrite, kind, err)
	}

	path := m.store.FilePath(kind)

	err = atomic.WriteFile(path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", docstore.ErrWrite, kind, err)
	}

	m.log.Info("regenerated collection", zap.String("kind", string(kind)))

	return nil
}

// backupCorrupted copies the live file to <path>.backup.<timestamp> before
// it is regenerated, preserving forensic evidence. An existing backup of
// the same instant is never overwritten.
func (m *Manager) backupCorrupted(path string) error {
	raw, err := os.ReadFile(path) //nolint:gosec // path derives from configured data dir
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return fmt.Errorf("%w: backup %s: %v", docstore.ErrIO, path, err)
	}

	backupPath := path + ".backup." + schema.BackupTimestamp()

	for suffix := 1; ; suffix++ {
		_, statErr := os.Stat(backupPath)
		if statErr != nil {
			break
		}

		backupPath = fmt.Sprintf("%s.backup.%s-%d", path, schema.BackupTimestamp(), suffix)
	}

	err = os.WriteFile(backupPath, raw, 0o600)
	if err != nil {
		return fmt.Errorf("%w: backup %s: %v", docstore.ErrIO, path, err)
	}

	m.log.Warn("quarantined corrupt file", zap.String("backup", backupPath))

	return nil
}
