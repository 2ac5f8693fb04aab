package integrity

import (
	"os"
	"time"

	"examdesk/internal/schema"
)

// FileInfo describes one collection file on disk.
type FileInfo struct {
	Kind         schema.Kind
	Path         string
	Exists       bool
	Size         int64
	LastModified time.Time
}

// Report is a read-only diagnostic of the store's directories and files.
type Report struct {
	DataDir           string
	DBDir             string
	ImagesDir         string
	QuestionImagesDir string
	Files             []FileInfo
}

// FileReport returns existence, size, last-modified time, and path for
// every collection file. It never mutates the store.
func (m *Manager) FileReport() Report {
	report := Report{
		DataDir:           m.store.Root(),
		DBDir:             m.store.DBDir(),
		ImagesDir:         m.store.ImagesDir(),
		QuestionImagesDir: m.store.QuestionImagesDir(),
	}

	for _, kind := range schema.Kinds() {
		path := m.store.FilePath(kind)
		info := FileInfo{Kind: kind, Path: path}

		stat, err := os.Stat(path)
		if err == nil {
			info.Exists = true
			info.Size = stat.Size()
			info.LastModified = stat.ModTime()
		}

		report.Files = append(report.Files, info)
	}

	return report
}
