// Package schema defines the versioned envelope format, the four record
// collections of the exam store, their default structures, and the
// structural validators that guard every file access.
package schema

// Kind identifies one of the record collections.
type Kind string

// The four collections. The on-disk file for a kind is <kind>.json.
const (
	KindUsers      Kind = "users"
	KindProjects   Kind = "projects"
	KindQuestions  Kind = "questions"
	KindCandidates Kind = "candidates"
)

// Kinds returns all collection kinds in their canonical order.
func Kinds() []Kind {
	return []Kind{KindUsers, KindProjects, KindQuestions, KindCandidates}
}

// FileName returns the collection file name for a kind.
func (k Kind) FileName() string {
	return string(k) + ".json"
}

// CurrentVersion is the envelope version written for new collection files.
const CurrentVersion = "1.0.0"

// Envelope is the versioned wrapper around a collection's record sequence.
// Data is always a sequence; LastUpdated is refreshed on every write.
type Envelope[T any] struct {
	Version     string `json:"version"`
	LastUpdated string `json:"lastUpdated"`
	Data        []T    `json:"data"`
}
