package schema

import (
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var validRoles = []string{RoleAdmin, RoleCandidate}

var validQuestionTypes = []string{QuestionText, QuestionImage, QuestionMixed}

// idCardPattern matches a Chinese resident id: 17 digits plus a trailing
// digit or 'X'.
var idCardPattern = regexp.MustCompile(`^\d{17}[\dX]$`)

// ValidateDocument checks that raw bytes are non-empty, well-formed JSON and
// returns the decoded document.
func ValidateDocument(raw []byte) (any, error) {
	if strings.TrimSpace(string(raw)) == "" {
		return nil, fmt.Errorf("%w: file is empty", ErrParse)
	}

	var doc any

	err := json.Unmarshal(raw, &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return doc, nil
}

// ValidateEnvelope checks the envelope shape: an object with a non-empty
// version and a data array. Returns the record sequence.
func ValidateEnvelope(doc any) ([]any, error) {
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: document is not an object", ErrStructure)
	}

	version, _ := obj["version"].(string)
	if version == "" {
		return nil, fmt.Errorf("%w: missing version", ErrStructure)
	}

	records, ok := obj["data"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: data field must be an array", ErrStructure)
	}

	return records, nil
}

// ValidateCollection checks every record of a kind against its required
// fields and domain constraints. Unknown kinds report ok so future
// collections pass through untouched.
func ValidateCollection(records []any, kind Kind) error {
	switch kind {
	case KindUsers:
		return validateUsers(records)
	case KindProjects:
		return validateProjects(records)
	case KindQuestions:
		return validateQuestions(records)
	case KindCandidates:
		return validateCandidates(records)
	default:
		return nil
	}
}

func validateUsers(records []any) error {
	for _, rec := range records {
		user, err := asRecord(rec)
		if err != nil {
			return err
		}

		err = requireFields(user, "id", "username", "role")
		if err != nil {
			return fmt.Errorf("user %w (id, username, role)", err)
		}

		role, _ := user["role"].(string)
		if !slices.Contains(validRoles, role) {
			return fmt.Errorf("%w: user role %q", ErrInvalidEnum, role)
		}
	}

	return nil
}

func validateProjects(records []any) error {
	for _, rec := range records {
		project, err := asRecord(rec)
		if err != nil {
			return err
		}

		err = requireFields(project, "id", "name")
		if err != nil {
			return fmt.Errorf("project %w (id, name)", err)
		}
	}

	return nil
}

func validateQuestions(records []any) error {
	for _, rec := range records {
		question, err := asRecord(rec)
		if err != nil {
			return err
		}

		err = requireFields(question, "id", "projectId", "content")
		if err != nil {
			return fmt.Errorf("question %w (id, projectId, content)", err)
		}

		questionType, _ := question["type"].(string)
		if !slices.Contains(validQuestionTypes, questionType) {
			return fmt.Errorf("%w: question type %q", ErrInvalidEnum, questionType)
		}
	}

	return nil
}

func validateCandidates(records []any) error {
	for _, rec := range records {
		candidate, err := asRecord(rec)
		if err != nil {
			return err
		}

		err = requireFields(candidate, "id", "name", "idCard")
		if err != nil {
			return fmt.Errorf("candidate %w (id, name, idCard)", err)
		}

		idCard, _ := candidate["idCard"].(string)
		if !idCardPattern.MatchString(idCard) {
			return fmt.Errorf("%w: idCard %q", ErrInvalidFormat, idCard)
		}
	}

	return nil
}

func asRecord(rec any) (map[string]any, error) {
	obj, ok := rec.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: record is not an object", ErrStructure)
	}

	return obj, nil
}

// requireFields checks that each named field is a non-empty string.
func requireFields(record map[string]any, fields ...string) error {
	for _, field := range fields {
		value, _ := record[field].(string)
		if value == "" {
			return fmt.Errorf("%w: missing required field %s", ErrStructure, field)
		}
	}

	return nil
}
