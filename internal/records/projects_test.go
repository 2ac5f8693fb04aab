package records

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"examdesk/internal/docstore"
	"examdesk/internal/schema"
)

func newManagers(t *testing.T) (*docstore.Store, *Projects, *Questions) {
	t.Helper()

	store := newTestStore(t)
	questions := NewQuestions(store, nil)
	projects := NewProjects(store, questions, nil)

	return store, projects, questions
}

func TestProjectCreate_DefaultsAndID(t *testing.T) {
	t.Parallel()

	_, projects, _ := newManagers(t)

	project, err := projects.Create(ProjectInput{Name: "Math Finals"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if !regexp.MustCompile(`^proj_\d{16}$`).MatchString(project.ID) {
		t.Errorf("id = %q, want proj_ prefix with timestamp and random suffix", project.ID)
	}

	if project.Status != "active" {
		t.Errorf("status = %q, want active default", project.Status)
	}

	if project.CreatedAt == "" {
		t.Error("createdAt not set")
	}

	if got := projects.Get(project.ID); got == nil || got.Name != "Math Finals" {
		t.Errorf("Get() = %+v", got)
	}
}

func TestProjectUpdate_EmptyFieldsKeepStoredValues(t *testing.T) {
	t.Parallel()

	_, projects, _ := newManagers(t)

	created, err := projects.Create(ProjectInput{Name: "Math", Description: "algebra"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := projects.Update(created.ID, ProjectInput{Status: "archived"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Name != "Math" || updated.Description != "algebra" {
		t.Errorf("empty input fields overwrote stored values: %+v", updated)
	}

	if updated.Status != "archived" {
		t.Errorf("status = %q, want archived", updated.Status)
	}

	missing, err := projects.Update("proj_missing", ProjectInput{Name: "x"})
	if err != nil || missing != nil {
		t.Errorf("Update(unknown) = %+v, %v, want nil, nil", missing, err)
	}
}

func TestProjectDelete_CascadesToQuestionsAndImages(t *testing.T) {
	t.Parallel()

	store, projects, questions := newManagers(t)

	project, err := projects.Create(ProjectInput{Name: "Math"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	other, err := projects.Create(ProjectInput{Name: "Physics"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	imagePath, err := store.SaveImage([]byte("png"), "figure.png")
	if err != nil {
		t.Fatalf("SaveImage() error = %v", err)
	}

	for _, input := range []QuestionInput{
		{ProjectID: project.ID, Content: "2+2?"},
		{ProjectID: project.ID, Content: "what is shown?", Type: schema.QuestionImage, ImageURL: imagePath},
		{ProjectID: project.ID, Content: "5*5?", IsMandatory: true},
		{ProjectID: other.ID, Content: "F=ma?"},
	} {
		_, err := questions.Create(input)
		if err != nil {
			t.Fatalf("Create question: %v", err)
		}
	}

	ok, err := projects.Delete(project.ID)
	if err != nil || !ok {
		t.Fatalf("Delete() = %v, %v", ok, err)
	}

	if projects.Get(project.ID) != nil {
		t.Error("deleted project still present")
	}

	if got := questions.ByProject(project.ID); len(got) != 0 {
		t.Errorf("cascade left %d questions", len(got))
	}

	if got := questions.ByProject(other.ID); len(got) != 1 {
		t.Errorf("cascade removed another project's questions: %d left", len(got))
	}

	_, err = os.Stat(filepath.Join(store.Root(), filepath.FromSlash(imagePath)))
	if !os.IsNotExist(err) {
		t.Errorf("cascade left the question image on disk: %v", err)
	}
}

func TestProjectDelete_UnknownIDDoesNotCascade(t *testing.T) {
	t.Parallel()

	_, projects, questions := newManagers(t)

	project, err := projects.Create(ProjectInput{Name: "Math"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err = questions.Create(QuestionInput{ProjectID: project.ID, Content: "2+2?"})
	if err != nil {
		t.Fatalf("Create question: %v", err)
	}

	ok, err := projects.Delete("proj_missing")
	if err != nil || ok {
		t.Fatalf("Delete(unknown) = %v, %v, want false, nil", ok, err)
	}

	if got := questions.ByProject(project.ID); len(got) != 1 {
		t.Errorf("delete of unknown project touched questions: %d left", len(got))
	}
}
