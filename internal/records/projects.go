package records

import (
	"go.uber.org/zap"

	"examdesk/internal/docstore"
	"examdesk/internal/schema"
)

// Projects manages the projects collection. Deleting a project cascades to
// its questions through the question manager.
type Projects struct {
	store     *docstore.Store
	questions *Questions
	log       *zap.Logger
}

// NewProjects creates a project manager. The question manager handles the
// cascade on delete.
func NewProjects(store *docstore.Store, questions *Questions, log *zap.Logger) *Projects {
	if log == nil {
		log = zap.NewNop()
	}

	return &Projects{store: store, questions: questions, log: log}
}

// ProjectInput carries the caller-supplied fields for create and update.
// Empty fields keep their defaults on create and their stored values on
// update.
type ProjectInput struct {
	Name        string
	Description string
	Status      string
}

// All returns every project. Read failures degrade to an empty slice.
func (p *Projects) All() []schema.Project {
	projects, err := docstore.Read[schema.Project](p.store, schema.KindProjects)
	if err != nil {
		p.log.Warn("reading projects, proceeding with empty collection", zap.Error(err))
	}

	return projects
}

// Get returns the project with the given id, or nil.
func (p *Projects) Get(projectID string) *schema.Project {
	for _, project := range p.All() {
		if project.ID == projectID {
			return &project
		}
	}

	return nil
}

// Create appends a new project with a generated id and creation timestamp.
func (p *Projects) Create(input ProjectInput) (*schema.Project, error) {
	projects := p.All()

	status := input.Status
	if status == "" {
		status = "active"
	}

	project := schema.Project{
		ID:          schema.GenerateID(schema.PrefixProject),
		Name:        input.Name,
		Description: input.Description,
		Status:      status,
		CreatedAt:   schema.FormatDateTime(),
	}

	projects = append(projects, project)

	err := docstore.Write(p.store, schema.KindProjects, projects)
	if err != nil {
		return nil, err
	}

	return &project, nil
}

// Update overwrites the supplied fields of a project, keeping stored values
// for empty ones. Returns nil when the id is unknown.
func (p *Projects) Update(projectID string, input ProjectInput) (*schema.Project, error) {
	projects := p.All()

	for i := range projects {
		if projects[i].ID != projectID {
			continue
		}

		if input.Name != "" {
			projects[i].Name = input.Name
		}

		if input.Description != "" {
			projects[i].Description = input.Description
		}

		if input.Status != "" {
			projects[i].Status = input.Status
		}

		err := docstore.Write(p.store, schema.KindProjects, projects)
		if err != nil {
			return nil, err
		}

		return &projects[i], nil
	}

	return nil, nil
}

// Delete removes a project and cascade-deletes its questions (and their
// image files). Returns false without running the cascade when the id is
// unknown.
func (p *Projects) Delete(projectID string) (bool, error) {
	projects := p.All()

	remaining := make([]schema.Project, 0, len(projects))

	for _, project := range projects {
		if project.ID != projectID {
			remaining = append(remaining, project)
		}
	}

	if len(remaining) == len(projects) {
		return false, nil
	}

	err := p.questions.DeleteByProject(projectID)
	if err != nil {
		return false, err
	}

	return true, docstore.Write(p.store, schema.KindProjects, remaining)
}
