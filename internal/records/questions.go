package records

import (
	"go.uber.org/zap"

	"examdesk/internal/docstore"
	"examdesk/internal/schema"
)

// Questions manages the questions collection and the image files owned by
// its records.
type Questions struct {
	store *docstore.Store
	log   *zap.Logger
}

// NewQuestions creates a question manager.
func NewQuestions(store *docstore.Store, log *zap.Logger) *Questions {
	if log == nil {
		log = zap.NewNop()
	}

	return &Questions{store: store, log: log}
}

// QuestionInput carries the caller-supplied fields for create. Type
// defaults to text.
type QuestionInput struct {
	ProjectID   string
	Type        string
	Content     string
	ImageURL    string
	IsMandatory bool
}

// QuestionUpdate carries the fields to overwrite on update. Empty ProjectID
// and Type keep the stored values; nil pointers leave their field untouched.
type QuestionUpdate struct {
	ProjectID   string
	Type        string
	Content     *string
	ImageURL    *string
	IsMandatory *bool
}

// All returns every question. Read failures degrade to an empty slice.
func (q *Questions) All() []schema.Question {
	questions, err := docstore.Read[schema.Question](q.store, schema.KindQuestions)
	if err != nil {
		q.log.Warn("reading questions, proceeding with empty collection", zap.Error(err))
	}

	return questions
}

// ByProject returns the questions belonging to a project, in stored order.
func (q *Questions) ByProject(projectID string) []schema.Question {
	var pool []schema.Question

	for _, question := range q.All() {
		if question.ProjectID == projectID {
			pool = append(pool, question)
		}
	}

	return pool
}

// Get returns the question with the given id, or nil.
func (q *Questions) Get(questionID string) *schema.Question {
	for _, question := range q.All() {
		if question.ID == questionID {
			return &question
		}
	}

	return nil
}

// Create appends a new question with a generated id and creation timestamp.
func (q *Questions) Create(input QuestionInput) (*schema.Question, error) {
	questions := q.All()

	questionType := input.Type
	if questionType == "" {
		questionType = schema.QuestionText
	}

	question := schema.Question{
		ID:          schema.GenerateID(schema.PrefixQuestion),
		ProjectID:   input.ProjectID,
		Type:        questionType,
		Content:     input.Content,
		ImageURL:    input.ImageURL,
		IsMandatory: input.IsMandatory,
		CreatedAt:   schema.FormatDateTime(),
	}

	questions = append(questions, question)

	err := docstore.Write(q.store, schema.KindQuestions, questions)
	if err != nil {
		return nil, err
	}

	return &question, nil
}

// Update overwrites the supplied fields of a question. When the update
// replaces a non-empty stored image path with a different one, the old
// image file is deleted before the record is rewritten. Returns nil when
// the id is unknown.
func (q *Questions) Update(questionID string, update QuestionUpdate) (*schema.Question, error) {
	questions := q.All()

	for i := range questions {
		if questions[i].ID != questionID {
			continue
		}

		old := questions[i]

		if update.ImageURL != nil && old.ImageURL != "" && *update.ImageURL != old.ImageURL {
			err := q.store.DeleteImage(old.ImageURL)
			if err != nil {
				q.log.Warn("deleting replaced image", zap.Error(err))
			}
		}

		if update.ProjectID != "" {
			questions[i].ProjectID = update.ProjectID
		}

		if update.Type != "" {
			questions[i].Type = update.Type
		}

		if update.Content != nil {
			questions[i].Content = *update.Content
		}

		if update.ImageURL != nil {
			questions[i].ImageURL = *update.ImageURL
		}

		if update.IsMandatory != nil {
			questions[i].IsMandatory = *update.IsMandatory
		}

		err := docstore.Write(q.store, schema.KindQuestions, questions)
		if err != nil {
			return nil, err
		}

		return &questions[i], nil
	}

	return nil, nil
}

// Delete removes a question and its image file, if any. Returns false when
// the id is unknown.
func (q *Questions) Delete(questionID string) (bool, error) {
	questions := q.All()

	remaining := make([]schema.Question, 0, len(questions))

	var deleted *schema.Question

	for _, question := range questions {
		if question.ID == questionID {
			deleted = &question

			continue
		}

		remaining = append(remaining, question)
	}

	if deleted == nil {
		return false, nil
	}

	if deleted.ImageURL != "" {
		err := q.store.DeleteImage(deleted.ImageURL)
		if err != nil {
			q.log.Warn("deleting question image", zap.Error(err))
		}
	}

	return true, docstore.Write(q.store, schema.KindQuestions, remaining)
}

// DeleteByProject removes every question of a project in one rewrite,
// deleting each owned image file first.
func (q *Questions) DeleteByProject(projectID string) error {
	questions := q.All()

	remaining := make([]schema.Question, 0, len(questions))

	for _, question := range questions {
		if question.ProjectID != projectID {
			remaining = append(remaining, question)

			continue
		}

		if question.ImageURL != "" {
			err := q.store.DeleteImage(question.ImageURL)
			if err != nil {
				q.log.Warn("deleting question image", zap.Error(err))
			}
		}
	}

	return docstore.Write(q.store, schema.KindQuestions, remaining)
}

// Draw returns a bounded random subset of a project's questions under the
// mandatory-first quota rule.
func (q *Questions) Draw(projectID string, count int) []schema.Question {
	return DrawQuestions(q.ByProject(projectID), count)
}
