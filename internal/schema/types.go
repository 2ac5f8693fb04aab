package schema

// Role values for accounts.
const (
	RoleAdmin     = "admin"
	RoleCandidate = "candidate"
)

// Question type values.
const (
	QuestionText  = "text"
	QuestionImage = "image"
	QuestionMixed = "mixed"
)

// Profile holds optional display information for an account.
type Profile struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Avatar string `json:"avatar"`
}

// Account is a login account. Passwords are stored verbatim; cleartext
// storage is part of the file contract.
type Account struct {
	ID          string            `json:"id"`
	Username    string            `json:"username"`
	Password    string            `json:"password"`
	Role        string            `json:"role"`
	IDCard      string            `json:"idCard,omitempty"`
	Profile     *Profile          `json:"profile,omitempty"`
	Settings    map[string]any    `json:"settings,omitempty"`
	Permissions []string          `json:"permissions,omitempty"`
	Status      string            `json:"status,omitempty"`
	CreatedAt   string            `json:"createdAt,omitempty"`
	UpdatedAt   string            `json:"updatedAt,omitempty"`
	LastLoginAt *string           `json:"lastLoginAt,omitempty"`
	LoginCount  int               `json:"loginCount,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Project groups questions. Questions reference it by ProjectID; deleting a
// project cascade-deletes its questions.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
}

// Question belongs to a project. ImageURL, when set, is a data-root-relative
// path owned by this record: replacing or deleting the record deletes the
// referenced image file.
type Question struct {
	ID          string `json:"id"`
	ProjectID   string `json:"projectId"`
	Type        string `json:"type"`
	Content     string `json:"content"`
	ImageURL    string `json:"imageUrl,omitempty"`
	IsMandatory bool   `json:"isMandatory"`
	CreatedAt   string `json:"createdAt"`
}

// Candidate is keyed by IDCard. It carries no id field; the derived login
// account (created at most once per IDCard) lives in the users collection.
type Candidate struct {
	Name        string `json:"name"`
	IDCard      string `json:"idCard"`
	ProjectName string `json:"projectName"`
}
