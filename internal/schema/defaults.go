package schema

// SeedAdmin returns the bootstrap admin account written into a regenerated
// users collection. Exactly this account exists after first bootstrap.
func SeedAdmin() Account {
	now := NowISO()

	return Account{
		ID:       SeedAdminID,
		Username: "admin",
		Password: "123123",
		Role:     RoleAdmin,
		Profile: &Profile{
			Name:  "System Administrator",
			Email: "admin@example.com",
		},
		Settings: map[string]any{
			"defaultQuestionCount": 10,
			"theme":                "light",
			"language":             "zh-CN",
			"autoSave":             true,
			"notifications": map[string]any{
				"email":  true,
				"system": true,
			},
		},
		Permissions: []string{
			"user:manage",
			"project:manage",
			"question:manage",
			"candidate:manage",
			"exam:manage",
			"system:config",
		},
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
		Metadata: map[string]string{
			"createdBy": "system",
			"notes":     "default administrator account",
		},
	}
}

// DefaultDocument returns the default envelope for a kind, ready to marshal.
// Users get the seed admin; every other collection starts empty.
func DefaultDocument(kind Kind) any {
	switch kind {
	case KindUsers:
		return Envelope[Account]{
			Version:     CurrentVersion,
			LastUpdated: NowISO(),
			Data:        []Account{SeedAdmin()},
		}
	case KindProjects:
		return Envelope[Project]{
			Version:     CurrentVersion,
			LastUpdated: NowISO(),
			Data:        []Project{},
		}
	case KindQuestions:
		return Envelope[Question]{
			Version:     CurrentVersion,
			LastUpdated: NowISO(),
			Data:        []Question{},
		}
	case KindCandidates:
		return Envelope[Candidate]{
			Version:     CurrentVersion,
			LastUpdated: NowISO(),
			Data:        []Candidate{},
		}
	default:
		return Envelope[struct{}]{
			Version:     CurrentVersion,
			LastUpdated: NowISO(),
			Data:        []struct{}{},
		}
	}
}
