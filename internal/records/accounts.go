// Package records implements the typed managers over the document store:
// accounts, projects, questions, and candidates, each encoding its own
// cross-cutting rule, plus the mandatory-first question draw.
//
// Not-found is signaled by nil/false returns; errors are reserved for
// failed writes. Failed reads are logged by the store and degrade to an
// empty collection.
package records

import (
	"go.uber.org/zap"

	"examdesk/internal/docstore"
	"examdesk/internal/schema"
)

const derivedPasswordLen = 6

// Accounts manages the users collection.
type Accounts struct {
	store *docstore.Store
	log   *zap.Logger
}

// NewAccounts creates an account manager. A nil logger becomes a no-op one.
func NewAccounts(store *docstore.Store, log *zap.Logger) *Accounts {
	if log == nil {
		log = zap.NewNop()
	}

	return &Accounts{store: store, log: log}
}

// All returns every account. Read failures degrade to an empty slice.
func (a *Accounts) All() []schema.Account {
	accounts, err := docstore.Read[schema.Account](a.store, schema.KindUsers)
	if err != nil {
		a.log.Warn("reading users, proceeding with empty collection", zap.Error(err))
	}

	return accounts
}

// Authenticate matches an exact username and password pair against the
// stored accounts. Returns nil when no account matches.
func (a *Accounts) Authenticate(username, password string) *schema.Account {
	for _, account := range a.All() {
		if account.Username == username && account.Password == password {
			return &account
		}
	}

	return nil
}

// UpdatePassword replaces the password of the account with the given id.
// Returns false when the id is unknown.
func (a *Accounts) UpdatePassword(userID, newPassword string) (bool, error) {
	accounts := a.All()

	for i := range accounts {
		if accounts[i].ID == userID {
			accounts[i].Password = newPassword

			return true, docstore.Write(a.store, schema.KindUsers, accounts)
		}
	}

	return false, nil
}

// UpdateSettings shallow-merges the given keys into the account's settings
// map. Returns false when the id is unknown.
func (a *Accounts) UpdateSettings(userID string, settings map[string]any) (bool, error) {
	accounts := a.All()

	for i := range accounts {
		if accounts[i].ID != userID {
			continue
		}

		if accounts[i].Settings == nil {
			accounts[i].Settings = map[string]any{}
		}

		for key, value := range settings {
			accounts[i].Settings[key] = value
		}

		return true, docstore.Write(a.store, schema.KindUsers, accounts)
	}

	return false, nil
}

// Settings returns the settings map of an account, or nil for an unknown id.
func (a *Accounts) Settings(userID string) map[string]any {
	for _, account := range a.All() {
		if account.ID == userID {
			return account.Settings
		}
	}

	return nil
}

// DeriveCandidateAccount creates the candidate-role login account for a
// candidate: username is the candidate's name, password the last six
// characters of the id card. Idempotent on IDCard; the existing account is
// returned unchanged when one is already present.
func (a *Accounts) DeriveCandidateAccount(candidate schema.Candidate) (*schema.Account, error) {
	accounts := a.All()

	for _, account := range accounts {
		if account.Role == schema.RoleCandidate && account.IDCard == candidate.IDCard {
			return &account, nil
		}
	}

	password := candidate.IDCard
	if len(password) > derivedPasswordLen {
		password = password[len(password)-derivedPasswordLen:]
	}

	account := schema.Account{
		ID:       schema.GenerateID(schema.PrefixCandidateUser),
		Username: candidate.Name,
		IDCard:   candidate.IDCard,
		Password: password,
		Role:     schema.RoleCandidate,
	}

	accounts = append(accounts, account)

	err := docstore.Write(a.store, schema.KindUsers, accounts)
	if err != nil {
		return nil, err
	}

	return &account, nil
}
