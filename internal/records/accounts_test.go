package records

import (
	"strings"
	"testing"

	"examdesk/internal/docstore"
	"examdesk/internal/schema"
)

func newTestStore(t *testing.T) *docstore.Store {
	t.Helper()

	return docstore.New(t.TempDir(), nil)
}

func seedAccounts(t *testing.T, store *docstore.Store) {
	t.Helper()

	err := docstore.Write(store, schema.KindUsers, []schema.Account{schema.SeedAdmin()})
	if err != nil {
		t.Fatalf("seed users: %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	seedAccounts(t, store)

	accounts := NewAccounts(store, nil)

	account := accounts.Authenticate("admin", "123123")
	if account == nil {
		t.Fatal("Authenticate(admin, 123123) = nil, want seed admin")
	}

	if account.ID != schema.SeedAdminID || account.Role != schema.RoleAdmin {
		t.Errorf("unexpected account: %+v", account)
	}

	for _, tc := range []struct{ username, password string }{
		{"admin", "wrong"},
		{"nobody", "123123"},
		{"Admin", "123123"},
		{"", ""},
	} {
		if got := accounts.Authenticate(tc.username, tc.password); got != nil {
			t.Errorf("Authenticate(%q, %q) = %+v, want nil", tc.username, tc.password, got)
		}
	}
}

func TestAuthenticate_EmptyStore(t *testing.T) {
	t.Parallel()

	accounts := NewAccounts(newTestStore(t), nil)

	if got := accounts.Authenticate("admin", "123123"); got != nil {
		t.Errorf("Authenticate on empty store = %+v, want nil", got)
	}
}

func TestUpdatePassword(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	seedAccounts(t, store)

	accounts := NewAccounts(store, nil)

	ok, err := accounts.UpdatePassword(schema.SeedAdminID, "new-secret")
	if err != nil || !ok {
		t.Fatalf("UpdatePassword() = %v, %v", ok, err)
	}

	if accounts.Authenticate("admin", "123123") != nil {
		t.Error("old password still accepted")
	}

	if accounts.Authenticate("admin", "new-secret") == nil {
		t.Error("new password rejected")
	}

	ok, err = accounts.UpdatePassword("usr_missing", "x")
	if err != nil || ok {
		t.Errorf("UpdatePassword(unknown) = %v, %v, want false, nil", ok, err)
	}
}

func TestUpdateSettings_ShallowMerge(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	seedAccounts(t, store)

	accounts := NewAccounts(store, nil)

	ok, err := accounts.UpdateSettings(schema.SeedAdminID, map[string]any{
		"defaultQuestionCount": 25,
		"newKey":               "value",
	})
	if err != nil || !ok {
		t.Fatalf("UpdateSettings() = %v, %v", ok, err)
	}

	settings := accounts.Settings(schema.SeedAdminID)
	if settings == nil {
		t.Fatal("Settings() = nil after update")
	}

	// Written values survive the round trip as JSON numbers.
	if settings["defaultQuestionCount"] != float64(25) {
		t.Errorf("defaultQuestionCount = %v, want 25", settings["defaultQuestionCount"])
	}

	if settings["newKey"] != "value" {
		t.Errorf("newKey = %v", settings["newKey"])
	}

	if settings["theme"] == nil {
		t.Error("untouched setting dropped by merge")
	}

	ok, err = accounts.UpdateSettings("usr_missing", map[string]any{"k": "v"})
	if err != nil || ok {
		t.Errorf("UpdateSettings(unknown) = %v, %v, want false, nil", ok, err)
	}
}

func TestSettings_UnknownUser(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	seedAccounts(t, store)

	if got := NewAccounts(store, nil).Settings("usr_missing"); got != nil {
		t.Errorf("Settings(unknown) = %v, want nil", got)
	}
}

func TestDeriveCandidateAccount(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	seedAccounts(t, store)

	accounts := NewAccounts(store, nil)
	candidate := schema.Candidate{Name: "Alice", IDCard: "11010119900101001X"}

	account, err := accounts.DeriveCandidateAccount(candidate)
	if err != nil {
		t.Fatalf("DeriveCandidateAccount() error = %v", err)
	}

	if account.Username != "Alice" || account.Role != schema.RoleCandidate {
		t.Errorf("unexpected account: %+v", account)
	}

	if account.Password != "01001X" {
		t.Errorf("password = %q, want last six of the id card", account.Password)
	}

	if !strings.HasPrefix(account.ID, schema.PrefixCandidateUser) {
		t.Errorf("id = %q, want prefix %q", account.ID, schema.PrefixCandidateUser)
	}

	if accounts.Authenticate("Alice", "01001X") == nil {
		t.Error("derived account cannot log in")
	}
}

func TestDeriveCandidateAccount_IdempotentOnIDCard(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	seedAccounts(t, store)

	accounts := NewAccounts(store, nil)
	candidate := schema.Candidate{Name: "Alice", IDCard: "11010119900101001X"}

	first, err := accounts.DeriveCandidateAccount(candidate)
	if err != nil {
		t.Fatalf("first derive: %v", err)
	}

	second, err := accounts.DeriveCandidateAccount(candidate)
	if err != nil {
		t.Fatalf("second derive: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("derive created a duplicate account: %q then %q", first.ID, second.ID)
	}

	if got := len(accounts.All()); got != 2 {
		t.Errorf("account count = %d, want admin plus one candidate", got)
	}
}
