package valutatrade

import (
	"strings"
	"testing"
)

func TestRegisterUser(t *testing.T) {
	s := newTestStore(t)
	user, err := RegisterUser(s, "alice", "s3cret", "USD")
	if err != nil {
		t.Fatalf("RegisterUser() unexpected error = %v", err)
	}
	if user.ID != 1 {
		t.Errorf("first user id = %d, want 1", user.ID)
	}
	if user.PasswordHash == "s3cret" || user.PasswordHash == "" {
		t.Error("password must be stored hashed, never in clear")
	}

	// Registration creates the portfolio with one base wallet.
	p, err := LoadPortfolio(s, user.ID)
	if err != nil {
		t.Fatalf("LoadPortfolio() after registration error = %v", err)
	}
	w, ok := p.Wallet("USD")
	if !ok {
		t.Fatal("new portfolio is missing the base wallet")
	}
	if !w.Balance.IsZero() {
		t.Errorf("base wallet balance = %s, want 0", w.Balance)
	}
}

func TestRegisterUser_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "s3cret"},
		{"short password", "bob", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			if _, err := RegisterUser(s, tt.username, tt.password, "USD"); err == nil {
				t.Error("RegisterUser() accepted invalid input")
			}
		})
	}
}

func TestRegisterUser_DuplicateUsername(t *testing.T) {
	s := newTestStore(t)
	if _, err := RegisterUser(s, "alice", "s3cret", "USD"); err != nil {
		t.Fatal(err)
	}
	_, err := RegisterUser(s, "alice", "other", "USD")
	if err == nil || !strings.Contains(err.Error(), "taken") {
		t.Errorf("duplicate registration error = %v, want username-taken", err)
	}
}

func TestRegisterUser_SequentialIDs(t *testing.T) {
	s := newTestStore(t)
	a, err := RegisterUser(s, "alice", "s3cret", "USD")
	if err != nil {
		t.Fatal(err)
	}
	b, err := RegisterUser(s, "bob", "s3cret", "USD")
	if err != nil {
		t.Fatal(err)
	}
	if b.ID != a.ID+1 {
		t.Errorf("ids = %d, %d, want sequential", a.ID, b.ID)
	}
}

func TestAuthenticate(t *testing.T) {
	s := newTestStore(t)
	if _, err := RegisterUser(s, "alice", "s3cret", "USD"); err != nil {
		t.Fatal(err)
	}

	user, err := Authenticate(s, "alice", "s3cret")
	if err != nil {
		t.Fatalf("Authenticate() with correct password error = %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("authenticated user = %q, want alice", user.Username)
	}

	if _, err := Authenticate(s, "alice", "wrong"); err == nil {
		t.Error("Authenticate() accepted a wrong password")
	}
	if _, err := Authenticate(s, "mallory", "s3cret"); err == nil {
		t.Error("Authenticate() accepted an unknown user")
	}
}

func TestUser_Info(t *testing.T) {
	s := newTestStore(t)
	user, err := RegisterUser(s, "alice", "s3cret", "USD")
	if err != nil {
		t.Fatal(err)
	}
	info := user.Info()
	if !strings.Contains(info, "alice") || !strings.Contains(info, "ID: 1") {
		t.Errorf("Info() = %q, want id and username", info)
	}
	if strings.Contains(info, user.PasswordHash) {
		t.Error("Info() leaks the password hash")
	}
}
