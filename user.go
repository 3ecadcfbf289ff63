package valutatrade

import (
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Timestamp is a time.Time that marshals with TimeLayout, the format shared
// by every persisted document.
type Timestamp time.Time

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).Format(TimeLayout))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("malformed timestamp %q: %w", s, err)
	}
	*t = Timestamp(parsed)
	return nil
}

// Time returns the underlying time.Time.
func (t Timestamp) Time() time.Time { return time.Time(t) }

// User is one registered account. The password is stored as a bcrypt hash.
type User struct {
	ID           int       `json:"user_id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"hashed_password"`
	RegisteredAt Timestamp `json:"registration_date"`
}

// Info returns the user description shown in listings, without credentials.
func (u User) Info() string {
	return fmt.Sprintf("ID: %d, Username: %s, Registered: %s",
		u.ID, u.Username, u.RegisteredAt.Time().Format(TimeLayout))
}

const minPasswordLen = 4

// RegisterUser creates a new account with a unique username and an empty
// portfolio holding one base-currency wallet.
func RegisterUser(s *Store, username, password, base string) (User, error) {
	if username == "" {
		return User{}, fmt.Errorf("username cannot be empty")
	}
	if len(password) < minPasswordLen {
		return User{}, fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}

	var users []User
	if err := s.Load(usersFilename, &users); err != nil {
		return User{}, err
	}
	maxID := 0
	for _, u := range users {
		if u.Username == username {
			return User{}, fmt.Errorf("username %q is already taken", username)
		}
		if u.ID > maxID {
			maxID = u.ID
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("could not hash password: %w", err)
	}
	user := User{
		ID:           maxID + 1,
		Username:     username,
		PasswordHash: string(hash),
		RegisteredAt: Timestamp(time.Now()),
	}
	if err := s.Save(usersFilename, append(users, user)); err != nil {
		return User{}, err
	}

	var portfolios []*Portfolio
	if err := s.Load(portfoliosFilename, &portfolios); err != nil {
		return User{}, err
	}
	portfolios = append(portfolios, NewPortfolio(user.ID, base))
	if err := s.Save(portfoliosFilename, portfolios); err != nil {
		return User{}, err
	}
	return user, nil
}

// Authenticate verifies the username/password combination and returns the
// matching user.
func Authenticate(s *Store, username, password string) (User, error) {
	user, ok, err := FindRecord(s, usersFilename, func(u User) bool { return u.Username == username })
	if err != nil {
		return User{}, err
	}
	if !ok {
		return User{}, fmt.Errorf("user %q not found", username)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, fmt.Errorf("invalid password")
	}
	return user, nil
}

// FindUser returns the account registered under username.
func FindUser(s *Store, username string) (User, error) {
	user, ok, err := FindRecord(s, usersFilename, func(u User) bool { return u.Username == username })
	if err != nil {
		return User{}, err
	}
	if !ok {
		return User{}, fmt.Errorf("user %q not found", username)
	}
	return user, nil
}
