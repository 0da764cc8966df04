// Package session manages local accounts, the logged-in user and display preferences.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	tickerrors "github.com/abatilo/tick/internal/errors"
	"github.com/abatilo/tick/internal/logger"
)

const (
	sessionFile = "session.json"
	dirPerm     = 0o700
	filePerm    = 0o600
)

// Session records who is logged in on this machine.
type Session struct {
	Username   string    `json:"username"`
	LoggedInAt time.Time `json:"logged_in_at"`
}

// Manager owns the account, session and preference files under a home directory.
type Manager struct {
	home string
	now  func() time.Time
	cost int
}

// New creates a Manager rooted at home.
func New(home string) *Manager {
	return &Manager{home: home, now: time.Now, cost: defaultCost}
}

// Home returns the directory the Manager works in.
func (m *Manager) Home() string {
	return m.home
}

// sessionPath returns the full path to session.json for the given base path.
func sessionPath(basePath string) string {
	return filepath.Join(basePath, sessionFile)
}

// Exists checks if a session file exists.
func Exists(basePath string) bool {
	_, err := os.Stat(sessionPath(basePath))
	return err == nil
}

// Load reads the session from disk.
func Load(basePath string) (*Session, error) {
	data, err := os.ReadFile(sessionPath(basePath))
	if err != nil {
		return nil, err
	}

	var s Session
	if unmarshalErr := json.Unmarshal(data, &s); unmarshalErr != nil {
		return nil, unmarshalErr
	}

	return &s, nil
}

// Save writes the session to disk.
func Save(basePath string, s *Session) error {
	if mkdirErr := os.MkdirAll(basePath, dirPerm); mkdirErr != nil {
		return mkdirErr
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(sessionPath(basePath), data, filePerm)
}

// Delete removes the session file.
func Delete(basePath string) error {
	err := os.Remove(sessionPath(basePath))
	if os.IsNotExist(err) {
		return nil // Already deleted, not an error
	}
	return err
}

// Login checks the password and records username as the current user.
// Unknown users and wrong passwords fail the same way.
func (m *Manager) Login(username, password string) (*Session, error) {
	if username == "" || password == "" {
		return nil, tickerrors.MissingCredentialsError{}
	}

	accounts, err := m.loadAccounts()
	if err != nil {
		return nil, err
	}
	acct, ok := accounts.find(username)
	if !ok || !checkPassword(acct.PasswordHash, password) {
		logger.Debug("login rejected", "username", username)
		return nil, tickerrors.LoginFailedError{}
	}

	s := &Session{Username: acct.Username, LoggedInAt: m.now().UTC()}
	if saveErr := Save(m.home, s); saveErr != nil {
		return nil, saveErr
	}
	logger.Debug("logged in", "username", s.Username)
	return s, nil
}

// Logout ends the current session. Logging out twice is not an error.
func (m *Manager) Logout() error {
	return Delete(m.home)
}

// Current returns the logged-in username.
func (m *Manager) Current() (string, error) {
	if !Exists(m.home) {
		return "", tickerrors.NotLoggedInError{}
	}
	s, err := Load(m.home)
	if err != nil {
		return "", err
	}
	if s.Username == "" {
		return "", tickerrors.NotLoggedInError{}
	}
	return s.Username, nil
}
