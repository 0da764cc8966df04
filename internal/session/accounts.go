package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	tickerrors "github.com/abatilo/tick/internal/errors"
	"github.com/abatilo/tick/internal/logger"
	"github.com/abatilo/tick/internal/storage"
)

const (
	accountsFile = "accounts.yaml"
	defaultCost  = bcrypt.DefaultCost
)

// Account is a registered user.
type Account struct {
	Username     string    `yaml:"username"`
	PasswordHash string    `yaml:"password_hash"`
	CreatedAt    time.Time `yaml:"created_at"`
}

type accountList struct {
	Accounts []Account `yaml:"accounts"`
}

// find matches usernames by their directory name, so "Jane Doe" and "jane-doe" are one account.
func (l accountList) find(username string) (Account, bool) {
	key := storage.SanitizeName(username)
	for _, a := range l.Accounts {
		if storage.SanitizeName(a.Username) == key {
			return a, true
		}
	}
	return Account{}, false
}

// SignUp registers a new account. It does not log the user in.
func (m *Manager) SignUp(username, password, confirm string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" || confirm == "" {
		return tickerrors.MissingCredentialsError{}
	}
	if password != confirm {
		return tickerrors.PasswordMismatchError{}
	}

	accounts, err := m.loadAccounts()
	if err != nil {
		return err
	}
	if _, exists := accounts.find(username); exists {
		return tickerrors.AccountExistsError{Username: username}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), m.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	accounts.Accounts = append(accounts.Accounts, Account{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    m.now().UTC(),
	})
	if err = m.saveAccounts(accounts); err != nil {
		return err
	}
	logger.Debug("account created", "username", username)
	return nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (m *Manager) accountsPath() string {
	return filepath.Join(m.home, accountsFile)
}

func (m *Manager) loadAccounts() (accountList, error) {
	var list accountList
	data, err := os.ReadFile(m.accountsPath())
	if errors.Is(err, os.ErrNotExist) {
		return list, nil
	}
	if err != nil {
		return list, fmt.Errorf("read accounts: %w", err)
	}
	if err = yaml.Unmarshal(data, &list); err != nil {
		return list, fmt.Errorf("parse accounts: %w", err)
	}
	return list, nil
}

func (m *Manager) saveAccounts(list accountList) error {
	if err := os.MkdirAll(m.home, dirPerm); err != nil {
		return err
	}
	data, err := yaml.Marshal(list)
	if err != nil {
		return err
	}
	return os.WriteFile(m.accountsPath(), data, filePerm)
}
