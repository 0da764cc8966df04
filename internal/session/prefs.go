package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	tickerrors "github.com/abatilo/tick/internal/errors"
)

const prefsFile = "prefs.json"

// Theme selects the human output palette.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme normalizes user input into a Theme.
func ParseTheme(s string) (Theme, error) {
	switch th := Theme(strings.ToLower(strings.TrimSpace(s))); th {
	case ThemeLight, ThemeDark:
		return th, nil
	default:
		return "", tickerrors.InvalidThemeError{Value: s}
	}
}

// Prefs are per-machine display settings.
type Prefs struct {
	Theme Theme `json:"theme"`
}

// LoadPrefs reads prefs.json. Missing or unreadable values fall back to the light theme.
func (m *Manager) LoadPrefs() (Prefs, error) {
	p := Prefs{Theme: ThemeLight}
	data, err := os.ReadFile(filepath.Join(m.home, prefsFile))
	if errors.Is(err, os.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, err
	}
	if err = json.Unmarshal(data, &p); err != nil {
		return Prefs{Theme: ThemeLight}, err
	}
	if _, themeErr := ParseTheme(string(p.Theme)); themeErr != nil {
		p.Theme = ThemeLight
	}
	return p, nil
}

// SavePrefs writes prefs.json.
func (m *Manager) SavePrefs(p Prefs) error {
	if err := os.MkdirAll(m.home, dirPerm); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(m.home, prefsFile), data, filePerm)
}

// ToggleTheme flips between light and dark and returns the new theme.
func (m *Manager) ToggleTheme() (Theme, error) {
	p, err := m.LoadPrefs()
	if err != nil {
		return "", err
	}
	if p.Theme == ThemeDark {
		p.Theme = ThemeLight
	} else {
		p.Theme = ThemeDark
	}
	return p.Theme, m.SavePrefs(p)
}
