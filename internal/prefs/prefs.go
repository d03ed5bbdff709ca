// Package prefs reads and writes user preferences kept in the local
// store.
package prefs

import (
	"shoplist/internal/storage"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type Prefs struct {
	store *storage.Store
}

func New(store *storage.Store) *Prefs {
	return &Prefs{store: store}
}

// Theme returns the stored theme. Anything missing or unrecognized
// degrades to light.
func (p *Prefs) Theme() string {
	v, err := p.store.Get(storage.KeyTheme)
	if err != nil || (v != ThemeLight && v != ThemeDark) {
		return ThemeLight
	}
	return v
}

func (p *Prefs) SetTheme(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		theme = ThemeLight
	}
	return p.store.Set(storage.KeyTheme, theme)
}
