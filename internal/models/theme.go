package models

// ThemePreferences mirrors the presentation layer's persisted theme choice.
// Stored under the "themePreferences" preference key.
type ThemePreferences struct {
	IsDark         bool `json:"isDark"`
	UseSystemTheme bool `json:"useSystemTheme"`
}

// DefaultThemePreferences is what a fresh install renders with.
func DefaultThemePreferences() ThemePreferences {
	return ThemePreferences{IsDark: false, UseSystemTheme: true}
}
