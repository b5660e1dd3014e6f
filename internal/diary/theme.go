package diary

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/daybookapp/daybook/internal/logging"
	"github.com/daybookapp/daybook/internal/models"
	"github.com/daybookapp/daybook/internal/storage/prefs"
)

// ThemeService persists the presentation theme choice.
type ThemeService interface {
	// Current returns the stored theme, or the install default when none
	// is stored or the stored value cannot be read.
	Current(ctx context.Context) models.ThemePreferences

	// Save replaces the stored theme.
	Save(ctx context.Context, theme models.ThemePreferences) error
}

type themeService struct {
	prefs prefs.Repository
	log   logging.Logger
}

func NewThemeService(prefStore prefs.Repository, log logging.Logger) ThemeService {
	return &themeService{
		prefs: prefStore,
		log:   log.With("component", "theme"),
	}
}

func (s *themeService) Current(ctx context.Context) models.ThemePreferences {
	data, err := s.prefs.Get(ctx, prefs.KeyTheme)
	if err != nil {
		s.log.Warn(ctx, "failed to read theme, using default", "error", err)
		return models.DefaultThemePreferences()
	}
	if data == nil {
		return models.DefaultThemePreferences()
	}

	var theme models.ThemePreferences
	if err := json.Unmarshal(data, &theme); err != nil {
		s.log.Warn(ctx, "corrupt theme preference, using default", "error", err)
		return models.DefaultThemePreferences()
	}
	return theme
}

func (s *themeService) Save(ctx context.Context, theme models.ThemePreferences) error {
	data, err := json.Marshal(theme)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	if err := s.prefs.Set(ctx, prefs.KeyTheme, data); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	s.log.Info(ctx, "theme saved", "dark", theme.IsDark, "system", theme.UseSystemTheme)
	return nil
}
