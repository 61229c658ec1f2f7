package service

import (
	"context"
	"fmt"
	"time"

	"translatebot/internal/domain"
	"translatebot/internal/repository"

	"go.uber.org/zap"
)

// SettingsService handles per-user language and per-channel toggles.
// Store failures are logged and never reach the caller.
type SettingsService struct {
	prefRepo        repository.PreferenceRepository
	channelRepo     repository.ChannelRepository
	defaultLanguage string
	logger          *zap.Logger
	now             func() time.Time
}

// NewSettingsService creates a new settings service
func NewSettingsService(
	prefRepo repository.PreferenceRepository,
	channelRepo repository.ChannelRepository,
	defaultLanguage string,
	logger *zap.Logger,
) *SettingsService {
	if defaultLanguage == "" {
		defaultLanguage = domain.DefaultLanguage
	}
	return &SettingsService{
		prefRepo:        prefRepo,
		channelRepo:     channelRepo,
		defaultLanguage: defaultLanguage,
		logger:          logger,
		now:             time.Now,
	}
}

// DefaultLanguage returns the neutral language
func (s *SettingsService) DefaultLanguage() string {
	return s.defaultLanguage
}

// GetUserLanguage returns the user's stored language or the default
func (s *SettingsService) GetUserLanguage(ctx context.Context, userID string) string {
	code, ok, err := s.prefRepo.GetLanguage(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load user language",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return s.defaultLanguage
	}
	if !ok {
		return s.defaultLanguage
	}
	return code
}

// SetUserLanguage stores the user's language.
// Only an unknown code is reported, as domain.ErrInvalidInput.
func (s *SettingsService) SetUserLanguage(ctx context.Context, userID, code string) error {
	code = domain.NormalizeLanguage(code)
	if userID == "" {
		return fmt.Errorf("%w: empty user id", domain.ErrInvalidInput)
	}
	if !domain.IsSupportedLanguage(code) {
		return fmt.Errorf("%w: unsupported language %q", domain.ErrInvalidInput, code)
	}

	err := s.prefRepo.UpsertLanguage(ctx, domain.UserPreference{
		UserID:       userID,
		LanguageCode: code,
		UpdatedAt:    s.now().UTC(),
	})
	if err != nil {
		s.logger.Error("Failed to save user language",
			zap.String("user_id", userID),
			zap.String("language", code),
			zap.Error(err),
		)
	}
	return nil
}

// IsChannelEnabled reports whether auto-translation is on for the channel
func (s *SettingsService) IsChannelEnabled(ctx context.Context, channelID string) bool {
	enabled, err := s.channelRepo.IsEnabled(ctx, channelID)
	if err != nil {
		s.logger.Error("Failed to load channel setting",
			zap.String("channel_id", channelID),
			zap.Error(err),
		)
		return false
	}
	return enabled
}

// SetChannelEnabled toggles auto-translation for the channel
func (s *SettingsService) SetChannelEnabled(ctx context.Context, channelID string, enabled bool, guildID string) {
	err := s.channelRepo.UpsertChannel(ctx, domain.ChannelSetting{
		ChannelID: channelID,
		Enabled:   enabled,
		GuildID:   guildID,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		s.logger.Error("Failed to save channel setting",
			zap.String("channel_id", channelID),
			zap.Bool("enabled", enabled),
			zap.Error(err),
		)
	}
}
