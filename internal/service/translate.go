package service

import (
	"context"
	"fmt"
	"strings"

	"translatebot/internal/domain"
	"translatebot/internal/provider"

	"go.uber.org/zap"
)

// ManualTranslation is the outcome of an explicit translate request
type ManualTranslation struct {
	SourceLanguage string
	TargetLanguage string
	Original       string
	Translated     string
}

// TranslateService handles explicit translate requests from users
type TranslateService struct {
	translator      *Translator
	cooldowns       *CooldownTracker
	defaultLanguage string
	logger          *zap.Logger
}

// NewTranslateService creates a new translate service
func NewTranslateService(translator *Translator, cooldowns *CooldownTracker, defaultLanguage string, logger *zap.Logger) *TranslateService {
	if defaultLanguage == "" {
		defaultLanguage = domain.DefaultLanguage
	}
	return &TranslateService{
		translator:      translator,
		cooldowns:       cooldowns,
		defaultLanguage: defaultLanguage,
		logger:          logger,
	}
}

// TranslateManual translates text into targetLang on behalf of userID.
// An empty userID skips the per-user cooldown.
func (s *TranslateService) TranslateManual(ctx context.Context, userID, targetLang, text string) (*ManualTranslation, error) {
	targetLang = domain.NormalizeLanguage(targetLang)
	if !domain.IsSupportedLanguage(targetLang) {
		return nil, fmt.Errorf("%w: unsupported language %q", domain.ErrInvalidInput, targetLang)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty text", domain.ErrInvalidInput)
	}

	if userID != "" && !s.cooldowns.CheckUserCooldown(userID) {
		return nil, domain.ErrRateLimited
	}

	source, err := s.translator.Detect(ctx, text)
	providerSource := source
	if err != nil || source == "" {
		s.logger.Warn("Language detection failed, using default",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		source = s.defaultLanguage
		providerSource = provider.AutoDetect
	}

	translated, err := s.translator.Translate(ctx, text, targetLang, providerSource)
	if err != nil {
		return nil, fmt.Errorf("failed to translate: %w", err)
	}

	return &ManualTranslation{
		SourceLanguage: source,
		TargetLanguage: targetLang,
		Original:       text,
		Translated:     translated,
	}, nil
}
