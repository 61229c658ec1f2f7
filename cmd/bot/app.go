package main

import (
	"context"
	"fmt"

	"translatebot/internal/config"
	"translatebot/internal/provider/google"
	"translatebot/internal/service"
	"translatebot/internal/storage"

	"go.uber.org/zap"
)

// app holds the services shared by every command
type app struct {
	cfg         *config.Config
	logger      *zap.Logger
	store       *storage.Store
	settings    *service.SettingsService
	cache       *service.TranslationCache
	cooldowns   *service.CooldownTracker
	translator  *service.Translator
	translate   *service.TranslateService
	maintenance *service.MaintenanceService
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	store, err := storage.Open(ctx, storage.Config{
		DSN:             cfg.DSN(),
		SQLitePath:      cfg.Database.SQLitePath,
		ConnectAttempts: cfg.Database.ConnectAttempts,
		ConnectDelay:    cfg.Database.ConnectDelay,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	logger.Info("Storage ready", zap.String("backend", store.Backend.String()))

	client := google.New(google.Config{
		BaseURL:  cfg.Provider.BaseURL,
		Timeout:  cfg.Provider.Timeout,
		MaxInput: cfg.Provider.MaxInput,
		Rate:     cfg.Provider.Rate,
		Burst:    cfg.Provider.Burst,
	}, logger)

	settings := service.NewSettingsService(store.Preferences(), store.Channels(), cfg.DefaultLanguage, logger)
	cache := service.NewTranslationCache(store.Cache(), logger)
	cooldowns := service.NewCooldownTracker(cfg.Cooldown.User, cfg.Cooldown.Message)
	translator := service.NewTranslator(cache, client, cfg.Provider.Timeout, logger)

	return &app{
		cfg:         cfg,
		logger:      logger,
		store:       store,
		settings:    settings,
		cache:       cache,
		cooldowns:   cooldowns,
		translator:  translator,
		translate:   service.NewTranslateService(translator, cooldowns, cfg.DefaultLanguage, logger),
		maintenance: service.NewMaintenanceService(cache, cooldowns, logger),
	}, nil
}

func (a *app) dispatcher(deliverer service.Deliverer) *service.Dispatcher {
	return service.NewDispatcher(a.settings, a.cooldowns, a.translator, deliverer, service.DispatchConfig{
		MinMessageLength: a.cfg.MinMessageLength,
		MaxGroups:        a.cfg.MaxGroups,
		RoleLanguages:    a.cfg.RoleLanguages,
	}, a.logger)
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("Failed to close storage", zap.Error(err))
	}
}
