package service

import (
	"context"

	"go.uber.org/zap"
)

// MaintenanceService handles periodic eviction of expired state
type MaintenanceService struct {
	cache     *TranslationCache
	cooldowns *CooldownTracker
	logger    *zap.Logger
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(cache *TranslationCache, cooldowns *CooldownTracker, logger *zap.Logger) *MaintenanceService {
	return &MaintenanceService{
		cache:     cache,
		cooldowns: cooldowns,
		logger:    logger,
	}
}

// SweepCooldowns evicts stale cooldown entries
func (s *MaintenanceService) SweepCooldowns() {
	users, messages := s.cooldowns.Sweep()
	if users > 0 || messages > 0 {
		s.logger.Debug("Swept cooldowns",
			zap.Int("users", users),
			zap.Int("messages", messages),
		)
	}
}

// CleanupOldData removes cached translations older than the retention window
func (s *MaintenanceService) CleanupOldData(ctx context.Context) error {
	s.logger.Info("Starting cleanup of expired translations")

	removed, err := s.cache.PurgeExpired(ctx)
	if err != nil {
		s.logger.Error("Failed to cleanup expired translations", zap.Error(err))
		return err
	}

	s.logger.Info("Cleanup completed successfully", zap.Int64("removed", removed))
	return nil
}
