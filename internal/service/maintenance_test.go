package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"translatebot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMaintenanceService_CleanupOldData(t *testing.T) {
	tests := []struct {
		name          string
		mockError     error
		expectedError bool
	}{
		{
			name:          "successful cleanup",
			mockError:     nil,
			expectedError: false,
		},
		{
			name:          "database error",
			mockError:     fmt.Errorf("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockCacheRepository)
			mockRepo.On("DeleteOlderThan", mock.Anything, mock.Anything).Return(int64(3), tt.mockError)

			logger := testutil.NewTestLogger()
			cache := NewTranslationCache(mockRepo, logger)
			service := NewMaintenanceService(cache, NewCooldownTracker(time.Second, time.Second), logger)

			err := service.CleanupOldData(context.Background())

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestMaintenanceService_SweepCooldowns(t *testing.T) {
	clock := testutil.NewFakeClock(cacheEpoch)
	cooldowns := newTestTracker(clock)
	cooldowns.CheckUserCooldown("u1")
	cooldowns.CheckMessageCooldown("m1")
	clock.Advance(10 * time.Minute)

	service := NewMaintenanceService(NewTranslationCache(newMemCache(), testutil.NewTestLogger()), cooldowns, testutil.NewTestLogger())
	service.SweepCooldowns()

	assert.Empty(t, cooldowns.users)
	assert.Empty(t, cooldowns.messages)
}
