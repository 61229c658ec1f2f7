package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"translatebot/internal/domain"
	"translatebot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTranslateService(p *fakeProvider) *TranslateService {
	tr, _ := newTestTranslator(p)
	return NewTranslateService(tr, NewCooldownTracker(5*time.Second, 10*time.Second), "en", testutil.NewTestLogger())
}

func TestTranslateService_TranslateManual(t *testing.T) {
	tests := []struct {
		name          string
		target        string
		text          string
		expectedError error
		expected      *ManualTranslation
	}{
		{
			name:   "valid request",
			target: "ES",
			text:   "  good morning ",
			expected: &ManualTranslation{
				SourceLanguage: "en",
				TargetLanguage: "es",
				Original:       "good morning",
				Translated:     "es:good morning",
			},
		},
		{name: "unknown language", target: "xx", text: "hello", expectedError: domain.ErrInvalidInput},
		{name: "empty text", target: "fr", text: "   ", expectedError: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestTranslateService(newFakeProvider("en"))

			got, err := s.TranslateManual(context.Background(), "u1", tt.target, tt.text)

			if tt.expectedError != nil {
				assert.True(t, errors.Is(err, tt.expectedError))
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTranslateService_UserCooldown(t *testing.T) {
	s := newTestTranslateService(newFakeProvider("en"))
	ctx := context.Background()

	_, err := s.TranslateManual(ctx, "u1", "fr", "hello")
	require.NoError(t, err)

	_, err = s.TranslateManual(ctx, "u1", "de", "hello")
	assert.True(t, errors.Is(err, domain.ErrRateLimited))

	_, err = s.TranslateManual(ctx, "u2", "de", "hello")
	assert.NoError(t, err)

	_, err = s.TranslateManual(ctx, "", "it", "hello")
	assert.NoError(t, err)
	_, err = s.TranslateManual(ctx, "", "it", "hello again")
	assert.NoError(t, err)
}

func TestTranslateService_ProviderFailure(t *testing.T) {
	p := newFakeProvider("en")
	p.failFor["ja"] = true
	s := newTestTranslateService(p)

	_, err := s.TranslateManual(context.Background(), "u1", "ja", "hello")

	assert.True(t, errors.Is(err, domain.ErrProviderFailure))
}

func TestTranslateService_DetectionFailure(t *testing.T) {
	p := newFakeProvider("")
	p.detectErr = errors.New("timeout")
	s := newTestTranslateService(p)

	got, err := s.TranslateManual(context.Background(), "u1", "fr", "hallo")

	require.NoError(t, err)
	assert.Equal(t, "en", got.SourceLanguage)
	assert.Equal(t, "fr:hallo", got.Translated)
}
