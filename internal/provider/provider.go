// Package provider defines the translation provider capability and the
// failure kinds adapters convert transport errors into.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"unicode/utf8"

	"translatebot/internal/domain"
)

// AutoDetect asks the provider to detect the source language itself
const AutoDetect = "auto"

// Provider translates text and detects its language
type Provider interface {
	// Translate returns text rendered in targetLang. sourceLang may be AutoDetect.
	Translate(ctx context.Context, text, targetLang, sourceLang string) (string, error)
	// Detect returns the normalized base language code of text.
	Detect(ctx context.Context, text string) (string, error)
}

// Kind classifies a provider failure
type Kind string

const (
	KindNetwork  Kind = "network"
	KindTimeout  Kind = "timeout"
	KindQuota    Kind = "quota"
	KindResponse Kind = "response"
)

// Error is the only error type a Provider returns
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("provider %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("provider %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes every provider error match domain.ErrProviderFailure
func (e *Error) Is(target error) bool {
	return target == domain.ErrProviderFailure
}

// Wrap converts any error into a *Error, classifying timeouts and network failures
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *Error
	if errors.As(err, &pe) {
		return err
	}

	kind := KindNetwork
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = KindTimeout
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Truncate cuts text to at most maxRunes runes without splitting a character
func Truncate(text string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes])
}
