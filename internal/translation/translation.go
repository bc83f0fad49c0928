// Package translation translates user-visible text between the supported
// languages. Failures never reach the caller as missing text: the original
// input is handed back together with the error.
package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"sahachari/internal/metrics"
	"sahachari/internal/provider"
)

const (
	capability = "translate"
	cacheSize  = 1024
)

// Provider is a remote translation backend.
type Provider interface {
	provider.Provider
	Translate(ctx context.Context, text, target string) (string, error)
	Detect(ctx context.Context, text string) (string, error)
}

// supportedLanguages maps language codes to display names.
var supportedLanguages = map[string]string{
	"en": "English",
	"te": "Telugu",
	"hi": "Hindi",
	"ta": "Tamil",
	"kn": "Kannada",
	"ml": "Malayalam",
}

// SupportedLanguages returns a copy of the code -> name table.
func SupportedLanguages() map[string]string {
	out := make(map[string]string, len(supportedLanguages))
	for k, v := range supportedLanguages {
		out[k] = v
	}
	return out
}

// Service translates through the provider selected at construction.
type Service struct {
	active     Provider
	ok         bool
	candidates []Provider
	cache      *expirable.LRU[string, string]
}

// NewService selects the first configured candidate. Successful translations
// are cached for ttl; a non-positive ttl disables the cache.
func NewService(ttl time.Duration, candidates ...Provider) *Service {
	s := &Service{candidates: candidates}
	s.active, s.ok = provider.Select(candidates...)
	if ttl > 0 {
		s.cache = expirable.NewLRU[string, string](cacheSize, nil, ttl)
	}
	if s.ok {
		slog.Info("Translation provider selected", "provider", s.active.Name())
	} else {
		slog.Warn("No translation provider configured; text will be returned untranslated")
	}
	return s
}

// ProviderName returns the active provider's name, or "none".
func (s *Service) ProviderName() string {
	if !s.ok {
		return "none"
	}
	return s.active.Name()
}

// Providers reports every candidate with its configuration state.
func (s *Service) Providers() map[string]bool {
	return provider.Names(s.candidates...)
}

// Translate returns text in the target language. Blank text yields "" without
// a provider call. On failure the original text is returned with the error.
func (s *Service) Translate(ctx context.Context, text, target string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	target = strings.ToLower(strings.TrimSpace(target))
	if _, ok := supportedLanguages[target]; !ok {
		return text, fmt.Errorf("translate to %q: %w", target, provider.ErrUnavailable)
	}
	if !s.ok {
		metrics.RecordFallback(capability, "no_provider")
		return text, fmt.Errorf("translate: %w", provider.ErrUnavailable)
	}

	key := target + "\x00" + text
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			metrics.RecordCacheLookup("translation", true)
			return cached, nil
		}
		metrics.RecordCacheLookup("translation", false)
	}

	start := time.Now()
	translated, err := s.active.Translate(ctx, text, target)
	metrics.RecordProviderCall(capability, s.active.Name(), err, time.Since(start).Seconds())
	if err != nil {
		metrics.RecordFallback(capability, "provider_error")
		slog.Warn("Translation failed, returning original text",
			"provider", s.active.Name(), "capability", capability, "error", err)
		return text, fmt.Errorf("translate: %w", err)
	}

	if s.cache != nil {
		s.cache.Add(key, translated)
	}
	return translated, nil
}

// TranslateBatch translates each text independently. Failed items keep
// their original text; the joined error lists every failure.
func (s *Service) TranslateBatch(ctx context.Context, texts []string, target string) ([]string, error) {
	out := make([]string, len(texts))
	var errs []error
	for i, text := range texts {
		translated, err := s.Translate(ctx, text, target)
		if err != nil {
			errs = append(errs, fmt.Errorf("item %d: %w", i, err))
		}
		out[i] = translated
	}
	return out, errors.Join(errs...)
}

// Detect returns the language code of text, "en" when detection fails.
func (s *Service) Detect(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "en", nil
	}
	if !s.ok {
		return "en", fmt.Errorf("detect: %w", provider.ErrUnavailable)
	}

	start := time.Now()
	code, err := s.active.Detect(ctx, text)
	metrics.RecordProviderCall("detect", s.active.Name(), err, time.Since(start).Seconds())
	if err != nil || code == "" {
		slog.Warn("Language detection failed", "provider", s.active.Name(), "error", err)
		if err == nil {
			err = errors.New("empty detection result")
		}
		return "en", fmt.Errorf("detect: %w", err)
	}
	return code, nil
}
