// Package vision identifies food ingredients in uploaded photos.
package vision

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"sahachari/internal/metrics"
	"sahachari/internal/provider"
	"sahachari/internal/session"
)

const (
	capability = "identify"
	cacheSize  = 128
)

// Provider is a remote image recognition backend. Implementations return
// only food-related results.
type Provider interface {
	provider.Provider
	Identify(ctx context.Context, img *Image) ([]Ingredient, error)
}

// Result is a ranked identification. Notice is set when the color heuristic
// produced it.
type Result struct {
	Ingredients []Ingredient   `json:"ingredients"`
	Provider    string         `json:"provider"`
	Notice      session.Notice `json:"-"`
}

// Options configures a Service.
type Options struct {
	// CacheTTL bounds how long results are reused for an identical upload.
	CacheTTL time.Duration
	// Formats lists accepted file extensions.
	Formats []string
}

// Service identifies through the provider selected at construction and falls
// back to the color heuristic.
type Service struct {
	active     Provider
	color      *ColorAnalyzer
	candidates []Provider
	formats    []string
	cache      *expirable.LRU[string, *Result]
}

// NewService selects the first configured candidate, or the color heuristic
// when none is configured.
func NewService(opts Options, candidates ...Provider) *Service {
	s := &Service{
		color:      NewColorAnalyzer(),
		candidates: candidates,
		formats:    opts.Formats,
	}
	if opts.CacheTTL > 0 {
		s.cache = expirable.NewLRU[string, *Result](cacheSize, nil, opts.CacheTTL)
	}

	active, ok := provider.Select(candidates...)
	if ok {
		s.active = active
		slog.Info("Vision provider selected", "provider", active.Name())
	} else {
		s.active = s.color
		slog.Warn("No vision provider configured; using basic image analysis")
	}
	return s
}

// ProviderName returns the active provider's name.
func (s *Service) ProviderName() string {
	return s.active.Name()
}

// Providers reports every candidate with its configuration state.
func (s *Service) Providers() map[string]bool {
	names := provider.Names(s.candidates...)
	names[s.color.Name()] = true
	return names
}

// Identify decodes data and returns ranked ingredients. A failing remote
// provider degrades to the color heuristic rather than failing the request.
func (s *Service) Identify(ctx context.Context, data []byte) (*Result, error) {
	img, err := Load(data, s.formats)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(img.Hash); ok {
			metrics.RecordCacheLookup("vision", true)
			return cached, nil
		}
		metrics.RecordCacheLookup("vision", false)
	}

	start := time.Now()
	found, err := s.active.Identify(ctx, img)
	metrics.RecordProviderCall(capability, s.active.Name(), err, time.Since(start).Seconds())

	res := &Result{Provider: s.active.Name()}
	if err != nil {
		if s.active == Provider(s.color) {
			return nil, fmt.Errorf("identify: %w", err)
		}
		metrics.RecordFallback(capability, "provider_error")
		slog.Warn("Image recognition failed, using basic image analysis",
			"provider", s.active.Name(), "capability", capability, "error", err)

		found, _ = s.color.Identify(ctx, img)
		res.Provider = s.color.Name()
	}
	if res.Provider == s.color.Name() {
		res.Notice = session.NoticeBasicImageAnalysis
	}
	res.Ingredients = Rank(found)

	// Degraded results are not cached so a recovered provider is used next time.
	if s.cache != nil && err == nil {
		s.cache.Add(img.Hash, res)
	}
	return res, nil
}
