// Package speech turns recipe text into MP3 audio.
package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"sahachari/internal/metrics"
	"sahachari/internal/provider"
	"sahachari/internal/session"
)

const (
	capability = "synthesize"
	// ChunkSize is the longest text sent to a provider in one request.
	ChunkSize = 4000
)

// Provider is a remote speech backend. It returns provider.ErrUnavailable
// for languages it cannot voice.
type Provider interface {
	provider.Provider
	Synthesize(ctx context.Context, text, lang string, slow bool) ([]byte, error)
}

// Audio is synthesized speech. Language is the language actually voiced,
// which differs from the request when Notice is set.
type Audio struct {
	Data     []byte
	Language string
	Notice   session.Notice
}

// Service synthesizes through the provider selected at construction.
type Service struct {
	active     Provider
	ok         bool
	candidates []Provider
	maxLength  int
}

// NewService selects the first configured candidate. Texts longer than
// maxLength characters are rejected.
func NewService(maxLength int, candidates ...Provider) *Service {
	s := &Service{candidates: candidates, maxLength: maxLength}
	s.active, s.ok = provider.Select(candidates...)
	if s.ok {
		slog.Info("Speech provider selected", "provider", s.active.Name())
	} else {
		slog.Warn("No speech provider configured; audio is disabled")
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

// Synthesize voices text in lang. When the provider cannot voice lang the
// same text is voiced in English and the result carries
// session.NoticeTeluguSpeechFallback.
func (s *Service) Synthesize(ctx context.Context, text, lang string, slow bool) (*Audio, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	if s.maxLength > 0 && utf8.RuneCountInString(text) > s.maxLength {
		return nil, fmt.Errorf("%w: %d characters allowed", ErrTextTooLong, s.maxLength)
	}
	if !s.ok {
		return nil, fmt.Errorf("synthesize: %w", provider.ErrUnavailable)
	}

	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		lang = "en"
	}

	data, err := s.synthesize(ctx, text, lang, slow)
	if err == nil {
		return &Audio{Data: data, Language: lang}, nil
	}
	if lang == "en" || !errors.Is(err, provider.ErrUnavailable) {
		return nil, err
	}

	metrics.RecordFallback(capability, "language_unavailable")
	slog.Warn("Speech unavailable for language, using English",
		"provider", s.active.Name(), "language", lang)

	data, err = s.synthesize(ctx, text, "en", slow)
	if err != nil {
		return nil, err
	}
	return &Audio{Data: data, Language: "en", Notice: session.NoticeTeluguSpeechFallback}, nil
}

// synthesize voices each chunk and concatenates the MP3 streams.
func (s *Service) synthesize(ctx context.Context, text, lang string, slow bool) ([]byte, error) {
	var buf bytes.Buffer
	for _, chunk := range Chunk(text, ChunkSize) {
		start := time.Now()
		data, err := s.active.Synthesize(ctx, chunk, lang, slow)
		metrics.RecordProviderCall(capability, s.active.Name(), err, time.Since(start).Seconds())
		if err != nil {
			return nil, fmt.Errorf("synthesize: %w", err)
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

// Chunk splits text on sentence boundaries (". ") into pieces of at most
// size characters. A single sentence longer than size stays whole.
func Chunk(text string, size int) []string {
	if utf8.RuneCountInString(text) <= size {
		return []string{text}
	}

	var chunks []string
	current := ""
	for _, sentence := range strings.Split(text, ". ") {
		if utf8.RuneCountInString(current+sentence) <= size {
			current += sentence + ". "
			continue
		}
		if current != "" {
			chunks = append(chunks, strings.TrimSpace(current))
		}
		current = sentence + ". "
	}
	if current != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}
	return chunks
}
