package google

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/api/option"
	texttospeech "google.golang.org/api/texttospeech/v1"

	"sahachari/internal/provider"
)

const synthesizerName = "google-tts"

type voice struct {
	languageCode string
	name         string
}

var voices = map[string]voice{
	"en": {"en-US", "en-US-Standard-D"},
	"te": {"te-IN", "te-IN-Standard-A"},
}

// Synthesizer calls the Cloud Text-to-Speech v1 API. It voices English and
// Telugu only.
type Synthesizer struct {
	svc *texttospeech.Service
}

// NewSynthesizer returns a Synthesizer; an empty apiKey leaves it unconfigured.
func NewSynthesizer(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Synthesizer, error) {
	if apiKey == "" {
		return &Synthesizer{}, nil
	}
	svc, err := texttospeech.NewService(ctx, clientOptions(apiKey, opts)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create text-to-speech service: %w", err)
	}
	return &Synthesizer{svc: svc}, nil
}

func (s *Synthesizer) Name() string     { return synthesizerName }
func (s *Synthesizer) Configured() bool { return s.svc != nil }

// Synthesize returns MP3 audio. Slow speech uses a 0.75 speaking rate.
func (s *Synthesizer) Synthesize(ctx context.Context, text, lang string, slow bool) ([]byte, error) {
	v, ok := voices[lang]
	if !ok {
		return nil, fmt.Errorf("%s voice for %q: %w", synthesizerName, lang, provider.ErrUnavailable)
	}

	rate := 1.0
	if slow {
		rate = 0.75
	}

	req := &texttospeech.SynthesizeSpeechRequest{
		Input: &texttospeech.SynthesisInput{Text: text},
		Voice: &texttospeech.VoiceSelectionParams{LanguageCode: v.languageCode, Name: v.name},
		AudioConfig: &texttospeech.AudioConfig{
			AudioEncoding: "MP3",
			SpeakingRate:  rate,
		},
	}
	resp, err := s.svc.Text.Synthesize(req).Context(ctx).Do()
	if err != nil {
		return nil, wrapErr(synthesizerName, err)
	}

	audio, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		return nil, wrapErr(synthesizerName, fmt.Errorf("failed to decode audio content: %w", err))
	}
	return audio, nil
}
