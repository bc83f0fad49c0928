package google

import (
	"context"
	"errors"
	"fmt"
	"html"

	translate "google.golang.org/api/translate/v2"
	"google.golang.org/api/option"
)

const translatorName = "google-translate"

// Translator calls the Cloud Translation v2 API.
type Translator struct {
	svc *translate.Service
}

// NewTranslator returns a Translator. An empty apiKey yields an unconfigured
// Translator that is never selected.
func NewTranslator(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Translator, error) {
	if apiKey == "" {
		return &Translator{}, nil
	}
	svc, err := translate.NewService(ctx, clientOptions(apiKey, opts)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create translate service: %w", err)
	}
	return &Translator{svc: svc}, nil
}

func (t *Translator) Name() string     { return translatorName }
func (t *Translator) Configured() bool { return t.svc != nil }

// Translate translates text into target, a language code such as "te".
func (t *Translator) Translate(ctx context.Context, text, target string) (string, error) {
	resp, err := t.svc.Translations.List([]string{text}, target).Format("text").Context(ctx).Do()
	if err != nil {
		return "", wrapErr(translatorName, err)
	}
	if len(resp.Translations) == 0 {
		return "", wrapErr(translatorName, errors.New("no translations in response"))
	}
	return html.UnescapeString(resp.Translations[0].TranslatedText), nil
}

// Detect returns the most likely language code of text.
func (t *Translator) Detect(ctx context.Context, text string) (string, error) {
	resp, err := t.svc.Detections.List([]string{text}).Context(ctx).Do()
	if err != nil {
		return "", wrapErr(translatorName, err)
	}
	if len(resp.Detections) == 0 || len(resp.Detections[0]) == 0 {
		return "", wrapErr(translatorName, errors.New("no detections in response"))
	}
	return resp.Detections[0][0].Language, nil
}
