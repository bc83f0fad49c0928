// Package gweb talks to the keyless endpoints behind the Google Translate
// web page. It needs no credentials and backs translation and speech when no
// Cloud API key is configured.
package gweb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"sahachari/internal/provider"
)

const (
	name              = "google-web"
	defaultTranslate  = "https://translate.googleapis.com/translate_a/single"
	defaultSpeech     = "https://translate.google.com/translate_tts"
	speechPieceLength = 100
)

// speechLanguages are the languages the web speech endpoint voices.
var speechLanguages = map[string]bool{"en": true, "te": true, "hi": true, "ta": true}

// Client is a client for the public translate and speech endpoints.
type Client struct {
	httpClient   *http.Client
	translateURL string
	speechURL    string
}

// Option customizes a Client.
type Option func(*Client)

// WithTranslateURL overrides the translate endpoint.
func WithTranslateURL(u string) Option {
	return func(c *Client) { c.translateURL = u }
}

// WithSpeechURL overrides the speech endpoint.
func WithSpeechURL(u string) Option {
	return func(c *Client) { c.speechURL = u }
}

// NewClient creates a new client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		translateURL: defaultTranslate,
		speechURL:    defaultSpeech,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string     { return name }
func (c *Client) Configured() bool { return true }

// Translate translates text into target with source language detection.
func (c *Client) Translate(ctx context.Context, text, target string) (string, error) {
	translated, _, err := c.single(ctx, text, target)
	return translated, err
}

// Detect returns the source language the translate endpoint reports.
func (c *Client) Detect(ctx context.Context, text string) (string, error) {
	_, source, err := c.single(ctx, text, "en")
	if err == nil && source == "" {
		err = provider.TransportError(name, errors.New("no source language in response"))
	}
	return source, err
}

// single calls translate_a/single. The response is a nested JSON array:
// element 0 holds [translated, original, ...] segments and element 2 the
// detected source language.
func (c *Client) single(ctx context.Context, text, target string) (string, string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", "auto")
	params.Set("tl", target)
	params.Set("dt", "t")
	params.Set("q", text)

	body, err := c.get(ctx, c.translateURL, params)
	if err != nil {
		return "", "", err
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", "", provider.TransportError(name, fmt.Errorf("unexpected translate response: %w", err))
	}
	if len(raw) == 0 {
		return "", "", provider.TransportError(name, errors.New("empty translate response"))
	}

	var segments [][]any
	if err := json.Unmarshal(raw[0], &segments); err != nil {
		return "", "", provider.TransportError(name, fmt.Errorf("unexpected translate segments: %w", err))
	}

	var sb strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		if s, ok := seg[0].(string); ok {
			sb.WriteString(s)
		}
	}

	var source string
	if len(raw) > 2 {
		_ = json.Unmarshal(raw[2], &source)
	}
	return sb.String(), source, nil
}

// Synthesize returns MP3 audio. The endpoint only accepts short inputs, so
// text is sent in pieces of at most 100 characters split on spaces and the
// MP3 streams are concatenated.
func (c *Client) Synthesize(ctx context.Context, text, lang string, slow bool) ([]byte, error) {
	if !speechLanguages[lang] {
		return nil, fmt.Errorf("%s voice for %q: %w", name, lang, provider.ErrUnavailable)
	}

	speed := "1"
	if slow {
		speed = "0.3"
	}

	var audio []byte
	for _, piece := range splitWords(text, speechPieceLength) {
		params := url.Values{}
		params.Set("ie", "UTF-8")
		params.Set("client", "tw-ob")
		params.Set("tl", lang)
		params.Set("ttsspeed", speed)
		params.Set("q", piece)

		data, err := c.get(ctx, c.speechURL, params)
		if err != nil {
			return nil, err
		}
		audio = append(audio, data...)
	}
	return audio, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, provider.TransportError(name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, provider.StatusError(name, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, provider.TransportError(name, fmt.Errorf("failed to read response body: %w", err))
	}
	return body, nil
}

// splitWords packs whitespace-separated words into pieces of at most max
// characters. A single longer word is cut at max characters.
func splitWords(text string, max int) []string {
	var pieces []string
	current := ""
	for _, word := range strings.Fields(text) {
		for utf8.RuneCountInString(word) > max {
			if current != "" {
				pieces = append(pieces, current)
				current = ""
			}
			r := []rune(word)
			pieces = append(pieces, string(r[:max]))
			word = string(r[max:])
		}
		switch {
		case current == "":
			current = word
		case utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) <= max:
			current += " " + word
		default:
			pieces = append(pieces, current)
			current = word
		}
	}
	if current != "" {
		pieces = append(pieces, current)
	}
	return pieces
}
