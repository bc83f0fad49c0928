// Package session carries the per-request context that used to live in
// global UI state: the display language and the request id.
package session

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is the display language tag stored on records ("english", "telugu").
type Language string

const (
	English Language = "english"
	Telugu  Language = "telugu"
)

var supported = []language.Tag{language.English, language.Make("te")}

var matcher = language.NewMatcher(supported)

// Code returns the ISO 639-1 code used by translation and speech providers.
func (l Language) Code() string {
	if l == Telugu {
		return "te"
	}
	return "en"
}

// ParseLanguage accepts record tags, ISO codes and the native Telugu name.
func ParseLanguage(s string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "english", "en":
		return English, true
	case "telugu", "te", "తెలుగు":
		return Telugu, true
	}
	return "", false
}

// Session is built once per request and passed explicitly to the code that
// needs it.
type Session struct {
	Language  Language
	RequestID string
}

// New returns a session for lang.
func New(lang Language, requestID string) Session {
	return Session{Language: lang, RequestID: requestID}
}

// Resolve picks the session language: an explicit parameter wins, then the
// Accept-Language header, then fallback.
func Resolve(param, acceptLanguage string, fallback Language) Language {
	if lang, ok := ParseLanguage(param); ok {
		return lang
	}

	if acceptLanguage != "" {
		tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
		if err == nil && len(tags) > 0 {
			_, idx, conf := matcher.Match(tags...)
			if conf != language.No {
				if idx == 1 {
					return Telugu
				}
				return English
			}
		}
	}

	return fallback
}
