package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want Language
		ok   bool
	}{
		{"english", English, true},
		{"EN", English, true},
		{" te ", Telugu, true},
		{"తెలుగు", Telugu, true},
		{"hindi", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseLanguage(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestLanguageCode(t *testing.T) {
	assert.Equal(t, "en", English.Code())
	assert.Equal(t, "te", Telugu.Code())
	assert.Equal(t, "en", Language("").Code())
}

func TestResolve(t *testing.T) {
	assert.Equal(t, Telugu, Resolve("te", "en-US", English))
	assert.Equal(t, Telugu, Resolve("", "te-IN,en;q=0.5", English))
	assert.Equal(t, English, Resolve("", "en-GB", Telugu))
	assert.Equal(t, Telugu, Resolve("", "", Telugu))
	assert.Equal(t, English, Resolve("klingon", "", English))
}

func TestText(t *testing.T) {
	s := New(Telugu, "req-1")
	assert.Equal(t, notices[NoticeTranslationFailed][Telugu], s.Text(NoticeTranslationFailed))

	s = New(English, "req-2")
	assert.Equal(t, "Telugu TTS not available, using English", s.Text(NoticeTeluguSpeechFallback))
	assert.Equal(t, "unknown_notice", s.Text(Notice("unknown_notice")))
}
