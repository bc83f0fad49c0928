package gweb

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sahachari/internal/provider"
)

func TestTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "gtx", q.Get("client"))
		assert.Equal(t, "auto", q.Get("sl"))
		assert.Equal(t, "te", q.Get("tl"))
		assert.Equal(t, "Boil lentils. Add salt.", q.Get("q"))
		io.WriteString(w, `[[["పప్పు ఉడికించాలి. ","Boil lentils. ",null,null,10],["ఉప్పు వేయాలి.","Add salt.",null,null,10]],null,"en",null,null,null,1]`)
	}))
	defer srv.Close()

	c := NewClient(WithTranslateURL(srv.URL))
	got, err := c.Translate(context.Background(), "Boil lentils. Add salt.", "te")
	require.NoError(t, err)
	assert.Equal(t, "పప్పు ఉడికించాలి. ఉప్పు వేయాలి.", got)
}

func TestDetect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "en", r.URL.Query().Get("tl"))
		io.WriteString(w, `[[["Lentils","పప్పు",null,null,10]],null,"te"]`)
	}))
	defer srv.Close()

	code, err := NewClient(WithTranslateURL(srv.URL)).Detect(context.Background(), "పప్పు")
	require.NoError(t, err)
	assert.Equal(t, "te", code)
}

func TestTranslate_Malformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html>captcha</html>`)
	}))
	defer srv.Close()

	_, err := NewClient(WithTranslateURL(srv.URL)).Translate(context.Background(), "x", "te")
	var serr *provider.ExternalServiceError
	assert.ErrorAs(t, err, &serr)
}

func TestTranslate_EmptyArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	_, err := NewClient(WithTranslateURL(srv.URL)).Translate(context.Background(), "x", "te")
	var serr *provider.ExternalServiceError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, err.Error(), "empty translate response")
	assert.NotContains(t, err.Error(), "%!")
}

func TestTranslate_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewClient(WithTranslateURL(srv.URL)).Translate(context.Background(), "x", "te")
	var serr *provider.ExternalServiceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusTooManyRequests, serr.StatusCode)
}

func TestSynthesize_ConcatenatesPieces(t *testing.T) {
	var pieces []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "te", q.Get("tl"))
		assert.Equal(t, "0.3", q.Get("ttsspeed"))
		pieces = append(pieces, q.Get("q"))
		io.WriteString(w, "[mp3]")
	}))
	defer srv.Close()

	text := strings.TrimSpace(strings.Repeat("పప్పు ", 40))
	audio, err := NewClient(WithSpeechURL(srv.URL)).Synthesize(context.Background(), text, "te", true)
	require.NoError(t, err)

	assert.Equal(t, strings.Repeat("[mp3]", len(pieces)), string(audio))
	assert.Greater(t, len(pieces), 1)
	assert.Equal(t, text, strings.Join(pieces, " "))
}

func TestSynthesize_UnsupportedLanguage(t *testing.T) {
	_, err := NewClient().Synthesize(context.Background(), "hello", "fr", false)
	assert.ErrorIs(t, err, provider.ErrUnavailable)
}

func TestSplitWords(t *testing.T) {
	assert.Equal(t, []string{"aa bb", "cc"}, splitWords("aa bb cc", 5))
	assert.Equal(t, []string{"abcde", "fg h"}, splitWords("abcdefg h", 5))
	assert.Equal(t, []string{"ab", "abcde", "f"}, splitWords("ab abcdef", 5))
	assert.Empty(t, splitWords("   ", 5))
}
