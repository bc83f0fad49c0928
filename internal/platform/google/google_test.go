package google

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"sahachari/internal/provider"
	"sahachari/internal/vision"
)

func testOptions(srv *httptest.Server) []option.ClientOption {
	return []option.ClientOption{
		option.WithEndpoint(srv.URL + "/"),
		option.WithHTTPClient(srv.Client()),
	}
}

func denied(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	io.WriteString(w, `{"error": {"code": 403, "message": "API key not valid"}}`)
}

func TestUnconfiguredWithoutKey(t *testing.T) {
	ctx := context.Background()

	tr, err := NewTranslator(ctx, "")
	require.NoError(t, err)
	assert.False(t, tr.Configured())
	assert.Equal(t, "google-translate", tr.Name())

	sy, err := NewSynthesizer(ctx, "")
	require.NoError(t, err)
	assert.False(t, sy.Configured())

	id, err := NewIdentifier(ctx, "")
	require.NoError(t, err)
	assert.False(t, id.Configured())
}

func TestTranslator_Translate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Simple Dal", r.URL.Query().Get("q"))
		assert.Equal(t, "te", r.URL.Query().Get("target"))
		assert.Equal(t, "text", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"data": {"translations": [{"translatedText": "సాధారణ పప్పు"}]}}`)
	}))
	defer srv.Close()

	tr, err := NewTranslator(context.Background(), "key", testOptions(srv)...)
	require.NoError(t, err)
	require.True(t, tr.Configured())

	got, err := tr.Translate(context.Background(), "Simple Dal", "te")
	require.NoError(t, err)
	assert.Equal(t, "సాధారణ పప్పు", got)
}

func TestTranslator_Detect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/detect"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"data": {"detections": [[{"language": "te", "confidence": 0.98}]]}}`)
	}))
	defer srv.Close()

	tr, err := NewTranslator(context.Background(), "key", testOptions(srv)...)
	require.NoError(t, err)

	got, err := tr.Detect(context.Background(), "పప్పు")
	require.NoError(t, err)
	assert.Equal(t, "te", got)
}

func TestTranslator_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { denied(w) }))
	defer srv.Close()

	tr, err := NewTranslator(context.Background(), "bad", testOptions(srv)...)
	require.NoError(t, err)

	_, err = tr.Translate(context.Background(), "Dal", "te")
	var serr *provider.ExternalServiceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "google-translate", serr.Provider)
	assert.Equal(t, http.StatusForbidden, serr.StatusCode)
}

func TestSynthesizer_Synthesize(t *testing.T) {
	var got struct {
		Input       struct{ Text string }
		Voice       struct{ LanguageCode, Name string }
		AudioConfig struct {
			AudioEncoding string
			SpeakingRate  float64
		}
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "text:synthesize"), r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"audioContent": base64.StdEncoding.EncodeToString([]byte("ID3-mp3")),
		})
	}))
	defer srv.Close()

	sy, err := NewSynthesizer(context.Background(), "key", testOptions(srv)...)
	require.NoError(t, err)

	audio, err := sy.Synthesize(context.Background(), "పప్పు", "te", true)
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3-mp3"), audio)

	assert.Equal(t, "పప్పు", got.Input.Text)
	assert.Equal(t, "te-IN", got.Voice.LanguageCode)
	assert.Equal(t, "te-IN-Standard-A", got.Voice.Name)
	assert.Equal(t, "MP3", got.AudioConfig.AudioEncoding)
	assert.Equal(t, 0.75, got.AudioConfig.SpeakingRate)
}

func TestSynthesizer_UnsupportedLanguage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	defer srv.Close()

	sy, err := NewSynthesizer(context.Background(), "key", testOptions(srv)...)
	require.NoError(t, err)

	_, err = sy.Synthesize(context.Background(), "नमस्ते", "hi", false)
	assert.ErrorIs(t, err, provider.ErrUnavailable)
}

func TestIdentifier_Identify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "images:annotate"), r.URL.Path)

		var body struct {
			Requests []struct {
				Image    struct{ Content string }
				Features []struct{ Type string }
			}
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if assert.Len(t, body.Requests, 1) {
			assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("jpeg-bytes")), body.Requests[0].Image.Content)
			assert.Len(t, body.Requests[0].Features, 2)
		}

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"responses": [{
			"labelAnnotations": [
				{"description": "Vegetable", "score": 0.97},
				{"description": "Tableware", "score": 0.91}
			],
			"localizedObjectAnnotations": [
				{"name": "Tomato", "score": 0.88},
				{"name": "Bowl", "score": 0.8}
			]
		}]}`)
	}))
	defer srv.Close()

	id, err := NewIdentifier(context.Background(), "key", testOptions(srv)...)
	require.NoError(t, err)

	got, err := id.Identify(context.Background(), &vision.Image{JPEG: []byte("jpeg-bytes")})
	require.NoError(t, err)
	assert.Equal(t, []vision.Ingredient{
		{Name: "Vegetable", Confidence: 0.97, Source: "label"},
		{Name: "Tomato", Confidence: 0.88, Source: "object"},
	}, got)
}

func TestIdentifier_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { denied(w) }))
	defer srv.Close()

	id, err := NewIdentifier(context.Background(), "key", testOptions(srv)...)
	require.NoError(t, err)

	_, err = id.Identify(context.Background(), &vision.Image{JPEG: []byte("x")})
	var serr *provider.ExternalServiceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, http.StatusForbidden, serr.StatusCode)
}
