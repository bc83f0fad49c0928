package translation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sahachari/internal/provider"
)

type mockProvider struct {
	mock.Mock
	name       string
	configured bool
}

func (m *mockProvider) Name() string     { return m.name }
func (m *mockProvider) Configured() bool { return m.configured }

func (m *mockProvider) Translate(ctx context.Context, text, target string) (string, error) {
	args := m.Called(ctx, text, target)
	return args.String(0), args.Error(1)
}

func (m *mockProvider) Detect(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

func TestNewService_SelectsFirstConfigured(t *testing.T) {
	google := &mockProvider{name: "google"}
	web := &mockProvider{name: "web", configured: true}

	s := NewService(time.Minute, google, web)
	assert.Equal(t, "web", s.ProviderName())
	assert.Equal(t, map[string]bool{"google": false, "web": true}, s.Providers())
}

func TestTranslate_Success(t *testing.T) {
	p := &mockProvider{name: "google", configured: true}
	p.On("Translate", mock.Anything, "Simple Dal", "te").Return("సాధారణ పప్పు", nil).Once()
	s := NewService(time.Minute, p)

	got, err := s.Translate(context.Background(), "Simple Dal", "TE")
	require.NoError(t, err)
	assert.Equal(t, "సాధారణ పప్పు", got)

	got, err = s.Translate(context.Background(), "Simple Dal", "te")
	require.NoError(t, err)
	assert.Equal(t, "సాధారణ పప్పు", got, "second call served from cache")

	p.AssertExpectations(t)
}

func TestTranslate_FailureReturnsOriginal(t *testing.T) {
	p := &mockProvider{name: "google", configured: true}
	upstream := provider.StatusError("google", 403)
	p.On("Translate", mock.Anything, "Simple Dal", "te").Return("", upstream)
	s := NewService(time.Minute, p)

	got, err := s.Translate(context.Background(), "Simple Dal", "te")
	assert.Equal(t, "Simple Dal", got)

	var serr *provider.ExternalServiceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 403, serr.StatusCode)
}

func TestTranslate_FailuresAreNotCached(t *testing.T) {
	p := &mockProvider{name: "google", configured: true}
	p.On("Translate", mock.Anything, "Rice", "te").Return("", errors.New("timeout")).Once()
	p.On("Translate", mock.Anything, "Rice", "te").Return("బియ్యం", nil).Once()
	s := NewService(time.Minute, p)

	_, err := s.Translate(context.Background(), "Rice", "te")
	require.Error(t, err)

	got, err := s.Translate(context.Background(), "Rice", "te")
	require.NoError(t, err)
	assert.Equal(t, "బియ్యం", got)
	p.AssertExpectations(t)
}

func TestTranslate_BlankTextSkipsProvider(t *testing.T) {
	p := &mockProvider{name: "google", configured: true}
	s := NewService(0, p)

	got, err := s.Translate(context.Background(), "   ", "te")
	require.NoError(t, err)
	assert.Equal(t, "", got)
	p.AssertNotCalled(t, "Translate", mock.Anything, mock.Anything, mock.Anything)
}

func TestTranslate_UnsupportedTarget(t *testing.T) {
	p := &mockProvider{name: "google", configured: true}
	s := NewService(0, p)

	got, err := s.Translate(context.Background(), "Dal", "fr")
	assert.Equal(t, "Dal", got)
	assert.ErrorIs(t, err, provider.ErrUnavailable)
}

func TestTranslate_NoProvider(t *testing.T) {
	s := NewService(0)

	assert.Equal(t, "none", s.ProviderName())
	got, err := s.Translate(context.Background(), "Dal", "te")
	assert.Equal(t, "Dal", got)
	assert.ErrorIs(t, err, provider.ErrUnavailable)
}

func TestTranslateBatch_DegradesPerItem(t *testing.T) {
	p := &mockProvider{name: "google", configured: true}
	p.On("Translate", mock.Anything, "Onion", "te").Return("ఉల్లిపాయ", nil)
	p.On("Translate", mock.Anything, "Tomato", "te").Return("", errors.New("quota"))
	s := NewService(0, p)

	got, err := s.TranslateBatch(context.Background(), []string{"Onion", "Tomato", ""}, "te")
	assert.Equal(t, []string{"ఉల్లిపాయ", "Tomato", ""}, got)
	assert.ErrorContains(t, err, "item 1")
}

func TestDetect(t *testing.T) {
	p := &mockProvider{name: "google", configured: true}
	p.On("Detect", mock.Anything, "పప్పు").Return("te", nil)
	p.On("Detect", mock.Anything, "???").Return("", errors.New("boom"))
	s := NewService(0, p)

	code, err := s.Detect(context.Background(), "పప్పు")
	require.NoError(t, err)
	assert.Equal(t, "te", code)

	code, err = s.Detect(context.Background(), "???")
	assert.Error(t, err)
	assert.Equal(t, "en", code)
}

func TestSupportedLanguages(t *testing.T) {
	langs := SupportedLanguages()
	assert.Len(t, langs, 6)
	assert.Equal(t, "Telugu", langs["te"])

	langs["xx"] = "mutated"
	assert.NotContains(t, SupportedLanguages(), "xx")
}
