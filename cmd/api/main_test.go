package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sahachari/internal/api"
	"sahachari/internal/config"
	"sahachari/internal/recipe"
	"sahachari/internal/session"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DataFile = filepath.Join(t.TempDir(), "data", "sample_data.json")
	cfg.Env = "production"
	return cfg
}

func TestOpenStore_Temporary(t *testing.T) {
	cfg := testConfig(t)

	store, source, err := openStore(cfg)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, config.DataSourceTemporary, source)
	assert.IsType(t, &recipe.JSONStore{}, store)
}

func TestOpenStore_ProductionWithoutDatabaseURLUsesJSON(t *testing.T) {
	cfg := testConfig(t)
	cfg.DataSource = config.DataSourceProduction

	store, source, err := openStore(cfg)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, config.DataSourceTemporary, source)
	assert.IsType(t, &recipe.JSONStore{}, store)
}

func TestOpenStore_SQLite(t *testing.T) {
	cfg := testConfig(t)
	cfg.DataSource = config.DataSourceSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "sahachari.db")

	store, source, err := openStore(cfg)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, config.DataSourceSQLite, source)
	recipes, err := store.ListRecipes(context.Background())
	require.NoError(t, err)
	assert.Len(t, recipes, 2)
}

func TestDefaultLanguage(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, session.English, defaultLanguage(cfg))

	cfg.App.DefaultLanguage = "తెలుగు"
	assert.Equal(t, session.Telugu, defaultLanguage(cfg))

	cfg.App.DefaultLanguage = "klingon"
	assert.Equal(t, session.English, defaultLanguage(cfg))
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	cfg := testConfig(t)

	store, source, err := openStore(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	// No credentials: every capability selects its keyless or local provider.
	services, closeServices, err := newServices(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(closeServices)

	handler := api.NewHandler(store, services, api.Options{
		DataSource:      source,
		DefaultLanguage: defaultLanguage(cfg),
		APIStatus:       cfg.APIStatus(),
		MaxUploadBytes:  cfg.MaxUploadBytes(),
		ImageFormats:    cfg.App.SupportedImageFormats,
	})
	return newRouter(cfg, handler)
}

func TestRouter_Status(t *testing.T) {
	r := newTestRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/status", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	var body struct {
		DataSource   string `json:"data_source"`
		Capabilities map[string]struct {
			Active string `json:"active"`
		} `json:"capabilities"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "temporary", body.DataSource)
	assert.Equal(t, "google-web", body.Capabilities["translation"].Active)
	assert.Equal(t, "google-web", body.Capabilities["speech"].Active)
	assert.Equal(t, "color", body.Capabilities["vision"].Active)
	assert.Equal(t, "templates", body.Capabilities["recipes"].Active)
}

func TestRouter_GenerateWithoutCredentialsUsesTemplates(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/recipes/generate",
		strings.NewReader(`{"ingredients": ["tomato", "onion", "mixed vegetables", "garlic"]}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Recipes  []recipe.Recipe `json:"recipes"`
		Provider string          `json:"provider"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "templates", body.Provider)
	assert.NotEmpty(t, body.Recipes)
}

func TestRouter_Metrics(t *testing.T) {
	r := newTestRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}
