package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sahachari/internal/api"
	"sahachari/internal/config"
	"sahachari/internal/finder"
	"sahachari/internal/generator"
	"sahachari/internal/logger"
	"sahachari/internal/platform/azure"
	"sahachari/internal/platform/gemini"
	"sahachari/internal/platform/google"
	"sahachari/internal/platform/gweb"
	"sahachari/internal/platform/openai"
	"sahachari/internal/platform/spoonacular"
	"sahachari/internal/recipe"
	"sahachari/internal/session"
	"sahachari/internal/speech"
	"sahachari/internal/translation"
	"sahachari/internal/vision"
)

func main() {
	configPath := os.Getenv("SAHACHARI_CONFIG")
	if configPath == "" {
		configPath = "config.json"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}

	slog.SetDefault(logger.New(logger.ParseEnv(cfg.Env),
		logger.WithLogToFile(cfg.Log.ToFile),
		logger.WithLogFile(cfg.Log.File),
	))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, dataSource, err := openStore(cfg)
	if err != nil {
		panic(fmt.Errorf("error opening record store: %w", err))
	}
	defer store.Close()

	services, closeServices, err := newServices(ctx, cfg)
	if err != nil {
		panic(fmt.Errorf("error creating services: %w", err))
	}
	defer closeServices()

	handler := api.NewHandler(store, services, api.Options{
		DataSource:      dataSource,
		DefaultLanguage: defaultLanguage(cfg),
		APIStatus:       cfg.APIStatus(),
		Timeout:         cfg.RequestTimeout(),
		MaxUploadBytes:  cfg.MaxUploadBytes(),
		ImageFormats:    cfg.App.SupportedImageFormats,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newRouter(cfg, handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Starting server", "addr", cfg.Server.Addr, "data_source", dataSource)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

func defaultLanguage(cfg *config.Config) session.Language {
	if lang, ok := session.ParseLanguage(cfg.App.DefaultLanguage); ok {
		return lang
	}
	return session.English
}

// openStore returns the record store for the configured data source and the
// name of the source actually used.
func openStore(cfg *config.Config) (recipe.Store, string, error) {
	switch cfg.DataSource {
	case config.DataSourceProduction:
		if cfg.DatabaseURL == "" {
			slog.Warn("DATABASE_URL is not set, using the JSON document", "path", cfg.DataFile)
			break
		}
		store, err := recipe.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			return nil, "", err
		}
		return store, config.DataSourceProduction, nil
	case config.DataSourceSQLite:
		store, err := recipe.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, "", err
		}
		return store, config.DataSourceSQLite, nil
	}

	store, err := recipe.OpenJSONStore(cfg.DataFile)
	if err != nil {
		return nil, "", err
	}
	return store, config.DataSourceTemporary, nil
}

// newServices builds every provider in preference order and lets each
// capability service select the first configured one.
func newServices(ctx context.Context, cfg *config.Config) (api.Services, func(), error) {
	keys := cfg.Keys

	googleTranslator, err := google.NewTranslator(ctx, keys.GoogleTranslate)
	if err != nil {
		return api.Services{}, nil, err
	}
	googleSpeech, err := google.NewSynthesizer(ctx, keys.GoogleCloudTTS)
	if err != nil {
		return api.Services{}, nil, err
	}
	googleVision, err := google.NewIdentifier(ctx, keys.GoogleVision)
	if err != nil {
		return api.Services{}, nil, err
	}
	geminiClient, err := gemini.NewClient(ctx, keys.Gemini)
	if err != nil {
		return api.Services{}, nil, err
	}

	web := gweb.NewClient()
	openaiClient := openai.NewClient(keys.OpenAI)

	services := api.Services{
		Translator:  translation.NewService(cfg.CacheTTL(), googleTranslator, web),
		Synthesizer: speech.NewService(cfg.App.MaxTextLength, googleSpeech, web),
		Identifier: vision.NewService(
			vision.Options{CacheTTL: cfg.CacheTTL(), Formats: cfg.App.SupportedImageFormats},
			googleVision,
			azure.NewClient(keys.AzureVisionEndpoint, keys.AzureComputerVision),
			openaiClient,
			geminiClient,
		),
		Finder: finder.NewService(generator.NewMatcher(),
			spoonacular.NewClient(keys.Spoonacular),
			openaiClient,
			geminiClient,
		),
		Generator: generator.NewGenerator(nil),
		Suggester: generator.NewSuggester(),
	}

	for name, s := range map[string]interface{ ProviderName() string }{
		"translation": services.Translator,
		"speech":      services.Synthesizer,
		"vision":      services.Identifier,
		"recipes":     services.Finder,
	} {
		slog.Info("Provider selected", "capability", name, "provider", s.ProviderName())
	}

	closeFn := func() {
		if err := geminiClient.Close(); err != nil {
			slog.Warn("Failed to close gemini client", "error", err)
		}
	}
	return services, closeFn, nil
}

func newRouter(cfg *config.Config, handler *api.Handler) *gin.Engine {
	if logger.ParseEnv(cfg.Env) == logger.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxUploadBytes()

	// Configure CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Language", "X-Request-ID", "X-Notice"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Recovery(), api.RequestID(), api.RequestLogger())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limited := r.Group("/")
	limited.Use(
		api.NewRateLimiter(cfg.Server.RateLimitPerSecond, cfg.Server.RateLimitBurst).Middleware(),
		api.Session(defaultLanguage(cfg)),
	)
	handler.Register(limited)

	return r
}
