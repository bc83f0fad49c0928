package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sahachari/internal/finder"
	"sahachari/internal/recipe"
	"sahachari/internal/session"
	"sahachari/internal/speech"
	"sahachari/internal/vision"
)

// RecipeStore defines the interface for recipe and article data operations.
type RecipeStore interface {
	ListRecipes(ctx context.Context) ([]recipe.Recipe, error)
	FindRecipe(ctx context.Context, id int) (*recipe.Recipe, error)
	SearchRecipes(ctx context.Context, query, language string) ([]recipe.Recipe, error)
	AddRecipe(ctx context.Context, r recipe.Recipe) (*recipe.Recipe, error)
	UpdateRecipe(ctx context.Context, id int, patch recipe.RecipePatch) (*recipe.Recipe, error)
	DeleteRecipe(ctx context.Context, id int) error
	SearchArticles(ctx context.Context, query, language string) ([]recipe.Article, error)
}

// reporter is implemented by every capability service for /status.
type reporter interface {
	ProviderName() string
	Providers() map[string]bool
}

// Translator defines the interface for text translation.
type Translator interface {
	reporter
	Translate(ctx context.Context, text, target string) (string, error)
	TranslateBatch(ctx context.Context, texts []string, target string) ([]string, error)
	Detect(ctx context.Context, text string) (string, error)
}

// Synthesizer defines the interface for text to speech.
type Synthesizer interface {
	reporter
	Synthesize(ctx context.Context, text, lang string, slow bool) (*speech.Audio, error)
}

// Identifier defines the interface for ingredient recognition in photos.
type Identifier interface {
	reporter
	Identify(ctx context.Context, data []byte) (*vision.Result, error)
}

// RecipeFinder defines the interface for recipe search by ingredients.
type RecipeFinder interface {
	reporter
	Find(ctx context.Context, ingredients []string) *finder.Result
}

// CategoryGenerator produces a recipe of a named category.
type CategoryGenerator interface {
	Generate(category string) (*recipe.Recipe, error)
}

// DishSuggester names dishes that can be made from the available ingredients.
type DishSuggester interface {
	Suggest(available []string) []string
}

// Services bundles the capabilities the handler serves.
type Services struct {
	Translator  Translator
	Synthesizer Synthesizer
	Identifier  Identifier
	Finder      RecipeFinder
	Generator   CategoryGenerator
	Suggester   DishSuggester
}

// Options holds request limits and the facts reported by /status.
type Options struct {
	DataSource      string
	DefaultLanguage session.Language
	APIStatus       map[string]bool
	Timeout         time.Duration
	MaxUploadBytes  int64
	ImageFormats    []string
}

// Handler handles HTTP requests.
type Handler struct {
	RecipeStore RecipeStore
	Services
	opts Options
}

// NewHandler creates a new Handler.
func NewHandler(recipeStore RecipeStore, services Services, opts Options) *Handler {
	if opts.Timeout <= 0 {
		opts.Timeout = 45 * time.Second
	}
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = session.English
	}
	return &Handler{RecipeStore: recipeStore, Services: services, opts: opts}
}

// Register mounts every route on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/status", h.Status)

	r.GET("/recipes", h.SearchRecipes)
	r.POST("/recipes", h.AddRecipe)
	r.GET("/recipes/stats", h.Statistics)
	r.GET("/recipes/export", h.ExportRecipes)
	r.POST("/recipes/import", h.ImportRecipes)
	r.POST("/recipes/validate", h.ValidateRecipe)
	r.POST("/recipes/generate", h.GenerateRecipes)
	r.GET("/recipes/generate/:category", h.GenerateCategory)
	r.POST("/recipes/suggest", h.SuggestDishes)
	r.GET("/recipes/:id", h.GetRecipe)
	r.PATCH("/recipes/:id", h.UpdateRecipe)
	r.DELETE("/recipes/:id", h.DeleteRecipe)

	r.GET("/articles", h.SearchArticles)

	r.POST("/translate", h.Translate)
	r.POST("/translate/batch", h.TranslateBatch)
	r.POST("/detect", h.Detect)
	r.GET("/languages", h.Languages)
	r.POST("/speech", h.Speech)

	r.POST("/ingredients/identify", h.IdentifyIngredients)
	r.GET("/ingredients/:name/nutrition", h.Nutrition)
}

// requestContext bounds the outbound work done for one request.
func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.opts.Timeout)
}

type capabilityStatus struct {
	Active    string          `json:"active"`
	Providers map[string]bool `json:"providers"`
}

func statusOf(r reporter) capabilityStatus {
	return capabilityStatus{Active: r.ProviderName(), Providers: r.Providers()}
}

// Status reports the data source, credentials and the provider chosen for
// each capability.
func (h *Handler) Status(c *gin.Context) {
	sess := sessionFrom(c)

	c.JSON(http.StatusOK, gin.H{
		"data_source":      h.opts.DataSource,
		"default_language": h.opts.DefaultLanguage,
		"language":         sess.Language,
		"api_keys":         h.opts.APIStatus,
		"capabilities": gin.H{
			"translation": statusOf(h.Translator),
			"speech":      statusOf(h.Synthesizer),
			"vision":      statusOf(h.Identifier),
			"recipes":     statusOf(h.Finder),
		},
	})
}
