package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sahachari/internal/recipe"
	"sahachari/internal/session"
)

// languageFilter normalizes ?language= to the tag stored on records. Values
// that are not a known language pass through unchanged.
func languageFilter(c *gin.Context) string {
	raw := c.Query("language")
	if lang, ok := session.ParseLanguage(raw); ok {
		return string(lang)
	}
	return raw
}

func recipeID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "Invalid recipe id")
		return 0, false
	}
	return id, true
}

// savedWithWarning answers a mutation that was applied but not persisted:
// the record is echoed back with a notice in the session language.
func savedWithWarning(c *gin.Context, perr *recipe.PersistenceError, body gin.H) {
	body["error"] = perr.Error()
	body["notice"] = sessionFrom(c).Text(session.NoticeSaveFailed)
	c.JSON(http.StatusInternalServerError, body)
}

// SearchRecipes handles requests to list or search recipes.
func (h *Handler) SearchRecipes(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	recipes, err := h.RecipeStore.SearchRecipes(ctx, c.Query("q"), languageFilter(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipes)
}

// GetRecipe handles requests to retrieve a single recipe by id.
func (h *Handler) GetRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	r, err := h.RecipeStore.FindRecipe(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

// AddRecipe validates and stores a new recipe.
func (h *Handler) AddRecipe(c *gin.Context) {
	var r recipe.Recipe
	if err := c.ShouldBindJSON(&r); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid recipe: %s", err.Error()))
		return
	}
	if err := recipe.CheckValid(r); err != nil {
		writeError(c, err)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	added, err := h.RecipeStore.AddRecipe(ctx, r)
	var perr *recipe.PersistenceError
	if errors.As(err, &perr) && added != nil {
		savedWithWarning(c, perr, gin.H{"recipe": added})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, added)
}

// UpdateRecipe merges the supplied fields into an existing recipe.
func (h *Handler) UpdateRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	var patch recipe.RecipePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid update: %s", err.Error()))
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	updated, err := h.RecipeStore.UpdateRecipe(ctx, id, patch)
	var perr *recipe.PersistenceError
	if errors.As(err, &perr) && updated != nil {
		savedWithWarning(c, perr, gin.H{"recipe": updated})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteRecipe removes a recipe.
func (h *Handler) DeleteRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	err := h.RecipeStore.DeleteRecipe(ctx, id)
	var perr *recipe.PersistenceError
	if errors.As(err, &perr) {
		savedWithWarning(c, perr, gin.H{"id": id})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ValidateRecipe returns every problem with the submitted recipe without
// storing it.
func (h *Handler) ValidateRecipe(c *gin.Context) {
	var r recipe.Recipe
	if err := c.ShouldBindJSON(&r); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid recipe: %s", err.Error()))
		return
	}

	problems := recipe.Validate(r)
	c.JSON(http.StatusOK, gin.H{"valid": len(problems) == 0, "errors": problems})
}

// Statistics summarizes the stored recipes.
func (h *Handler) Statistics(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	recipes, err := h.RecipeStore.ListRecipes(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe.Summarize(recipes))
}

// ImportRecipes adds every row of an uploaded CSV file.
func (h *Handler) ImportRecipes(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("get form err: %s", err.Error()))
		return
	}

	src, err := file.Open()
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("open file err: %s", err.Error()))
		return
	}
	defer src.Close()

	ctx, cancel := h.requestContext(c)
	defer cancel()

	imported, err := recipe.ImportCSV(ctx, h.RecipeStore, src)
	var perr *recipe.PersistenceError
	if errors.As(err, &perr) {
		savedWithWarning(c, perr, gin.H{"imported": imported})
		return
	}
	if err != nil {
		slog.Warn("CSV import stopped", "imported", imported, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"imported": imported, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"imported": imported})
}

// ExportRecipes streams every recipe as a CSV attachment.
func (h *Handler) ExportRecipes(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	recipes, err := h.RecipeStore.ListRecipes(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="recipes.csv"`)
	c.Status(http.StatusOK)
	if err := recipe.ExportCSV(c.Writer, recipes); err != nil {
		slog.Error("Failed to export recipes", "error", err)
	}
}

// SearchArticles handles requests to list or search cultural articles.
func (h *Handler) SearchArticles(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	articles, err := h.RecipeStore.SearchArticles(ctx, c.Query("q"), languageFilter(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, articles)
}
