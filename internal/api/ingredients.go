package api

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"sahachari/internal/vision"
)

type ingredientsRequest struct {
	Ingredients []string `json:"ingredients" binding:"required"`
}

// allowedExtension reports whether filename ends in one of the configured
// image formats.
func (h *Handler) allowedExtension(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	for _, f := range h.opts.ImageFormats {
		if strings.EqualFold(f, ext) {
			return true
		}
	}
	return len(h.opts.ImageFormats) == 0 && (ext == "jpg" || ext == "jpeg" || ext == "png")
}

// IdentifyIngredients handles image uploads and returns the ingredients found.
func (h *Handler) IdentifyIngredients(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("get form err: %s", err.Error()))
		return
	}

	if !h.allowedExtension(file.Filename) {
		c.String(http.StatusBadRequest, fmt.Sprintf("Invalid file type. Allowed formats: %s", strings.Join(h.opts.ImageFormats, ", ")))
		return
	}
	if h.opts.MaxUploadBytes > 0 && file.Size > h.opts.MaxUploadBytes {
		c.String(http.StatusRequestEntityTooLarge, fmt.Sprintf("File too large. Maximum size is %d MB", h.opts.MaxUploadBytes>>20))
		return
	}

	src, err := file.Open()
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("open file err: %s", err.Error()))
		return
	}
	defer src.Close()

	imageData, err := io.ReadAll(src)
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("read image err: %s", err.Error()))
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	res, err := h.Identifier.Identify(ctx, imageData)
	if err != nil {
		writeError(c, err)
		return
	}

	body := gin.H{"ingredients": res.Ingredients, "provider": res.Provider}
	if res.Notice != "" {
		body["notice"] = sessionFrom(c).Text(res.Notice)
	}
	c.JSON(http.StatusOK, body)
}

// Nutrition returns the static nutrition profile of an ingredient.
func (h *Handler) Nutrition(c *gin.Context) {
	c.JSON(http.StatusOK, vision.LookupNutrition(c.Param("name")))
}

func bindIngredients(c *gin.Context) ([]string, bool) {
	var req ingredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid request: %s", err.Error()))
		return nil, false
	}

	ingredients := make([]string, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		if ing = strings.TrimSpace(ing); ing != "" {
			ingredients = append(ingredients, ing)
		}
	}
	if len(ingredients) == 0 {
		c.String(http.StatusBadRequest, "Please provide at least one ingredient")
		return nil, false
	}
	return ingredients, true
}

// GenerateRecipes finds recipes for the given ingredients through the
// active recipe provider, falling back to the local templates.
func (h *Handler) GenerateRecipes(c *gin.Context) {
	ingredients, ok := bindIngredients(c)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	res := h.Finder.Find(ctx, ingredients)

	body := gin.H{"recipes": res.Recipes, "provider": res.Provider}
	if res.Notice != "" {
		body["notice"] = sessionFrom(c).Text(res.Notice)
	}
	c.JSON(http.StatusOK, body)
}

// SuggestDishes names traditional dishes that can be made from the ingredients.
func (h *Handler) SuggestDishes(c *gin.Context) {
	ingredients, ok := bindIngredients(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"dishes": h.Suggester.Suggest(ingredients)})
}

// GenerateCategory returns a freshly generated recipe of the category in the path.
func (h *Handler) GenerateCategory(c *gin.Context) {
	r, err := h.Generator.Generate(c.Param("category"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}
