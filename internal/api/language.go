package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sahachari/internal/session"
	"sahachari/internal/translation"
)

type translateRequest struct {
	Text   string `json:"text"`
	Target string `json:"target"`
}

type batchRequest struct {
	Texts  []string `json:"texts" binding:"required"`
	Target string   `json:"target"`
}

type speechRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Slow     bool   `json:"slow"`
}

// targetCode resolves a requested language to a provider code. An empty
// value means the session language.
func targetCode(raw string, sess session.Session) string {
	if raw == "" {
		return sess.Language.Code()
	}
	if lang, ok := session.ParseLanguage(raw); ok {
		return lang.Code()
	}
	return strings.ToLower(strings.TrimSpace(raw))
}

// Translate translates one text. A failed translation still answers 200
// with the original text and a notice.
func (h *Handler) Translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid request: %s", err.Error()))
		return
	}
	sess := sessionFrom(c)
	target := targetCode(req.Target, sess)

	ctx, cancel := h.requestContext(c)
	defer cancel()

	text, err := h.Translator.Translate(ctx, req.Text, target)
	body := gin.H{"text": text, "target": target, "provider": h.Translator.ProviderName()}
	if err != nil {
		slog.Warn("Translation degraded", "request_id", sess.RequestID, "error", err)
		body["notice"] = sess.Text(session.NoticeTranslationFailed)
	}

	c.JSON(http.StatusOK, body)
}

// TranslateBatch translates every text, degrading per item.
func (h *Handler) TranslateBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid request: %s", err.Error()))
		return
	}
	sess := sessionFrom(c)
	target := targetCode(req.Target, sess)

	ctx, cancel := h.requestContext(c)
	defer cancel()

	texts, err := h.Translator.TranslateBatch(ctx, req.Texts, target)
	body := gin.H{"texts": texts, "target": target}
	if err != nil {
		slog.Warn("Batch translation degraded", "request_id", sess.RequestID, "error", err)
		body["notice"] = sess.Text(session.NoticeTranslationFailed)
	}

	c.JSON(http.StatusOK, body)
}

// Detect reports the language of a text, "en" when detection fails.
func (h *Handler) Detect(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid request: %s", err.Error()))
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	lang, err := h.Translator.Detect(ctx, req.Text)
	if err != nil {
		slog.Warn("Language detection failed", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"language": lang})
}

// Languages lists the translation targets by code.
func (h *Handler) Languages(c *gin.Context) {
	c.JSON(http.StatusOK, translation.SupportedLanguages())
}

// Speech synthesizes MP3 audio. With ?format=json the audio is returned
// base64-encoded together with any notice.
func (h *Handler) Speech(c *gin.Context) {
	var req speechRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid request: %s", err.Error()))
		return
	}
	sess := sessionFrom(c)
	lang := targetCode(req.Language, sess)

	ctx, cancel := h.requestContext(c)
	defer cancel()

	audio, err := h.Synthesizer.Synthesize(ctx, req.Text, lang, req.Slow)
	if err != nil {
		writeError(c, err)
		return
	}

	if c.Query("format") == "json" {
		body := gin.H{"audio": audio.Data, "language": audio.Language}
		if audio.Notice != "" {
			body["notice"] = sess.Text(audio.Notice)
		}
		c.JSON(http.StatusOK, body)
		return
	}

	c.Header("Content-Language", audio.Language)
	if audio.Notice != "" {
		c.Header("X-Notice", string(audio.Notice))
	}
	c.Data(http.StatusOK, "audio/mpeg", audio.Data)
}
