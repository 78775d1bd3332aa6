package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aliwaqas-commits/QuickScribe-AI/internal/summarizer"
	"github.com/gin-gonic/gin"
)

// SummarizeHandler validates the payload and delegates to the summarizer.
// Method and rate-limit checks have already run by the time it is invoked.
type SummarizeHandler struct {
	summarizer summarizer.Summarizer
	prompt     string
	minLen     int
	maxLen     int
	log        *slog.Logger

	invalidTextMsg string
	tooLargeMsg    string
}

func NewSummarizeHandler(
	s summarizer.Summarizer,
	prompt string,
	minLen, maxLen int,
	log *slog.Logger,
) *SummarizeHandler {
	return &SummarizeHandler{
		summarizer:     s,
		prompt:         prompt,
		minLen:         minLen,
		maxLen:         maxLen,
		log:            log,
		invalidTextMsg: fmt.Sprintf("Invalid text. Min %d characters required.", minLen),
		tooLargeMsg:    fmt.Sprintf("Text too large. Max %s characters.", groupDigits(maxLen)),
	}
}

func (h *SummarizeHandler) Summarize(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}

	// A missing field, a non-string value, or malformed JSON all land
	// here and share one client-facing message.
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.invalidTextMsg})
		return
	}

	length := utf8.RuneCountInString(req.Text)
	if length < h.minLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.invalidTextMsg})
		return
	}
	if length > h.maxLen {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": h.tooLargeMsg})
		return
	}

	ctx := c.Request.Context()
	summary, err := h.summarizer.Summarize(ctx, h.prompt+req.Text)
	if err != nil {
		if errors.Is(err, summarizer.ErrContentBlocked) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Content was blocked by safety filters.",
			})
			return
		}

		// Upstream detail stays in the server log only.
		h.log.ErrorContext(ctx, "Summarization failed",
			"error", err,
			"requestID", c.GetString("request_id"),
			"textLength", length)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate summary.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func groupDigits(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
