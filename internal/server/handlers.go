package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thoreinstein/rsscheck/internal/errors"
	"github.com/thoreinstein/rsscheck/internal/fetch"
	"github.com/thoreinstein/rsscheck/internal/logging"
	"github.com/thoreinstein/rsscheck/internal/source"
	"github.com/thoreinstein/rsscheck/internal/validator"
	"github.com/thoreinstein/rsscheck/pkg/fileutil"
)

// RequestSource names the result of a document posted to /validate.
const RequestSource = "request"

// ContentValidator checks an in-memory feed document.
type ContentValidator interface {
	ValidateContent(name, text string) *validator.Result
}

// Resolver expands a URL target into feed sources.
type Resolver interface {
	Resolve(ctx context.Context, target string) ([]source.FeedSource, error)
}

// Runner validates resolved sources.
type Runner interface {
	Run(ctx context.Context, sources []source.FeedSource) (*validator.Summary, error)
}

// Handler handles HTTP requests for the validation API.
type Handler struct {
	content  ContentValidator
	resolver Resolver
	runner   Runner
	maxSize  int64
}

// NewHandler creates a new API handler.
func NewHandler(content ContentValidator, resolver Resolver, runner Runner, maxSize int64) *Handler {
	return &Handler{
		content:  content,
		resolver: resolver,
		runner:   runner,
		maxSize:  maxSize,
	}
}

// Health handles the liveness endpoint.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ValidateBody validates the feed document sent as the request body.
func (h *Handler) ValidateBody(c *gin.Context) {
	raw, err := fileutil.ReadAllWithLimit(c.Request.Body, h.maxSize)
	if err != nil {
		if errors.Is(err, fileutil.ErrFileTooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, err := fetch.DecodeUTF8(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := h.content.ValidateContent(RequestSource, text)
	c.JSON(statusFor(res.Passed()), res.Document())
}

// ValidateURL resolves the url query parameter like the CLI does and
// validates every feed found.
func (h *Handler) ValidateURL(c *gin.Context) {
	target := c.Query("url")
	if target == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'url' parameter"})
		return
	}
	if !source.IsURL(target) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url must use http or https"})
		return
	}

	ctx := c.Request.Context()
	logger := logging.FromContext(ctx)

	sources, err := h.resolver.Resolve(ctx, target)
	if err != nil {
		logger.Error("resolving target", "url", logging.MaskURL(target), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "resolving target failed"})
		return
	}
	if len(sources) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No RSS feeds found at common paths for: " + target})
		return
	}

	summary, err := h.runner.Run(ctx, sources)
	if err != nil {
		logger.Error("validating feeds", "url", logging.MaskURL(target), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "validation aborted"})
		return
	}

	c.JSON(statusFor(summary.Success()), summary.Document())
}

func statusFor(passed bool) int {
	if passed {
		return http.StatusOK
	}
	return http.StatusUnprocessableEntity
}
