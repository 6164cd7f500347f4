package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/newswarehouse/internal/constants"
	"github.com/jonesrussell/newswarehouse/internal/database"
	"github.com/jonesrussell/newswarehouse/internal/domain"
	"github.com/jonesrussell/newswarehouse/internal/logger"
)

// ArticleReader defines the read-side queries the handlers need.
type ArticleReader interface {
	ListCurrent(ctx context.Context, limit, offset int) ([]domain.Article, int, error)
	ListByDate(ctx context.Context, day time.Time, limit, offset int) ([]domain.Article, error)
	Latest(ctx context.Context) (*domain.Article, error)
	TopAuthors(ctx context.Context, limit int) ([]domain.AuthorCount, error)
}

// ArticlesHandler serves the warehouse read endpoints.
type ArticlesHandler struct {
	reader ArticleReader
	log    logger.Interface
}

// NewArticlesHandler creates a new articles handler.
func NewArticlesHandler(reader ArticleReader, log logger.Interface) *ArticlesHandler {
	return &ArticlesHandler{
		reader: reader,
		log:    log,
	}
}

// ListArticles handles GET /api/v1/articles
func (h *ArticlesHandler) ListArticles(c *gin.Context) {
	limit, offset := parseLimitOffset(c, constants.DefaultPageSize)

	articles, total, err := h.reader.ListCurrent(c.Request.Context(), limit, offset)
	if err != nil {
		h.log.Error("failed to list articles", "error", err)
		respondInternalError(c, "Failed to retrieve articles")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

// ListTodayArticles handles GET /api/v1/articles/today
func (h *ArticlesHandler) ListTodayArticles(c *gin.Context) {
	limit, offset := parseLimitOffset(c, constants.DefaultPageSize)
	today := time.Now().UTC().Truncate(24 * time.Hour)

	articles, err := h.reader.ListByDate(c.Request.Context(), today, limit, offset)
	if err != nil {
		h.log.Error("failed to list today's articles", "error", err)
		respondInternalError(c, "Failed to retrieve articles")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":     today.Format("2006-01-02"),
		"articles": articles,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetLatestArticle handles GET /api/v1/articles/latest
func (h *ArticlesHandler) GetLatestArticle(c *gin.Context) {
	article, err := h.reader.Latest(c.Request.Context())
	if errors.Is(err, database.ErrNoArticles) {
		respondNotFound(c, "article")
		return
	}
	if err != nil {
		h.log.Error("failed to load latest article", "error", err)
		respondInternalError(c, "Failed to retrieve article")
		return
	}

	c.JSON(http.StatusOK, article)
}

// ListTopAuthors handles GET /api/v1/authors/top
func (h *ArticlesHandler) ListTopAuthors(c *gin.Context) {
	limit, _ := parseLimitOffset(c, constants.DefaultTopAuthors)

	authors, err := h.reader.TopAuthors(c.Request.Context(), limit)
	if err != nil {
		h.log.Error("failed to list top authors", "error", err)
		respondInternalError(c, "Failed to retrieve authors")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authors": authors,
		"limit":   limit,
	})
}
