package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vichannnnn/holy-grail-sub001/initializers"
	"github.com/vichannnnn/holy-grail-sub001/repository"
	"github.com/vichannnnn/holy-grail-sub001/types"
)

// TaxonomyHandler serves the filter dropdown enumerations. Results are
// cached in Redis for a few minutes when a cache is configured; the data
// changes rarely (admin CRUD only) and is fetched on every page visit by
// every client.
type TaxonomyHandler struct {
	repo *repository.TaxonomyRepository
}

func NewTaxonomyHandler(repo *repository.TaxonomyRepository) *TaxonomyHandler {
	return &TaxonomyHandler{repo: repo}
}

// cached wraps a repository fetch with a Redis read-through. Cache failures
// are logged and ignored; the database remains the source of truth.
func cached(ctx context.Context, key string, load func() (interface{}, error)) (json.RawMessage, error) {
	rdb := initializers.RedisClient
	if rdb != nil {
		if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
			return raw, nil
		}
	}
	data, err := load()
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	if rdb != nil {
		if err := rdb.Set(ctx, key, raw, initializers.TaxonomyCacheTTL).Err(); err != nil {
			slog.Warn("taxonomy cache write failed", "key", key, "err", err)
		}
	}
	return raw, nil
}

func respondRaw(c *gin.Context, raw json.RawMessage, err error) {
	if err != nil {
		c.JSON(http.StatusInternalServerError,
			types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

// GetCategories handles GET /all_category_level.
func (h *TaxonomyHandler) GetCategories(c *gin.Context) {
	raw, err := cached(ctxFrom(c), "taxonomy:categories", func() (interface{}, error) {
		return h.repo.Categories()
	})
	respondRaw(c, raw, err)
}

// GetDocumentTypes handles GET /all_document_type.
func (h *TaxonomyHandler) GetDocumentTypes(c *gin.Context) {
	raw, err := cached(ctxFrom(c), "taxonomy:document_types", func() (interface{}, error) {
		return h.repo.DocumentTypes()
	})
	respondRaw(c, raw, err)
}

// GetSubjects handles GET /all_subjects. With category_id it returns only
// the subjects under that category, otherwise all subjects.
func (h *TaxonomyHandler) GetSubjects(c *gin.Context) {
	var categoryID *int
	key := "taxonomy:subjects:all"
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest,
				types.NewErrorResponse(types.ErrorCodeValidation, "Invalid category_id"))
			return
		}
		categoryID = &id
		key = fmt.Sprintf("taxonomy:subjects:%d", id)
	}
	raw, err := cached(ctxFrom(c), key, func() (interface{}, error) {
		return h.repo.Subjects(categoryID)
	})
	respondRaw(c, raw, err)
}

func ctxFrom(c *gin.Context) context.Context {
	return c.Request.Context()
}
