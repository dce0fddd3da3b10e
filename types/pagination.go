package types

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// DefaultPageSize is used when the client does not send size.
const DefaultPageSize = 10

// MaxPageSize caps size to keep a single listing request bounded.
const MaxPageSize = 100

// PaginatedResult is the wire shape of every listing response:
// items plus page metadata. len(Items) is always <= Size.
type PaginatedResult struct {
	Items interface{} `json:"items"`
	Page  int         `json:"page"`
	Pages int         `json:"pages"`
	Size  int         `json:"size"`
	Total int         `json:"total"`
}

// PaginationHelper normalizes page/size and computes the SQL offset.
type PaginationHelper struct {
	Page   int
	Size   int
	Offset int
}

// NewPaginationHelper clamps page to >= 1 and size to (0, MaxPageSize].
func NewPaginationHelper(page, size int) *PaginationHelper {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return &PaginationHelper{
		Page:   page,
		Size:   size,
		Offset: (page - 1) * size,
	}
}

// BuildResult wraps items with page metadata for the given total row count.
func (p *PaginationHelper) BuildResult(items interface{}, total int) PaginatedResult {
	pages := (total + p.Size - 1) / p.Size
	return PaginatedResult{
		Items: items,
		Page:  p.Page,
		Pages: pages,
		Size:  p.Size,
		Total: total,
	}
}

// ParsePagination extracts page and size query params from the request.
// Unparseable values fall back to the defaults; the backend never rejects
// a listing request over pagination noise.
func ParsePagination(c *gin.Context) *PaginationHelper {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(DefaultPageSize)))
	return NewPaginationHelper(page, size)
}
