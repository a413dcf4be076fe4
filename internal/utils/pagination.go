package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-api/internal/constants"
)

// SortDirection is the requested ordering direction.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortRequest is a single requested sort key.
type SortRequest struct {
	Field     string
	Direction SortDirection
}

// PageRequest holds a zero-based page index, a page size and an optional sort.
type PageRequest struct {
	Page int
	Size int
	Sort *SortRequest
}

// Offset returns the number of rows to skip for this page. Callers check
// PastEnd first, which keeps the product within the row count.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// PastEnd reports whether the page starts at or after the last of total rows.
// It compares page indexes rather than offsets so a huge page cannot overflow.
func (p PageRequest) PastEnd(total int64) bool {
	if total <= 0 || p.Size <= 0 {
		return true
	}
	totalPages := (total + int64(p.Size) - 1) / int64(p.Size)
	return int64(p.Page) >= totalPages
}

// Page is one window of a larger ordered result.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	Last          bool  `json:"last"`
}

// NewPage assembles a Page and derives the page count and last-page flag from the total.
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}

	totalPages := 0
	if req.Size > 0 {
		totalPages = int(total) / req.Size
		if int(total)%req.Size > 0 {
			totalPages++
		}
	}

	return Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		Number:        req.Page,
		Size:          req.Size,
		Last:          req.Page >= totalPages-1,
	}
}

// MapPage converts the content of a page while keeping its metadata.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Content))
	for i, v := range p.Content {
		out[i] = fn(v)
	}
	return Page[U]{
		Content:       out,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		Number:        p.Number,
		Size:          p.Size,
		Last:          p.Last,
	}
}

// GetPageRequest extracts page, size and sort query parameters.
// sort takes the form "field" or "field,asc|desc"; the direction defaults to descending.
func GetPageRequest(c *gin.Context) PageRequest {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(constants.DefaultPageSize)))
	if err != nil || size < constants.MinPageSize || size > constants.MaxPageSize {
		size = constants.DefaultPageSize
	}

	return PageRequest{
		Page: page,
		Size: size,
		Sort: ParseSort(c.Query("sort")),
	}
}

// ParseSort parses "field[,direction]". An empty value yields nil.
func ParseSort(raw string) *SortRequest {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parts := strings.SplitN(raw, ",", 2)
	sort := &SortRequest{
		Field:     strings.TrimSpace(parts[0]),
		Direction: SortDesc,
	}
	if len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[1]), string(SortAsc)) {
		sort.Direction = SortAsc
	}
	if sort.Field == "" {
		return nil
	}
	return sort
}
