package handlers

import (
	"strconv"
	"time"

	"simba/utils"

	"github.com/gin-gonic/gin"
)

// queryInt reads a positive integer query parameter, returning fallback when
// it is absent or malformed.
func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// queryTime accepts YYYY-MM-DD or RFC3339.
func queryTime(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, utils.NewValidationError(key, "must be YYYY-MM-DD or RFC3339")
	}
	return &t, nil
}

// pageLimit reads ?limit, defaulting to def and capping at ceiling.
func pageLimit(c *gin.Context, def, ceiling int) int {
	n := queryInt(c, "limit", def)
	if n > ceiling {
		return ceiling
	}
	return n
}

func pagination(total int64, page, limit int) map[string]interface{} {
	if page <= 0 {
		page = 1
	}
	pages := int64(0)
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	return gin.H{"total": total, "page": page, "limit": limit, "pages": pages}
}
