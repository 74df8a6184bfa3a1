package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"servicedesk/internal/shared/query"
)

// ParsePagination reads page and page_size from the query string. Missing
// or unparsable values fall back to the defaults; page_size is capped.
func ParsePagination(c *gin.Context) query.PageFilter {
	return query.NewPageFilter(
		parseQueryInt(c, "page"),
		parseQueryInt(c, "page_size"),
	)
}

func parseQueryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}
