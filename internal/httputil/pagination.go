package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseStreamWindow parses the "after" and "limit" query parameters used to page
// through an event stream. after defaults to 0 (from the beginning) and limit to
// 50; limit cannot exceed 100.
func ParseStreamWindow(c *gin.Context) (after int64, limit int, err error) {
	after, err = strconv.ParseInt(c.DefaultQuery("after", "0"), 10, 64)
	if err != nil || after < 0 {
		return 0, 0, fmt.Errorf("invalid after parameter: must be a non-negative integer")
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 100 {
		return 0, 0, fmt.Errorf("invalid limit parameter: must be between 1 and 100")
	}

	return after, limit, nil
}
