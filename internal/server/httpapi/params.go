package httpapi

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/ledgerkeep/internal/httperr"
)

// parsePathID reads the :id path parameter as a positive integer. The name
// is the human-readable parameter name used in the error message.
func parsePathID(c *gin.Context, name string) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, httperr.Newf(400, "Invalid %s: %q", name, raw)
	}
	return id, nil
}

// queryInt64 reads an optional integer query parameter. Absence is nil,
// not an error.
func queryInt64(c *gin.Context, key, name string) (*int64, error) {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, httperr.Newf(400, "Invalid %s: %q", name, raw)
	}
	return &v, nil
}

// queryTime reads an optional RFC 3339 timestamp query parameter.
func queryTime(c *gin.Context, key, name string) (*time.Time, error) {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, httperr.Newf(400, "Invalid %s: %q", name, raw)
	}
	return &t, nil
}

// queryLimit reads the optional pagination limit. A limit that is not a
// positive integer is rejected before any query runs.
func queryLimit(c *gin.Context) (*int, error) {
	raw, ok := c.GetQuery("limit")
	if !ok {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return nil, httperr.Newf(400, "Invalid %s: %q", "limit per page", raw)
	}
	return &v, nil
}
