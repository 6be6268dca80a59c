package shared

import (
	"net/http"
	"strconv"
)

// Pagination is the validated limit/offset window for a list query. Each
// resource picks its own default and ceiling: attendance pages by month (31),
// audit queries page wide (100), everything else uses 50.
type Pagination struct {
	Limit  int
	Offset int
}

// ParsePagination reads limit and offset from the query string, falling back
// to defaultLimit and clamping to maxLimit. Malformed or out-of-range values
// are treated as absent rather than rejected.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int) Pagination {
	page := Pagination{Limit: defaultLimit}
	if v, ok := queryInt(r, "limit"); ok && v > 0 {
		page.Limit = v
	}
	if v, ok := queryInt(r, "offset"); ok && v >= 0 {
		page.Offset = v
	}
	if maxLimit > 0 && page.Limit > maxLimit {
		page.Limit = maxLimit
	}
	return page
}

func queryInt(r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
