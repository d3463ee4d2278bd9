package shared

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// LimitOffset normalises raw paging query params. Zero or negative limits get
// the default page size, oversized limits are clamped.
func LimitOffset(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
