package humastar

import "fmt"

// RFC 8288 pagination links. Response bodies implement Pager;
// LinkTransformer turns the result into first/prev/next/last Link headers.

// DefaultLimit is the page size used when a request names none.
const DefaultLimit = 50

// Pager is implemented by response bodies that carry pagination metadata.
type Pager interface {
	PaginationLinks(basePath string) []string
}

// PageInput is embedded by list inputs that accept offset and limit.
type PageInput struct {
	Offset int `query:"offset" minimum:"0" default:"0" doc:"Number of items to skip"`
	Limit  int `query:"limit" minimum:"0" maximum:"500" default:"50" doc:"Page size"`
}

// PageBody is a generic paginated response envelope.
type PageBody[T any] struct {
	Total  int `json:"total" doc:"Total number of items"`
	Offset int `json:"offset" doc:"Current offset"`
	Limit  int `json:"limit" doc:"Page size"`
	Data   []T `json:"data" doc:"Items"`
}

// Paginate cuts one page out of items. A zero limit means DefaultLimit.
func Paginate[T any](items []T, in PageInput) PageBody[T] {
	limit := in.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	offset := min(max(in.Offset, 0), len(items))
	end := min(offset+limit, len(items))
	data := items[offset:end]
	if data == nil {
		data = []T{}
	}
	return PageBody[T]{Total: len(items), Offset: offset, Limit: limit, Data: data}
}

// PaginationLinks returns the first/prev/next/last Link header values.
func (p PageBody[T]) PaginationLinks(basePath string) []string {
	if p.Limit <= 0 {
		return nil
	}
	page := func(offset int, rel string) string {
		return fmt.Sprintf(`<%s?offset=%d&limit=%d>; rel="%s"`, basePath, offset, p.Limit, rel)
	}

	links := []string{page(0, "first")}
	if p.Offset > 0 {
		links = append(links, page(max(p.Offset-p.Limit, 0), "prev"))
	}
	if p.Offset+p.Limit < p.Total {
		links = append(links, page(p.Offset+p.Limit, "next"))
	}
	last := max((p.Total-1)/p.Limit*p.Limit, 0)
	return append(links, page(last, "last"))
}
