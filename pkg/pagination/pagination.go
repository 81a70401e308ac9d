// Package pagination carries the page envelope shared by the list and
// search endpoints. The current page is 1-based.
package pagination

type Request struct {
	Page     int `json:"page" form:"page"`
	PageSize int `json:"page_size" form:"page_size"`
}

// Normalized clamps the request to sane bounds: page >= 1, page size in
// [1, 100] with a default of 10.
func (r Request) Normalized() Request {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = 10
	} else if r.PageSize > 100 {
		r.PageSize = 100
	}
	return r
}

func (r Request) Offset() int {
	return (r.Page - 1) * r.PageSize
}

type Meta struct {
	Current  int   `json:"current"`
	PageSize int   `json:"pageSize"`
	Pages    int   `json:"pages"`
	Total    int64 `json:"total"`
}

// MetaFor computes the envelope for a normalized request and row count.
func MetaFor(r Request, total int64) Meta {
	pages := int(total) / r.PageSize
	if int(total)%r.PageSize != 0 {
		pages++
	}
	return Meta{Current: r.Page, PageSize: r.PageSize, Pages: pages, Total: total}
}
