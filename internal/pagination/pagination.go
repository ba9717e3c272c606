// Package pagination slices ordered result sets into fixed-size pages.
package pagination

import (
	"net/url"
	"strconv"

	"github.com/avelichko/postbook/internal/models"
)

// Page is one window into an ordered post list plus the metadata the
// listing templates need to draw pager links.
type Page struct {
	Posts      []models.Post
	Number     int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

func (p Page) PrevNumber() int { return p.Number - 1 }
func (p Page) NextNumber() int { return p.Number + 1 }

// RequestedPage reads the "page" query parameter leniently: missing,
// malformed or non-positive values all mean page 1. Out-of-range values
// are clamped later, in Paginate.
func RequestedPage(query url.Values) int {
	n, err := strconv.Atoi(query.Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Paginate returns the requested page of posts. An empty list still has
// one (empty) page; requests past the end clamp to the last page.
func Paginate(posts []models.Post, pageSize, requested int) Page {
	if pageSize < 1 {
		pageSize = 1
	}
	if requested < 1 {
		requested = 1
	}

	total := (len(posts) + pageSize - 1) / pageSize
	if total < 1 {
		total = 1
	}
	if requested > total {
		requested = total
	}

	start := (requested - 1) * pageSize
	end := start + pageSize
	if start > len(posts) {
		start = len(posts)
	}
	if end > len(posts) {
		end = len(posts)
	}

	return Page{
		Posts:      posts[start:end],
		Number:     requested,
		TotalPages: total,
		HasPrev:    requested > 1,
		HasNext:    requested < total,
	}
}
