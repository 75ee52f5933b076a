// Package pagination computes the compact window of page numbers and
// ellipsis markers rendered by list screens.
package pagination

import (
	"strconv"

	"github.com/iwvelando/financing-schedule/pkg/constants"
)

// EllipsisText is how an ellipsis marker renders as text.
const EllipsisText = "…"

// Item is either a page number or an ellipsis marker. Markers carry Page 0.
type Item struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// PageItem returns the item for a page number.
func PageItem(page int) Item {
	return Item{Page: page}
}

// EllipsisItem returns the non-interactive marker standing for skipped pages.
func EllipsisItem() Item {
	return Item{Ellipsis: true}
}

func (i Item) String() string {
	if i.Ellipsis {
		return EllipsisText
	}
	return strconv.Itoa(i.Page)
}

// Request describes a pagination control.
type Request struct {
	CurrentPage   int `json:"currentPage"`
	TotalPages    int `json:"totalPages"`
	SiblingCount  int `json:"siblingCount"`
	BoundaryCount int `json:"boundaryCount"`
}

// NewRequest returns a request using the default sibling and boundary counts.
func NewRequest(currentPage, totalPages int) Request {
	return Request{
		CurrentPage:   currentPage,
		TotalPages:    totalPages,
		SiblingCount:  constants.DefaultSiblingCount,
		BoundaryCount: constants.DefaultBoundaryCount,
	}
}

// Items computes the window for the request. Negative counts fall back to
// the defaults.
func (r Request) Items() []Item {
	siblings := r.SiblingCount
	if siblings < 0 {
		siblings = constants.DefaultSiblingCount
	}
	boundaries := r.BoundaryCount
	if boundaries < 0 {
		boundaries = constants.DefaultBoundaryCount
	}
	return Items(r.CurrentPage, r.TotalPages, siblings, boundaries)
}

// Items returns the ordered, deduplicated sequence of page numbers and
// ellipsis markers for a control showing currentPage out of totalPages.
// currentPage is expected to already lie within [1, totalPages]. Counts are
// capped at totalPages; a larger count cannot show more pages.
func Items(currentPage, totalPages, siblingCount, boundaryCount int) []Item {
	if totalPages <= 1 {
		return []Item{PageItem(1)}
	}
	siblingCount = max(0, min(siblingCount, totalPages))
	boundaryCount = max(0, min(boundaryCount, totalPages))

	startPages := pageRange(1, min(boundaryCount, totalPages))
	endPages := pageRange(max(totalPages-boundaryCount+1, boundaryCount+1), totalPages)

	siblingsStart := max(
		min(currentPage-siblingCount, totalPages-boundaryCount-siblingCount*2-1),
		boundaryCount+2,
	)
	siblingsEndLimit := totalPages - 1
	if len(endPages) > 0 {
		siblingsEndLimit = endPages[0] - 2
	}
	siblingsEnd := min(
		max(currentPage+siblingCount, boundaryCount+siblingCount*2+2),
		siblingsEndLimit,
	)

	items := make([]Item, 0, 2*boundaryCount+2*siblingCount+3)
	for _, page := range startPages {
		items = append(items, PageItem(page))
	}

	// A gap of a single page shows that page instead of an ellipsis.
	if siblingsStart > boundaryCount+2 {
		items = append(items, EllipsisItem())
	} else if boundaryCount+1 < totalPages-boundaryCount {
		items = append(items, PageItem(boundaryCount+1))
	}

	for _, page := range pageRange(siblingsStart, siblingsEnd) {
		items = append(items, PageItem(page))
	}

	if siblingsEnd < totalPages-boundaryCount-1 {
		items = append(items, EllipsisItem())
	} else if totalPages-boundaryCount > boundaryCount {
		items = append(items, PageItem(totalPages-boundaryCount))
	}

	for _, page := range endPages {
		items = append(items, PageItem(page))
	}

	return dedupe(items)
}

// Pages extracts the page numbers from items, skipping ellipsis markers.
func Pages(items []Item) []int {
	pages := make([]int, 0, len(items))
	for _, item := range items {
		if !item.Ellipsis {
			pages = append(pages, item.Page)
		}
	}
	return pages
}

// Clamp restricts page to [1, totalPages]. A totalPages below 1 is treated as 1.
func Clamp(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// TotalPages returns how many pages of pageSize records totalRows fills.
// At least one page is always reported so an empty list still renders.
func TotalPages(totalRows, pageSize int) int {
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}
	if totalRows <= 0 {
		return 1
	}
	pages := totalRows / pageSize
	if totalRows%pageSize != 0 {
		pages++
	}
	return pages
}

// pageRange returns the inclusive range [start, end]; empty when end < start.
func pageRange(start, end int) []int {
	if end < start {
		return nil
	}
	pages := make([]int, 0, end-start+1)
	for page := start; page <= end; page++ {
		pages = append(pages, page)
	}
	return pages
}

func dedupe(items []Item) []Item {
	seen := make(map[int]struct{}, len(items))
	result := items[:0]
	for _, item := range items {
		if !item.Ellipsis {
			if _, ok := seen[item.Page]; ok {
				continue
			}
			seen[item.Page] = struct{}{}
		}
		result = append(result, item)
	}
	return result
}
