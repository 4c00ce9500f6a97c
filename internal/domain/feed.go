package domain

// FeedFilter is a dashboard filter label as shown in the UI.
type FeedFilter string

const (
	FilterAll       FeedFilter = "All"
	FilterProfiles  FeedFilter = "Profiles"
	FilterPosts     FeedFilter = "Posts"
	FilterProjects  FeedFilter = "Projects"
	FilterJobs      FeedFilter = "Jobs"
	FilterEvents    FeedFilter = "Events"
	FilterTutorials FeedFilter = "Tutorials"
	FilterBooks     FeedFilter = "Books"
	FilterQuestions FeedFilter = "Questions"
)

// filterKind maps a dashboard filter to the content kind sent upstream as
// a query parameter. "All" and "Profiles" are absent: neither narrows the
// content listing by kind.
var filterKind = map[FeedFilter]ContentType{
	FilterPosts:     ContentTypePost,
	FilterProjects:  ContentTypeProject,
	FilterJobs:      ContentTypeJob,
	FilterEvents:    ContentTypeEvent,
	FilterTutorials: ContentTypeTutorial,
	FilterBooks:     ContentTypeBooks,
	FilterQuestions: ContentTypeQuestion,
}

// Kind returns the content kind the filter narrows to, if any.
func (f FeedFilter) Kind() (ContentType, bool) {
	t, ok := filterKind[f]
	return t, ok
}

// Valid reports whether f is a recognized dashboard filter.
func (f FeedFilter) Valid() bool {
	if f == FilterAll || f == FilterProfiles {
		return true
	}
	_, ok := filterKind[f]
	return ok
}

// FeedParams holds paging and filter parameters for the dashboard feed.
// A non-empty Query switches the feed into search mode, which is
// unpaginated: results come from the search endpoint as a single page.
type FeedParams struct {
	Page     int
	PageSize int
	Filter   FeedFilter
	Query    string
}

// DefaultFeedParams returns feed params with sensible defaults.
func DefaultFeedParams() FeedParams {
	return FeedParams{
		Page:     1,
		PageSize: 10,
		Filter:   FilterAll,
	}
}

// Validate clamps params into acceptable bounds. This is bound correction,
// not validation.
func (p *FeedParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 10
	}
	if p.PageSize > 50 {
		p.PageSize = 50
	}
	if p.Filter == "" {
		p.Filter = FilterAll
	}
}

// SearchMode reports whether the params select the search endpoint.
func (p *FeedParams) SearchMode() bool {
	return p.Query != ""
}

// Pagination is the derived paging metadata of a feed page. It is always
// recomputed from the latest server response, never locally incremented.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes paging metadata from a server-reported total.
func NewPagination(total int, params FeedParams) Pagination {
	pages := total / params.PageSize
	if total%params.PageSize > 0 {
		pages++
	}

	return Pagination{
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalItems: total,
		TotalPages: pages,
	}
}

// FeedPage is one loaded page of the dashboard: ordered content, the users
// sidebar, and paging metadata. Both content and users must have loaded
// for the page to exist.
type FeedPage struct {
	Contents   []*ContentRecord `json:"contents"`
	Users      []*UserSummary   `json:"users"`
	Pagination Pagination       `json:"pagination"`
	Filter     FeedFilter       `json:"filter"`
	SearchMode bool             `json:"search_mode"`
}

// ContentPage is the upstream content listing response shape.
type ContentPage struct {
	Contents []*ContentRecord
	Total    int
}
