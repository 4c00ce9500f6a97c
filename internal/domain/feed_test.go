package domain

import "testing"

func TestFeedFilter_Kind(t *testing.T) {
	tests := []struct {
		filter   FeedFilter
		kind     ContentType
		narrowed bool
	}{
		{FilterAll, "", false},
		{FilterProfiles, "", false},
		{FilterPosts, ContentTypePost, true},
		{FilterProjects, ContentTypeProject, true},
		{FilterJobs, ContentTypeJob, true},
		{FilterEvents, ContentTypeEvent, true},
		{FilterTutorials, ContentTypeTutorial, true},
		{FilterBooks, ContentTypeBooks, true},
		{FilterQuestions, ContentTypeQuestion, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			kind, ok := tt.filter.Kind()
			if ok != tt.narrowed {
				t.Fatalf("Kind() narrowed = %v, want %v", ok, tt.narrowed)
			}
			if kind != tt.kind {
				t.Errorf("Kind() = %q, want %q", kind, tt.kind)
			}
		})
	}
}

func TestFeedParams_Validate(t *testing.T) {
	tests := []struct {
		name     string
		in       FeedParams
		expected FeedParams
	}{
		{
			name:     "zero values corrected",
			in:       FeedParams{},
			expected: FeedParams{Page: 1, PageSize: 10, Filter: FilterAll},
		},
		{
			name:     "negative page corrected",
			in:       FeedParams{Page: -3, PageSize: 20, Filter: FilterJobs},
			expected: FeedParams{Page: 1, PageSize: 20, Filter: FilterJobs},
		},
		{
			name:     "oversized page size clamped",
			in:       FeedParams{Page: 2, PageSize: 500, Filter: FilterAll},
			expected: FeedParams{Page: 2, PageSize: 50, Filter: FilterAll},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Validate()
			if p != tt.expected {
				t.Errorf("Validate() = %+v, want %+v", p, tt.expected)
			}
		})
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		pageSize   int
		totalPages int
	}{
		{"even split", 40, 10, 4},
		{"remainder adds a page", 41, 10, 5},
		{"empty", 0, 10, 0},
		{"single short page", 3, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := FeedParams{Page: 1, PageSize: tt.pageSize}
			p := NewPagination(tt.total, params)
			if p.TotalPages != tt.totalPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.totalPages)
			}
			if p.TotalItems != tt.total {
				t.Errorf("TotalItems = %d, want %d", p.TotalItems, tt.total)
			}
		})
	}
}

func TestFeedParams_SearchMode(t *testing.T) {
	p := DefaultFeedParams()
	if p.SearchMode() {
		t.Error("empty query should not be search mode")
	}
	p.Query = "golang"
	if !p.SearchMode() {
		t.Error("non-empty query should be search mode")
	}
}
