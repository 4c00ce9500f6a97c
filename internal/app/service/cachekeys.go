package service

import (
	"fmt"

	"engagement-service/internal/domain"
)

// Cache key layout. Mutation paths must evict every key whose payload
// could now be stale; the cache never self-invalidates on write.
const (
	// KeyCurrentProfile caches the acting user's own CV profile.
	KeyCurrentProfile = "cache_current_cv_profile"

	// KeyUsers caches the user summaries shown beside the feed.
	KeyUsers = "users"

	// feedPrefix namespaces every cached feed page, so one engagement
	// mutation can evict all pages that might embed the record.
	feedPrefix = "feed:"
)

func contentKey(id string) string {
	return "content:" + id
}

func feedKey(p domain.FeedParams) string {
	return fmt.Sprintf("%sp%d:s%d:f%s", feedPrefix, p.Page, p.PageSize, p.Filter)
}

func profileKey(id string) string {
	return "cv_profile:" + id
}

func publicProfileKey(id string) string {
	return "cv_profile:public:" + id
}
