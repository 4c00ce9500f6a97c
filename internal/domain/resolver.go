package domain

// Card holds the presentational fields the feed and detail views need from
// a content record, resolved across the two historical record shapes.
type Card struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Defaults used when neither shape yields a value.
const (
	DefaultTitle       = "Untitled"
	DefaultDescription = ""
	DefaultImage       = "/static/img/placeholder.png"
)

// accessor reads one candidate location for a presentational field.
// Resolution tries accessors in priority order and takes the first
// non-empty result. The order is fixed for backward compatibility with
// previously stored records: flat field, kind-specific nested name,
// generic nested name, default.
type accessor func(*ContentRecord) string

func flat(get func(*ContentRecord) string) accessor {
	return get
}

func nested(key string) accessor {
	return func(r *ContentRecord) string {
		if r.Extra == nil {
			return ""
		}
		if s, ok := r.Extra[key].(string); ok {
			return s
		}
		return ""
	}
}

// kindField names the kind-specific nested key per content type, for each
// of the three card fields. Legacy records wrote e.g. "jobTitle" instead
// of a flat title.
var kindField = map[ContentType]struct{ title, desc, image string }{
	ContentTypePost:     {"postTitle", "postDescription", "postImage"},
	ContentTypeProject:  {"projectTitle", "projectDescription", "projectImage"},
	ContentTypeJob:      {"jobTitle", "jobDescription", "companyLogo"},
	ContentTypeEvent:    {"eventTitle", "eventDescription", "eventImage"},
	ContentTypeTutorial: {"tutorialTitle", "tutorialDescription", "tutorialImage"},
	ContentTypeBooks:    {"bookTitle", "bookDescription", "bookCover"},
	ContentTypeQuestion: {"questionTitle", "questionDescription", "questionImage"},
}

func resolve(r *ContentRecord, chain []accessor, fallback string) string {
	for _, a := range chain {
		if v := a(r); v != "" {
			return v
		}
	}
	return fallback
}

// ResolveTitle extracts the display title of a record.
func ResolveTitle(r *ContentRecord) string {
	return resolve(r, []accessor{
		flat(func(r *ContentRecord) string { return r.Title }),
		nested(kindField[r.ContentType].title),
		nested("title"),
	}, DefaultTitle)
}

// ResolveDescription extracts the display description of a record.
func ResolveDescription(r *ContentRecord) string {
	return resolve(r, []accessor{
		flat(func(r *ContentRecord) string { return r.Description }),
		nested(kindField[r.ContentType].desc),
		nested("description"),
	}, DefaultDescription)
}

// ResolveImage extracts the display image of a record.
func ResolveImage(r *ContentRecord) string {
	return resolve(r, []accessor{
		flat(func(r *ContentRecord) string { return r.Image }),
		nested(kindField[r.ContentType].image),
		nested("image"),
	}, DefaultImage)
}

// ResolveCard resolves all three presentational fields at once.
func ResolveCard(r *ContentRecord) Card {
	return Card{
		Title:       ResolveTitle(r),
		Description: ResolveDescription(r),
		Image:       ResolveImage(r),
	}
}
