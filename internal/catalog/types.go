package catalog

// Volume is a single book record from the Google Books API. Fields the
// UI does not use are left out; absent fields decode to zero values.
type Volume struct {
	ID         string     `json:"id"`
	Etag       string     `json:"etag,omitempty"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

type VolumeInfo struct {
	Title         string     `json:"title"`
	Subtitle      string     `json:"subtitle,omitempty"`
	Authors       []string   `json:"authors,omitempty"`
	Publisher     string     `json:"publisher,omitempty"`
	PublishedDate string     `json:"publishedDate,omitempty"`
	Description   string     `json:"description,omitempty"`
	PageCount     int        `json:"pageCount,omitempty"`
	Categories    []string   `json:"categories,omitempty"`
	ImageLinks    ImageLinks `json:"imageLinks,omitempty"`
	Language      string     `json:"language,omitempty"`
}

type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail,omitempty"`
	Thumbnail      string `json:"thumbnail,omitempty"`
	Small          string `json:"small,omitempty"`
}

// CoverURL returns the best available cover image for display.
func (v Volume) CoverURL() string {
	if v.VolumeInfo.ImageLinks.Small != "" {
		return v.VolumeInfo.ImageLinks.Small
	}
	if v.VolumeInfo.ImageLinks.Thumbnail != "" {
		return v.VolumeInfo.ImageLinks.Thumbnail
	}
	return v.VolumeInfo.ImageLinks.SmallThumbnail
}

// SearchResult is the envelope of a volumes listing or search call.
type SearchResult struct {
	Kind       string   `json:"kind"`
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}
