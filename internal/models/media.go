// internal/models/media.go
package models

// MediaFile is one image inside a media group, with its resolved public URL.
type MediaFile struct {
	Path string `json:"path"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// MediaGroup is a logical folder of images in the storage bucket. Groups are
// transient: rebuilt from the live storage listing on every batch run and
// consumed into a content record, never persisted directly.
type MediaGroup struct {
	FolderKey string      `json:"folderKey"`
	Files     []MediaFile `json:"files"`
}

// URLs returns the public URLs of the group's files in listing order.
func (g *MediaGroup) URLs() []string {
	urls := make([]string, 0, len(g.Files))
	for _, f := range g.Files {
		urls = append(urls, f.URL)
	}
	return urls
}
