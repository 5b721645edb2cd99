package database

import (
	"time"

	"github.com/kozaktomas/album-editor/internal/album"
)

// ProjectSummary is a stored project without its pages and assets
type ProjectSummary struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Size       album.Size `json:"size"`
	PageCount  int        `json:"pageCount"`
	AssetCount int        `json:"assetCount"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// LibraryPhoto is a photo from the PhotoPrism library that can be imported
// as an album asset.
type LibraryPhoto struct {
	UID      string
	Title    string
	FileHash string
	Width    int
	Height   int
	TakenAt  time.Time
}

// AssetSource converts the photo into an import source. thumbURL builds the
// image URL from the file hash.
func (p LibraryPhoto) AssetSource(thumbURL func(hash string) string) album.AssetSource {
	url := ""
	if thumbURL != nil {
		url = thumbURL(p.FileHash)
	}
	return album.AssetSource{
		ID:     "pp-" + p.UID,
		URL:    url,
		Width:  float64(p.Width),
		Height: float64(p.Height),
	}
}

// LibraryFilter narrows a library listing.
type LibraryFilter struct {
	AlbumUID string // Only photos in this album (empty means all photos)
	Limit    int
	Offset   int
}
