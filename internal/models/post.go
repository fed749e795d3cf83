// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post subtypes. The original app kept three near-duplicate collections
// (avisos, mercado, publicaciones); here they are one model tagged by type.
const (
	PostTypeAviso       = "aviso"
	PostTypeMercado     = "mercado"
	PostTypePublicacion = "publicacion"
)

// CategoriesByType enumerates the allowed categories per post subtype.
var CategoriesByType = map[string][]string{
	PostTypeAviso:       {"perdidos", "encontrados", "eventos", "deportes", "general"},
	PostTypeMercado:     {"ventas", "arriendos", "servicios", "intercambio"},
	PostTypePublicacion: {"general", "deportes", "estudio", "eventos"},
}

// Post is a unit of user-generated content: a classified ad, a marketplace
// listing, or a general publication.
type Post struct {
	ID       string `gorm:"primaryKey;size:24" json:"id"`
	PostType string `gorm:"not null;index" json:"post_type"`
	Title    string `gorm:"not null" json:"title"`
	Body     string `gorm:"not null" json:"body"`
	Category string `gorm:"not null" json:"category"`
	// Image is the filename of an image previously uploaded to the image
	// store. Required for mercado listings, optional otherwise.
	Image    string `json:"image,omitempty"`
	AuthorID string `gorm:"not null;size:24;index" json:"author_id"`
	Author   *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	// Counters move only through the like/dislike operations and the
	// report aggregator's recount; never by direct edit.
	LikeCount    int       `gorm:"not null;default:0" json:"like_count"`
	DislikeCount int       `gorm:"not null;default:0" json:"dislike_count"`
	ReportCount  int       `gorm:"not null;default:0" json:"report_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// RequiresImage reports whether the subtype must carry an image reference.
func (p *Post) RequiresImage() bool {
	return p.PostType == PostTypeMercado
}

// ValidCategory reports whether category belongs to the subtype's set.
func ValidCategory(postType, category string) bool {
	for _, c := range CategoriesByType[postType] {
		if c == category {
			return true
		}
	}
	return false
}
