package validation

import (
	"fmt"
	"strings"

	"campusboard/internal/models"
)

const (
	minTitleLength = 3
	maxTitleLength = 120
	minBodyLength  = 10
	maxBodyLength  = 2000
)

// allowed image file extensions
var imageExtensions = map[string]bool{
	"jpg": true,
	"png": true,
	"gif": true,
}

// PostInput is the payload accepted when creating a post.
type PostInput struct {
	PostType string `json:"tipo"`
	Title    string `json:"titulo"`
	Body     string `json:"contenido"`
	Category string `json:"categoria"`
	Image    string `json:"imagen"`
}

// ValidatePostInput checks a post creation payload and returns the first
// failure found, or an empty string if the payload is valid.
func ValidatePostInput(in *PostInput) string {
	if in.PostType == "" {
		return "post type is required"
	}
	if _, ok := models.CategoriesByType[in.PostType]; !ok {
		return fmt.Sprintf("invalid post type: %s", in.PostType)
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return "title is required"
	}
	if len(title) < minTitleLength || len(title) > maxTitleLength {
		return fmt.Sprintf("title must be between %d and %d characters", minTitleLength, maxTitleLength)
	}

	body := strings.TrimSpace(in.Body)
	if body == "" {
		return "body is required"
	}
	if len(body) < minBodyLength || len(body) > maxBodyLength {
		return fmt.Sprintf("body must be between %d and %d characters", minBodyLength, maxBodyLength)
	}

	if in.Category == "" {
		return "category is required"
	}
	if !models.ValidCategory(in.PostType, in.Category) {
		return fmt.Sprintf("invalid category %q for post type %q", in.Category, in.PostType)
	}

	requiresImage := (&models.Post{PostType: in.PostType}).RequiresImage()
	if in.Image == "" {
		if requiresImage {
			return "image is required for this post type"
		}
		return ""
	}
	if msg := ValidateImageName(in.Image); msg != "" {
		return msg
	}
	return ""
}

// ValidateImageName checks that a stored image file name has an allowed
// extension and contains no path separators.
func ValidateImageName(name string) string {
	if name == "" {
		return "image name is required"
	}
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return "image name must not contain path separators"
	}
	idx := strings.LastIndex(name, ".")
	if idx < 1 || idx == len(name)-1 {
		return "image name must have an extension"
	}
	ext := strings.ToLower(name[idx+1:])
	if !imageExtensions[ext] {
		return fmt.Sprintf("unsupported image extension: %s (allowed: jpg, png, gif)", ext)
	}
	return ""
}
