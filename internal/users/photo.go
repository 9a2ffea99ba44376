// internal/users/photo.go
// Avatar URL resolution. Uploads and resizing are handled by the attachment
// service; here we only derive URLs and fail soft to a placeholder.

package users

import "fmt"

// Photo variants
const (
	VariantIcon    = "icon"
	VariantProfile = "profile"
	VariantMain    = "main"
)

// PhotoResolver derives photo URLs from attachment ids
type PhotoResolver struct {
	baseURL string
}

// NewPhotoResolver creates a resolver rooted at the public base URL
func NewPhotoResolver(baseURL string) *PhotoResolver {
	return &PhotoResolver{baseURL: baseURL}
}

// URL returns the public URL for a photo variant. A nil or zero photo id
// resolves to the default placeholder rather than an error.
func (p *PhotoResolver) URL(photoID *int64, variant string) string {
	if photoID == nil || *photoID == 0 {
		return p.baseURL + "/upload/default/nophoto_user.png"
	}

	switch variant {
	case VariantIcon, VariantProfile, VariantMain:
		return fmt.Sprintf("%s/upload/photo/%d_%s.png", p.baseURL, *photoID, variant)
	default:
		return fmt.Sprintf("%s/upload/photo/%d.png", p.baseURL, *photoID)
	}
}
