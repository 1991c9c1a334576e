package storage

import (
	"context"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"hris-account/internal/shared/apperror"

	"github.com/google/uuid"
)

var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

var ErrUnsupportedImage = apperror.New(
	apperror.CodeInvalidInput,
	"Image must be a jpg, jpeg, png, gif or webp file",
	http.StatusBadRequest,
)

// ImageStore persists uploaded images and returns the public path the
// client can fetch them from.
type ImageStore interface {
	Save(ctx context.Context, file *multipart.FileHeader) (string, error)
	Remove(ctx context.Context, publicPath string) error
}

func IsImageExtensionAllowed(filename string) bool {
	_, ok := allowedImageExtensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// objectName keeps the original extension and replaces the rest with a uuid,
// so client-chosen names never reach the store.
func objectName(filename string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(filename))
}
