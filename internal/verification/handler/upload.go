package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"slices"
	"strings"

	"integrationhub/internal/verification/models"
	dErrors "integrationhub/pkg/domain-errors"
)

// AllowedImageTypes are the upload media types accepted at the HTTP layer.
var AllowedImageTypes = []string{"image/jpeg", "image/png", "image/jpg", "image/webp"}

// readUpload parses a multipart body and returns the image in field. The
// declared media type must be on the allow list.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request, field string) (models.ImageArtifact, *multipart.Form, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return models.ImageArtifact{}, nil, dErrors.New(dErrors.CodeBadRequest, "Image file is too large")
		}
		return models.ImageArtifact{}, nil, dErrors.New(dErrors.CodeBadRequest, "Image file is required")
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return models.ImageArtifact{}, r.MultipartForm, dErrors.New(dErrors.CodeBadRequest, "Image file is required")
	}
	defer file.Close()

	mediaType := strings.ToLower(header.Header.Get("Content-Type"))
	if !slices.Contains(AllowedImageTypes, mediaType) {
		return models.ImageArtifact{}, r.MultipartForm, dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf(
			"Invalid file type. Allowed: %s. Received: %s", strings.Join(AllowedImageTypes, ", "), mediaType))
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return models.ImageArtifact{}, r.MultipartForm, dErrors.Wrap(err, dErrors.CodeBadRequest, "Image file could not be read")
	}
	return models.ImageArtifact{
		Bytes:             data,
		DeclaredMediaType: mediaType,
		OriginalFilename:  header.Filename,
	}, r.MultipartForm, nil
}

func formValue(form *multipart.Form, key string) string {
	if form == nil {
		return ""
	}
	if v := form.Value[key]; len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}
