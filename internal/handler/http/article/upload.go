package article

import (
	"errors"
	"net/http"
	"strings"

	"personal-site/internal/domain/entity"
	"personal-site/internal/handler/http/auth"
	"personal-site/internal/handler/http/respond"
	"personal-site/internal/observability/metrics"
	artUC "personal-site/internal/usecase/article"
)

// maxUploadBytes bounds a single image upload.
const maxUploadBytes = 10 << 20

type UploadHandler struct{ Svc *artUC.Service }

// ServeHTTP stores an article image from a multipart form and returns
// its public URL. The stored object name is prefixed with the upload
// timestamp, so re-uploading the same filename never overwrites.
func (h UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("image file is required"))
		return
	}
	defer func() { _ = file.Close() }()

	filename := strings.TrimSpace(header.Filename)
	if filename == "" {
		respond.SafeError(w, http.StatusBadRequest, errors.New("image filename is required"))
		return
	}

	url, err := h.Svc.AttachImage(r.Context(), filename, file, auth.RoleFromContext(r.Context()))
	if err != nil {
		metrics.RecordImageUpload(false)
		if errors.Is(err, entity.ErrForbidden) {
			auth.RecordForbiddenAttempt(string(auth.RoleFromContext(r.Context())), r.Method)
		}
		respond.DomainError(w, err)
		return
	}

	metrics.RecordImageUpload(true)
	respond.JSON(w, http.StatusCreated, map[string]string{"url": url})
}
