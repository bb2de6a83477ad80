package article

import (
	"encoding/json"
	"errors"
	"net/http"

	"personal-site/internal/domain/entity"
	"personal-site/internal/handler/http/auth"
	"personal-site/internal/handler/http/pathutil"
	"personal-site/internal/handler/http/respond"
	"personal-site/internal/observability/metrics"
	artUC "personal-site/internal/usecase/article"
)

type UpdateHandler struct{ Svc *artUC.Service }

// ServeHTTP updates an article. Absent fields are left untouched.
// Image semantics follow the update contract: omitting image_url keeps
// the stored image, sending an explicit "" resets it to the default.
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/articles/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Title    *string  `json:"title"`
		Body     *string  `json:"body"`
		ImageURL *string  `json:"image_url"`
		IsDraft  *bool    `json:"is_draft"`
		Tags     []string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	a, err := h.Svc.Update(r.Context(), id, artUC.UpdateInput{
		Title:    req.Title,
		Body:     req.Body,
		ImageURL: req.ImageURL,
		IsDraft:  req.IsDraft,
		Tags:     req.Tags,
	}, auth.RoleFromContext(r.Context()))
	if err != nil {
		metrics.RecordArticleWrite("update", false)
		if errors.Is(err, entity.ErrForbidden) {
			auth.RecordForbiddenAttempt(string(auth.RoleFromContext(r.Context())), r.Method)
		}
		respond.DomainError(w, err)
		return
	}

	metrics.RecordArticleWrite("update", true)
	respond.JSON(w, http.StatusOK, toDTO(a))
}
