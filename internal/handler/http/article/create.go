package article

import (
	"encoding/json"
	"errors"
	"net/http"

	"personal-site/internal/domain/entity"
	"personal-site/internal/handler/http/auth"
	"personal-site/internal/handler/http/respond"
	"personal-site/internal/observability/metrics"
	artUC "personal-site/internal/usecase/article"
)

type CreateHandler struct{ Svc *artUC.Service }

// ServeHTTP creates an article. Admin only; the author is taken from
// the session, never from the request body.
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ident := auth.IdentityFromContext(r.Context())
	if ident == nil {
		respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return
	}

	var req struct {
		Title    string   `json:"title"`
		Body     string   `json:"body"`
		ImageURL string   `json:"image_url"`
		IsDraft  bool     `json:"is_draft"`
		Tags     []string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	a, err := h.Svc.Create(r.Context(), artUC.CreateInput{
		Title:    req.Title,
		Body:     req.Body,
		ImageURL: req.ImageURL,
		IsDraft:  req.IsDraft,
		Tags:     req.Tags,
		AuthorID: ident.ID,
	}, auth.RoleFromContext(r.Context()))
	if err != nil {
		metrics.RecordArticleWrite("create", false)
		if errors.Is(err, entity.ErrForbidden) {
			auth.RecordForbiddenAttempt(string(auth.RoleFromContext(r.Context())), r.Method)
		}
		respond.DomainError(w, err)
		return
	}

	metrics.RecordArticleWrite("create", true)
	respond.JSON(w, http.StatusCreated, toDTO(a))
}
