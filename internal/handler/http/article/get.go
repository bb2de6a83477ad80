package article

import (
	"net/http"

	"personal-site/internal/handler/http/auth"
	"personal-site/internal/handler/http/pathutil"
	"personal-site/internal/handler/http/respond"
	artUC "personal-site/internal/usecase/article"
)

type GetHandler struct{ Svc *artUC.Service }

// ServeHTTP returns a single article. A draft that the caller's role
// may not see reports not found, the same as a missing ID.
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/articles/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	a, err := h.Svc.Get(r.Context(), id, auth.RoleFromContext(r.Context()))
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(a))
}
