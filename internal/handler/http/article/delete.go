package article

import (
	"errors"
	"net/http"

	"personal-site/internal/domain/entity"
	"personal-site/internal/handler/http/auth"
	"personal-site/internal/handler/http/pathutil"
	"personal-site/internal/handler/http/respond"
	"personal-site/internal/observability/metrics"
	artUC "personal-site/internal/usecase/article"
)

type DeleteHandler struct{ Svc *artUC.Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/articles/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Delete(r.Context(), id, auth.RoleFromContext(r.Context())); err != nil {
		metrics.RecordArticleWrite("delete", false)
		if errors.Is(err, entity.ErrForbidden) {
			auth.RecordForbiddenAttempt(string(auth.RoleFromContext(r.Context())), r.Method)
		}
		respond.DomainError(w, err)
		return
	}

	metrics.RecordArticleWrite("delete", true)
	w.WriteHeader(http.StatusNoContent)
}
