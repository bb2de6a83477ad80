package article

import (
	"log/slog"
	"net/http"
	"time"

	"personal-site/internal/handler/http/auth"
	"personal-site/internal/handler/http/requestid"
	"personal-site/internal/handler/http/respond"
	artUC "personal-site/internal/usecase/article"
)

type ListHandler struct {
	Svc    *artUC.Service
	Logger *slog.Logger
}

// ServeHTTP returns the article list the caller's role may see, newest
// first. Anonymous callers and regular users get published articles
// only; admins also see drafts.
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	role := auth.RoleFromContext(ctx)
	logger := h.Logger.With(slog.String("request_id", requestid.FromContext(ctx)))

	articles, err := h.Svc.List(ctx, role)
	if err != nil {
		logger.Error("failed to list articles",
			slog.String("role", string(role)),
			slog.Any("error", err))
		respond.DomainError(w, err)
		return
	}

	dtos := make([]DTO, 0, len(articles))
	for _, a := range articles {
		dtos = append(dtos, toDTO(a))
	}

	logger.Info("article list",
		slog.String("role", string(role)),
		slog.Int("returned_count", len(dtos)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	respond.JSON(w, http.StatusOK, dtos)
}
