package article

import (
	"log/slog"
	"net/http"

	artUC "personal-site/internal/usecase/article"
)

// Register registers all article HTTP handlers with the given mux.
// Reads are open to every role; the usecase's content policy decides
// what each role sees and rejects mutations from non-admins.
func Register(mux *http.ServeMux, svc *artUC.Service, logger *slog.Logger) {
	mux.Handle("GET /articles", ListHandler{Svc: svc, Logger: logger})
	mux.Handle("GET /articles/", GetHandler{Svc: svc})

	mux.Handle("POST /articles", CreateHandler{Svc: svc})
	mux.Handle("POST /articles/images", UploadHandler{Svc: svc})
	mux.Handle("PUT /articles/", UpdateHandler{Svc: svc})
	mux.Handle("DELETE /articles/", DeleteHandler{Svc: svc})
}
