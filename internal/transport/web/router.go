package web

import (
	"log"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/EgorLis/equip-catalog/internal/docs"
	"github.com/EgorLis/equip-catalog/internal/transport/web/mw"
	"github.com/EgorLis/equip-catalog/internal/transport/web/v1/equipment"
	"github.com/EgorLis/equip-catalog/internal/transport/web/v1/health"
)

func newRouter(hh *health.Handler, eh *equipment.Handler, auth AuthDeps, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /v1/healthz", hh.Liveness)
	mux.HandleFunc("GET /v1/readyz", hh.Readiness)

	// catalog — только с bearer-токеном
	authDeps := mw.AuthDeps{Tokens: auth.Tokens}
	mux.Handle("POST /equipment", mw.RequireAuth(authDeps, limitBody(1<<20, eh.Create))) // 1MB лимит
	mux.Handle("GET /equipment", mw.RequireAuth(authDeps, http.HandlerFunc(eh.List)))

	// swagger
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// 🔗 middleware
	return mw.WithRequestID(mw.Logging(logger)(mux))
}

func limitBody(n int64, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, n)
		h(w, r)
	}
}
