package health

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/EgorLis/equip-catalog/internal/domain"
	"github.com/EgorLis/equip-catalog/internal/transport/web/logx"
	"github.com/EgorLis/equip-catalog/internal/transport/web/mw"
	v1 "github.com/EgorLis/equip-catalog/internal/transport/web/v1"
)

type Pinger interface {
	Ping(context.Context) error
}

type Handler struct {
	Log   *log.Logger
	DB    Pinger
	Cache Pinger
}

// Liveness godoc
// @Summary      Liveness probe
// @Description  Проверка, жив ли сервис (не зависит от БД/кэша)
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /v1/healthz [get]
func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	const op = "health.liveness"
	reqID := mw.RequestIDFromCtx(r.Context())

	logx.Info(h.Log, reqID, op, "ok")
	v1.WriteJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness godoc
// @Summary      Readiness probe
// @Description  Проверка готовности сервиса (включая пинг БД и Redis). Недоступный
// @Description  Redis готовность не валит: кеш best-effort, сервис работает от БД.
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      500 {object} domain.APIEnvelope
// @Router       /v1/readyz [get]
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	const op = "health.readiness"
	reqID := mw.RequestIDFromCtx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.DB.Ping(ctx); err != nil {
		logx.Error(h.Log, reqID, op, "db ping failed", err)
		v1.WriteDomainError(w, r, domain.ErrStorage)
		return
	}

	status := map[string]string{"status": "ready", "cache": "ok"}
	if err := h.Cache.Ping(ctx); err != nil {
		// деградация кеша — не отказ сервиса
		logx.Error(h.Log, reqID, op, "cache ping failed", err)
		status["cache"] = "degraded"
	}

	logx.Info(h.Log, reqID, op, "ready", "cache", status["cache"])
	v1.WriteJSON(w, r, http.StatusOK, status)
}
