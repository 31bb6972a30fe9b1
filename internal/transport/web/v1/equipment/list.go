package equipment

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/EgorLis/equip-catalog/internal/domain"
	"github.com/EgorLis/equip-catalog/internal/transport/web/logx"
	"github.com/EgorLis/equip-catalog/internal/transport/web/mw"
	v1 "github.com/EgorLis/equip-catalog/internal/transport/web/v1"
)

// List godoc
// @Summary     Get equipment list
// @Description Постраничная выдача с фильтрами; отдаётся через read-through кеш (TTL 60s).
// @Tags        equipment
// @Security    BearerAuth
// @Produce     json
// @Param       category    query string false "filter by category"
// @Param       supplier_id query string false "filter by supplier ID"
// @Param       minPrice    query number false "minimum price"
// @Param       maxPrice    query number false "maximum price"
// @Param       page        query int    false "page number (default 1)"
// @Param       limit       query int    false "items per page (default 10)"
// @Success     200 {object} domain.EquipmentPage
// @Failure     401 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /equipment [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "equipment.list"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	q := parseListQuery(r.URL.Query())

	page, err := h.Catalog.List(r.Context(), q)
	if err != nil {
		logx.Error(h.Log, reqID, op, "list failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "page", page.Page, "total", page.Total)
	v1.WriteJSON(w, r, http.StatusOK, page)
}

// parseListQuery разбирает query-параметры в типизированный дескриптор.
// Числа парсим оборонительно: битые page/limit падают в дефолты,
// битые границы цен считаются не заданными — листинг никогда не 400-ит.
func parseListQuery(values url.Values) domain.ListQuery {
	q := domain.ListQuery{
		Page:  domain.DefaultPage,
		Limit: domain.DefaultLimit,
	}

	q.Category = values.Get("category")
	q.SupplierID = values.Get("supplier_id")

	if s := values.Get("minPrice"); s != "" {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			q.MinPrice = &f
		}
	}
	if s := values.Get("maxPrice"); s != "" {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			q.MaxPrice = &f
		}
	}

	if s := values.Get("page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			q.Page = n
		}
	}
	if s := values.Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			q.Limit = n
		}
	}

	return q
}
