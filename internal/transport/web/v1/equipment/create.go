package equipment

import (
	"encoding/json"
	"net/http"

	"github.com/EgorLis/equip-catalog/internal/catalog"
	"github.com/EgorLis/equip-catalog/internal/domain"
	"github.com/EgorLis/equip-catalog/internal/transport/web/logx"
	"github.com/EgorLis/equip-catalog/internal/transport/web/mw"
	v1 "github.com/EgorLis/equip-catalog/internal/transport/web/v1"
)

// Указатели, чтобы отличить «поле не прислали» от явного 0/false.
type createRequest struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Price        *float64 `json:"price"`
	SupplierID   string   `json:"supplier_id"`
	Availability *bool    `json:"availability"`
}

type createResponse struct {
	Message   string           `json:"message"`
	Equipment domain.Equipment `json:"equipment"`
}

// Create godoc
// @Summary     Add new equipment
// @Description Создаёт запись и инвалидирует кеш списочных выдач.
// @Tags        equipment
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       request body createRequest true "name, category, price, supplier_id, availability?"
// @Success     201 {object} createResponse
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /equipment [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "equipment.create"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logx.Error(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	created, err := h.Catalog.Create(r.Context(), catalog.CreateParams{
		Name:         req.Name,
		Category:     req.Category,
		Price:        req.Price,
		SupplierID:   req.SupplierID,
		Availability: req.Availability,
	})
	if err != nil {
		logx.Error(h.Log, reqID, op, "create failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", created.ID, "category", created.Category)
	v1.WriteJSON(w, r, http.StatusCreated, createResponse{
		Message:   "Equipment added successfully",
		Equipment: created,
	})
}
