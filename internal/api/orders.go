package api

import (
	"net/http"

	"github.com/dissom/Train-Station-API-Service/internal/api/middleware"
	"github.com/dissom/Train-Station-API-Service/internal/domain/order"
	"github.com/dissom/Train-Station-API-Service/internal/infrastructure/postgres"

	"github.com/go-chi/chi/v5"
)

type createOrderRequest struct {
	Tickets []order.TicketRequest `json:"tickets"`
}

// CreateOrder is the allocation endpoint: all tickets commit or none do.
func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	for _, t := range req.Tickets {
		if err := h.validate.Struct(t); err != nil {
			writeError(w, err)
			return
		}
	}

	o, err := h.createOrder.Execute(r.Context(), middleware.UserID(r.Context()), req.Tickets)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, o)
}

// ListOrders supports ?orders_ids=id1,id2 and ?created_at=YYYY-MM-DD filters,
// scoped to the authenticated owner.
func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	created, err := parseDate(q.Get("created_at"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	orders, err := h.orders.List(r.Context(), middleware.UserID(r.Context()), postgres.OrderFilter{
		IDs:         splitIDs(q.Get("orders_ids")),
		CreatedDate: created,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.GetByID(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handlers) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	err := h.cancelOrder.Execute(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
