package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-catalog/app/services"
)

type DashboardHandler struct {
	respond   *Responder
	dashboard *services.DashboardService
}

func NewDashboardHandler(respond *Responder, dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{respond: respond, dashboard: dashboard}
}

func (h *DashboardHandler) Counts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.dashboard.Counts(r.Context())
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.respond.Data(w, http.StatusOK, counts)
}
