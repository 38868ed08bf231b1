package handlers

import (
	"net/http"

	"gorm.io/gorm"
)

type HealthHandler struct {
	respond *Responder
	db      *gorm.DB
}

func NewHealthHandler(respond *Responder, db *gorm.DB) *HealthHandler {
	return &HealthHandler{respond: respond, db: db}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		h.respond.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "database": err.Error()})
		return
	}
	h.respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
