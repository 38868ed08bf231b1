package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-catalog/app/services"
)

type ContactHandler struct {
	respond *Responder
	contact *services.ContactService
}

func NewContactHandler(respond *Responder, contact *services.ContactService) *ContactHandler {
	return &ContactHandler{respond: respond, contact: contact}
}

func (h *ContactHandler) Send(w http.ResponseWriter, r *http.Request) {
	var in services.ContactInput
	err := bind(r, &in, func(f form) error {
		in.Name = f.value("name")
		in.Email = f.value("email")
		in.Subject = f.value("subject")
		in.Message = f.value("message")
		return nil
	})
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}

	if err := h.contact.Send(r.Context(), in); err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.respond.NoContent(w)
}
