package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Rakhulsr/go-catalog/app/storage"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gorilla/mux"
)

// FileHandler serves objects of the local blob store behind signed URLs.
type FileHandler struct {
	respond *Responder
	store   *storage.LocalStore
}

func NewFileHandler(respond *Responder, store *storage.LocalStore) *FileHandler {
	return &FileHandler{respond: respond, store: store}
}

func (h *FileHandler) Serve(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	if err := h.store.Verify(key, r.URL.Query().Get("signature"), time.Now()); err != nil {
		h.respond.Message(w, http.StatusForbidden, "Invalid or expired signature.")
		return
	}

	data, err := h.store.Open(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, storage.ErrInvalidKey) {
			h.respond.Message(w, http.StatusNotFound, "Resource not found.")
			return
		}
		log.Printf("FileHandler.Serve: failed to read %s: %v", key, err)
		h.respond.Message(w, http.StatusInternalServerError, "Server Error")
		return
	}

	w.Header().Set("Content-Type", mimetype.Detect(data).String())
	w.Header().Set("Cache-Control", "private, max-age=60")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
