package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Rakhulsr/go-catalog/app/services"
	"github.com/unrolled/render"
)

var errMalformedBody = errors.New("malformed request body")

// Responder writes the JSON envelopes shared by every endpoint.
type Responder struct {
	render     *render.Render
	production bool
}

func NewResponder(r *render.Render, production bool) *Responder {
	return &Responder{render: r, production: production}
}

func (rs *Responder) JSON(w http.ResponseWriter, status int, v interface{}) {
	if err := rs.render.JSON(w, status, v); err != nil {
		log.Printf("Responder.JSON: failed to write response: %v", err)
	}
}

func (rs *Responder) Data(w http.ResponseWriter, status int, v interface{}) {
	rs.JSON(w, status, map[string]interface{}{"data": v})
}

// Created answers a successful create with the new id only.
func (rs *Responder) Created(w http.ResponseWriter, id string) {
	rs.Data(w, http.StatusCreated, map[string]string{"id": id})
}

func (rs *Responder) NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

const ConflictMessage = "The resource conflicts with existing data or is still in use."

func (rs *Responder) Message(w http.ResponseWriter, status int, message string) {
	rs.JSON(w, status, map[string]string{"message": message})
}

// Error maps service errors to status codes. Anything unrecognised is a 500
// whose text is hidden in production.
func (rs *Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		rs.JSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"message": "The given data was invalid.",
			"errors":  verr.Fields,
		})
	case errors.Is(err, errMalformedBody):
		rs.Message(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		rs.Message(w, http.StatusNotFound, "Resource not found.")
	case errors.Is(err, services.ErrConflict):
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		rs.Message(w, http.StatusBadRequest, ConflictMessage)
	case errors.Is(err, services.ErrInvalidCredentials):
		rs.Message(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrUnauthenticated):
		rs.Message(w, http.StatusUnauthorized, "Unauthenticated.")
	default:
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
		message := "Server Error"
		if !rs.production {
			message = err.Error()
		}
		rs.Message(w, http.StatusInternalServerError, message)
	}
}
