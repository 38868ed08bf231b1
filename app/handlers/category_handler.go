package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-catalog/app/resources"
	"github.com/Rakhulsr/go-catalog/app/services"
	"github.com/gorilla/mux"
)

type CategoryHandler struct {
	respond     *Responder
	categories  *services.CategoryService
	transformer *resources.Transformer
}

func NewCategoryHandler(respond *Responder, categories *services.CategoryService, transformer *resources.Transformer) *CategoryHandler {
	return &CategoryHandler{respond: respond, categories: categories, transformer: transformer}
}

func bindCategory(r *http.Request) (services.CategoryInput, error) {
	var in services.CategoryInput
	err := bind(r, &in, func(f form) error {
		in.Name = f.value("name")
		return nil
	})
	return in, err
}

func (h *CategoryHandler) Index(w http.ResponseWriter, r *http.Request) {
	list, err := h.categories.List(r.Context())
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.respond.Data(w, http.StatusOK, h.transformer.Categories(list))
}

func (h *CategoryHandler) Show(w http.ResponseWriter, r *http.Request) {
	category, err := h.categories.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.respond.Data(w, http.StatusOK, h.transformer.Category(category))
}

func (h *CategoryHandler) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.categories.Products(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.respond.Data(w, http.StatusOK, h.transformer.Products(r.Context(), products))
}

func (h *CategoryHandler) Store(w http.ResponseWriter, r *http.Request) {
	in, err := bindCategory(r)
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	category, err := h.categories.Create(r.Context(), in)
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.respond.Created(w, category.ID)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	in, err := bindCategory(r)
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	if err := h.categories.Update(r.Context(), mux.Vars(r)["id"], in); err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.respond.NoContent(w)
}

func (h *CategoryHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.respond.NoContent(w)
}
