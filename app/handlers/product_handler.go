package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-catalog/app/resources"
	"github.com/Rakhulsr/go-catalog/app/services"
	"github.com/gorilla/mux"
)

type ProductHandler struct {
	respond     *Responder
	products    *services.ProductService
	transformer *resources.Transformer
}

func NewProductHandler(respond *Responder, products *services.ProductService, transformer *resources.Transformer) *ProductHandler {
	return &ProductHandler{respond: respond, products: products, transformer: transformer}
}

func bindProduct(r *http.Request) (services.ProductInput, error) {
	var in services.ProductInput
	err := bind(r, &in, func(f form) error {
		in.Name = f.value("name")
		in.Description = f.value("description")
		in.Length = f.value("length")
		in.Height = f.value("height")
		in.Depth = f.value("depth")
		in.Weight = f.value("weight")
		in.Line = f.value("line")
		in.Materials = f.value("materials")
		in.CategoryID = f.value("category_id")
		in.ProviderID = f.value("provider_id")

		photo, err := f.file("photo")
		if err != nil {
			return err
		}
		in.Photo = photo
		return nil
	})
	return in, err
}

func (h *ProductHandler) Index(w http.ResponseWriter, r *http.Request) {
	list, err := h.products.List(r.Context())
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.respond.Data(w, http.StatusOK, h.transformer.Products(r.Context(), list))
}

func (h *ProductHandler) Show(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.respond.Data(w, http.StatusOK, h.transformer.Product(r.Context(), product))
}

func (h *ProductHandler) Store(w http.ResponseWriter, r *http.Request) {
	in, err := bindProduct(r)
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	product, err := h.products.Create(r.Context(), in)
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.respond.Created(w, product.ID)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	in, err := bindProduct(r)
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	if err := h.products.Update(r.Context(), mux.Vars(r)["id"], in); err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.respond.NoContent(w)
}

func (h *ProductHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.respond.NoContent(w)
}
