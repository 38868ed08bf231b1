package handlers

import (
	"net/http"

	"github.com/Rakhulsr/go-catalog/app/resources"
	"github.com/Rakhulsr/go-catalog/app/services"
	"github.com/gorilla/mux"
)

type ProviderHandler struct {
	respond     *Responder
	providers   *services.ProviderService
	transformer *resources.Transformer
}

func NewProviderHandler(respond *Responder, providers *services.ProviderService, transformer *resources.Transformer) *ProviderHandler {
	return &ProviderHandler{respond: respond, providers: providers, transformer: transformer}
}

func bindProvider(r *http.Request) (services.ProviderInput, error) {
	var in services.ProviderInput
	err := bind(r, &in, func(f form) error {
		in.Name = f.value("name")
		in.TaxID = f.value("tax_id")
		in.Email = f.value("email")
		in.Phone = f.value("phone")
		in.Cellphone = f.value("cellphone")
		in.Address = services.AddressInput{
			Zipcode:      f.nested("address", "zipcode"),
			Street:       f.nested("address", "street"),
			Number:       f.nested("address", "number"),
			Neighborhood: f.nested("address", "neighborhood"),
			State:        f.nested("address", "state"),
			City:         f.nested("address", "city"),
			Complement:   f.nested("address", "complement"),
		}

		logo, err := f.file("logo")
		if err != nil {
			return err
		}
		in.Logo = logo
		return nil
	})
	return in, err
}

func (h *ProviderHandler) Index(w http.ResponseWriter, r *http.Request) {
	list, err := h.providers.List(r.Context())
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.respond.Data(w, http.StatusOK, h.transformer.Providers(r.Context(), list))
}

func (h *ProviderHandler) Show(w http.ResponseWriter, r *http.Request) {
	provider, err := h.providers.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.respond.Data(w, http.StatusOK, h.transformer.Provider(r.Context(), provider))
}

func (h *ProviderHandler) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.providers.Products(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.respond.Data(w, http.StatusOK, h.transformer.Products(r.Context(), products))
}

func (h *ProviderHandler) Store(w http.ResponseWriter, r *http.Request) {
	in, err := bindProvider(r)
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	provider, err := h.providers.Create(r.Context(), in)
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.respond.Created(w, provider.ID)
}

func (h *ProviderHandler) Update(w http.ResponseWriter, r *http.Request) {
	in, err := bindProvider(r)
	if err != nil {
		h.respond.Error(w, r, err)
		return
	}
	if err := h.providers.Update(r.Context(), mux.Vars(r)["id"], in); err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.respond.NoContent(w)
}

func (h *ProviderHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := h.providers.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.respond.Error(w, r, err)
		return
	}
	h.respond.NoContent(w)
}
