package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/Rakhulsr/go-catalog/app/db/testdb"
	"github.com/Rakhulsr/go-catalog/app/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	sent []sentMail
}

func (m *fakeMailer) SendHTMLEmail(to, subject, htmlBody string) error {
	m.sent = append(m.sent, sentMail{to, subject, htmlBody})
	return nil
}

type app struct {
	t       *testing.T
	handler http.Handler
	store   *storage.MemoryStore
	mailer  *fakeMailer
	token   string
}

func newApp(t *testing.T) *app {
	t.Helper()
	store := storage.NewMemoryStore()
	mailer := &fakeMailer{}
	handler := NewRouter(Deps{
		DB:           testdb.Open(t),
		Store:        store,
		Mailer:       mailer,
		ContactTo:    "owner@example.com",
		TokenTTL:     time.Hour,
		SignedURLTTL: time.Minute,
	})
	return &app{t: t, handler: handler, store: store, mailer: mailer}
}

func (a *app) do(req *http.Request) *httptest.ResponseRecorder {
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *app) json(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return a.do(req)
}

func (a *app) multipart(method, path string, fields map[string]string, fileField string, file []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(a.t, w.WriteField(k, v))
	}
	if fileField != "" {
		part, err := w.CreateFormFile(fileField, "upload.png")
		require.NoError(a.t, err)
		_, err = part.Write(file)
		require.NoError(a.t, err)
	}
	require.NoError(a.t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return a.do(req)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func createdID(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	data := decode(t, rec)["data"].(map[string]interface{})
	id, _ := data["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func (a *app) login() {
	rec := a.json("POST", "/api/register", map[string]string{
		"name":                  "Ana",
		"email":                 "ana@example.com",
		"password":              "secret123",
		"password_confirmation": "secret123",
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.json("POST", "/api/login", map[string]string{"email": "ana@example.com", "password": "secret123"})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(a.t, rec)
	assert.Equal(a.t, "Bearer", body["token_type"])
	assert.NotEmpty(a.t, body["expires_at"])
	a.token = body["token"].(string)
}

func providerFields(name string) map[string]string {
	return map[string]string{
		"name":                  name,
		"email":                 "sales@example.com",
		"tax_id":                "12345678000190",
		"address[zipcode]":      "01310-100",
		"address[street]":       "Avenida Paulista",
		"address[number]":       "1000",
		"address[neighborhood]": "Bela Vista",
		"address[state]":        "SP",
		"address[city]":         "Sao Paulo",
	}
}

func TestAuthFlow(t *testing.T) {
	a := newApp(t)

	rec := a.json("GET", "/api/user", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthenticated.", decode(t, rec)["message"])

	rec = a.json("POST", "/api/login", map[string]string{"email": "ana@example.com", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decode(t, rec)["message"])

	a.login()

	rec = a.json("GET", "/api/user", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	user := decode(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "ana@example.com", user["email"])
	assert.NotContains(t, user, "password")

	rec = a.json("POST", "/api/logout", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = a.json("GET", "/api/user", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	a := newApp(t)
	rec := a.json("POST", "/api/register", map[string]string{"email": "bad"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "The given data was invalid.", body["message"])
	errs := body["errors"].(map[string]interface{})
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestWritesRequireAuthentication(t *testing.T) {
	a := newApp(t)

	for _, tc := range []struct{ method, path string }{
		{"POST", "/api/categories"},
		{"PUT", "/api/categories/x"},
		{"DELETE", "/api/providers/x"},
		{"POST", "/api/products"},
		{"GET", "/api/dashboard/counts"},
	} {
		rec := a.json(tc.method, tc.path, map[string]string{})
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}

	rec := a.json("GET", "/api/categories", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestCategoryEndpoints(t *testing.T) {
	a := newApp(t)
	a.login()

	id := createdID(t, a.json("POST", "/api/categories", map[string]string{"name": "Chairs"}))

	rec := a.json("POST", "/api/categories", map[string]string{"name": "Chairs"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := decode(t, rec)["errors"].(map[string]interface{})
	assert.Equal(t, "The name has already been taken.", errs["name"])

	rec = a.json("PUT", "/api/categories/"+id, map[string]string{"name": "Seating"})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = a.json("GET", "/api/categories/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Seating", decode(t, rec)["data"].(map[string]interface{})["name"])

	rec = a.json("GET", "/api/categories/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest("POST", "/api/categories", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec = a.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	form := url.Values{"name": {"Tables"}}
	req = httptest.NewRequest("POST", "/api/categories", bytes.NewBufferString(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	createdID(t, a.do(req))

	rec = a.json("DELETE", "/api/categories/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = a.json("GET", "/api/categories/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	a := newApp(t)
	a.login()

	chairs := createdID(t, a.json("POST", "/api/categories", map[string]string{"name": "Chairs"}))
	tables := createdID(t, a.json("POST", "/api/categories", map[string]string{"name": "Tables"}))

	providerID := createdID(t, a.multipart("POST", "/api/providers", providerFields("Acme"), "logo", pngBytes))

	rec := a.json("GET", "/api/providers/"+providerID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	provider := decode(t, rec)["data"].(map[string]interface{})
	assert.Contains(t, provider["logo_url"], "memory://providers")
	address := provider["address"].(map[string]interface{})
	assert.Equal(t, "Sao Paulo", address["city"])

	rec = a.multipart("POST", "/api/providers", providerFields("Copycat"), "", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode(t, rec)["errors"], "tax_id")

	productFields := map[string]string{
		"name":        "Lounge chair",
		"description": "Bent plywood",
		"height":      "75 cm",
		"category_id": chairs,
		"provider_id": providerID,
	}
	rec = a.multipart("POST", "/api/products", productFields, "", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode(t, rec)["errors"], "photo")

	productID := createdID(t, a.multipart("POST", "/api/products", productFields, "photo", pngBytes))

	rec = a.json("GET", "/api/products/"+productID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	product := decode(t, rec)["data"].(map[string]interface{})
	oldPhoto := product["photo"].(string)
	assert.Equal(t, "Chairs", product["category"].(map[string]interface{})["name"])
	assert.Equal(t, "Acme", product["provider"].(map[string]interface{})["name"])
	assert.Equal(t, "75 cm", product["height"])
	assert.Nil(t, product["weight"])
	assert.Contains(t, product["photo_url"], "memory://products")

	update := map[string]string{
		"_method":     "PUT",
		"name":        "Dining table",
		"description": "Solid oak",
		"category_id": tables,
		"provider_id": providerID,
	}
	rec = a.multipart("POST", "/api/products/"+productID, update, "photo", pngBytes)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = a.json("GET", "/api/products/"+productID, nil)
	product = decode(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "Dining table", product["name"])
	assert.NotEqual(t, oldPhoto, product["photo"])
	_, stillThere := a.store.Get(oldPhoto)
	assert.False(t, stillThere)

	rec = a.json("GET", "/api/categories/"+tables+"/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["data"], 1)
	rec = a.json("GET", "/api/categories/"+chairs+"/products", nil)
	assert.Len(t, decode(t, rec)["data"], 0)
	rec = a.json("GET", "/api/providers/"+providerID+"/products", nil)
	assert.Len(t, decode(t, rec)["data"], 1)

	rec = a.json("GET", "/api/dashboard/counts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"products":1,"providers":1,"categories":2}}`, rec.Body.String())

	rec = a.json("DELETE", "/api/categories/"+tables, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = a.json("DELETE", "/api/providers/"+providerID, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.json("DELETE", "/api/products/"+productID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = a.json("GET", "/api/products", nil)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())

	rec = a.json("DELETE", "/api/providers/"+providerID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, a.store.Len())
}

func TestProviderJSONBody(t *testing.T) {
	a := newApp(t)
	a.login()

	id := createdID(t, a.json("POST", "/api/providers", map[string]interface{}{
		"name":  "Acme",
		"email": "sales@example.com",
		"address": map[string]string{
			"zipcode":      "01310100",
			"street":       "Avenida Paulista",
			"number":       "1000",
			"neighborhood": "Bela Vista",
			"state":        "SP",
			"city":         "Sao Paulo",
		},
	}))

	rec := a.json("PUT", "/api/providers/"+id, map[string]interface{}{
		"name":    "Acme",
		"email":   "sales@example.com",
		"address": map[string]string{"zipcode": "x"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errs := decode(t, rec)["errors"].(map[string]interface{})
	assert.Contains(t, errs, "address.zipcode")
	assert.Contains(t, errs, "address.street")

	rec = a.json("GET", "/api/providers", nil)
	list := decode(t, rec)["data"].([]interface{})
	require.Len(t, list, 1)
	assert.NotContains(t, list[0], "logo_url")
}

func TestContactEndpoint(t *testing.T) {
	a := newApp(t)

	rec := a.json("POST", "/api/contact", map[string]string{
		"name":    "Ana",
		"email":   "ana@example.com",
		"subject": "Quote",
		"message": "Hello",
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, a.mailer.sent, 1)
	assert.Equal(t, "owner@example.com", a.mailer.sent[0].to)

	rec = a.json("POST", "/api/contact", map[string]string{})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Len(t, a.mailer.sent, 1)
}

func TestHealthAndMetrics(t *testing.T) {
	a := newApp(t)

	rec := a.json("GET", "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	a.json("GET", "/api/categories", nil)
	rec = a.json("GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `catalog_http_requests_total{method="GET",route="/api/categories",status="2xx"}`)

	rec = a.json("GET", "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLocalFilesAreServedBehindSignatures(t *testing.T) {
	local, err := storage.NewLocalStore(t.TempDir(), "http://localhost:8080", []byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	handler := NewRouter(Deps{
		DB:           testdb.Open(t),
		Store:        local,
		LocalFiles:   local,
		Mailer:       &fakeMailer{},
		TokenTTL:     time.Hour,
		SignedURLTTL: time.Minute,
	})

	ctx := context.Background()
	key := storage.NewKey(storage.PrefixProducts, ".png")
	require.NoError(t, local.Put(ctx, key, pngBytes, "image/png"))
	signed, err := local.SignedURL(ctx, key, time.Minute)
	require.NoError(t, err)
	u, err := url.Parse(signed)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", u.RequestURI(), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, pngBytes, rec.Body.Bytes())

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", u.Path+"?signature=forged", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
