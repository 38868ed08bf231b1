package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/Rakhulsr/go-catalog/app/services"
)

const maxFormMemory = 4 << 20

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	return nil
}

// form is the non-JSON view of a request body. Nested values use the
// "address[zipcode]" convention; "address.zipcode" is read as a fallback.
type form struct {
	r *http.Request
}

func parseForm(r *http.Request) (form, error) {
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if r.MultipartForm == nil {
			err = r.ParseMultipartForm(maxFormMemory)
		}
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return form{}, fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	return form{r: r}, nil
}

func (f form) value(key string) string {
	return f.r.FormValue(key)
}

func (f form) nested(parent, key string) string {
	if v := f.r.FormValue(fmt.Sprintf("%s[%s]", parent, key)); v != "" {
		return v
	}
	return f.r.FormValue(parent + "." + key)
}

// file returns the upload sent under field, or nil when none was sent.
// Anything above MaxUploadSize is cut one byte past the limit so the service
// can still report it as too large.
func (f form) file(field string) (*services.Upload, error) {
	if f.r.MultipartForm == nil {
		return nil, nil
	}
	file, header, err := f.r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, services.MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %s: %w", field, err)
	}
	return &services.Upload{Filename: header.Filename, Data: data}, nil
}

// bind fills dst from a JSON body, or calls fromForm with the parsed form.
func bind(r *http.Request, dst interface{}, fromForm func(form) error) error {
	if isJSON(r) {
		return decodeJSON(r, dst)
	}
	f, err := parseForm(r)
	if err != nil {
		return err
	}
	return fromForm(f)
}
