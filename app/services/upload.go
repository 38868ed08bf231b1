package services

import (
	"fmt"

	"github.com/Rakhulsr/go-catalog/app/storage"
)

// MaxUploadSize bounds photos and logos (2 MiB).
const MaxUploadSize = 2 << 20

// Upload is a file received from a client. Filename is informational only.
type Upload struct {
	Filename string
	Data     []byte
}

type inspectedUpload struct {
	contentType string
	extension   string
}

// inspectImage records a field error when up is missing (and required), too
// large, or not an accepted image format.
func inspectImage(field string, up *Upload, required bool, fields map[string]string) *inspectedUpload {
	if up == nil || len(up.Data) == 0 {
		if required {
			fields[field] = fmt.Sprintf("The %s field is required.", field)
		}
		return nil
	}
	if len(up.Data) > MaxUploadSize {
		fields[field] = fmt.Sprintf("The %s may not be greater than %d kilobytes.", field, MaxUploadSize/1024)
		return nil
	}
	contentType, extension, ok := storage.SniffImage(up.Data)
	if !ok {
		fields[field] = fmt.Sprintf("The %s must be a file of type: jpeg, png, gif, webp.", field)
		return nil
	}
	return &inspectedUpload{contentType: contentType, extension: extension}
}
