package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
)

// maxBodyBytes bounds auth and catalog payloads
const maxBodyBytes = 1 << 20

var errUnsupportedMediaType = errors.New("unsupported content type")

// decodeBody fills dst from a JSON or urlencoded body. Form fields are
// matched against dst's json tags, so one request type serves both the
// HTML forms and API clients.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		return json.NewDecoder(r.Body).Decode(dst)
	case "application/x-www-form-urlencoded", "":
		if err := r.ParseForm(); err != nil {
			return err
		}
		fields := make(map[string]string, len(r.PostForm))
		for key := range r.PostForm {
			fields[key] = r.PostForm.Get(key)
		}
		blob, err := json.Marshal(fields)
		if err != nil {
			return err
		}
		return json.Unmarshal(blob, dst)
	default:
		return fmt.Errorf("%w: %s", errUnsupportedMediaType, mediaType)
	}
}
