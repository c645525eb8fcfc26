package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/company-directory-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

const maxMultipartMemory = 10 << 20

var errMalformedBody = errors.New("malformed request body")

// input is the decoded request body restricted to a resource's fields.
// A key that is present with a JSON null maps to "".
type input map[string]string

// decodeInput reads a JSON, urlencoded or multipart body and keeps only the
// keys listed in fields; anything else is dropped.
func decodeInput(r *http.Request, fields []string) (input, error) {
	raw := make(map[string]string)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return nil, fmt.Errorf("%w: %v", errMalformedBody, err)
		}
		for k, v := range r.MultipartForm.Value {
			if len(v) > 0 {
				raw[k] = v[0]
			}
		}
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", errMalformedBody, err)
		}
		for k := range r.PostForm {
			raw[k] = r.PostForm.Get(k)
		}
	default:
		var body map[string]any
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %v", errMalformedBody, err)
		}
		for _, f := range fields {
			v, ok := body[f]
			if !ok {
				continue
			}
			s, ok := jsonScalar(v)
			if !ok {
				return nil, fmt.Errorf("%w: field %q must be a scalar", errMalformedBody, f)
			}
			raw[f] = s
		}
	}

	in := make(input, len(fields))
	for _, f := range fields {
		if v, ok := raw[f]; ok {
			in[f] = v
		}
	}
	return in, nil
}

func jsonScalar(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", true
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case bool:
		return strconv.FormatBool(val), true
	}
	return "", false
}

// ptr returns the value of key, or nil when the key was not sent.
func (in input) ptr(key string) *string {
	v, ok := in[key]
	if !ok {
		return nil
	}
	return &v
}

// int64Ptr parses key as an integer. A value that is sent but is not an
// integer is a validation error on that key.
func (in input) int64Ptr(key string) (*int64, error) {
	v, ok := in[key]
	if !ok {
		return nil, nil
	}
	v = strings.TrimSpace(v)
	if v == "" {
		var zero int64
		return &zero, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, validator.ValidationErrors{{Field: key, Message: key + " must be an integer"}}
	}
	return &n, nil
}

// formFile returns the uploaded file under key, if the request carried one.
func formFile(r *http.Request, key string) (multipart.File, *multipart.FileHeader, error) {
	if r.MultipartForm == nil {
		return nil, nil, nil
	}
	file, header, err := r.FormFile(key)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	return file, header, err
}

// pathID parses the {id} route parameter. ok is false for anything that
// cannot be a row identifier.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
