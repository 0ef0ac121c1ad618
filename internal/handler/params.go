package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/tripweaver/internal/middleware"
)

// pathParam binds the chi URL parameter name into dest using the OpenAPI
// "simple" style, unescaping it the way generated servers do.
func pathParam(r *http.Request, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return fmt.Errorf("invalid path parameter %q", name)
	}
	return nil
}

// queryParam binds an optional form-style query parameter into dest, which
// should be a pointer to a pointer so absence stays distinguishable.
func queryParam(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return fmt.Errorf("invalid query parameter %q", name)
	}
	return nil
}

var errBodyTooLarge = errors.New("request body too large")

// decodeBody reads a JSON request body into dst. Unknown fields are rejected.
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return errors.New("request body is required")
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errBodyTooLarge
		}
		return fmt.Errorf("malformed request body: %v", err)
	}
	return nil
}

// bodyError rejects a request whose body could not be decoded.
func bodyError(w http.ResponseWriter, err error) {
	if errors.Is(err, errBodyTooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", err.Error())
		return
	}
	requestError(w, err.Error())
}

// userID returns the authenticated caller, or "" for anonymous requests.
// Services reject "" with domain.ErrUnauthenticated.
func userID(r *http.Request) string {
	u, _ := middleware.UserFrom(r.Context())
	return u.ID
}
