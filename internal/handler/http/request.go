package http

import (
	"encoding/json"
	"net/http"

	"github.com/sajathahamed/Unilifmobile/pkg/httputil"
	"github.com/sajathahamed/Unilifmobile/pkg/middleware"
	"github.com/sajathahamed/Unilifmobile/pkg/validator"
)

const (
	maxBodyBytes  = 1 << 20
	maxImageBytes = 8 << 20
)

// studentID returns the ID set by middleware.RequireStudent.
func studentID(r *http.Request) int64 {
	id, _ := middleware.StudentIDFromContext(r.Context())
	return id
}

// decode reads a JSON body of at most limit bytes into dst and validates it.
// On failure it writes the error response and returns false.
func decode(w http.ResponseWriter, r *http.Request, limit int64, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return false
	}

	if err := validator.Validate(dst); err != nil {
		httputil.WriteError(w, r, err, nil)
		return false
	}
	return true
}
