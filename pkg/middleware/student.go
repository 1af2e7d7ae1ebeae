package middleware

import (
	"context"
	"net/http"
	"strconv"

	apperrors "github.com/sajathahamed/Unilifmobile/pkg/errors"
	"github.com/sajathahamed/Unilifmobile/pkg/httputil"
)

type ctxKey string

const studentIDKey ctxKey = "student_id"

// StudentHeader carries the signed-in student's numeric ID.
const StudentHeader = "X-User-ID"

// WithStudentID stores the student ID in ctx.
func WithStudentID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, studentIDKey, id)
}

// StudentIDFromContext returns the student ID set by RequireStudent.
func StudentIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(studentIDKey).(int64)
	return id, ok
}

// RequireStudent rejects requests without a valid X-User-ID header with 401.
func RequireStudent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.Header.Get(StudentHeader), 10, 64)
		if err != nil || id <= 0 {
			httputil.WriteError(w, r, apperrors.Unauthorized("sign in required"), nil)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithStudentID(r.Context(), id)))
	})
}

// ContentTypeJSON rejects bodies that are not JSON on write methods.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			if r.ContentLength != 0 && !isJSON(r.Header.Get("Content-Type")) {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "UNSUPPORTED_MEDIA_TYPE", Message: "Content-Type must be application/json"},
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func isJSON(ct string) bool {
	return len(ct) >= 16 && ct[:16] == "application/json"
}
