package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func limitedRequest(h http.Handler, student string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/laundry/detect", nil)
	if student != "" {
		req.Header.Set(StudentHeader, student)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestStudentRateLimit_PerStudentBucket(t *testing.T) {
	h := RequireStudent(StudentRateLimit(1, 2, discardLogger())(http.HandlerFunc(ok)))

	assert.Equal(t, http.StatusOK, limitedRequest(h, "7").Code)
	assert.Equal(t, http.StatusOK, limitedRequest(h, "7").Code)

	rec := limitedRequest(h, "7")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "RATE_LIMITED"))

	assert.Equal(t, http.StatusOK, limitedRequest(h, "8").Code)
}

func TestStudentRateLimit_DisabledWhenZero(t *testing.T) {
	h := StudentRateLimit(0, 0, discardLogger())(http.HandlerFunc(ok))
	for i := 0; i < 20; i++ {
		assert.Equal(t, http.StatusOK, limitedRequest(h, "").Code)
	}
}

func TestVisitorStore_RefillsAndEvicts(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	s := newVisitorStore(rate.Every(time.Minute), 1, 10*time.Minute)
	s.nowFunc = func() time.Time { return now }

	assert.True(t, s.allow("student:7"))
	assert.False(t, s.allow("student:7"))

	now = now.Add(time.Minute)
	assert.True(t, s.allow("student:7"))
	assert.True(t, s.allow("student:8"))
	assert.Equal(t, 2, s.len())

	now = now.Add(11 * time.Minute)
	assert.True(t, s.allow("student:9"))
	assert.Equal(t, 1, s.len())
}
