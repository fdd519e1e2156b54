package httpkit

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"reserva_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

func recordedContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	return c, rec
}

func TestHandleErrorMapsDomainKinds(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"notFound", apperr.NotFound("tenant not found"), http.StatusNotFound},
		{"validation", apperr.Validation("bad window"), http.StatusBadRequest},
		{"slotUnavailable", apperr.SlotUnavailable("slot taken"), http.StatusConflict},
		{"conflict", apperr.Conflict("already cancelled"), http.StatusConflict},
		{"unauthorized", apperr.Unauthorized("token required"), http.StatusUnauthorized},
		{"forbidden", apperr.Forbidden("not configured"), http.StatusForbidden},
		{"internal", apperr.Internal("boom"), http.StatusInternalServerError},
		{"untyped", errors.New("plain"), http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := recordedContext()
			if handled := HandleError(c, tc.err); !handled {
				t.Fatal("expected error to be handled")
			}
			if rec.Code != tc.want {
				t.Errorf("expected status %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestHandleErrorIgnoresNil(t *testing.T) {
	c, _ := recordedContext()
	if HandleError(c, nil) {
		t.Error("expected nil error to be a no-op")
	}
}
