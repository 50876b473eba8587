package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"validation detail", NewValidationError("quantity must be positive"), http.StatusBadRequest, "quantity must be positive"},
		{"wrapped credentials", fmt.Errorf("login: %w", ErrInvalidCredentials), http.StatusUnauthorized, "Invalid email or password"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "Forbidden: insufficient permissions"},
		{"not found", ErrRequestNotFound, http.StatusNotFound, "Request not found"},
		{"conflict", ErrStatusConflict, http.StatusConflict, "Request status changed, reload and retry"},
		{"database", fmt.Errorf("%w: connection reset", ErrDatabaseError), http.StatusInternalServerError, "Internal server error"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Set("trace_id", "trace-1")

			HandleServiceError(c, tt.err)

			assert.Equal(t, tt.code, w.Code)
			var resp APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, tt.message, resp.Message)
			assert.Equal(t, "trace-1", resp.TraceID)
		})
	}
}
