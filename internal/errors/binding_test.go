package errors

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func bindBody(t *testing.T, body string) error {
	t.Helper()

	type loginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req loginRequest
	return c.ShouldBindJSON(&req)
}

func TestFormatBindingError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty body", "", "Request body is empty"},
		{"syntax", `{"email" "x"}`, "Invalid JSON"},
		{"type", `{"email": 5, "password": "longenough"}`, "Field 'email' should be of type string"},
		{"required uses json name", `{"password": "longenough"}`, "Field 'email' is required"},
		{"min", `{"email": "a@b.co", "password": "short"}`, "Field 'password' must be at least 8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := bindBody(t, tt.body)
			require.Error(t, err)
			require.Contains(t, FormatBindingError(err), tt.want)
		})
	}
}

func TestFormatBindingError_Nil(t *testing.T) {
	require.Equal(t, "", FormatBindingError(nil))
}

func TestUpgradeRequired_AbortsWithPrompt(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	UpgradeRequired(c, "locked", map[string]string{"feature": "event_sharing"})

	require.True(t, c.IsAborted())
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), ErrCodeUpgradeRequired)
	require.Contains(t, w.Body.String(), "event_sharing")
}
