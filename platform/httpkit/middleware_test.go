package httpkit

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sigma_app/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newProtectedEngine(log *logger.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(RequestID(), RequestLogger(log))
	engine.GET("/me", RequireAccessToken("secret"), func(c *gin.Context) {
		OK(c, gin.H{"userId": c.GetString(ContextUserIDKey)})
	})
	return engine
}

func TestRequireAccessToken(t *testing.T) {
	engine := newProtectedEngine(logger.Nop())
	valid, err := IssueAccessToken("secret", "20231234", "student", time.Hour)
	require.NoError(t, err)
	forged, err := IssueAccessToken("other", "20231234", "student", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + forged, http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"userId":"20231234"}`, rec.Body.String())
			}
		})
	}
}

func TestRequestLoggerCarriesRequestAndStudentIDs(t *testing.T) {
	var buf bytes.Buffer
	engine := newProtectedEngine(logger.NewWithWriter("production", &buf))
	token, err := IssueAccessToken("secret", "20231234", "student", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(HeaderRequestID, "req-1")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-1", rec.Header().Get(HeaderRequestID))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "http_request", line["msg"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "20231234", line["student_id"])
}
