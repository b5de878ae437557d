package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	appErrors "github.com/mquintal/aitutor/pkg/errors"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	return c, rec
}

func TestSuccess(t *testing.T) {
	c, rec := newTestContext(t)

	Success(c, http.StatusCreated, gin.H{"id": 1})

	require.Equal(t, http.StatusCreated, rec.Code)

	var payload Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.True(t, payload.Success)
	require.Nil(t, payload.Error)
}

func TestErrorRendersAppError(t *testing.T) {
	c, rec := newTestContext(t)

	Error(c, appErrors.ErrDuplicateKey)

	require.Equal(t, http.StatusConflict, rec.Code)

	var payload Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.False(t, payload.Success)
	require.Equal(t, "DUPLICATE_KEY", payload.Error.Code)
}

func TestErrorFallsBackToInternal(t *testing.T) {
	c, rec := newTestContext(t)

	Error(c, errors.New("boom"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var payload Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, "INTERNAL_SERVER_ERROR", payload.Error.Code)
}
