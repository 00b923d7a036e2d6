package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestSuccessMergesPayload(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, 200, "ok", gin.H{"data": map[string]string{"foo": "bar"}})
	require.Equal(t, 200, w.Code)

	var body map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err)
	require.Equal(t, true, body["success"])
	require.Equal(t, "ok", body["message"])
	require.Contains(t, body, "data")
}

func TestErrorEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, 404, "Couldn't find any user data")
	require.Equal(t, 404, w.Code)

	var body map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err)
	require.Equal(t, false, body["success"])
	inner := body["error"].(map[string]any)
	require.Equal(t, float64(404), inner["status"]) // json numbers decode to float64
	require.Equal(t, "Couldn't find any user data", inner["message"])
}

func TestCreatedAndConflict(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Created(c, "created", gin.H{"data": 1})
	require.Equal(t, 201, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Conflict(c, "Already have an account with this email.")
	require.Equal(t, 409, w.Code)
}
