package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		models.Invalid("name is required"):              http.StatusBadRequest,
		models.NotFound("business"):                     http.StatusNotFound,
		models.Conflict("slug"):                         http.StatusConflict,
		fmt.Errorf("wrap: %w", models.ErrForbidden):     http.StatusForbidden,
		models.ErrUnauthorized:                          http.StatusUnauthorized,
		fmt.Errorf("vendor: %w", models.ErrLimitReached): http.StatusPaymentRequired,
		errors.New("boom"):                              http.StatusInternalServerError,
	}
	for err, want := range cases {
		require.Equal(t, want, StatusFor(err), err.Error())
	}
}

func TestErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/v", func(c *gin.Context) { Error(c, models.Invalid("phone is required")) })
	r.GET("/x", func(c *gin.Context) { Error(c, errors.New("db exploded")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, false, body["success"])
	require.Equal(t, "validation failed: phone is required", body["message"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "db exploded")
}

func TestPagedEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/p", func(c *gin.Context) {
		Paged(c, models.Slice([]string{"a", "b", "c"}, models.PageRequest{Page: 1, Limit: 2}))
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/p", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success    bool     `json:"success"`
		Data       []string `json:"data"`
		Pagination struct {
			Total int `json:"total"`
			Pages int `json:"pages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Equal(t, []string{"a", "b"}, body.Data)
	require.Equal(t, 3, body.Pagination.Total)
	require.Equal(t, 2, body.Pagination.Pages)
}
