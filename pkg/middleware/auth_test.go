package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/sessions"
	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// fakeToken implements Token
type fakeToken struct {
	data map[string]interface{}
}

func (t *fakeToken) Claims(v interface{}) error {
	if mm, ok := v.(*map[string]interface{}); ok {
		*mm = t.data
		return nil
	}
	return fmt.Errorf("unsupported claims type")
}

// fakeVerifier implements Verifier
type fakeVerifier struct{}

func (f *fakeVerifier) Verify(ctx context.Context, raw string) (Token, error) {
	switch raw {
	case "goodtoken", "black-token":
		return &fakeToken{data: map[string]interface{}{"sub": "vendor1", "role": "vendor"}}, nil
	case "admintoken":
		return &fakeToken{data: map[string]interface{}{"sub": "admin1", "role": "admin"}}, nil
	case "nosub":
		return &fakeToken{data: map[string]interface{}{"email": "x@y.z"}}, nil
	}
	return nil, fmt.Errorf("invalid token")
}

func serve(t *testing.T, g *gin.Engine, header string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	return rw
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	g := gin.New()
	g.GET("/", AuthMiddleware(&fakeVerifier{}, nil), func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, h := range []string{"", "BadHeader", "Bearer ", "Bearer wrong", "Bearer nosub"} {
		rw := serve(t, g, h)
		require.Equal(t, http.StatusUnauthorized, rw.Code, "header %q", h)
		require.Contains(t, rw.Body.String(), `"success":false`)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	g := gin.New()
	g.GET("/", AuthMiddleware(&fakeVerifier{}, nil), func(c *gin.Context) {
		a, ok := ActorFrom(c)
		require.True(t, ok)
		require.Equal(t, "goodtoken", AccessToken(c))
		c.JSON(http.StatusOK, a)
	})

	rw := serve(t, g, "Bearer goodtoken")
	require.Equal(t, http.StatusOK, rw.Code)
	var got models.Actor
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &got))
	require.Equal(t, models.Actor{ID: "vendor1", Role: models.RoleVendor}, got)
}

func TestAuthMiddleware_RejectsBlacklistedToken(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	bl := sessions.NewBlacklist(redis.NewClient(&redis.Options{Addr: m.Addr()}))

	token := "black-token"
	require.NoError(t, bl.Add(context.Background(), token, 5*time.Second))

	g := gin.New()
	g.GET("/", AuthMiddleware(&fakeVerifier{}, bl), func(c *gin.Context) { c.Status(http.StatusOK) })

	require.Equal(t, http.StatusUnauthorized, serve(t, g, "Bearer "+token).Code)
	require.Equal(t, http.StatusOK, serve(t, g, "Bearer goodtoken").Code)
}

func TestRequireRole(t *testing.T) {
	g := gin.New()
	g.GET("/", AuthMiddleware(&fakeVerifier{}, nil), RequireRole(models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	require.Equal(t, http.StatusForbidden, serve(t, g, "Bearer goodtoken").Code)
	require.Equal(t, http.StatusOK, serve(t, g, "Bearer admintoken").Code)

	// without AuthMiddleware in front there is no actor
	g2 := gin.New()
	g2.GET("/", RequireRole(models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })
	require.Equal(t, http.StatusUnauthorized, serve(t, g2, "").Code)
}
