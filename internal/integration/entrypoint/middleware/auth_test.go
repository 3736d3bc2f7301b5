package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/folaeazy/snap-bill/internal/application/adapter"
	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
	"github.com/folaeazy/snap-bill/internal/integration/entrypoint/dto"
)

type fakeTokenService struct {
	claims *adapter.TokenClaims
}

func (s *fakeTokenService) GenerateTokenPair(context.Context, uuid.UUID, string, bool) (*adapter.TokenPair, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeTokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	if token != "good-token" {
		return nil, errors.New("invalid token")
	}
	return s.claims, nil
}

func (s *fakeTokenService) ValidateRefreshToken(context.Context, string) (*adapter.TokenClaims, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeTokenService) InvalidateRefreshToken(context.Context, string) error { return nil }

func (s *fakeTokenService) InvalidateAllUserTokens(context.Context, uuid.UUID) error { return nil }

var _ adapter.TokenService = (*fakeTokenService)(nil)

func TestAuthenticate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	service := &fakeTokenService{claims: &adapter.TokenClaims{
		UserID:    userID,
		Email:     "ada@example.com",
		ExpiresAt: time.Now().Add(time.Hour),
	}}

	newRouter := func() *gin.Engine {
		router := gin.New()
		router.Use(NewAuthMiddleware(service).Authenticate())
		router.GET("/me", func(c *gin.Context) {
			id, ok := GetUserIDFromContext(c)
			if !ok {
				c.Status(http.StatusInternalServerError)
				return
			}
			email, _ := GetUserEmailFromContext(c)
			c.JSON(http.StatusOK, gin.H{"id": id.String(), "email": email})
		})
		return router
	}

	request := func(t *testing.T, authorization string) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		rec := httptest.NewRecorder()
		newRouter().ServeHTTP(rec, req)
		return rec
	}

	errorCode := func(t *testing.T, rec *httptest.ResponseRecorder) string {
		t.Helper()
		var body dto.ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("bad error body: %v", err)
		}
		return body.Code
	}

	t.Run("valid token exposes the user to handlers", func(t *testing.T) {
		rec := request(t, "Bearer good-token")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("bad body: %v", err)
		}
		if body["id"] != userID.String() || body["email"] != "ada@example.com" {
			t.Errorf("unexpected identity %+v", body)
		}
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		rec := request(t, "")
		if rec.Code != http.StatusUnauthorized || errorCode(t, rec) != string(domainerror.ErrCodeMissingToken) {
			t.Errorf("unexpected response %d %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("non-bearer header is rejected", func(t *testing.T) {
		rec := request(t, "Basic Zm9vOmJhcg==")
		if rec.Code != http.StatusUnauthorized || errorCode(t, rec) != string(domainerror.ErrCodeInvalidToken) {
			t.Errorf("unexpected response %d %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("empty bearer token is rejected", func(t *testing.T) {
		rec := request(t, "Bearer ")
		if rec.Code != http.StatusUnauthorized || errorCode(t, rec) != string(domainerror.ErrCodeMissingToken) {
			t.Errorf("unexpected response %d %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		rec := request(t, "Bearer expired-token")
		if rec.Code != http.StatusUnauthorized || errorCode(t, rec) != string(domainerror.ErrCodeInvalidToken) {
			t.Errorf("unexpected response %d %s", rec.Code, rec.Body.String())
		}
	})
}
