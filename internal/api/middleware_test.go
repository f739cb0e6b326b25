package api

import (
	"chronicrelief/server/internal/domain"
	"chronicrelief/server/internal/service"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func signToken(t *testing.T, secret string, uid primitive.ObjectID, role domain.Role, expiry time.Duration) string {
	t.Helper()
	claims := &jwtClaims{
		UserID: uid.Hex(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid.Hex(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "chronic-relief",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func protectedRouter(secret string) *gin.Engine {
	router := gin.New()
	protected := router.Group("/api/v1")
	protected.Use(AuthMiddleware(secret))
	protected.GET("/whoami", func(c *gin.Context) {
		uid, _ := getUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userId": uid})
	})
	admin := protected.Group("/admin")
	admin.Use(RoleMiddleware(domain.RoleAdmin))
	admin.GET("/check", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func doGet(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	router := protectedRouter("test-secret")
	uid := primitive.NewObjectID()

	if w := doGet(router, "/api/v1/whoami", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d", w.Code)
	}

	token := signToken(t, "test-secret", uid, domain.RoleUser, time.Hour)
	if w := doGet(router, "/api/v1/whoami", token); w.Code != http.StatusOK {
		t.Errorf("valid token: status = %d, body %s", w.Code, w.Body.String())
	}

	wrong := signToken(t, "other-secret", uid, domain.RoleUser, time.Hour)
	if w := doGet(router, "/api/v1/whoami", wrong); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong secret: status = %d", w.Code)
	}

	expired := signToken(t, "test-secret", uid, domain.RoleUser, -time.Minute)
	if w := doGet(router, "/api/v1/whoami", expired); w.Code != http.StatusUnauthorized {
		t.Errorf("expired token: status = %d", w.Code)
	}
}

func TestRoleMiddleware(t *testing.T) {
	router := protectedRouter("test-secret")
	uid := primitive.NewObjectID()

	userToken := signToken(t, "test-secret", uid, domain.RoleUser, time.Hour)
	if w := doGet(router, "/api/v1/admin/check", userToken); w.Code != http.StatusForbidden {
		t.Errorf("user role: status = %d", w.Code)
	}

	adminToken := signToken(t, "test-secret", uid, domain.RoleAdmin, time.Hour)
	if w := doGet(router, "/api/v1/admin/check", adminToken); w.Code != http.StatusOK {
		t.Errorf("admin role: status = %d", w.Code)
	}
}

// userServiceStub satisfies just enough of UserService for handler tests.
type userServiceStub struct {
	service.UserService
	profile *domain.User
}

func (s *userServiceStub) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	u := *s.profile
	u.ID = userID
	return &u, nil
}

func TestGetProfileUsesTokenIdentity(t *testing.T) {
	uid := primitive.NewObjectID()
	stub := &userServiceStub{profile: &domain.User{
		Name:         "Pat",
		Email:        "pat@example.com",
		Role:         domain.RoleUser,
		SelectedArea: "knee",
	}}

	router := gin.New()
	me := router.Group("/api/v1/me")
	me.Use(AuthMiddleware("test-secret"))
	me.GET("", NewUserHandler(stub).GetProfile)

	token := signToken(t, "test-secret", uid, domain.RoleUser, time.Hour)
	w := doGet(router, "/api/v1/me", token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if body := w.Body.String(); !strings.Contains(body, uid.Hex()) || !strings.Contains(body, `"selectedArea":"knee"`) {
		t.Errorf("body = %s", body)
	}
}
