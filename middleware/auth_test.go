package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BerniceZTT/leads_end/models"
	"github.com/BerniceZTT/leads_end/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	utils.InitAuth("test-secret")
	m.Run()
}

func newTestRouter(roles ...models.UserRole) *gin.Engine {
	router := gin.New()
	router.GET("/protected", Auth(roles...), func(c *gin.Context) {
		user, err := utils.CurrentUser(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no identity in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"userId":   user.ID,
			"userName": user.Name,
			"role":     user.Role,
		})
	})
	return router
}

func doRequest(t *testing.T, router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func salesToken(t *testing.T, name string) string {
	t.Helper()
	token, err := utils.GenerateSalesToken(&models.SalesUser{
		ID:   primitive.NewObjectID(),
		Name: name,
		Role: models.UserRoleSales,
	})
	if err != nil {
		t.Fatalf("GenerateSalesToken: %v", err)
	}
	return token
}

func TestAuthMissingToken(t *testing.T) {
	router := newTestRouter(models.UserRoleSales)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc123"},
		{"empty bearer", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, router, tt.header)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", w.Code)
			}
		})
	}
}

func TestAuthInvalidToken(t *testing.T) {
	router := newTestRouter(models.UserRoleSales)
	w := doRequest(t, router, "Bearer garbage.token.value")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthWrongRoleForbidden(t *testing.T) {
	router := newTestRouter(models.UserRoleAdmin)
	w := doRequest(t, router, "Bearer "+salesToken(t, "Asha"))
	if w.Code != http.StatusForbidden {
		t.Fatalf("sales token on admin route: status = %d, want 403", w.Code)
	}
}

func TestAuthAdminTokenAllowed(t *testing.T) {
	router := newTestRouter(models.UserRoleAdmin)

	token, err := utils.GenerateAdminToken()
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	w := doRequest(t, router, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
}

func TestAuthPassesIdentityToHandler(t *testing.T) {
	router := newTestRouter(models.UserRoleSales)

	w := doRequest(t, router, "Bearer "+salesToken(t, "Asha Rao"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body["userName"] != "Asha Rao" {
		t.Errorf("userName = %v, want Asha Rao", body["userName"])
	}
	if body["role"] != string(models.UserRoleSales) {
		t.Errorf("role = %v, want sales", body["role"])
	}
	if body["userId"] == "" {
		t.Error("sales identity must carry userId")
	}
}

func TestAuthMultipleRolesAllowed(t *testing.T) {
	// 会话路由同时放行销售与管理员
	router := newTestRouter(models.UserRoleSales, models.UserRoleAdmin)

	adminToken, err := utils.GenerateAdminToken()
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	if w := doRequest(t, router, "Bearer "+adminToken); w.Code != http.StatusOK {
		t.Errorf("admin: status = %d, want 200", w.Code)
	}
	if w := doRequest(t, router, "Bearer "+salesToken(t, "Asha")); w.Code != http.StatusOK {
		t.Errorf("sales: status = %d, want 200", w.Code)
	}
}
