package utils

import (
	"testing"
	"time"

	"github.com/BerniceZTT/leads_end/models"

	"github.com/dgrijalva/jwt-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMain(m *testing.M) {
	InitLogger()
	InitAuth("test-secret")
	m.Run()
}

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hashed == "s3cret-pass" {
		t.Fatal("password must not be stored in plain text")
	}
	if !CheckPassword(hashed, "s3cret-pass") {
		t.Error("correct password must verify")
	}
	if CheckPassword(hashed, "wrong-pass") {
		t.Error("wrong password must not verify")
	}
}

func TestSalesTokenRoundTrip(t *testing.T) {
	user := &models.SalesUser{
		ID:   primitive.NewObjectID(),
		Name: "Asha Rao",
		Role: models.UserRoleSales,
	}

	token, err := GenerateSalesToken(user)
	if err != nil {
		t.Fatalf("GenerateSalesToken: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}

	auth, err := AuthUserFromClaims(claims)
	if err != nil {
		t.Fatalf("AuthUserFromClaims: %v", err)
	}
	if auth.ID != user.ID.Hex() {
		t.Errorf("userId = %q, want %q", auth.ID, user.ID.Hex())
	}
	if auth.Name != "Asha Rao" || auth.Role != models.UserRoleSales {
		t.Errorf("identity = %+v", auth)
	}
}

func TestAdminTokenHasNoUserID(t *testing.T) {
	token, err := GenerateAdminToken()
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}

	auth, err := AuthUserFromClaims(claims)
	if err != nil {
		t.Fatalf("AuthUserFromClaims: %v", err)
	}
	if auth.ID != "" {
		t.Errorf("admin token must not carry a userId, got %q", auth.ID)
	}
	if auth.Role != models.UserRoleAdmin || auth.Name != "admin" {
		t.Errorf("identity = %+v", auth)
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	claims := jwt.MapClaims{
		"userName": "admin",
		"role":     string(models.UserRoleAdmin),
		"exp":      time.Now().Add(-time.Hour).Unix(),
		"iat":      time.Now().Add(-25 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	expired, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseToken(expired); err == nil {
		t.Fatal("expired token must be rejected")
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	claims := jwt.MapClaims{
		"userName": "admin",
		"role":     string(models.UserRoleAdmin),
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	forged, err := token.SignedString([]byte("another-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseToken(forged); err == nil {
		t.Fatal("token signed with a different secret must be rejected")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseToken("not-a-jwt"); err == nil {
		t.Fatal("garbage token must be rejected")
	}
}

func TestAuthUserFromClaimsMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{"missing role", jwt.MapClaims{"userName": "x"}},
		{"missing userName", jwt.MapClaims{"role": "sales", "userId": "abc"}},
		{"sales without userId", jwt.MapClaims{"role": "sales", "userName": "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := AuthUserFromClaims(tt.claims); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestIsValidPhone(t *testing.T) {
	valid := []string{"9998887777", "0000000000"}
	invalid := []string{"", "123", "99988877771", "99988877ab", "999 888777"}

	for _, p := range valid {
		if !IsValidPhone(p) {
			t.Errorf("IsValidPhone(%q) = false, want true", p)
		}
	}
	for _, p := range invalid {
		if IsValidPhone(p) {
			t.Errorf("IsValidPhone(%q) = true, want false", p)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	if !IsValidEmail("a@x.com") {
		t.Error("a@x.com should be valid")
	}
	if IsValidEmail("not-an-email") {
		t.Error("not-an-email should be invalid")
	}
}
