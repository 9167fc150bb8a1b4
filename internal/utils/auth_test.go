package utils

import (
	"testing"

	"github.com/xelth-com/pcardgo/internal/models"
)

const testSecret = "test-secret-key"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2-but-longer")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	if !CheckPasswordHash("hunter2-but-longer", hash) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("wrong-password", hash) {
		t.Error("wrong password accepted")
	}
}

func TestTokenCarriesIdentityClaims(t *testing.T) {
	user := &models.UserAuth{
		ID:    "8a31a748-7f3b-4e0a-9a53-000000000001",
		Email: "merrill.raman@example.com",
		Name:  "Merrill Raman",
		Role:  models.RoleApprover,
	}

	access, refresh, err := GenerateTokens(user, testSecret)
	if err != nil {
		t.Fatalf("GenerateTokens failed: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("empty token returned")
	}

	claims, err := ValidateToken(access, testSecret)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}

	if claims["id"] != user.ID {
		t.Errorf("id claim = %v, want %s", claims["id"], user.ID)
	}
	if claims["name"] != user.Name {
		t.Errorf("name claim = %v, want %s", claims["name"], user.Name)
	}
	if claims["role"] != models.RoleApprover {
		t.Errorf("role claim = %v, want %s", claims["role"], models.RoleApprover)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	user := &models.UserAuth{ID: "u1", Email: "a@b.c", Role: models.RoleEmployee}
	access, _, err := GenerateTokens(user, testSecret)
	if err != nil {
		t.Fatalf("GenerateTokens failed: %v", err)
	}

	if _, err := ValidateToken(access, "a-different-secret"); err == nil {
		t.Error("token validated with wrong secret")
	}
}

func TestSanitizeJSON(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"{\"a\":1}", "{\"a\":1}"},
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\n{\"a\":1}\n```", "{\"a\":1}"},
		{"  {\"a\":1}  ", "{\"a\":1}"},
	}

	for _, c := range cases {
		if got := SanitizeJSON(c.in); got != c.want {
			t.Errorf("SanitizeJSON(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
