package guards

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rogerio-castellano/product-catalog/internal/auth"
	"github.com/rogerio-castellano/product-catalog/internal/models"
	"github.com/rogerio-castellano/product-catalog/internal/repo"
)

func seedUsers(t *testing.T) map[string]models.User {
	t.Helper()

	users := repo.NewInMemoryUserRepository()
	SetUserRepo(users)

	seeded := map[string]models.User{}
	for _, u := range []models.User{
		{Username: "admin", IsActive: true, IsAdmin: true},
		{Username: "alice", IsActive: true},
		{Username: "inactive", IsActive: false},
	} {
		created, err := users.CreateUser(u)
		if err != nil {
			t.Fatalf("error seeding user %s: %v", u.Username, err)
		}
		seeded[u.Username] = created
	}
	return seeded
}

func requestAs(t *testing.T, user models.User) *http.Request {
	t.Helper()

	token, err := auth.GenerateToken(user)
	if err != nil {
		t.Fatalf("error generating token: %v", err)
	}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

func TestUserGuardTiers(t *testing.T) {
	seeded := seedUsers(t)

	t.Run("current user resolves token subject", func(t *testing.T) {
		user, herr := CurrentUser(requestAs(t, seeded["alice"]))
		if herr != nil {
			t.Fatalf("unexpected error: %v", herr)
		}
		if user.Username != "alice" {
			t.Errorf("expected alice, got %q", user.Username)
		}
	})

	t.Run("active user rejects inactive accounts", func(t *testing.T) {
		_, herr := ActiveUser(requestAs(t, seeded["inactive"]))
		if herr == nil {
			t.Fatal("expected rejection")
		}
		if herr.Status != http.StatusBadRequest || herr.Message != "Usuario inactivo" {
			t.Errorf("unexpected error %d %q", herr.Status, herr.Message)
		}
	})

	t.Run("admin user rejects regular accounts", func(t *testing.T) {
		_, herr := AdminUser(requestAs(t, seeded["alice"]))
		if herr == nil {
			t.Fatal("expected rejection")
		}
		if herr.Status != http.StatusForbidden || herr.Message != "No tienes permisos suficientes" {
			t.Errorf("unexpected error %d %q", herr.Status, herr.Message)
		}
	})

	t.Run("admin user passes for admins", func(t *testing.T) {
		user, herr := AdminUser(requestAs(t, seeded["admin"]))
		if herr != nil {
			t.Fatalf("unexpected error: %v", herr)
		}
		if !user.IsAdmin {
			t.Error("expected an admin user")
		}
	})

	t.Run("unknown subject is unauthorized", func(t *testing.T) {
		_, herr := CurrentUser(requestAs(t, models.User{ID: 999, Username: "ghost"}))
		if herr == nil || herr.Status != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %v", herr)
		}
	})
}

func TestProductOwnership(t *testing.T) {
	seeded := seedUsers(t)

	products := repo.NewInMemoryProductRepository()
	SetProductRepo(products)

	owned, err := products.Create(models.Product{
		Name:    "Producto De Alice",
		SKU:     "ALI-00001",
		OwnerID: seeded["alice"].ID,
	})
	if err != nil {
		t.Fatalf("error seeding product: %v", err)
	}

	t.Run("owner allowed", func(t *testing.T) {
		product, user, herr := ProductOwnership(requestAs(t, seeded["alice"]), owned.ID)
		if herr != nil {
			t.Fatalf("unexpected error: %v", herr)
		}
		if product.ID != owned.ID || user.ID != seeded["alice"].ID {
			t.Error("returned product or user does not match the request")
		}
	})

	t.Run("admin allowed", func(t *testing.T) {
		_, _, herr := ProductOwnership(requestAs(t, seeded["admin"]), owned.ID)
		if herr != nil {
			t.Fatalf("unexpected error: %v", herr)
		}
	})

	t.Run("unknown product is 404", func(t *testing.T) {
		_, _, herr := ProductOwnership(requestAs(t, seeded["alice"]), 999)
		if herr == nil || herr.Status != http.StatusNotFound {
			t.Fatalf("expected 404, got %v", herr)
		}
	})
}
