package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"

	"golang.org/x/crypto/bcrypt"

	api "github.com/rogerio-castellano/product-catalog/internal/http"
	"github.com/rogerio-castellano/product-catalog/internal/http/guards"
	handler "github.com/rogerio-castellano/product-catalog/internal/http/handlers"
	"github.com/rogerio-castellano/product-catalog/internal/models"
	"github.com/rogerio-castellano/product-catalog/internal/repo"
)

var (
	adminToken    string
	aliceToken    string
	bobToken      string
	inactiveToken string

	productRepo *repo.InMemoryProductRepository
	userRepo    *repo.InMemoryUserRepository
)

func init() {
	setupTestRepos("secret123")
	r := api.NewRouter(api.Options{})

	for _, u := range []struct {
		name  string
		token *string
	}{
		{"admin", &adminToken},
		{"alice", &aliceToken},
		{"bob", &bobToken},
		{"inactive", &inactiveToken},
	} {
		token, err := generateToken(r, u.name, "secret123")
		if err != nil {
			panic(fmt.Sprintf("error generating token for %s: %v", u.name, err))
		}
		*u.token = token
	}
}

func setupTestRepos(password string) {
	productRepo = repo.NewInMemoryProductRepository()
	handler.SetProductRepo(productRepo)
	guards.SetProductRepo(productRepo)

	userRepo = repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)
	guards.SetUserRepo(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	users := []models.User{
		{Username: "admin", PasswordHash: string(hash), IsActive: true, IsAdmin: true},
		{Username: "alice", PasswordHash: string(hash), IsActive: true},
		{Username: "bob", PasswordHash: string(hash), IsActive: true},
		{Username: "inactive", PasswordHash: string(hash), IsActive: false},
	}
	for _, u := range users {
		if _, err := userRepo.CreateUser(u); err != nil {
			panic(err)
		}
	}
}

func clearAllProducts() {
	productRepo.Clear()
}

func generateToken(r http.Handler, username, password string) (string, error) {
	payload := handler.CredentialsRequest{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

// validProduct returns a payload that passes every structural rule. Name and
// SKU vary per call site to dodge the uniqueness rules.
func validProduct(name, sku string) handler.ProductRequest {
	return handler.ProductRequest{
		Name: name,
		SKU:  sku,
		Price: handler.PriceRequest{
			Amount:   99.99,
			Currency: "USD",
		},
		Tags: []string{"electronics", "gadgets"},
	}
}

func postProduct(r http.Handler, token string, p handler.ProductRequest) *httptest.ResponseRecorder {
	return postJSON(r, "/api/v1/products/", token, p)
}

func validateProduct(r http.Handler, token string, p handler.ProductRequest) *httptest.ResponseRecorder {
	return postJSON(r, "/api/v1/products/validate", token, p)
}

func postJSON(r http.Handler, path, token string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newRequestWithBody(method, path string, body []byte) *http.Request {
	return httptest.NewRequest(method, path, bytes.NewReader(body))
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getPath(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func multipartFile(content []byte, filename, contentType string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, _ := writer.CreatePart(h)
	part.Write(content)

	writer.Close()
	return &buf, writer.FormDataContentType()
}

type errorEnvelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
	Detail  string            `json:"detail"`
}
