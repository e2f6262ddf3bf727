package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nphn2028thief/shoes-store-server/middleware"
	"github.com/nphn2028thief/shoes-store-server/models"
	"github.com/nphn2028thief/shoes-store-server/store"
	"github.com/nphn2028thief/shoes-store-server/store/memstore"
	"github.com/nphn2028thief/shoes-store-server/utils"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *fakeMailer) SendOTPEmail(toEmail, otp string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, otp)
	return nil
}

type testEnv struct {
	stores *store.Stores
	mailer *fakeMailer
	tokens *utils.TokenService

	auth      *AuthController
	cart      *CartController
	category  *CategoryController
	product   *ProductController
	order     *OrderController
	addresses *ShippingAddressController
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	stores := memstore.New()
	mailer := &fakeMailer{}
	tokens := utils.NewTokenService("access-secret", "refresh-secret")
	logger := zerolog.Nop()

	return &testEnv{
		stores:    stores,
		mailer:    mailer,
		tokens:    tokens,
		auth:      NewAuthController(stores.Accounts, stores.Addresses, tokens, mailer, logger),
		cart:      NewCartController(stores.Carts, logger),
		category:  NewCategoryController(stores, logger),
		product:   NewProductController(stores, t.TempDir(), logger),
		order:     NewOrderController(stores, logger),
		addresses: NewShippingAddressController(stores, logger),
	}
}

// seedAccount creates an account directly in the store.
func (e *testEnv) seedAccount(t *testing.T, username, email, password string) models.Account {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	account, err := e.stores.Accounts.Create(context.Background(), models.Account{
		Email:     email,
		Username:  username,
		Password:  hash,
		FirstName: "Test",
		LastName:  "User",
		Role:      models.RoleUser,
	})
	require.NoError(t, err)
	return account
}

// httptestRequest builds a JSON request, optionally authenticated as
// accountID. Handlers reading path params get them via mux.SetURLVars
// at the call site.
func httptestRequest(method, target string, body interface{}, accountID *primitive.ObjectID) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	if accountID != nil {
		req = req.WithContext(middleware.WithAccountID(req.Context(), *accountID))
	}
	return req
}

func record(handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

// doJSON performs handler against a JSON body in one shot.
func doJSON(handler http.HandlerFunc, method, target string, body interface{}, accountID *primitive.ObjectID) *httptest.ResponseRecorder {
	return record(handler, httptestRequest(method, target, body, accountID))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
