package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nphn2028thief/shoes-store-server/models"
	"github.com/nphn2028thief/shoes-store-server/store"
	"github.com/nphn2028thief/shoes-store-server/utils"
	"github.com/nphn2028thief/shoes-store-server/validations"
)

// Key type for context
type contextKey string

const accountIDKey = contextKey("accountId")

// AccountIDFrom returns the account id the auth middleware attached to
// the request context.
func AccountIDFrom(ctx context.Context) (primitive.ObjectID, bool) {
	id, ok := ctx.Value(accountIDKey).(primitive.ObjectID)
	return id, ok
}

// WithAccountID attaches an account id to the context. Exposed for
// handler tests.
func WithAccountID(ctx context.Context, id primitive.ObjectID) context.Context {
	return context.WithValue(ctx, accountIDKey, id)
}

// Auth verifies bearer tokens and role flags for protected routes.
type Auth struct {
	tokens   *utils.TokenService
	accounts store.AccountStore
}

// NewAuth builds the auth middleware from the token service and the
// account store used for the admin role check.
func NewAuth(tokens *utils.TokenService, accounts store.AccountStore) *Auth {
	return &Auth{tokens: tokens, accounts: accounts}
}

// VerifyToken requires a valid bearer token and attaches the resolved
// account id to the request context.
func (a *Auth) VerifyToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.RespondUnauthorized(w, "Access denied!")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[1] == "" {
			utils.RespondUnauthorized(w, "Access denied!")
			return
		}

		accountID, err := a.tokens.VerifyAccessToken(parts[1])
		if err != nil {
			if errors.Is(err, utils.ErrTokenExpired) {
				utils.RespondInternalError(w, "Login session has expired, please login again!", "TokenExpiredError")
				return
			}
			utils.RespondInternalError(w, err.Error(), "")
			return
		}

		if !validations.IsObjectID(accountID) {
			utils.RespondBadRequest(w, "User is not valid!")
			return
		}
		oid, err := primitive.ObjectIDFromHex(accountID)
		if err != nil {
			utils.RespondBadRequest(w, "User is not valid!")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithAccountID(r.Context(), oid)))
	})
}

// VerifyAdmin requires the account resolved by VerifyToken to carry the
// ADMIN role. Must be mounted after VerifyToken.
func (a *Auth) VerifyAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := AccountIDFrom(r.Context())
		if !ok {
			utils.RespondUnauthorized(w, "")
			return
		}

		account, err := a.accounts.FindByID(r.Context(), accountID)
		if err != nil {
			utils.RespondUnauthorized(w, "")
			return
		}

		if account.Role != models.RoleAdmin {
			utils.RespondUnauthorized(w, "Access denied!")
			return
		}
		next.ServeHTTP(w, r)
	})
}
