package controllers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nphn2028thief/shoes-store-server/models"
	"github.com/nphn2028thief/shoes-store-server/store/memstore"
	"github.com/nphn2028thief/shoes-store-server/utils"
)

func TestSignUpDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "john", "john@example.com", "secret123")

	rec := doJSON(env.auth.SignUp, http.MethodPost, "/api/auth/signUp", map[string]string{
		"email":     "other@example.com",
		"username":  "john",
		"password":  "secret123",
		"firstName": "John",
		"lastName":  "Doe",
	}, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Username Already Exist!", decodeBody(t, rec)["message"])
	assert.Equal(t, 1, env.stores.Accounts.(*memstore.AccountStore).Count())
}

func TestSignUpDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "john", "john@example.com", "secret123")

	rec := doJSON(env.auth.SignUp, http.MethodPost, "/api/auth/signUp", map[string]string{
		"email":     "john@example.com",
		"username":  "johnny",
		"password":  "secret123",
		"firstName": "John",
		"lastName":  "Doe",
	}, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Email Already Exist!", decodeBody(t, rec)["message"])
}

func TestSignUpAndSignIn(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(env.auth.SignUp, http.MethodPost, "/api/auth/signUp", map[string]string{
		"email":     "jane@example.com",
		"username":  "jane",
		"password":  "secret123",
		"firstName": "Jane",
		"lastName":  "Doe",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Raw password is never stored.
	account, err := env.stores.Accounts.FindByUsername(context.Background(), "jane")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", account.Password)
	assert.True(t, utils.CheckPassword(account.Password, "secret123"))

	rec = doJSON(env.auth.SignIn, http.MethodPost, "/api/auth/signIn", map[string]string{
		"username": "jane",
		"password": "secret123",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	token, _ := body["accessToken"].(string)
	require.NotEmpty(t, token)

	accountID, err := env.tokens.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, account.ID.Hex(), accountID)
}

func TestSignInDoesNotLeakWhichPartFailed(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "john", "john@example.com", "secret123")

	wrongPassword := doJSON(env.auth.SignIn, http.MethodPost, "/api/auth/signIn", map[string]string{
		"username": "john",
		"password": "wrong-password",
	}, nil)
	unknownUser := doJSON(env.auth.SignIn, http.MethodPost, "/api/auth/signIn", map[string]string{
		"username": "nobody",
		"password": "secret123",
	}, nil)

	assert.Equal(t, http.StatusNotFound, wrongPassword.Code)
	assert.Equal(t, wrongPassword.Code, unknownUser.Code)
	assert.JSONEq(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestUpdateMeSparseFields(t *testing.T) {
	env := newTestEnv(t)
	account := env.seedAccount(t, "john", "john@example.com", "secret123")

	rec := doJSON(env.auth.UpdateMe, http.MethodPatch, "/api/auth/updateMe", map[string]string{
		"avatar": "https://cdn.example.com/a.png",
	}, &account.ID)
	require.Equal(t, http.StatusOK, rec.Code)

	updated, err := env.stores.Accounts.FindByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.png", updated.Avatar)
	assert.Equal(t, account.FirstName, updated.FirstName)
	assert.Equal(t, account.LastName, updated.LastName)
}

func TestUpdateMeEmptyBodyIsBadRequest(t *testing.T) {
	env := newTestEnv(t)
	account := env.seedAccount(t, "john", "john@example.com", "secret123")

	rec := doJSON(env.auth.UpdateMe, http.MethodPatch, "/api/auth/updateMe", map[string]string{}, &account.ID)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	unchanged, err := env.stores.Accounts.FindByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.UpdatedAt, unchanged.UpdatedAt)
}

func TestForgotPasswordStoresOTP(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "john", "john@example.com", "secret123")

	rec := doJSON(env.auth.ForgotPassword, http.MethodPost, "/api/auth/forgotPassword", map[string]string{
		"email": "john@example.com",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	account, err := env.stores.Accounts.FindByEmail(context.Background(), "john@example.com")
	require.NoError(t, err)
	assert.Len(t, account.OTP, 6)
	require.NotNil(t, account.OTPExpiresAt)
	assert.WithinDuration(t, time.Now().Add(utils.OTPTTL), *account.OTPExpiresAt, time.Minute)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(env.auth.ForgotPassword, http.MethodPost, "/api/auth/forgotPassword", map[string]string{
		"email": "nobody@example.com",
	}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Email is not Found!", decodeBody(t, rec)["message"])
}

func TestVerifyOtpBeforeExpiryKeepsOTP(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "john", "john@example.com", "secret123")
	require.NoError(t, env.stores.Accounts.SetOTP(context.Background(), "john@example.com", "123456", time.Now().Add(utils.OTPTTL)))

	rec := doJSON(env.auth.VerifyOtp, http.MethodPost, "/api/auth/verifyOtp", map[string]string{
		"email": "john@example.com",
		"otp":   "123456",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := decodeBody(t, rec)["resetToken"].(string)
	assert.NotEmpty(t, token)

	// Only resetPassword clears the OTP.
	account, err := env.stores.Accounts.FindByEmail(context.Background(), "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", account.OTP)
}

func TestVerifyOtpAfterExpiryFails(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "john", "john@example.com", "secret123")
	require.NoError(t, env.stores.Accounts.SetOTP(context.Background(), "john@example.com", "123456", time.Now().Add(-time.Second)))

	rec := doJSON(env.auth.VerifyOtp, http.MethodPost, "/api/auth/verifyOtp", map[string]string{
		"email": "john@example.com",
		"otp":   "123456",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "OTP is Expired, Please Try Again!", decodeBody(t, rec)["message"])
}

func TestVerifyOtpWrongValueFails(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "john", "john@example.com", "secret123")
	require.NoError(t, env.stores.Accounts.SetOTP(context.Background(), "john@example.com", "123456", time.Now().Add(utils.OTPTTL)))

	rec := doJSON(env.auth.VerifyOtp, http.MethodPost, "/api/auth/verifyOtp", map[string]string{
		"email": "john@example.com",
		"otp":   "654321",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetPasswordRequiresVerifiedOTPSession(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "john", "john@example.com", "secret123")

	// Without the token minted by verifyOtp the reset is rejected.
	rec := doJSON(env.auth.ResetPassword, http.MethodPut, "/api/auth/resetPassword", map[string]string{
		"email":              "john@example.com",
		"resetToken":         "forged",
		"newPassword":        "brand-new-pass",
		"confirmNewPassword": "brand-new-pass",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetPasswordFullFlow(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "john", "john@example.com", "secret123")
	require.NoError(t, env.stores.Accounts.SetOTP(context.Background(), "john@example.com", "123456", time.Now().Add(utils.OTPTTL)))

	rec := doJSON(env.auth.VerifyOtp, http.MethodPost, "/api/auth/verifyOtp", map[string]string{
		"email": "john@example.com",
		"otp":   "123456",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	token := decodeBody(t, rec)["resetToken"].(string)

	rec = doJSON(env.auth.ResetPassword, http.MethodPut, "/api/auth/resetPassword", map[string]string{
		"email":              "john@example.com",
		"resetToken":         token,
		"newPassword":        "brand-new-pass",
		"confirmNewPassword": "brand-new-pass",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	account, err := env.stores.Accounts.FindByEmail(context.Background(), "john@example.com")
	require.NoError(t, err)
	assert.True(t, utils.CheckPassword(account.Password, "brand-new-pass"))
	assert.Empty(t, account.OTP)
	assert.Nil(t, account.OTPExpiresAt)
	assert.Empty(t, account.ResetToken)

	// The token is single use.
	rec = doJSON(env.auth.ResetPassword, http.MethodPut, "/api/auth/resetPassword", map[string]string{
		"email":              "john@example.com",
		"resetToken":         token,
		"newPassword":        "yet-another-pass",
		"confirmNewPassword": "yet-another-pass",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetPasswordConfirmMismatch(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(env.auth.ResetPassword, http.MethodPut, "/api/auth/resetPassword", map[string]string{
		"email":              "john@example.com",
		"resetToken":         "whatever",
		"newPassword":        "one-password",
		"confirmNewPassword": "another-password",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetMeIncludesShippingAddresses(t *testing.T) {
	env := newTestEnv(t)
	account := env.seedAccount(t, "john", "john@example.com", "secret123")
	_, err := env.stores.Addresses.Create(context.Background(), models.ShippingAddress{
		AccountID: account.ID,
		Phone:     "0123456789",
		Address:   "12 Main St",
	})
	require.NoError(t, err)

	rec := doJSON(env.auth.GetMe, http.MethodGet, "/api/auth/getMe", nil, &account.ID)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "john@example.com", body["email"])
	addresses, ok := body["shippingAddresses"].([]interface{})
	require.True(t, ok)
	assert.Len(t, addresses, 1)
}

func TestGetMeUnknownAccountIsUnauthorized(t *testing.T) {
	env := newTestEnv(t)
	ghost := primitive.NewObjectID()

	rec := doJSON(env.auth.GetMe, http.MethodGet, "/api/auth/getMe", nil, &ghost)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
