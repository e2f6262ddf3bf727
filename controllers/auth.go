package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nphn2028thief/shoes-store-server/middleware"
	"github.com/nphn2028thief/shoes-store-server/models"
	"github.com/nphn2028thief/shoes-store-server/store"
	"github.com/nphn2028thief/shoes-store-server/utils"
	"github.com/nphn2028thief/shoes-store-server/validations"
)

// AuthController handles registration, login, profile and the OTP-based
// password reset flow.
type AuthController struct {
	accounts  store.AccountStore
	addresses store.AddressStore
	tokens    *utils.TokenService
	mailer    utils.Mailer
	logger    zerolog.Logger
}

// NewAuthController wires the auth controller.
func NewAuthController(accounts store.AccountStore, addresses store.AddressStore, tokens *utils.TokenService, mailer utils.Mailer, logger zerolog.Logger) *AuthController {
	return &AuthController{
		accounts:  accounts,
		addresses: addresses,
		tokens:    tokens,
		mailer:    mailer,
		logger:    logger,
	}
}

// accountView is the profile shape returned by getMe and updateMe.
type accountView struct {
	ID                primitive.ObjectID       `json:"_id"`
	Email             string                   `json:"email"`
	FirstName         string                   `json:"firstName"`
	LastName          string                   `json:"lastName"`
	Avatar            string                   `json:"avatar"`
	ShippingAddresses []models.ShippingAddress `json:"shippingAddresses"`
}

// SignUp registers a new account.
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var payload validations.RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondBadRequest(w, "")
		return
	}
	if err := validations.Check(payload); err != nil {
		utils.RespondBadRequest(w, err.Error())
		return
	}

	ctx := r.Context()
	if _, err := c.accounts.FindByUsername(ctx, payload.Username); err == nil {
		utils.RespondConflict(w, "Username Already Exist!")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		c.logger.Error().Err(err).Msg("signUp: username lookup")
		utils.RespondInternalError(w, "Register Failure!", "")
		return
	}
	if _, err := c.accounts.FindByEmail(ctx, payload.Email); err == nil {
		utils.RespondConflict(w, "Email Already Exist!")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		c.logger.Error().Err(err).Msg("signUp: email lookup")
		utils.RespondInternalError(w, "Register Failure!", "")
		return
	}

	hash, err := utils.HashPassword(payload.Password)
	if err != nil {
		c.logger.Error().Err(err).Msg("signUp: hash password")
		utils.RespondInternalError(w, "Register Failure!", "")
		return
	}

	_, err = c.accounts.Create(ctx, models.Account{
		Email:     payload.Email,
		Username:  payload.Username,
		Password:  hash,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Role:      models.RoleUser,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			utils.RespondConflict(w, "Username Already Exist!")
			return
		}
		c.logger.Error().Err(err).Msg("signUp: create account")
		utils.RespondInternalError(w, "Register Failure!", "")
		return
	}

	utils.RespondSuccess(w, "Register Successfully!", "", nil)
}

// SignIn authenticates by username and issues an access token. A
// missing account and a wrong password produce the same response so the
// caller cannot tell which part failed.
func (c *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	var payload validations.LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondBadRequest(w, "")
		return
	}
	if err := validations.Check(payload); err != nil {
		utils.RespondBadRequest(w, err.Error())
		return
	}

	account, err := c.accounts.FindByUsername(r.Context(), payload.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondNotFound(w, "Username or Password is not Correct!")
			return
		}
		c.logger.Error().Err(err).Msg("signIn: lookup")
		utils.RespondInternalError(w, "Login Failure!", "")
		return
	}

	if !utils.CheckPassword(account.Password, payload.Password) {
		utils.RespondNotFound(w, "Username or Password is not Correct!")
		return
	}

	accessToken, err := c.tokens.IssueAccessToken(account.ID.Hex())
	if err != nil {
		c.logger.Error().Err(err).Msg("signIn: issue token")
		utils.RespondInternalError(w, "Login Failure!", "")
		return
	}

	utils.RespondSuccess(w, "Login Successfully!", "accessToken", accessToken)
}

// GetMe returns the caller's profile with its shipping addresses.
func (c *AuthController) GetMe(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFrom(r.Context())
	if !ok {
		utils.RespondUnauthorized(w, "")
		return
	}

	account, err := c.accounts.FindByID(r.Context(), accountID)
	if err != nil {
		utils.RespondUnauthorized(w, "")
		return
	}

	view, err := c.viewOf(r, account)
	if err != nil {
		c.logger.Error().Err(err).Msg("getMe: load addresses")
		utils.RespondInternalError(w, "", "")
		return
	}
	utils.RespondJSON(w, view)
}

// UpdateMe applies a sparse profile update. A body with none of the
// recognized fields is a bad request and performs no write.
func (c *AuthController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFrom(r.Context())
	if !ok {
		utils.RespondUnauthorized(w, "")
		return
	}

	var payload validations.UpdateMePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondBadRequest(w, "")
		return
	}
	if payload.Empty() {
		utils.RespondBadRequest(w, "")
		return
	}

	account, err := c.accounts.UpdateProfile(r.Context(), accountID, store.ProfileUpdate{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Avatar:    payload.Avatar,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondUnauthorized(w, "")
			return
		}
		c.logger.Error().Err(err).Msg("updateMe: update")
		utils.RespondInternalError(w, "", "")
		return
	}

	view, err := c.viewOf(r, account)
	if err != nil {
		c.logger.Error().Err(err).Msg("updateMe: load addresses")
		utils.RespondInternalError(w, "", "")
		return
	}
	utils.RespondSuccess(w, "Update Personal Info Successfully!", "data", view)
}

// ForgotPassword stores a fresh OTP against the account and mails it.
// Delivery runs in the background; its failure does not fail the
// request.
func (c *AuthController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var payload validations.EmailPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondBadRequest(w, "")
		return
	}
	if err := validations.Check(payload); err != nil {
		utils.RespondBadRequest(w, err.Error())
		return
	}

	if _, err := c.accounts.FindByEmail(r.Context(), payload.Email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondNotFound(w, "Email is not Found!")
			return
		}
		c.logger.Error().Err(err).Msg("forgotPassword: lookup")
		utils.RespondInternalError(w, "", "")
		return
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		c.logger.Error().Err(err).Msg("forgotPassword: generate otp")
		utils.RespondInternalError(w, "", "")
		return
	}

	expiresAt := time.Now().Add(utils.OTPTTL)
	if err := c.accounts.SetOTP(r.Context(), payload.Email, otp, expiresAt); err != nil {
		c.logger.Error().Err(err).Msg("forgotPassword: store otp")
		utils.RespondInternalError(w, "", "")
		return
	}

	go func(email, otp string) {
		if err := c.mailer.SendOTPEmail(email, otp); err != nil {
			c.logger.Error().Err(err).Str("email", email).Msg("forgotPassword: send mail")
		}
	}(payload.Email, otp)

	utils.RespondSuccess(w, "Send Otp Successfully, Please Check Your Email!", "", nil)
}

// VerifyOtp checks email + otp + expiry in one query. Success mints the
// single-use reset token required by ResetPassword; the OTP itself is
// left untouched.
func (c *AuthController) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	var payload validations.OTPPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondBadRequest(w, "")
		return
	}
	if err := validations.Check(payload); err != nil {
		utils.RespondBadRequest(w, err.Error())
		return
	}

	account, err := c.accounts.FindByEmailOTP(r.Context(), payload.Email, payload.OTP, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondBadRequest(w, "OTP is Expired, Please Try Again!")
			return
		}
		c.logger.Error().Err(err).Msg("verifyOtp: lookup")
		utils.RespondInternalError(w, "", "")
		return
	}

	resetToken, err := utils.GenerateResetToken()
	if err != nil {
		c.logger.Error().Err(err).Msg("verifyOtp: generate token")
		utils.RespondInternalError(w, "", "")
		return
	}
	if err := c.accounts.SetResetToken(r.Context(), account.ID, resetToken, time.Now().Add(utils.ResetTokenTTL)); err != nil {
		c.logger.Error().Err(err).Msg("verifyOtp: store token")
		utils.RespondInternalError(w, "", "")
		return
	}

	utils.RespondSuccess(w, "Verify OTP Successfully!", "resetToken", resetToken)
}

// ResetPassword rehashes the password for the caller holding the reset
// token minted by VerifyOtp, clearing the OTP and reset state.
func (c *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var payload validations.ResetPasswordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondBadRequest(w, "")
		return
	}
	if err := validations.Check(payload); err != nil {
		utils.RespondBadRequest(w, err.Error())
		return
	}

	hash, err := utils.HashPassword(payload.NewPassword)
	if err != nil {
		c.logger.Error().Err(err).Msg("resetPassword: hash")
		utils.RespondInternalError(w, "", "")
		return
	}

	err = c.accounts.ResetPassword(r.Context(), payload.Email, payload.ResetToken, hash, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondBadRequest(w, "Reset session is invalid or has expired, please verify your OTP again!")
			return
		}
		c.logger.Error().Err(err).Msg("resetPassword: update")
		utils.RespondInternalError(w, "", "")
		return
	}

	utils.RespondSuccess(w, "Reset Password Successfully!", "", nil)
}

func (c *AuthController) viewOf(r *http.Request, account models.Account) (accountView, error) {
	addresses, err := c.addresses.FindByAccount(r.Context(), account.ID)
	if err != nil {
		return accountView{}, err
	}
	// The owner is implied; strip the back-reference from each address.
	for i := range addresses {
		addresses[i].AccountID = primitive.NilObjectID
	}
	return accountView{
		ID:                account.ID,
		Email:             account.Email,
		FirstName:         account.FirstName,
		LastName:          account.LastName,
		Avatar:            account.Avatar,
		ShippingAddresses: addresses,
	}, nil
}
