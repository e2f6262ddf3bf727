package validations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestIsObjectID(t *testing.T) {
	assert.True(t, IsObjectID("66f1a2b3c4d5e6f7a8b9c0d1"))
	assert.True(t, IsObjectID("ABCDEFabcdef012345678901"))
	assert.False(t, IsObjectID(""))
	assert.False(t, IsObjectID("66f1a2b3c4d5e6f7a8b9c0d"))   // too short
	assert.False(t, IsObjectID("66f1a2b3c4d5e6f7a8b9c0d1a")) // too long
	assert.False(t, IsObjectID("zzf1a2b3c4d5e6f7a8b9c0d1"))
}

func TestRegisterPayload(t *testing.T) {
	valid := RegisterPayload{
		Email:     "john@example.com",
		Username:  "john",
		Password:  "secret123",
		FirstName: "John",
		LastName:  "Doe",
	}
	assert.NoError(t, Check(valid))

	badEmail := valid
	badEmail.Email = "not-an-email"
	assert.Error(t, Check(badEmail))

	missing := valid
	missing.Username = ""
	assert.Error(t, Check(missing))
}

func TestOTPPayload(t *testing.T) {
	assert.NoError(t, Check(OTPPayload{Email: "john@example.com", OTP: "123456"}))
	assert.Error(t, Check(OTPPayload{Email: "john@example.com", OTP: "12345"}))
	assert.Error(t, Check(OTPPayload{Email: "john@example.com", OTP: "12345a"}))
	assert.Error(t, Check(OTPPayload{Email: "", OTP: "123456"}))
}

func TestResetPasswordPayloadConfirmMustMatch(t *testing.T) {
	payload := ResetPasswordPayload{
		Email:              "john@example.com",
		ResetToken:         "abc123",
		NewPassword:        "new-password",
		ConfirmNewPassword: "new-password",
	}
	assert.NoError(t, Check(payload))

	payload.ConfirmNewPassword = "other-password"
	assert.Error(t, Check(payload))
}

func TestCartItemPayload(t *testing.T) {
	valid := CartItemPayload{
		ID:        "66f1a2b3c4d5e6f7a8b9c0d1",
		Name:      "Air Zoom",
		Size:      "42",
		Image:     "http://localhost:5000/public/a.png",
		Price:     129.99,
		BuyAmount: 1,
	}
	assert.NoError(t, Check(valid))

	badID := valid
	badID.ID = "nope"
	assert.Error(t, Check(badID))

	zeroAmount := valid
	zeroAmount.BuyAmount = 0
	assert.Error(t, Check(zeroAmount))
}

func TestProductPayload(t *testing.T) {
	valid := ProductPayload{
		Name:          "Air Zoom Pegasus",
		SubTitle:      "Men's Shoes",
		Description:   "Lightweight everyday runner.",
		Sizes:         []SizePayload{{Size: "42", Enable: boolPtr(true)}},
		Price:         99.99,
		OriginalPrice: 129.99,
		Categories:    []string{"66f1a2b3c4d5e6f7a8b9c0d1"},
	}
	assert.NoError(t, Check(valid))

	// enable must be present, false included.
	disabled := valid
	disabled.Sizes = []SizePayload{{Size: "42", Enable: boolPtr(false)}}
	assert.NoError(t, Check(disabled))

	noSizes := valid
	noSizes.Sizes = nil
	assert.Error(t, Check(noSizes))

	badCategory := valid
	badCategory.Categories = []string{"nope"}
	assert.Error(t, Check(badCategory))

	noCategories := valid
	noCategories.Categories = []string{}
	assert.Error(t, Check(noCategories))
}

func TestUpdateMePayloadEmpty(t *testing.T) {
	assert.True(t, UpdateMePayload{}.Empty())

	name := "John"
	assert.False(t, UpdateMePayload{FirstName: &name}.Empty())
}
