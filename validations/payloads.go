package validations

// RegisterPayload is the signUp request body.
type RegisterPayload struct {
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// LoginPayload is the signIn request body.
type LoginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateMePayload carries the sparse profile fields. Nil means "leave
// unchanged"; all nil is a bad request.
type UpdateMePayload struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Avatar    *string `json:"avatar"`
}

// Empty reports whether no field is present.
func (p UpdateMePayload) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Avatar == nil
}

// EmailPayload is the forgotPassword request body.
type EmailPayload struct {
	Email string `json:"email" validate:"required,email"`
}

// OTPPayload is the verifyOtp request body.
type OTPPayload struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

// ResetPasswordPayload is the resetPassword request body. The reset
// token is the single-use credential minted by verifyOtp.
type ResetPasswordPayload struct {
	Email              string `json:"email" validate:"required,email"`
	ResetToken         string `json:"resetToken" validate:"required"`
	NewPassword        string `json:"newPassword" validate:"required"`
	ConfirmNewPassword string `json:"confirmNewPassword" validate:"required,eqfield=NewPassword"`
}

// CartItemPayload is the addToCart request body.
type CartItemPayload struct {
	ID        string  `json:"_id" validate:"required,objectid"`
	Name      string  `json:"name" validate:"required"`
	Size      string  `json:"size" validate:"required"`
	Image     string  `json:"image" validate:"required"`
	Price     float64 `json:"price" validate:"required"`
	BuyAmount int     `json:"buyAmount" validate:"required,gt=0"`
}

// SizePayload is one size variant in a product payload.
type SizePayload struct {
	Size   string `json:"size" validate:"required"`
	Enable *bool  `json:"enable" validate:"required"`
}

// ProductPayload is the create/update product body (the image file
// travels separately as multipart content).
type ProductPayload struct {
	Name          string        `json:"name" validate:"required"`
	SubTitle      string        `json:"subTitle" validate:"required"`
	Description   string        `json:"description" validate:"required"`
	Sizes         []SizePayload `json:"sizes" validate:"required,min=1,dive"`
	Price         float64       `json:"price"`
	OriginalPrice float64       `json:"originalPrice" validate:"required"`
	Categories    []string      `json:"categories" validate:"required,min=1,dive,objectid"`
}

// AddressPayload is the shipping address create/update body.
type AddressPayload struct {
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
}

// CategoryPayload is the category create/update body.
type CategoryPayload struct {
	Name string `json:"name" validate:"required"`
}
