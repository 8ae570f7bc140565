package auth

type SendOTPRequest struct {
	MobileNumber string `json:"mobile_number" validate:"required,len=10,numeric"`
}

type VerifyOTPRequest struct {
	MobileNumber string `json:"mobile_number" validate:"required,len=10,numeric"`
	OTP          string `json:"otp" validate:"required,len=6,numeric"`
}

type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=255"`
	ShopName *string `json:"shop_name,omitempty" validate:"omitempty,max=255"`
}

// TokenResponse is the verify-step payload.
type TokenResponse struct {
	Token string `json:"token"`
	Owner Owner  `json:"owner"`
}
