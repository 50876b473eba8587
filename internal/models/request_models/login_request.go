package request_models

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role" binding:"required"`
}

type SignUpRequest struct {
	DisplayName string `json:"display_name" binding:"required,min=2,max=100"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Role        string `json:"role" binding:"required"`
	Phone       string `json:"phone" binding:"omitempty,max=32"`
	Address     string `json:"address" binding:"omitempty,max=255"`
}

type RequestForgotPassword struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Role        string `json:"role" binding:"required"`
	Otp         string `json:"otp" binding:"required,len=6,numeric"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// UpdateProfileRequest only touches the fields that are set.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,min=2,max=100"`
	Phone       *string `json:"phone" binding:"omitempty,max=32"`
	Address     *string `json:"address" binding:"omitempty,max=255"`
	Password    *string `json:"password" binding:"omitempty,min=6"`
}

type AdminUpdateAccountRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,min=2,max=100"`
	Phone       *string `json:"phone" binding:"omitempty,max=32"`
	Address     *string `json:"address" binding:"omitempty,max=255"`
	Role        *string `json:"role"`
}
