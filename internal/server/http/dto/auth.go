package dto

// RegisterRequest describes the signup payload.
type RegisterRequest struct {
	Login     string `json:"login"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	CollegeID string `json:"college_id"`
}

// LoginRequest describes login/password payload.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// OTPRequest asks for a verification code.
type OTPRequest struct {
	Email string `json:"email"`
}

// OTPVerifyRequest submits a received code.
type OTPVerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID            int64  `json:"id"`
	Login         string `json:"login"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Role          string `json:"role"`
	FullName      string `json:"full_name,omitempty"`
}
