package models

// User — единственная персистентная сущность сервиса.
// OTP-поля живут парами: код + срок (epoch millis); пара ставится и
// сбрасывается только целиком.
type User struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	PasswordHash      string `json:"-"` // не отдаём наружу
	IsAccountVerified bool   `json:"isAccountVerified"`

	VerifyOTP         string `json:"-"`
	VerifyOTPExpireAt int64  `json:"-"` // epoch ms, 0 = нет активного кода
	ResetOTP          string `json:"-"`
	ResetOTPExpireAt  int64  `json:"-"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type VerifyEmailRequest struct {
	OTP string `json:"otp"`
}

type SendResetOTPRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// UserData — публичная проекция пользователя для /api/user/data.
type UserData struct {
	Name              string `json:"name"`
	IsAccountVerified bool   `json:"isAccountVerified"`
}
