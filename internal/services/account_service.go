package services

import (
	"log"
	"strings"
	"time"

	"authgate/internal/models"
	"authgate/internal/repositories"
)

// Result — мягкий результат операции: любые внутренние ошибки (БД, почта,
// подпись) превращаются в success:false с текстом, наружу ничего не летит.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func ok(message string) Result      { return Result{Success: true, Message: message} }
func failure(message string) Result { return Result{Success: false, Message: message} }

// AccountService — оркестратор: регистрация, вход, верификация почты по OTP
// и сброс пароля по OTP. Register/Login дополнительно возвращают сессионный
// токен; хендлер ставит cookie всегда, когда токен непустой, независимо от
// Success (так ведёт себя прод: cookie уже стоит, даже если welcome-письмо
// не ушло).
type AccountService interface {
	Register(name, email, password string) (token string, res Result)
	Login(email, password string) (token string, res Result)
	SendVerifyOTP(userID string) Result
	VerifyEmail(userID, otp string) Result
	SendResetOTP(email string) Result
	ResetPassword(email, otp, newPassword string) Result
	GetUserData(userID string) (*models.UserData, Result)
}

type accountService struct {
	users  repositories.UserRepository
	emails EmailService
	auth   AuthService
	otp    OTPService

	verifyOTPTTL time.Duration
	resetOTPTTL  time.Duration
}

func NewAccountService(
	users repositories.UserRepository,
	emails EmailService,
	auth AuthService,
	otp OTPService,
	verifyOTPTTL, resetOTPTTL time.Duration,
) AccountService {
	return &accountService{
		users:        users,
		emails:       emails,
		auth:         auth,
		otp:          otp,
		verifyOTPTTL: verifyOTPTTL,
		resetOTPTTL:  resetOTPTTL,
	}
}

func (s *accountService) Register(name, email, password string) (string, Result) {
	if name == "" || email == "" || password == "" {
		return "", failure("Missing Details")
	}

	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return "", failure(err.Error())
	}
	if existing != nil {
		return "", failure("User already exist")
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return "", failure(err.Error())
	}

	user := &models.User{Name: name, Email: email, PasswordHash: hash}
	if err := s.users.Create(user); err != nil {
		return "", failure(err.Error())
	}

	token, err := s.auth.GenerateToken(user.ID)
	if err != nil {
		return "", failure(err.Error())
	}

	// создание и письмо не транзакционны: пользователь уже есть,
	// а при ошибке отправки операция целиком отчитывается неуспехом
	if err := s.emails.SendWelcomeEmail(user.Email); err != nil {
		log.Printf("[account][register] welcome email to %s failed: %v", user.Email, err)
		return token, failure(err.Error())
	}

	return token, Result{Success: true}
}

func (s *accountService) Login(email, password string) (string, Result) {
	if email == "" || password == "" {
		return "", failure("Email and Password are required")
	}

	user, err := s.users.GetByEmail(strings.ToLower(email))
	if err != nil {
		return "", failure(err.Error())
	}
	if user == nil {
		return "", failure("Invalid Email")
	}

	if err := s.auth.CheckPassword(user.PasswordHash, password); err != nil {
		return "", failure("Invalid Password")
	}

	token, err := s.auth.GenerateToken(user.ID)
	if err != nil {
		return "", failure(err.Error())
	}

	return token, Result{Success: true}
}

func (s *accountService) SendVerifyOTP(userID string) Result {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return failure(err.Error())
	}
	if user == nil {
		return failure("User not found")
	}
	if user.IsAccountVerified {
		return failure("Account already verified")
	}

	otp, expireAt, err := s.otp.Issue(s.verifyOTPTTL)
	if err != nil {
		return failure(err.Error())
	}

	user.VerifyOTP = otp
	user.VerifyOTPExpireAt = expireAt
	if err := s.users.Save(user); err != nil {
		return failure(err.Error())
	}

	if err := s.emails.SendVerifyOTPEmail(user.Email, otp); err != nil {
		return failure(err.Error())
	}

	return ok("Verification OTP sent to email")
}

func (s *accountService) VerifyEmail(userID, otp string) Result {
	if userID == "" || otp == "" {
		return failure("Missing Details")
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		return failure(err.Error())
	}
	if user == nil {
		return failure("User not found")
	}

	switch s.otp.Validate(user.VerifyOTP, user.VerifyOTPExpireAt, otp) {
	case ErrOTPInvalid:
		return failure("Invalid OTP")
	case ErrOTPExpired:
		return failure("OTP Expired")
	}

	// сброс пары обязан уехать в базу до ответа успехом — одноразовость
	user.IsAccountVerified = true
	user.VerifyOTP = ""
	user.VerifyOTPExpireAt = 0
	if err := s.users.Save(user); err != nil {
		return failure(err.Error())
	}

	return ok("Email Verified successfully")
}

func (s *accountService) SendResetOTP(email string) Result {
	if email == "" {
		return failure("Email is Required")
	}

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return failure(err.Error())
	}
	if user == nil {
		return failure("User not found")
	}

	otp, expireAt, err := s.otp.Issue(s.resetOTPTTL)
	if err != nil {
		return failure(err.Error())
	}

	user.ResetOTP = otp
	user.ResetOTPExpireAt = expireAt
	if err := s.users.Save(user); err != nil {
		return failure(err.Error())
	}

	if err := s.emails.SendPasswordResetEmail(user.Email, otp); err != nil {
		return failure(err.Error())
	}

	return ok("OTP sent to your email")
}

func (s *accountService) ResetPassword(email, otp, newPassword string) Result {
	if email == "" || otp == "" || newPassword == "" {
		return failure("Email, Otp and new Password are required")
	}

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return failure(err.Error())
	}
	if user == nil {
		return failure("User not found")
	}

	switch s.otp.Validate(user.ResetOTP, user.ResetOTPExpireAt, otp) {
	case ErrOTPInvalid:
		return failure("Invalid Otp")
	case ErrOTPExpired:
		return failure("OTP Expired")
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return failure(err.Error())
	}

	user.PasswordHash = hash
	user.ResetOTP = ""
	user.ResetOTPExpireAt = 0
	if err := s.users.Save(user); err != nil {
		return failure(err.Error())
	}

	return ok("Password has been reset successfully")
}

func (s *accountService) GetUserData(userID string) (*models.UserData, Result) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, failure(err.Error())
	}
	if user == nil {
		return nil, failure("User not found")
	}
	return &models.UserData{
		Name:              user.Name,
		IsAccountVerified: user.IsAccountVerified,
	}, Result{Success: true}
}
