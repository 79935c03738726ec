package services

import (
	"errors"
	"time"

	"authgate/internal/utils"
)

var (
	ErrOTPInvalid = errors.New("invalid otp")
	ErrOTPExpired = errors.New("otp expired")
)

// OTPService — выпуск и проверка одноразовых кодов. Сам код и срок
// хранятся на записи пользователя; после успешной проверки вызывающий
// обязан сбросить пару (код='', срок=0) и сохранить ДО ответа успехом —
// это и есть одноразовость.
type OTPService interface {
	Issue(ttl time.Duration) (otp string, expireAt int64, err error)
	Validate(storedOTP string, storedExpireAt int64, submitted string) error
}

type otpService struct {
	now func() time.Time
}

func NewOTPService() OTPService {
	return &otpService{now: time.Now}
}

func (s *otpService) Issue(ttl time.Duration) (string, int64, error) {
	otp, err := utils.GenerateOTP()
	if err != nil {
		return "", 0, err
	}
	return otp, s.now().Add(ttl).UnixMilli(), nil
}

// Validate — сначала совпадение (точное, без нормализации), потом срок.
func (s *otpService) Validate(storedOTP string, storedExpireAt int64, submitted string) error {
	if storedOTP == "" || storedOTP != submitted {
		return ErrOTPInvalid
	}
	if storedExpireAt < s.now().UnixMilli() {
		return ErrOTPExpired
	}
	return nil
}
