package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authgate/internal/models"
)

// fakeUserRepo — хранилище в памяти с семантикой настоящего репозитория:
// nil, nil если записи нет, Save перезаписывает строку целиком.
type fakeUserRepo struct {
	byID   map[string]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	for _, u := range r.byID {
		if u.Email == user.Email {
			return errors.New("duplicate email")
		}
	}
	r.nextID++
	user.ID = fmt.Sprintf("u-%d", r.nextID)
	cp := *user
	r.byID[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	u, found := r.byID[id]
	if !found {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Save(user *models.User) error {
	if _, found := r.byID[user.ID]; !found {
		return errors.New("no such user")
	}
	cp := *user
	r.byID[user.ID] = &cp
	return nil
}

type sentMail struct {
	kind  string // "welcome" | "verify" | "reset"
	email string
	otp   string
}

type fakeEmailService struct {
	sent    []sentMail
	failAll bool
}

func (f *fakeEmailService) record(kind, email, otp string) error {
	if f.failAll {
		return errors.New("smtp unreachable")
	}
	f.sent = append(f.sent, sentMail{kind: kind, email: email, otp: otp})
	return nil
}

func (f *fakeEmailService) SendWelcomeEmail(email string) error {
	return f.record("welcome", email, "")
}

func (f *fakeEmailService) SendVerifyOTPEmail(email, otp string) error {
	return f.record("verify", email, otp)
}

func (f *fakeEmailService) SendPasswordResetEmail(email, otp string) error {
	return f.record("reset", email, otp)
}

func newTestAccountService(t *testing.T) (AccountService, *fakeUserRepo, *fakeEmailService) {
	t.Helper()
	repo := newFakeUserRepo()
	emails := &fakeEmailService{}
	auth := NewAuthService("test-secret", time.Hour)
	svc := NewAccountService(repo, emails, auth, NewOTPService(), 24*time.Hour, 15*time.Minute)
	return svc, repo, emails
}

func register(t *testing.T, svc AccountService, email string) string {
	t.Helper()
	token, res := svc.Register("A", email, "pw123456")
	require.True(t, res.Success, "register failed: %s", res.Message)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterThenLogin(t *testing.T) {
	t.Parallel()
	svc, _, emails := newTestAccountService(t)

	register(t, svc, "a@x.com")
	require.Len(t, emails.sent, 1)
	assert.Equal(t, "welcome", emails.sent[0].kind)
	assert.Equal(t, "a@x.com", emails.sent[0].email)

	token, res := svc.Login("a@x.com", "pw123456")
	assert.True(t, res.Success)
	assert.NotEmpty(t, token)
}

func TestRegister_MissingFields(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestAccountService(t)

	for _, args := range [][3]string{
		{"", "a@x.com", "pw123456"},
		{"A", "", "pw123456"},
		{"A", "a@x.com", ""},
	} {
		token, res := svc.Register(args[0], args[1], args[2])
		assert.False(t, res.Success)
		assert.Equal(t, "Missing Details", res.Message)
		assert.Empty(t, token)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestAccountService(t)

	register(t, svc, "a@x.com")
	token, res := svc.Register("B", "a@x.com", "other")
	assert.False(t, res.Success)
	assert.Equal(t, "User already exist", res.Message)
	assert.Empty(t, token)
}

// Создание и письмо не транзакционны: при падении SMTP операция
// отчитывается неуспехом, но пользователь уже создан и токен выпущен.
func TestRegister_MailFailureStillCreatesUser(t *testing.T) {
	t.Parallel()
	svc, repo, emails := newTestAccountService(t)
	emails.failAll = true

	token, res := svc.Register("A", "a@x.com", "pw123456")
	assert.False(t, res.Success)
	assert.NotEmpty(t, token, "session token is still issued")

	u, err := repo.GetByEmail("a@x.com")
	require.NoError(t, err)
	require.NotNil(t, u, "user exists despite reported failure")

	emails.failAll = false
	_, loginRes := svc.Login("a@x.com", "pw123456")
	assert.True(t, loginRes.Success)
}

func TestLogin_Failures(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestAccountService(t)
	register(t, svc, "a@x.com")

	_, res := svc.Login("a@x.com", "wrong")
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid Password", res.Message)

	_, res = svc.Login("nobody@x.com", "pw123456")
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid Email", res.Message)

	_, res = svc.Login("", "pw123456")
	assert.False(t, res.Success)
	assert.Equal(t, "Email and Password are required", res.Message)
}

func TestLogin_EmailLowercased(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestAccountService(t)
	register(t, svc, "a@x.com")

	token, res := svc.Login("A@X.COM", "pw123456")
	assert.True(t, res.Success)
	assert.NotEmpty(t, token)
}

func TestSendVerifyOTP(t *testing.T) {
	t.Parallel()
	svc, repo, emails := newTestAccountService(t)
	register(t, svc, "a@x.com")
	u, _ := repo.GetByEmail("a@x.com")

	res := svc.SendVerifyOTP("missing-id")
	assert.False(t, res.Success)
	assert.Equal(t, "User not found", res.Message)

	res = svc.SendVerifyOTP(u.ID)
	require.True(t, res.Success)
	assert.Equal(t, "Verification OTP sent to email", res.Message)

	stored, _ := repo.GetByID(u.ID)
	assert.Len(t, stored.VerifyOTP, 6)
	assert.Greater(t, stored.VerifyOTPExpireAt, time.Now().UnixMilli())
	// код в письме совпадает с сохранённым
	last := emails.sent[len(emails.sent)-1]
	assert.Equal(t, "verify", last.kind)
	assert.Equal(t, stored.VerifyOTP, last.otp)
}

func TestSendVerifyOTP_AlreadyVerified(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestAccountService(t)
	register(t, svc, "a@x.com")
	u, _ := repo.GetByEmail("a@x.com")
	u.IsAccountVerified = true
	require.NoError(t, repo.Save(u))

	res := svc.SendVerifyOTP(u.ID)
	assert.False(t, res.Success)
	assert.Equal(t, "Account already verified", res.Message)
}

func TestVerifyEmail_RoundTrip(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestAccountService(t)
	register(t, svc, "a@x.com")
	u, _ := repo.GetByEmail("a@x.com")

	require.True(t, svc.SendVerifyOTP(u.ID).Success)
	stored, _ := repo.GetByID(u.ID)
	otp := stored.VerifyOTP

	res := svc.VerifyEmail(u.ID, otp)
	require.True(t, res.Success)
	assert.Equal(t, "Email Verified successfully", res.Message)

	after, _ := repo.GetByID(u.ID)
	assert.True(t, after.IsAccountVerified)
	assert.Empty(t, after.VerifyOTP)
	assert.Zero(t, after.VerifyOTPExpireAt)

	// одноразовость: тот же код второй раз уже недействителен
	res = svc.VerifyEmail(u.ID, otp)
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid OTP", res.Message)
}

func TestVerifyEmail_Failures(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestAccountService(t)
	register(t, svc, "a@x.com")
	u, _ := repo.GetByEmail("a@x.com")

	res := svc.VerifyEmail("", "123456")
	assert.Equal(t, "Missing Details", res.Message)

	res = svc.VerifyEmail(u.ID, "")
	assert.Equal(t, "Missing Details", res.Message)

	res = svc.VerifyEmail("missing-id", "123456")
	assert.Equal(t, "User not found", res.Message)

	res = svc.VerifyEmail(u.ID, "123456")
	assert.Equal(t, "Invalid OTP", res.Message)

	// совпадающий, но протухший код
	u.VerifyOTP = "123456"
	u.VerifyOTPExpireAt = time.Now().Add(-time.Minute).UnixMilli()
	require.NoError(t, repo.Save(u))
	res = svc.VerifyEmail(u.ID, "123456")
	assert.False(t, res.Success)
	assert.Equal(t, "OTP Expired", res.Message)

	stored, _ := repo.GetByID(u.ID)
	assert.False(t, stored.IsAccountVerified)
}

func TestSendResetOTP(t *testing.T) {
	t.Parallel()
	svc, repo, emails := newTestAccountService(t)
	register(t, svc, "a@x.com")

	res := svc.SendResetOTP("")
	assert.Equal(t, "Email is Required", res.Message)

	res = svc.SendResetOTP("nobody@x.com")
	assert.Equal(t, "User not found", res.Message)

	res = svc.SendResetOTP("a@x.com")
	require.True(t, res.Success)
	assert.Equal(t, "OTP sent to your email", res.Message)

	u, _ := repo.GetByEmail("a@x.com")
	assert.Len(t, u.ResetOTP, 6)
	assert.Greater(t, u.ResetOTPExpireAt, time.Now().UnixMilli())
	last := emails.sent[len(emails.sent)-1]
	assert.Equal(t, "reset", last.kind)
	assert.Equal(t, u.ResetOTP, last.otp)
}

func TestResetPassword_RoundTrip(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestAccountService(t)
	register(t, svc, "a@x.com")
	require.True(t, svc.SendResetOTP("a@x.com").Success)

	u, _ := repo.GetByEmail("a@x.com")
	otp := u.ResetOTP

	res := svc.ResetPassword("a@x.com", otp, "newpass99")
	require.True(t, res.Success)
	assert.Equal(t, "Password has been reset successfully", res.Message)

	// старый пароль больше не подходит, новый работает
	_, loginRes := svc.Login("a@x.com", "pw123456")
	assert.Equal(t, "Invalid Password", loginRes.Message)
	_, loginRes = svc.Login("a@x.com", "newpass99")
	assert.True(t, loginRes.Success)

	// пара сброшена, повторное использование кода невозможно
	after, _ := repo.GetByEmail("a@x.com")
	assert.Empty(t, after.ResetOTP)
	assert.Zero(t, after.ResetOTPExpireAt)
	res = svc.ResetPassword("a@x.com", otp, "another")
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid Otp", res.Message)
}

func TestResetPassword_Failures(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestAccountService(t)
	register(t, svc, "a@x.com")

	res := svc.ResetPassword("", "123456", "x")
	assert.Equal(t, "Email, Otp and new Password are required", res.Message)

	res = svc.ResetPassword("nobody@x.com", "123456", "x")
	assert.Equal(t, "User not found", res.Message)

	res = svc.ResetPassword("a@x.com", "123456", "x")
	assert.Equal(t, "Invalid Otp", res.Message)

	u, _ := repo.GetByEmail("a@x.com")
	u.ResetOTP = "123456"
	u.ResetOTPExpireAt = time.Now().Add(-time.Minute).UnixMilli()
	require.NoError(t, repo.Save(u))
	res = svc.ResetPassword("a@x.com", "123456", "x")
	assert.Equal(t, "OTP Expired", res.Message)

	// протухший код пароль не меняет
	_, loginRes := svc.Login("a@x.com", "pw123456")
	assert.True(t, loginRes.Success)
}

func TestGetUserData(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestAccountService(t)
	register(t, svc, "a@x.com")
	u, _ := repo.GetByEmail("a@x.com")

	data, res := svc.GetUserData(u.ID)
	require.True(t, res.Success)
	assert.Equal(t, "A", data.Name)
	assert.False(t, data.IsAccountVerified)

	_, res = svc.GetUserData("missing-id")
	assert.False(t, res.Success)
	assert.Equal(t, "User not found", res.Message)
}
