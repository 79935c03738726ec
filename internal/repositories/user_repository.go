package repositories

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"authgate/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	// Save — полная запись изменяемых полей (update-with-save).
	Save(user *models.User) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO users (
			id, name, email, password_hash, is_account_verified,
			verify_otp, verify_otp_expire_at,
			reset_otp, reset_otp_expire_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`
	_, err := r.DB.Exec(q,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.IsAccountVerified,
		user.VerifyOTP,
		user.VerifyOTPExpireAt,
		user.ResetOTP,
		user.ResetOTPExpireAt,
	)
	if err != nil {
		return fmt.Errorf("user create: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(id string) (*models.User, error) {
	return r.getBy(`WHERE id = $1`, id)
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	return r.getBy(`WHERE email = $1`, email)
}

// getBy — nil, nil если записи нет; вызывающий сам решает, что это значит.
func (r *userRepository) getBy(where string, arg interface{}) (*models.User, error) {
	q := `
		SELECT
			id, name, email, password_hash, is_account_verified,
			COALESCE(verify_otp,''), COALESCE(verify_otp_expire_at,0),
			COALESCE(reset_otp,''), COALESCE(reset_otp_expire_at,0)
		FROM users
	` + where
	u := &models.User{}
	err := r.DB.QueryRow(q, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsAccountVerified,
		&u.VerifyOTP, &u.VerifyOTPExpireAt,
		&u.ResetOTP, &u.ResetOTPExpireAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user get: %w", err)
	}
	return u, nil
}

func (r *userRepository) Save(user *models.User) error {
	const q = `
		UPDATE users
		SET
			name=$1,
			email=$2,
			password_hash=$3,
			is_account_verified=$4,
			verify_otp=$5,
			verify_otp_expire_at=$6,
			reset_otp=$7,
			reset_otp_expire_at=$8
		WHERE id=$9
	`
	_, err := r.DB.Exec(q,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.IsAccountVerified,
		user.VerifyOTP,
		user.VerifyOTPExpireAt,
		user.ResetOTP,
		user.ResetOTPExpireAt,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("user save: %w", err)
	}
	return nil
}
