package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOTPIssue(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := &otpService{now: func() time.Time { return base }}

	otp, expireAt, err := svc.Issue(24 * time.Hour)
	require.NoError(t, err)

	assert.Len(t, otp, 6)
	assert.GreaterOrEqual(t, otp, "100000")
	assert.LessOrEqual(t, otp, "999999")
	assert.Equal(t, base.Add(24*time.Hour).UnixMilli(), expireAt)
}

func TestOTPValidate(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := &otpService{now: func() time.Time { return now }}
	future := now.Add(time.Hour).UnixMilli()
	past := now.Add(-time.Second).UnixMilli()

	tests := []struct {
		name      string
		stored    string
		expireAt  int64
		submitted string
		want      error
	}{
		{"match before expiry", "123456", future, "123456", nil},
		{"empty stored code", "", future, "123456", ErrOTPInvalid},
		{"mismatch", "123456", future, "654321", ErrOTPInvalid},
		{"no normalization", "123456", future, " 123456", ErrOTPInvalid},
		{"expired even if code matches", "123456", past, "123456", ErrOTPExpired},
		// пустой stored при протухшем сроке — всё равно Invalid, совпадение проверяется первым
		{"cleared code reported invalid not expired", "", past, "123456", ErrOTPInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Validate(tt.stored, tt.expireAt, tt.submitted)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}
