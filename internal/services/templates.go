package services

// Шаблоны писем; {{otp}} и {{email}} подставляются буквально.

const emailVerifyTemplate = `
<div style="font-family: Arial, sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
  <h2 style="color: #333;">Verify your email</h2>
  <p>You are just one step away from verifying your account for this email: <b>{{email}}</b>.</p>
  <p>Use the OTP below to verify your account.</p>
  <p style="font-size: 28px; letter-spacing: 8px; font-weight: bold; color: #4C83EE;">{{otp}}</p>
  <p>This OTP is valid for 24 hours.</p>
</div>
`

const passwordResetTemplate = `
<div style="font-family: Arial, sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
  <h2 style="color: #333;">Forgot your password?</h2>
  <p>We received a password reset request for your account: <b>{{email}}</b>.</p>
  <p>Use the OTP below to reset the password.</p>
  <p style="font-size: 28px; letter-spacing: 8px; font-weight: bold; color: #4C83EE;">{{otp}}</p>
  <p>The password reset OTP is only valid for a limited time.</p>
</div>
`
