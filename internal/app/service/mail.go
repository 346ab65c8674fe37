package service

import (
	"context"
	"fmt"
)

// Mailer is the outbound email capability. Implementations report delivery
// failure via the returned error; callers decide whether to surface it.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

func verificationEmailBody(code string) string {
	return fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #eee; border-radius: 5px;">
          <h2 style="color: #333;">Todo App Email Verification</h2>
          <p>Thank you for registering with our Todo App. Please verify your email address to complete the registration process.</p>
          <div style="background-color: #f4f4f4; padding: 10px; border-radius: 5px; margin: 20px 0; text-align: center;">
            <h3 style="margin: 0;">Your verification code is:</h3>
            <h2 style="margin: 10px 0; color: #4285f4; letter-spacing: 5px;">%s</h2>
            <p style="margin: 0; font-size: 12px;">This code will expire in 10 minutes</p>
          </div>
          <p>If you did not request this verification, please ignore this email.</p>
          <p>Best regards,<br>Todo App Team</p>
        </div>`, code)
}

func passwordResetEmailBody(code string) string {
	return fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #eee; border-radius: 5px;">
          <h2 style="color: #333;">Todo App Password Reset</h2>
          <p>We received a request to reset your password. Please use the code below to reset your password:</p>
          <div style="background-color: #f4f4f4; padding: 10px; border-radius: 5px; margin: 20px 0; text-align: center;">
            <h3 style="margin: 0;">Your reset code is:</h3>
            <h2 style="margin: 10px 0; color: #4285f4; letter-spacing: 5px;">%s</h2>
            <p style="margin: 0; font-size: 12px;">This code will expire in 10 minutes</p>
          </div>
          <p>If you did not request a password reset, please ignore this email and your password will remain unchanged.</p>
          <p>Best regards,<br>Todo App Team</p>
        </div>`, code)
}
