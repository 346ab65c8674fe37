package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"time"
	"todo_api/internal/common"
	"todo_api/internal/common/security"
	"todo_api/internal/domain/model"
	"todo_api/internal/domain/repository"

	"github.com/google/uuid"
)

// AuthService drives the signup -> pending-verification -> verified state
// machine, plus the password-reset sub-flow and token refresh.
type AuthService struct {
	userRepo repository.UserRepository
	mailer   Mailer
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, mailer Mailer) *AuthService {
	return &AuthService{userRepo: userRepo, mailer: mailer, now: time.Now}
}

var emailRegex = regexp.MustCompile(`^[^\s@<>()\[\],;:"]+(\.[^\s@<>()\[\],;:"]+)*@([a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}$`)

func validateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// 6-20 characters with at least one digit, one lowercase and one uppercase
// letter. RE2 has no lookahead, so the classes are checked by hand.
func validatePassword(password string) bool {
	if len(password) < 6 || len(password) > 20 {
		return false
	}
	var hasDigit, hasLower, hasUpper bool
	for _, c := range password {
		switch {
		case c >= '0' && c <= '9':
			hasDigit = true
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		}
	}
	return hasDigit && hasLower && hasUpper
}

// NeedsVerificationError distinguishes a correct password on an unverified
// account; the client routes to the verify screen using the email.
type NeedsVerificationError struct {
	Email string
}

func (e *NeedsVerificationError) Error() string {
	return "Please verify your email before signing in"
}

type SignupRequest struct {
	PersonalID      string `json:"personal_id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Address         string `json:"address"`
	PhoneNumber     string `json:"phone_number"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SigninResult struct {
	User         model.PublicUser
	AccessToken  string
	RefreshToken string
}

type RefreshResult struct {
	User        *model.User
	AccessToken string
}

// Signup validates in a fixed order; the first failing check wins.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*model.User, error) {
	if req.PersonalID == "" || req.Name == "" || req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		return nil, common.NewAPIError(common.ErrValidation, "Please fill in all fields")
	}
	if len(req.Name) < 3 {
		return nil, common.NewAPIError(common.ErrValidation, "Your name must be at least 3 letters long")
	}
	if req.Password != req.ConfirmPassword {
		return nil, common.NewAPIError(common.ErrValidation, "Password did not match")
	}
	if !validateEmail(req.Email) {
		return nil, common.NewAPIError(common.ErrValidation, "Invalid email format")
	}
	if !validatePassword(req.Password) {
		return nil, common.NewAPIError(common.ErrValidation,
			"Password must be 6-20 characters long and contain at least one number, one lowercase letter, and one uppercase letter")
	}

	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, common.NewAPIError(common.ErrConflict, "This email is already registered")
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		PersonalID:     req.PersonalID,
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		Role:           model.RoleUser, // Default role
		Address:        req.Address,
		PhoneNumber:    req.PhoneNumber,
		UserImage:      model.DefaultUserImage,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique constraint is the backstop for the check-then-create race.
		if errors.Is(err, common.ErrConflict) {
			return nil, common.NewAPIError(common.ErrConflict, "This email is already registered")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Registration succeeds even if the verification email bounces.
	code, err := s.issueVerificationCode(ctx, user.ID)
	if err != nil {
		log.Printf("Failed to set verification code for %s: %v", user.Email, err)
		return user, nil
	}
	if err := s.mailer.Send(ctx, user.Email, "Verify your Email", verificationEmailBody(code)); err != nil {
		log.Printf("Verification email could not be sent to %s: %v", user.Email, err)
	}

	return user, nil
}

// Signin answers with the same message whether the email is unknown or the
// password is wrong, so accounts cannot be enumerated.
func (s *AuthService) Signin(ctx context.Context, req SigninRequest) (*SigninResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, common.NewAPIError(common.ErrValidation, "Please fill in all fields")
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewAPIError(common.ErrBadRequest, "Invalid Credentials")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.NewAPIError(common.ErrBadRequest, "Invalid Credentials")
	}

	if !user.Verified {
		return nil, &NeedsVerificationError{Email: user.Email}
	}

	accessToken, err := security.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := security.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &SigninResult{
		User:         user.Public(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) error {
	if email == "" || code == "" {
		return common.NewAPIError(common.ErrValidation, "Email and verification code are required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NewAPIError(common.ErrNotFound, "User not found")
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if user.Verified {
		return common.NewAPIError(common.ErrBadRequest, "Email is already verified")
	}

	if !s.codeUsable(user, code) {
		return common.NewAPIError(common.ErrBadRequest, "Invalid or expired verification code")
	}

	if err := s.userRepo.MarkVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}
	return nil
}

// ResendVerification reports mail failure to the caller: unlike signup, the
// user is actively waiting for this code.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	if email == "" {
		return common.NewAPIError(common.ErrValidation, "Email is required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NewAPIError(common.ErrNotFound, "User not found")
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if user.Verified {
		return common.NewAPIError(common.ErrBadRequest, "Email is already verified")
	}

	code, err := s.issueVerificationCode(ctx, user.ID)
	if err != nil {
		return common.NewAPIError(common.ErrEmailDelivery, "Failed to generate verification code")
	}

	if err := s.mailer.Send(ctx, user.Email, "Verify your Email", verificationEmailBody(code)); err != nil {
		log.Printf("Verification email could not be sent to %s: %v", user.Email, err)
		return common.NewAPIError(common.ErrEmailDelivery, "Failed to send verification email")
	}
	return nil
}

// ForgotPassword reuses the verification code fields for the reset code and
// does not require a verified account.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return common.NewAPIError(common.ErrValidation, "Email is required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NewAPIError(common.ErrNotFound, "User not found")
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	code, err := s.issueVerificationCode(ctx, user.ID)
	if err != nil {
		return common.NewAPIError(common.ErrEmailDelivery, "Failed to generate verification code")
	}

	if err := s.mailer.Send(ctx, user.Email, "Password Reset Request", passwordResetEmailBody(code)); err != nil {
		log.Printf("Password reset email could not be sent to %s: %v", user.Email, err)
		return common.NewAPIError(common.ErrEmailDelivery, "Failed to send password reset email")
	}
	return nil
}

type ResetPasswordRequest struct {
	Email           string `json:"email"`
	Code            string `json:"code"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (s *AuthService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if req.Email == "" || req.Code == "" || req.NewPassword == "" || req.ConfirmPassword == "" {
		return common.NewAPIError(common.ErrValidation, "All fields are required")
	}
	if req.NewPassword != req.ConfirmPassword {
		return common.NewAPIError(common.ErrValidation, "Passwords do not match")
	}
	if !validatePassword(req.NewPassword) {
		return common.NewAPIError(common.ErrValidation,
			"Password should be 6 to 20 characters long with a numeric, 1 lowercase and 1 uppercase letters")
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NewAPIError(common.ErrNotFound, "User not found")
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if !s.codeUsable(user, req.Code) {
		return common.NewAPIError(common.ErrBadRequest, "Invalid or expired reset code")
	}

	hashedPassword, err := security.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// UpdatePassword clears the code+expiry pair with the new hash.
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// Refresh mints a new access token stamped with the role currently stored
// for the user, not the role at original login.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	if refreshToken == "" {
		return nil, common.NewAPIError(common.ErrBadRequest, "Please login now!")
	}

	userID, err := security.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, common.NewAPIError(common.ErrBadRequest, "Please login now!")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewAPIError(common.ErrNotFound, "User does not exist.")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	accessToken, err := security.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	user.HashedPassword = ""
	return &RefreshResult{User: user, AccessToken: accessToken}, nil
}

// issueVerificationCode stores a fresh code+expiry pair, overwriting any
// prior one, and returns the code.
func (s *AuthService) issueVerificationCode(ctx context.Context, userID string) (string, error) {
	code, err := security.GenerateVerificationCode()
	if err != nil {
		return "", err
	}
	expires := security.CodeExpiry(s.now())
	if err := s.userRepo.SetVerificationCode(ctx, userID, code, expires); err != nil {
		return "", err
	}
	return code, nil
}

// codeUsable requires an exact string match and now strictly before expiry;
// the exact boundary instant is already expired.
func (s *AuthService) codeUsable(user *model.User, code string) bool {
	if user.VerificationCode == nil || user.VerificationExpires == nil {
		return false
	}
	if *user.VerificationCode != code {
		return false
	}
	return s.now().Before(*user.VerificationExpires)
}
