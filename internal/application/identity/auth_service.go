package identity

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/mindsacademy/backend/internal/domain/identity"
	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/mindsacademy/backend/internal/infrastructure/auth"
	"github.com/mindsacademy/backend/internal/infrastructure/email"
	"go.uber.org/zap"
)

// resetTokenTTL bounds how long a password reset link stays valid.
const resetTokenTTL = 30 * time.Minute

// AuthService handles registration, authentication and password flows
type AuthService struct {
	userRepo       identity.UserRepository
	roleRepo       identity.RoleRepository
	jwtService     *auth.JWTService
	blacklist      auth.TokenBlacklist
	eventPublisher shared.EventPublisher
	emailSender    email.Sender
	resetBaseURL   string
	logger         *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	roleRepo identity.RoleRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *AuthService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetEmailSender sets the sender used for password reset mail.
// resetBaseURL is the frontend page the token link points at.
func (s *AuthService) SetEmailSender(sender email.Sender, resetBaseURL string) {
	s.emailSender = sender
	s.resetBaseURL = resetBaseURL
}

// Register creates a new account with the student role
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	user, err := identity.NewUser(req.FullName, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	studentRole, err := s.roleRepo.FindByName(ctx, identity.RoleStudent)
	if err != nil {
		s.logger.Error("Default role is missing", zap.Error(err))
		return nil, shared.NewDomainError("ROLE_NOT_FOUND", "Default role is not configured")
	}
	if err := user.AssignRole(studentRole.ID); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, user)

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	response := ToUserResponse(user, []string{identity.RoleStudent})
	return &response, nil
}

// Login authenticates a user with email and password
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Warn("Login for unknown email", zap.String("email", req.Email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.CanLogin() {
		s.logger.Warn("Login for deactivated account", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	roles, err := s.roleRepo.FindNamesByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Roles:  roles,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("TOKEN_ERROR", "Failed to generate authentication tokens")
	}

	user.RecordLoginSuccess()
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Login still succeeds, the timestamp is best effort
		s.logger.Error("Failed to record login time", zap.Error(err))
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))

	return &LoginResponse{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  ToUserResponse(user, roles),
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*LoginResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		switch err {
		case auth.ErrExpiredToken:
			return nil, shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
		default:
			return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
		}
	}

	if blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID); err == nil && blacklisted {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Refresh token has been revoked")
	}
	if invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime()); err == nil && invalidated {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Refresh token has been revoked")
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "User no longer exists")
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account is no longer active")
	}

	// Roles are re-resolved so revoked roles drop out on refresh
	roles, err := s.roleRepo.FindNamesByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(req.RefreshToken, user.Email, roles)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_ERROR", "Failed to refresh authentication tokens")
	}

	return &LoginResponse{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  ToUserResponse(user, roles),
	}, nil
}

// Logout revokes the presented access token until it expires on its own
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return shared.NewDomainError("TOKEN_ERROR", "Failed to revoke token")
	}
	s.logger.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

// ChangePassword changes the password of a logged-in user and
// invalidates every token issued before the change.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := user.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	s.publishEvents(ctx, user)

	if err := s.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), s.jwtService.GetRefreshTokenExpiration()); err != nil {
		s.logger.Error("Failed to invalidate user tokens", zap.Error(err))
	}

	s.logger.Info("Password changed", zap.String("user_id", userID.String()))
	return nil
}

// ForgotPassword starts a password reset. The response is identical
// whether or not the email exists, so accounts cannot be enumerated.
func (s *AuthService) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Info("Password reset for unknown email", zap.String("email", req.Email))
		return nil
	}

	token, err := newResetToken()
	if err != nil {
		return err
	}

	if err := user.BeginPasswordReset(token, resetTokenTTL); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	s.publishEvents(ctx, user)

	s.sendResetEmail(ctx, user, token)
	return nil
}

// ResetPassword completes a password reset with the emailed token
func (s *AuthService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return shared.NewDomainError("INVALID_RESET_TOKEN", "Password reset token does not match")
	}

	if err := user.CompletePasswordReset(req.Token, req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	s.publishEvents(ctx, user)

	if err := s.blacklist.AddUserTokensToBlacklist(ctx, user.ID.String(), s.jwtService.GetRefreshTokenExpiration()); err != nil {
		s.logger.Error("Failed to invalidate user tokens", zap.Error(err))
	}

	s.logger.Info("Password reset completed", zap.String("user_id", user.ID.String()))
	return nil
}

// GetCurrentUser returns the authenticated user's profile
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	roles, err := s.roleRepo.FindNamesByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user, roles)
	return &response, nil
}

func (s *AuthService) sendResetEmail(ctx context.Context, user *identity.User, token string) {
	if s.emailSender == nil {
		s.logger.Warn("No email sender configured, reset token not delivered",
			zap.String("user_id", user.ID.String()))
		return
	}
	link := s.resetBaseURL + "?token=" + token
	msg := email.Message{
		ToName:    user.FullName,
		ToAddress: user.Email,
		Subject:   "Redefinição de senha - Minds Academy",
		TextBody: "Olá, " + user.FullName + "!\n\n" +
			"Recebemos um pedido para redefinir a sua senha. " +
			"Use o link abaixo dentro de 30 minutos:\n\n" + link + "\n\n" +
			"Se você não pediu a redefinição, ignore este email.",
	}
	if err := s.emailSender.Send(ctx, msg); err != nil {
		// The token stays valid, the user can retry the flow
		s.logger.Error("Failed to send reset email", zap.Error(err))
	}
}

func (s *AuthService) publishEvents(ctx context.Context, user *identity.User) {
	if s.eventPublisher == nil {
		return
	}
	events := user.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// Errors are logged by the event bus, not propagated
	_ = s.eventPublisher.Publish(ctx, events...)
	user.ClearDomainEvents()
}

func newResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
