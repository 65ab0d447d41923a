// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"gatekeeper/config"
	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultActivityPageSize = 20

// emailValidator checks the syntactic email grammar during registration.
var emailValidator = validator.New()

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo         repository.UserRepository
	activityRepo     repository.ActivityRepository
	txManager        repository.TransactionManager
	hasher           service.PasswordHasher
	tokenService     service.TokenService
	activityPageSize int
	logger           *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	ActivityRepo repository.ActivityRepository
	TxManager    repository.TransactionManager
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	activityPageSize := defaultActivityPageSize
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.ActivityPageSize > 0 {
		activityPageSize = params.Config.Auth.ActivityPageSize
	}

	return &authService{
		userRepo:         params.UserRepo,
		activityRepo:     params.ActivityRepo,
		txManager:        params.TxManager,
		hasher:           params.Hasher,
		tokenService:     params.TokenService,
		activityPageSize: activityPageSize,
		logger:           params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// normalizeEmail case-folds the login identifier so lookups and the unique
// index agree on a single canonical form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register orchestrates the complete account registration process.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	if input.FirstName == "" || input.LastName == "" || input.Email == "" || input.Password == "" {
		return nil, errors.Wrap(domainerrors.ErrMissingFields, "registration requires first name, last name, email and password")
	}

	email := normalizeEmail(input.Email)
	if err := emailValidator.Var(email, "email"); err != nil {
		srv.log(ctx).Warn("Registration rejected, invalid email", slog.String("email", email))

		return nil, errors.Wrap(domainerrors.ErrInvalidEmail, "registration failed")
	}

	if _, err := srv.userRepo.FindByEmail(ctx, email); err == nil {
		srv.log(ctx).Warn("Registration rejected, email taken", slog.String("email", email))

		return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("registration failed")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check email uniqueness")
	}

	hashedPassword, err := srv.hasher.Hash(ctx, input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Email:        email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hashedPassword,
	}

	// The credential row and its signup audit entry commit or roll back
	// together; a failed append must not leave an orphaned credential.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Create(ctx, newUser); err != nil {
			// The unique index catches the race where two registrations for
			// the same email pass the lookup above concurrently.
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return domainerrors.ErrUserAlreadyExists.WrapMessage("registration failed")
			}

			return errors.Wrap(err, "failed to create user during registration")
		}

		return srv.recordActivity(ctx, repoFactory.ActivityRepo(), newUser.ID, entity.ActivitySignup)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User registered", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{Profile: toProfile(newUser)}, nil
}

// Login orchestrates the user login process.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	if input.Email == "" || input.Password == "" {
		return nil, errors.Wrap(domainerrors.ErrMissingFields, "login requires email and password")
	}

	email := normalizeEmail(input.Email)

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed, no matching user", slog.String("email", email))

			return nil, errors.Wrap(domainerrors.ErrNoSuchUser, "login failed")
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	// Password check is CPU-bound; the hasher queues it behind its own
	// bounded budget.
	match, err := srv.hasher.Check(ctx, input.Password, user.PasswordHash)
	if err != nil {
		srv.log(ctx).Error("Stored credential unreadable", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to verify password")
	}
	if !match {
		srv.log(ctx).Warn("Login failed, password mismatch", slog.Any("userID", user.ID))

		return nil, errors.Wrap(domainerrors.ErrInvalidPassword, "login failed")
	}

	accessToken, err := srv.tokenService.CreateAccessToken(user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create access token")
	}

	refreshToken, err := srv.tokenService.CreateRefreshToken(user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create refresh token")
	}

	// The login audit entry is the only store write in this flow, so it needs
	// no surrounding transaction.
	if err := srv.recordActivity(ctx, srv.activityRepo, user.ID, entity.ActivityLogin); err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("User logged in", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		ID:           user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token.
// The refresh token itself is not rotated.
func (srv *authService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.RefreshOutput, error) {
	if input.RefreshToken == "" {
		return nil, errors.Wrap(domainerrors.ErrMissingFields, "refresh requires a refresh token")
	}

	claims, err := srv.tokenService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		srv.log(ctx).Warn("Refresh rejected", slog.Any("error", err))

		return nil, errors.Wrap(err, "invalid refresh token")
	}

	user, err := srv.userRepo.FindByEmail(ctx, normalizeEmail(claims.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNoSuchUser, "refresh failed")
		}

		return nil, errors.Wrap(err, "failed to load user for refresh")
	}

	accessToken, err := srv.tokenService.CreateAccessToken(user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create access token")
	}

	return &usecase.RefreshOutput{AccessToken: accessToken}, nil
}

// Profile returns the public view of an account.
func (srv *authService) Profile(ctx context.Context, userID uuid.UUID) (*usecase.Profile, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNoSuchUser, "profile lookup failed")
		}

		return nil, errors.Wrap(err, "failed to load profile")
	}

	return toProfile(user), nil
}

// RecentActivity returns the newest audit entries for an account.
func (srv *authService) RecentActivity(ctx context.Context, userID uuid.UUID) ([]*entity.Activity, error) {
	activities, err := srv.activityRepo.FindByUserID(ctx, userID, srv.activityPageSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list activity records")
	}

	return activities, nil
}

// recordActivity appends exactly one audit entry for a successful
// authentication event. A failed append fails the whole operation so the
// audit trail never under-counts.
func (srv *authService) recordActivity(ctx context.Context, activityRepo repository.ActivityRepository, userID uuid.UUID, activityType entity.ActivityType) error {
	activity := &entity.Activity{
		UserID:       userID,
		ActivityType: activityType,
	}
	if err := activityRepo.Create(ctx, activity); err != nil {
		srv.log(ctx).Error("Failed to append activity record",
			slog.Any("userID", userID),
			slog.String("activityType", string(activityType)),
			slog.Any("error", err))

		return errors.Wrap(err, "failed to append activity record")
	}

	return nil
}

func toProfile(user *entity.User) *usecase.Profile {
	return &usecase.Profile{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
