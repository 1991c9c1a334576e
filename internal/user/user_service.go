package user

import (
	"context"
	"errors"

	"hris-account/internal/shared/contextutil"
	"hris-account/internal/shared/password"
	usererrors "hris-account/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (UserResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	l := contextutil.GetLogger(ctx, s.logger)

	id, err := uuid.Parse(userID)
	if err != nil {
		return usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, usererrors.ErrUserNotFound) {
			return usererrors.ErrWrongPassword
		}
		l.Error("change password find user failed", zap.Error(err))
		return err
	}

	if !password.Matches(u.Password, currentPassword) {
		return usererrors.ErrWrongPassword
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		if !errors.Is(err, password.ErrTooLong) {
			l.Error("failed to hash new password", zap.Error(err))
		}
		return err
	}

	if err := s.repo.UpdatePassword(ctx, u.ID, hashed); err != nil {
		l.Error("change password persist failed", zap.Error(err))
		return err
	}

	l.Info("password changed", zap.String("user_id", u.ID.String()))
	return nil
}

func (s *service) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	id, err := uuid.Parse(userID)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	existing, err := s.repo.FindByEmail(ctx, req.Email)
	switch {
	case err == nil && existing.ID != id:
		return UserResponse{}, usererrors.ErrEmailAlreadyExists
	case err != nil && !errors.Is(err, usererrors.ErrUserNotFound):
		l.Error("update profile email lookup failed", zap.Error(err))
		return UserResponse{}, err
	}

	updated, err := s.repo.UpdateProfile(ctx, id, req.Name, req.Email)
	if err != nil {
		if !errors.Is(err, usererrors.ErrEmailAlreadyExists) && !errors.Is(err, usererrors.ErrUserNotFound) {
			l.Error("update profile persist failed", zap.Error(err))
		}
		return UserResponse{}, err
	}

	l.Info("profile updated", zap.String("user_id", updated.ID.String()))
	return ToResponse(*updated), nil
}
