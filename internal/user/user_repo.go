package user

import (
	"context"
	"time"

	usererrors "hris-account/internal/user/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	LinkEmployee(ctx context.Context, userID, employeeID uuid.UUID) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateProfile(ctx context.Context, id uuid.UUID, name, email string) (*User, error)
	SetResetToken(ctx context.Context, id uuid.UUID, digest string, expiresAt time.Time) error
	ConsumeResetToken(ctx context.Context, digest, passwordHash string, now time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return mapRepositoryError(r.db.WithContext(ctx).Create(u).Error)
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, mapRepositoryError(err)
	}
	return &u, nil
}

// FindByEmail is an exact, case-sensitive match.
func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		return nil, mapRepositoryError(err)
	}
	return &u, nil
}

func (r *repository) LinkEmployee(ctx context.Context, userID, employeeID uuid.UUID) error {
	return r.updateByID(ctx, userID, map[string]any{"employee_id": employeeID})
}

func (r *repository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.updateByID(ctx, id, map[string]any{"password": passwordHash})
}

func (r *repository) UpdateProfile(ctx context.Context, id uuid.UUID, name, email string) (*User, error) {
	if err := r.updateByID(ctx, id, map[string]any{"name": name, "email": email}); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// SetResetToken overwrites any previous reset state, so only the latest issued
// token can ever match.
func (r *repository) SetResetToken(ctx context.Context, id uuid.UUID, digest string, expiresAt time.Time) error {
	return r.updateByID(ctx, id, map[string]any{
		"reset_hash":       digest,
		"reset_expires_at": expiresAt,
	})
}

// ConsumeResetToken sets the new password and clears the reset state in one
// conditional UPDATE. It reports false when no unexpired token matches digest.
func (r *repository) ConsumeResetToken(ctx context.Context, digest, passwordHash string, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("reset_hash = ? AND reset_expires_at > ?", digest, now).
		Updates(map[string]any{
			"password":         passwordHash,
			"reset_hash":       nil,
			"reset_expires_at": nil,
		})
	if res.Error != nil {
		return false, mapRepositoryError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) updateByID(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return mapRepositoryError(res.Error)
	}
	if res.RowsAffected == 0 {
		return usererrors.ErrUserNotFound
	}
	return nil
}
