package auth

import (
	"context"
	"errors"
	"time"

	autherrors "hris-account/internal/auth/errors"
	"hris-account/internal/department"
	"hris-account/internal/employee"
	"hris-account/internal/messaging/kafka"
	"hris-account/internal/shared/contextutil"
	"hris-account/internal/shared/password"
	"hris-account/internal/shared/session"
	"hris-account/internal/user"
	usererrors "hris-account/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const resetTokenIssuedMessage = "Reset token generated"

type Config struct {
	ResetTokenTTL time.Duration
	// ExposeResetToken returns the raw reset secret in the HTTP body and
	// answers 404 for unknown emails. Meant for test environments only.
	ExposeResetToken bool
}

// ResetNotifier delivers a raw reset secret to the account owner out of band.
type ResetNotifier interface {
	NotifyPasswordReset(ctx context.Context, to, name, token string, expiresAt time.Time) error
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (LoginResponse, error)
	Me(ctx context.Context, userID string) (user.UserResponse, error)
	ForgotPassword(ctx context.Context, email string) (ForgotPasswordResponse, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
	CreateEmployeeAccount(ctx context.Context, req CreateEmployeeRequest, imagePath string) (CreateEmployeeResponse, error)
}

type service struct {
	db          *gorm.DB
	users       user.Repository
	employees   employee.Repository
	departments department.Repository
	outbox      kafka.OutboxRepository
	sessions    *session.Manager
	notifier    ResetNotifier
	cfg         Config
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(
	db *gorm.DB,
	users user.Repository,
	employees employee.Repository,
	departments department.Repository,
	outbox kafka.OutboxRepository,
	sessions *session.Manager,
	notifier ResetNotifier,
	cfg Config,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		db:          db,
		users:       users,
		employees:   employees,
		departments: departments,
		outbox:      outbox,
		sessions:    sessions,
		notifier:    notifier,
		cfg:         cfg,
		now:         time.Now,
		logger:      l,
	}
}

func (s *service) Login(ctx context.Context, email, plain string) (LoginResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, usererrors.ErrUserNotFound) {
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		l.Error("login find user failed", zap.Error(err))
		return LoginResponse{}, err
	}

	if !password.Matches(u.Password, plain) {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(u.ID.String(), u.Role)
	if err != nil {
		l.Error("login sign session failed", zap.Error(err))
		return LoginResponse{}, err
	}

	l.Info("login success", zap.String("user_id", u.ID.String()))
	return LoginResponse{Token: token, User: user.ToResponse(*u)}, nil
}

func (s *service) Me(ctx context.Context, userID string) (user.UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return user.UserResponse{}, autherrors.ErrInvalidToken
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, usererrors.ErrUserNotFound) {
			return user.UserResponse{}, autherrors.ErrInvalidToken
		}
		return user.UserResponse{}, err
	}

	return user.ToResponse(*u), nil
}

func (s *service) ForgotPassword(ctx context.Context, email string) (ForgotPasswordResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, usererrors.ErrUserNotFound) {
			if s.cfg.ExposeResetToken {
				return ForgotPasswordResponse{}, autherrors.ErrUserNotFound
			}
			return ForgotPasswordResponse{Message: resetTokenIssuedMessage}, nil
		}
		l.Error("forgot password find user failed", zap.Error(err))
		return ForgotPasswordResponse{}, err
	}

	raw, digest, err := newResetToken()
	if err != nil {
		l.Error("generate reset token failed", zap.Error(err))
		return ForgotPasswordResponse{}, err
	}

	expiresAt := s.now().Add(s.cfg.ResetTokenTTL)
	if err := s.users.SetResetToken(ctx, u.ID, digest, expiresAt); err != nil {
		l.Error("persist reset token failed", zap.String("user_id", u.ID.String()), zap.Error(err))
		return ForgotPasswordResponse{}, err
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyPasswordReset(ctx, u.Email, u.Name, raw, expiresAt); err != nil {
			l.Error("deliver reset token failed", zap.String("user_id", u.ID.String()), zap.Error(err))
			if !s.cfg.ExposeResetToken {
				return ForgotPasswordResponse{}, err
			}
		}
	}

	l.Info("reset token issued",
		zap.String("user_id", u.ID.String()),
		zap.Time("expires_at", expiresAt),
	)

	res := ForgotPasswordResponse{Message: resetTokenIssuedMessage}
	if s.cfg.ExposeResetToken {
		res.Token = raw
	}
	return res, nil
}

// ResetPassword consumes token at most once. The password change and the
// clearing of the reset state are one conditional update.
func (s *service) ResetPassword(ctx context.Context, token, newPassword string) error {
	l := contextutil.GetLogger(ctx, s.logger)

	if token == "" {
		return autherrors.ErrInvalidResetToken
	}

	hashed, err := password.Hash(newPassword)
	if err != nil {
		if !errors.Is(err, password.ErrTooLong) {
			l.Error("hash reset password failed", zap.Error(err))
		}
		return err
	}

	ok, err := s.users.ConsumeResetToken(ctx, digestResetToken(token), hashed, s.now())
	if err != nil {
		l.Error("consume reset token failed", zap.Error(err))
		return err
	}
	if !ok {
		return autherrors.ErrInvalidResetToken
	}

	l.Info("password reset via token")
	return nil
}

func (s *service) CreateEmployeeAccount(
	ctx context.Context,
	req CreateEmployeeRequest,
	imagePath string,
) (CreateEmployeeResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	rid := contextutil.GetRequestID(ctx)

	departmentID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return CreateEmployeeResponse{}, autherrors.ErrDepartmentNotFound
	}

	dob, err := time.Parse(employee.DateLayout, req.DOB)
	if err != nil {
		return CreateEmployeeResponse{}, autherrors.ErrInvalidDOB
	}

	exists, err := s.departments.Exists(ctx, departmentID)
	if err != nil {
		l.Error("create employee check department failed", zap.Error(err))
		return CreateEmployeeResponse{}, err
	}
	if !exists {
		return CreateEmployeeResponse{}, autherrors.ErrDepartmentNotFound
	}

	_, err = s.users.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return CreateEmployeeResponse{}, usererrors.ErrEmailAlreadyExists
	case !errors.Is(err, usererrors.ErrUserNotFound):
		l.Error("create employee email lookup failed", zap.Error(err))
		return CreateEmployeeResponse{}, err
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		if !errors.Is(err, password.ErrTooLong) {
			l.Error("create employee hash password failed", zap.Error(err))
		}
		return CreateEmployeeResponse{}, err
	}

	u := &user.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Role:     user.RoleEmployee,
	}
	emp := &employee.Employee{
		ID:           uuid.New(),
		UserID:       u.ID,
		Name:         req.Name,
		Email:        req.Email,
		DepartmentID: departmentID,
		DOB:          dob,
		Position:     req.Position,
		Image:        imagePath,
	}

	// user, employee, link and outbox row commit together or not at all
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.users.WithTx(tx).Create(ctx, u); err != nil {
			return err
		}
		if err := s.employees.WithTx(tx).Create(ctx, emp); err != nil {
			return err
		}
		if err := s.users.WithTx(tx).LinkEmployee(ctx, u.ID, emp.ID); err != nil {
			return err
		}

		event, err := employee.NewCreatedOutboxEvent(*emp, rid, s.now())
		if err != nil {
			return err
		}
		return s.outbox.WithTx(tx).Create(ctx, event)
	})
	if err != nil {
		if !errors.Is(err, usererrors.ErrEmailAlreadyExists) {
			l.Error("create employee account failed", zap.String("email", req.Email), zap.Error(err))
		}
		return CreateEmployeeResponse{}, err
	}
	u.EmployeeID = &emp.ID

	l.Info("employee account created",
		zap.String("user_id", u.ID.String()),
		zap.String("employee_id", emp.ID.String()),
	)

	return CreateEmployeeResponse{
		Message:  "Employee account created",
		User:     user.ToResponse(*u),
		Employee: employee.ToResponse(*emp),
	}, nil
}
