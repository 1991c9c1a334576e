package auth

import (
	"errors"
	"net/http"
	"time"

	autherrors "hris-account/internal/auth/errors"
	"hris-account/internal/shared/apperror"
	"hris-account/internal/shared/contextutil"
	"hris-account/internal/shared/request"
	"hris-account/internal/shared/response"
	"hris-account/internal/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const accessTokenCookie = "access_token"

type HandlerConfig struct {
	SecureCookie bool
	CookieMaxAge time.Duration
}

type Handler struct {
	service Service
	images  storage.ImageStore
	cfg     HandlerConfig
	logger  *zap.Logger
}

func NewHandler(s Service, images storage.ImageStore, cfg HandlerConfig, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: s, images: images, cfg: cfg, logger: l}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	if !response.FromError(c, err) {
		contextutil.GetLogger(c.Request.Context(), h.logger).Error("auth request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	clientType := request.ResolveClientType(c.GetHeader("X-Client-Type"), c.GetHeader("User-Agent"))
	if request.IsWebClient(clientType) {
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     accessTokenCookie,
			Value:    res.Token,
			Path:     "/",
			MaxAge:   int(h.cfg.CookieMaxAge.Seconds()),
			HttpOnly: true,
			Secure:   h.cfg.SecureCookie,
			SameSite: http.SameSiteLaxMode,
		})
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) Me(c *gin.Context) {
	res, err := h.service.Me(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperror.MapValidationError(err))
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Password reset success"})
}

// CreateEmployee expects multipart/form-data with an optional "image" file.
// A stored image is removed again when the account cannot be created.
func (h *Handler) CreateEmployee(c *gin.Context) {
	ctx := c.Request.Context()
	log := contextutil.GetLogger(ctx, h.logger)

	var req CreateEmployeeRequest
	if err := c.ShouldBind(&req); err != nil {
		h.writeError(c, apperror.MapValidationError(err))
		return
	}

	var imagePath string
	file, err := c.FormFile("image")
	switch {
	case err == nil:
		imagePath, err = h.images.Save(ctx, file)
		if err != nil {
			h.writeError(c, err)
			return
		}
	case errors.Is(err, http.ErrMissingFile):
	default:
		log.Warn("read image upload failed", zap.Error(err))
		h.writeError(c, autherrors.ErrInvalidImage)
		return
	}

	res, err := h.service.CreateEmployeeAccount(ctx, req, imagePath)
	if err != nil {
		if imagePath != "" {
			if rmErr := h.images.Remove(ctx, imagePath); rmErr != nil {
				log.Error("remove orphaned image failed", zap.String("image", imagePath), zap.Error(rmErr))
			}
		}
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, res)
}
