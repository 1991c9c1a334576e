package middleware

import (
	"net/http"

	"hris-account/internal/shared/apperror"
	"hris-account/internal/shared/contextutil"
	"hris-account/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery turns a panic into the standard 500 envelope.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}

	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		contextutil.GetLogger(c.Request.Context(), logger).Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		response.AbortWithError(c, http.StatusInternalServerError, apperror.CodeInternalError, apperror.ErrInternal.Message)
	})
}
