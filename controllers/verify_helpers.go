package controllers

import (
	apperrors "fulfillment-service/errors"
	"fulfillment-service/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError logs the underlying cause and writes the application
// error as a JSON response.
func (vc *VerifyController) respondError(c *gin.Context, appErr *apperrors.Error, err error) {
	vc.Logger.Warn(appErr.Message,
		zap.String("request_id", logger.RequestID(c)),
		zap.String("reason", appErr.Reason),
		zap.Error(err),
	)
	apperrors.Respond(c, appErr.With(err))
}
