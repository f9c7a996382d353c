package controllers

import (
	"errors"
	"net/http"

	apperrors "fulfillment-service/errors"
	"fulfillment-service/logger"
	"fulfillment-service/models"
	"fulfillment-service/repository"
	"fulfillment-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type VerifyController struct {
	PayPal            services.PaymentVerifier
	Repo              repository.DeliveryRepository
	Logger            *zap.Logger
	MarkDelivery      bool
	MarkDeliveryFatal bool
}

// VerifyAndDeliver checks the PayPal order for the supplied orderId,
// cross-checks its correlation token against orderRef, and on success
// returns the delivery links for the matching fulfillment record.
func (vc *VerifyController) VerifyAndDeliver(c *gin.Context) {
	var req models.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.Respond(c, apperrors.ErrValidation.With(err))
		return
	}

	ctx := c.Request.Context()

	token, err := vc.PayPal.GetAccessToken(ctx)
	if err != nil {
		vc.respondError(c, apperrors.ErrUpstreamAuth, err)
		return
	}

	order, err := vc.PayPal.GetOrder(ctx, req.OrderID, token)
	if err != nil {
		vc.respondError(c, apperrors.ErrUpstreamData, err)
		return
	}

	if !order.Completed() {
		vc.Logger.Info("Payment not completed",
			zap.String("request_id", logger.RequestID(c)),
			zap.String("order_id", req.OrderID),
			zap.String("paypal_status", order.Status),
		)
		apperrors.Respond(c, apperrors.ErrPaymentIncomplete)
		return
	}

	// The custom ID recorded at checkout is the only thing tying this
	// PayPal order to the buyer's reference. A mismatch means the client
	// is trying to collect someone else's file.
	if order.CustomID() != req.OrderRef {
		vc.Logger.Warn("Order reference mismatch",
			zap.String("request_id", logger.RequestID(c)),
			zap.String("order_id", req.OrderID),
			zap.String("supplied_ref", req.OrderRef),
		)
		apperrors.Respond(c, apperrors.ErrTampering)
		return
	}

	rowOffset, record, err := vc.Repo.Find(ctx, req.OrderRef)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			apperrors.Respond(c, apperrors.ErrOrderNotFound)
			return
		}
		vc.respondError(c, apperrors.ErrStoreRead, err)
		return
	}

	viewLink, downloadLink := record.ResolveLinks()

	if vc.MarkDelivery {
		if err := vc.Repo.MarkDelivered(ctx, rowOffset); err != nil {
			if vc.MarkDeliveryFatal {
				vc.respondError(c, apperrors.ErrUpdate, err)
				return
			}
			// Payment is verified and the buyer is owed the link; the
			// missing marker only affects bookkeeping.
			vc.Logger.Error("Failed to mark delivery",
				zap.String("request_id", logger.RequestID(c)),
				zap.String("order_ref", req.OrderRef),
				zap.Int("row_offset", rowOffset),
				zap.Error(err),
			)
		}
	}

	c.JSON(http.StatusOK, models.VerifyResponse{
		Success:            true,
		ViewLink:           viewLink,
		DirectDownloadLink: downloadLink,
	})
}
