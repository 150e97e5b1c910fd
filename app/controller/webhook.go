package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/Danieliragi/johnserviceMotel-sub001/app/factory"
	"github.com/Danieliragi/johnserviceMotel-sub001/app/service"
	"github.com/Danieliragi/johnserviceMotel-sub001/app/types"
)

type WebhookController struct {
	reservationService *service.ReservationService
	logger             logrus.FieldLogger
}

func NewWebhookController(reservationService *service.ReservationService) *WebhookController {
	return &WebhookController{
		reservationService: reservationService,
		logger:             factory.NewModuleLogger("webhook-controller"),
	}
}

func (c *WebhookController) HandleStripeWebhook(ctx echo.Context) error {
	req, err := types.NewStripeWebhookRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	if err := c.reservationService.HandleStripeWebhook(ctx.Request().Context(), req); err != nil {
		if errors.Is(err, service.ErrWebhookRejected) {
			return writeError(ctx, http.StatusBadRequest, "webhook signature verification failed")
		}
		c.logger.WithError(err).Error("Handle stripe webhook failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.WebhookAckResponse{Received: true})
}
