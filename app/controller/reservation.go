package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/Danieliragi/johnserviceMotel-sub001/app/factory"
	"github.com/Danieliragi/johnserviceMotel-sub001/app/mapper"
	"github.com/Danieliragi/johnserviceMotel-sub001/app/service"
	"github.com/Danieliragi/johnserviceMotel-sub001/app/types"
)

type ReservationController struct {
	reservationService *service.ReservationService
	logger             logrus.FieldLogger
}

func NewReservationController(reservationService *service.ReservationService) *ReservationController {
	return &ReservationController{
		reservationService: reservationService,
		logger:             factory.NewModuleLogger("reservation-controller"),
	}
}

func (c *ReservationController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &types.HealthResponse{Status: "ok"})
}

func (c *ReservationController) CreateReservation(ctx echo.Context) error {
	req, err := types.NewCreateReservationRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, whatsAppURL, err := c.reservationService.CreateReservation(ctx.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClientNotFound), errors.Is(err, service.ErrRoomNotFound):
			return writeError(ctx, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrRoomUnavailable):
			return writeError(ctx, http.StatusConflict, err.Error())
		default:
			c.logger.WithError(err).Error("Create reservation failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusCreated, &types.CreateReservationResponse{
		Reservation: mapper.ReservationToResponse(item),
		WhatsAppURL: whatsAppURL,
	})
}

func (c *ReservationController) GetReservation(ctx echo.Context) error {
	req, err := types.NewIDRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid reservation id")
	}

	item, err := c.reservationService.GetReservation(ctx.Request().Context(), req.ID)
	if err != nil {
		if errors.Is(err, service.ErrReservationNotFound) {
			return writeError(ctx, http.StatusNotFound, "reservation not found")
		}
		c.logger.WithError(err).Error("Get reservation failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.ReservationEnvelopeResponse{Reservation: mapper.ReservationToResponse(item)})
}

func (c *ReservationController) ListReservations(ctx echo.Context) error {
	req, err := types.NewListRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	items, err := c.reservationService.ListReservations(ctx.Request().Context(), req.Limit, req.Offset)
	if err != nil {
		c.logger.WithError(err).Error("List reservations failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.ListReservationsResponse{Reservations: mapper.ReservationsToResponse(items)})
}

func (c *ReservationController) UpdateReservation(ctx echo.Context) error {
	req, err := types.NewUpdateReservationRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.reservationService.UpdateReservation(ctx.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrReservationNotFound) {
			return writeError(ctx, http.StatusNotFound, "reservation not found")
		}
		c.logger.WithError(err).Error("Update reservation failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.ReservationEnvelopeResponse{Reservation: mapper.ReservationToResponse(item)})
}

func (c *ReservationController) ListRooms(ctx echo.Context) error {
	items, err := c.reservationService.ListRooms(ctx.Request().Context())
	if err != nil {
		c.logger.WithError(err).Error("List rooms failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.ListRoomsResponse{Rooms: mapper.RoomsToResponse(items)})
}

func (c *ReservationController) GetRoom(ctx echo.Context) error {
	req, err := types.NewIDRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid room id")
	}

	item, err := c.reservationService.GetRoom(ctx.Request().Context(), req.ID)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			return writeError(ctx, http.StatusNotFound, "room not found")
		}
		c.logger.WithError(err).Error("Get room failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.RoomEnvelopeResponse{Room: mapper.RoomToResponse(item)})
}

func (c *ReservationController) ListPayments(ctx echo.Context) error {
	req, err := types.NewListRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	items, err := c.reservationService.ListPayments(ctx.Request().Context(), req.Limit, req.Offset)
	if err != nil {
		c.logger.WithError(err).Error("List payments failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.ListPaymentsResponse{Payments: mapper.PaymentsToResponse(items)})
}

func (c *ReservationController) CreatePayment(ctx echo.Context) error {
	req, err := types.NewCreatePaymentRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.reservationService.CreatePayment(ctx.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservationNotFound):
			return writeError(ctx, http.StatusNotFound, "reservation not found")
		case errors.Is(err, service.ErrPaymentAlreadyExists):
			return writeError(ctx, http.StatusConflict, err.Error())
		default:
			c.logger.WithError(err).Error("Create payment failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusCreated, &types.PaymentEnvelopeResponse{Payment: mapper.PaymentToResponse(item)})
}
