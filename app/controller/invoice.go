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

type InvoiceController struct {
	invoiceService *service.InvoiceService
	logger         logrus.FieldLogger
}

func NewInvoiceController(invoiceService *service.InvoiceService) *InvoiceController {
	return &InvoiceController{
		invoiceService: invoiceService,
		logger:         factory.NewModuleLogger("invoice-controller"),
	}
}

func (c *InvoiceController) CreateInvoice(ctx echo.Context) error {
	req, err := types.NewCreateInvoiceRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.invoiceService.CreateInvoice(ctx.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvoiceAlreadyExists):
			return writeError(ctx, http.StatusConflict, err.Error())
		default:
			c.logger.WithError(err).Error("Create invoice failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusCreated, &types.InvoiceEnvelopeResponse{Invoice: mapper.InvoiceToResponse(item)})
}

func (c *InvoiceController) GetInvoice(ctx echo.Context) error {
	req, err := types.NewIDRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid invoice id")
	}

	item, err := c.invoiceService.GetInvoice(ctx.Request().Context(), req.ID)
	if err != nil {
		if errors.Is(err, service.ErrInvoiceNotFound) {
			return writeError(ctx, http.StatusNotFound, "invoice not found")
		}
		c.logger.WithError(err).Error("Get invoice failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.InvoiceEnvelopeResponse{Invoice: mapper.InvoiceToResponse(item)})
}

func (c *InvoiceController) ListInvoices(ctx echo.Context) error {
	req, err := types.NewListRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	items, err := c.invoiceService.ListInvoices(ctx.Request().Context(), req.Limit, req.Offset)
	if err != nil {
		c.logger.WithError(err).Error("List invoices failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.ListInvoicesResponse{Invoices: mapper.InvoicesToResponse(items)})
}

func (c *InvoiceController) DeleteInvoice(ctx echo.Context) error {
	req, err := types.NewIDRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid invoice id")
	}

	if err := c.invoiceService.DeleteInvoice(ctx.Request().Context(), req.ID); err != nil {
		if errors.Is(err, service.ErrInvoiceNotFound) {
			return writeError(ctx, http.StatusNotFound, "invoice not found")
		}
		c.logger.WithError(err).Error("Delete invoice failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.MessageResponse{Message: "Invoice deleted"})
}

func writeError(ctx echo.Context, statusCode int, message string) error {
	return ctx.JSON(statusCode, &types.ErrorResponse{Error: message})
}
