package http

import (
	"errors"
	"net/http"

	loanDomain "microfin-backoffice/internal/domain/loan"
	"microfin-backoffice/internal/usecase/collections"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CollectionHandler struct {
	collections *collections.Usecase
}

func NewCollectionHandler(c *collections.Usecase) *CollectionHandler {
	return &CollectionHandler{collections: c}
}

func (h *CollectionHandler) Disburse(c echo.Context) error {
	actor, ok := requireActor(c)
	if !ok {
		return nil
	}
	dto, err := h.collections.Disburse(c.Request().Context(), c.Param("loan_id"), actor)
	if err != nil {
		return collectionError(c, err, "disbursement failed")
	}
	return c.JSON(http.StatusOK, map[string]any{"data": dto})
}

type repaymentReq struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func (h *CollectionHandler) RecordRepayment(c echo.Context) error {
	actor, ok := requireActor(c)
	if !ok {
		return nil
	}
	var req repaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	dto, err := h.collections.RecordRepayment(c.Request().Context(), collections.RepaymentInput{
		LoanID:      c.Param("loan_id"),
		Amount:      req.Amount,
		CollectedBy: actor,
	})
	if err != nil {
		return collectionError(c, err, "repayment failed")
	}
	return c.JSON(http.StatusCreated, map[string]any{"data": dto})
}

func (h *CollectionHandler) WriteOff(c echo.Context) error {
	actor, ok := requireActor(c)
	if !ok {
		return nil
	}
	dto, err := h.collections.WriteOff(c.Request().Context(), c.Param("loan_id"), actor)
	if err != nil {
		return collectionError(c, err, "write-off failed")
	}
	return c.JSON(http.StatusOK, map[string]any{"data": dto})
}

func (h *CollectionHandler) ListReceipts(c echo.Context) error {
	out, err := h.collections.Receipts(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return collectionError(c, err, "failed to list receipts")
	}
	return c.JSON(http.StatusOK, map[string]any{"data": out})
}

func collectionError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, loanDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "loan not found"})
	case errors.Is(err, loanDomain.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "loan state does not allow this action"})
	case errors.Is(err, collections.ErrInvalidAmount):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "repayment amount must be positive"})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
}
