package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	approvalDomain "microfin-backoffice/internal/domain/approval"
	loanDomain "microfin-backoffice/internal/domain/loan"
	approvalUC "microfin-backoffice/internal/usecase/approval"
	"microfin-backoffice/internal/usecase/loanbook"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type LoanHandler struct {
	book      *loanbook.Usecase
	approvals *approvalUC.Usecase
}

func NewLoanHandler(book *loanbook.Usecase, approvals *approvalUC.Usecase) *LoanHandler {
	return &LoanHandler{book: book, approvals: approvals}
}

func (h *LoanHandler) List(c echo.Context) error {
	in := loanbook.ListInput{
		Search: c.QueryParam("search"),
		Status: c.QueryParam("status"),
	}
	if v := c.QueryParam("page"); v != "" {
		in.Page, _ = strconv.Atoi(v)
	}
	if v := c.QueryParam("per_page"); v != "" {
		in.PerPage, _ = strconv.Atoi(v)
	}
	out, err := h.book.List(c.Request().Context(), in)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list loans"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LoanHandler) Get(c echo.Context) error {
	l, err := h.book.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": l})
}

func (h *LoanHandler) Export(c echo.Context) error {
	in := loanbook.ListInput{
		Search: c.QueryParam("search"),
		Status: c.QueryParam("status"),
	}
	name := fmt.Sprintf("loans_export_%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	c.Response().WriteHeader(http.StatusOK)
	return h.book.ExportCSV(c.Request().Context(), in, c.Response())
}

type approveReq struct {
	Action string `json:"action" validate:"required,oneof=approve send_back"`
	Reason string `json:"reason"`
}

func (h *LoanHandler) Approve(c echo.Context) error {
	actor, ok := requireActor(c)
	if !ok {
		return nil
	}
	var req approveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	dto, err := h.approvals.Decide(c.Request().Context(), approvalUC.DecideInput{
		LoanID:    c.Param("loan_id"),
		Action:    approvalDomain.Action(req.Action),
		Reason:    req.Reason,
		DecidedBy: actor,
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, loanDomain.ErrNotFound):
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "loan not found"})
		case errors.Is(err, loanDomain.ErrAlreadyDecided):
			return c.JSON(http.StatusConflict, ErrorResponse{Error: "loan already decided"})
		case errors.Is(err, loanDomain.ErrInvalidTransition):
			return c.JSON(http.StatusConflict, ErrorResponse{Error: "loan is not pending approval"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "decision failed"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": dto})
}
