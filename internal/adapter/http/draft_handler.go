package http

import (
	"errors"
	"net/http"

	draftDomain "microfin-backoffice/internal/domain/draft"
	"microfin-backoffice/internal/domain/portfolio"
	"microfin-backoffice/internal/domain/product"
	uc "microfin-backoffice/internal/usecase/draft"

	"github.com/labstack/echo/v4"
)

type DraftHandler struct{ ctl *uc.Controller }

func NewDraftHandler(ctl *uc.Controller) *DraftHandler { return &DraftHandler{ctl: ctl} }

func (h *DraftHandler) Create(c echo.Context) error {
	actor, ok := requireActor(c)
	if !ok {
		return nil
	}
	d := h.ctl.Create(actor)
	return c.JSON(http.StatusCreated, d)
}

func (h *DraftHandler) Get(c echo.Context) error {
	d, err := h.ctl.Get(c.Param("id"))
	if err != nil {
		return draftError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *DraftHandler) Discard(c echo.Context) error {
	if err := h.ctl.Discard(c.Param("id")); err != nil {
		return draftError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type selectReq struct {
	ID uint64 `json:"id" validate:"required,gte=1"`
}

func (h *DraftHandler) SelectCenter(c echo.Context) error {
	var req selectReq
	if err := bindSelect(c, &req); err != nil {
		return err
	}
	groups, err := h.ctl.SelectCenter(c.Request().Context(), c.Param("id"), req.ID)
	if err != nil {
		return draftError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"groups": groups})
}

func (h *DraftHandler) SelectGroup(c echo.Context) error {
	var req selectReq
	if err := bindSelect(c, &req); err != nil {
		return err
	}
	roster, err := h.ctl.SelectGroup(c.Request().Context(), c.Param("id"), req.ID)
	if err != nil {
		return draftError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"customers": roster})
}

func (h *DraftHandler) SelectCustomer(c echo.Context) error {
	var req selectReq
	if err := bindSelect(c, &req); err != nil {
		return err
	}
	if err := h.ctl.SelectCustomer(c.Request().Context(), c.Param("id"), req.ID); err != nil {
		return draftError(c, err)
	}
	d, err := h.ctl.Get(c.Param("id"))
	if err != nil {
		return draftError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *DraftHandler) SelectProduct(c echo.Context) error {
	var req selectReq
	if err := bindSelect(c, &req); err != nil {
		return err
	}
	if err := h.ctl.SelectProduct(c.Request().Context(), c.Param("id"), req.ID); err != nil {
		return draftError(c, err)
	}
	d, err := h.ctl.Get(c.Param("id"))
	if err != nil {
		return draftError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

type nicReq struct {
	NIC string `json:"nic"`
}

// SetNIC records the search input; the auto-fill lands asynchronously
// once the debounce window closes, so the response is just the draft
// as of now.
func (h *DraftHandler) SetNIC(c echo.Context) error {
	var req nicReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := h.ctl.SetNIC(c.Param("id"), req.NIC); err != nil {
		return draftError(c, err)
	}
	d, err := h.ctl.Get(c.Param("id"))
	if err != nil {
		return draftError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *DraftHandler) Patch(c echo.Context) error {
	var p uc.FieldPatch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := h.ctl.Apply(c.Param("id"), p); err != nil {
		return draftError(c, err)
	}
	d, err := h.ctl.Get(c.Param("id"))
	if err != nil {
		return draftError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *DraftHandler) Summary(c echo.Context) error {
	s, err := h.ctl.Summary(c.Param("id"))
	if err != nil {
		return draftError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *DraftHandler) Submit(c echo.Context) error {
	res, err := h.ctl.Submit(c.Request().Context(), c.Param("id"))
	if err != nil {
		var sf *draftDomain.SubmissionFailure
		if errors.As(err, &sf) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]any{
				"error":  "validation failed",
				"errors": sf.Fields,
			})
		}
		return draftError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

func bindSelect(c echo.Context, req *selectReq) error {
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	return nil
}

// draftError maps controller errors onto stable status codes; lookup
// failures stay 502 so the client knows the draft itself is fine.
func draftError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, uc.ErrDraftNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "draft not found"})
	case errors.Is(err, uc.ErrCenterNotSelected),
		errors.Is(err, uc.ErrGroupNotSelected),
		errors.Is(err, uc.ErrGroupNotInCenter),
		errors.Is(err, uc.ErrCustomerNotInGroup):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, portfolio.ErrCenterNotFound),
		errors.Is(err, portfolio.ErrGroupNotFound),
		errors.Is(err, portfolio.ErrCustomerNotFound),
		errors.Is(err, product.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "lookup failed"})
}
