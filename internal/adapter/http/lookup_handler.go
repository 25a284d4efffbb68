package http

import (
	"errors"
	"net/http"

	draftDomain "microfin-backoffice/internal/domain/draft"
	"microfin-backoffice/internal/domain/portfolio"
	"microfin-backoffice/internal/domain/product"
	"microfin-backoffice/internal/domain/staff"
	customerUC "microfin-backoffice/internal/usecase/customer"
	"microfin-backoffice/pkg/nic"

	"github.com/labstack/echo/v4"
)

// LookupHandler serves the reference data the loan form feeds on:
// centers, center-scoped groups, group rosters, products and witness
// candidates.
type LookupHandler struct {
	portfolio portfolio.Repository
	products  product.Repository
	staffs    staff.Repository
	customers *customerUC.Usecase
}

func NewLookupHandler(p portfolio.Repository, pr product.Repository, s staff.Repository, cu *customerUC.Usecase) *LookupHandler {
	return &LookupHandler{portfolio: p, products: pr, staffs: s, customers: cu}
}

func (h *LookupHandler) ListCenters(c echo.Context) error {
	out, err := h.portfolio.ListCenters(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "lookup failed"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": out})
}

func (h *LookupHandler) ListGroups(c echo.Context) error {
	centerID, ok := paramUint(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid center id"})
	}
	out, err := h.portfolio.ListGroupsByCenter(c.Request().Context(), centerID)
	if err != nil {
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "lookup failed"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": out})
}

func (h *LookupHandler) ListGroupCustomers(c echo.Context) error {
	groupID, ok := paramUint(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid group id"})
	}
	out, err := h.portfolio.ListCustomersByGroup(c.Request().Context(), groupID)
	if err != nil {
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "lookup failed"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": out})
}

func (h *LookupHandler) GetCustomer(c echo.Context) error {
	id, ok := paramUint(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid customer id"})
	}
	out, err := h.customers.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, portfolio.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "customer not found"})
		}
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "lookup failed"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": out})
}

type nicQuery struct {
	NIC string `query:"nic" validate:"required,nicshape"`
}

// FindCustomerByNIC resolves a complete NIC straight to the customer
// records carrying it. Partial input is rejected up front; incremental
// search lives on the draft, not here.
func (h *LookupHandler) FindCustomerByNIC(c echo.Context) error {
	var q nicQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}
	if err := c.Validate(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	out, err := h.portfolio.FindCustomersByCode(c.Request().Context(), nic.Normalize(q.NIC))
	if err != nil {
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "lookup failed"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": out})
}

func (h *LookupHandler) CreateCustomer(c echo.Context) error {
	var in customerUC.CreateInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	out, err := h.customers.Create(c.Request().Context(), in)
	if err != nil {
		var sf *draftDomain.SubmissionFailure
		if errors.As(err, &sf) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]any{
				"error":  "validation failed",
				"errors": sf.Fields,
			})
		}
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "store failed"})
	}
	return c.JSON(http.StatusCreated, map[string]any{"data": out})
}

func (h *LookupHandler) ListProducts(c echo.Context) error {
	out, err := h.products.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "lookup failed"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": out})
}

// ListWitnessCandidates excludes the acting staff: a witness cannot
// attest an application they filed.
func (h *LookupHandler) ListWitnessCandidates(c echo.Context) error {
	out, err := h.staffs.ListWitnessCandidates(c.Request().Context(), actorStaffID(c))
	if err != nil {
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "lookup failed"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": out})
}
