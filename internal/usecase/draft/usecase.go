package draft

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domain "microfin-backoffice/internal/domain/draft"
	loanDomain "microfin-backoffice/internal/domain/loan"
	"microfin-backoffice/internal/domain/portfolio"
	productDomain "microfin-backoffice/internal/domain/product"
	staffDomain "microfin-backoffice/internal/domain/staff"
	"microfin-backoffice/pkg/id"
	"microfin-backoffice/pkg/nic"
)

var (
	ErrDraftNotFound      = errors.New("draft not found")
	ErrCenterNotSelected  = errors.New("select a center first")
	ErrGroupNotSelected   = errors.New("select a group first")
	ErrGroupNotInCenter   = errors.New("group does not belong to the selected center")
	ErrCustomerNotInGroup = errors.New("customer does not belong to the selected group")
)

// Controller owns every in-progress application. Each draft is edited
// by one flow at a time; mutations run under the draft's own lock so a
// reader never observes a half-applied cascade step.
type Controller struct {
	portfolio portfolio.Repository
	products  productDomain.Repository
	staffs    staffDomain.Repository
	loans     loanDomain.Repository

	debounce time.Duration

	mu     sync.Mutex
	drafts map[string]*entry
}

type entry struct {
	mu sync.Mutex
	d  *domain.Draft

	// NIC search bookkeeping: a new input bumps the sequence and
	// cancels the pending timer, so only the latest search can apply.
	searchSeq   uint64
	searchTimer *time.Timer
}

func NewController(p portfolio.Repository, pr productDomain.Repository, s staffDomain.Repository, l loanDomain.Repository, debounce time.Duration) *Controller {
	return &Controller{
		portfolio: p,
		products:  pr,
		staffs:    s,
		loans:     l,
		debounce:  debounce,
		drafts:    make(map[string]*entry),
	}
}

// Create opens an empty draft owned by the acting staff member.
func (c *Controller) Create(actorStaffID string) *domain.Draft {
	now := time.Now().UTC()
	d := &domain.Draft{
		ID:           id.NewID32(),
		ActorStaffID: actorStaffID,
		RentalType:   string(loanDomain.RentalWeekly),
		Status:       domain.StatusDraft,
		Errors:       domain.FieldErrors{},
		Warnings:     domain.FieldErrors{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	c.mu.Lock()
	c.drafts[d.ID] = &entry{d: d}
	c.mu.Unlock()
	return snapshot(d)
}

func (c *Controller) Get(draftID string) (*domain.Draft, error) {
	e, err := c.entry(draftID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return snapshot(e.d), nil
}

// Discard drops the draft; there is nothing to persist.
func (c *Controller) Discard(draftID string) error {
	c.mu.Lock()
	e, ok := c.drafts[draftID]
	if ok {
		delete(c.drafts, draftID)
	}
	c.mu.Unlock()
	if !ok {
		return ErrDraftNotFound
	}
	e.mu.Lock()
	if e.searchTimer != nil {
		e.searchTimer.Stop()
	}
	e.mu.Unlock()
	return nil
}

// SelectCenter resets everything downstream of the center and returns
// the groups scoped to it. A failed lookup leaves the draft untouched.
func (c *Controller) SelectCenter(ctx context.Context, draftID string, centerID uint64) ([]portfolio.Group, error) {
	e, err := c.entry(draftID)
	if err != nil {
		return nil, err
	}
	if _, err := c.portfolio.GetCenter(ctx, centerID); err != nil {
		return nil, fmt.Errorf("center lookup: %w", err)
	}
	groups, err := c.portfolio.ListGroupsByCenter(ctx, centerID)
	if err != nil {
		return nil, fmt.Errorf("group lookup: %w", err)
	}

	e.mu.Lock()
	d := e.d
	d.CenterID = centerID
	resetDownstream(d, true)
	clearField(d, "center")
	touch(d)
	e.mu.Unlock()
	return groups, nil
}

// SelectGroup requires a center and rejects a group parented elsewhere.
func (c *Controller) SelectGroup(ctx context.Context, draftID string, groupID uint64) ([]portfolio.Customer, error) {
	e, err := c.entry(draftID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	centerID := e.d.CenterID
	e.mu.Unlock()
	if centerID == 0 {
		return nil, ErrCenterNotSelected
	}

	g, err := c.portfolio.GetGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("group lookup: %w", err)
	}
	if g.CenterID != centerID {
		return nil, ErrGroupNotInCenter
	}
	roster, err := c.portfolio.ListCustomersByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("customer lookup: %w", err)
	}

	e.mu.Lock()
	d := e.d
	// the center may have changed while we were looking up; never
	// attach a group whose parent no longer matches
	if d.CenterID != centerID {
		e.mu.Unlock()
		return nil, ErrGroupNotInCenter
	}
	d.GroupID = groupID
	resetDownstream(d, false)
	clearField(d, "group")
	touch(d)
	e.mu.Unlock()
	return roster, nil
}

// SelectCustomer requires a group, pulls the extended record for the
// downstream product check, and recomputes the guarantor assignment
// from the current roster.
func (c *Controller) SelectCustomer(ctx context.Context, draftID string, customerID uint64) error {
	e, err := c.entry(draftID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	groupID := e.d.GroupID
	e.mu.Unlock()
	if groupID == 0 {
		return ErrGroupNotSelected
	}

	roster, err := c.portfolio.ListCustomersByGroup(ctx, groupID)
	if err != nil {
		return fmt.Errorf("customer lookup: %w", err)
	}
	var chosen *portfolio.Customer
	for i := range roster {
		if roster[i].ID == customerID {
			chosen = &roster[i]
			break
		}
	}
	if chosen == nil {
		return ErrCustomerNotInGroup
	}
	detail, err := c.portfolio.GetCustomer(ctx, customerID)
	if err != nil {
		return fmt.Errorf("customer detail lookup: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	d := e.d
	if d.GroupID != groupID {
		return ErrCustomerNotInGroup
	}
	d.CustomerID = customerID
	d.NIC = chosen.CustomerCode
	d.ActiveProductIDs = activeProductIDs(detail.Loans)
	assignGuarantors(d, roster, customerID)
	applyGenderWarning(d, chosen)
	clearField(d, "customer")
	clearField(d, "nic")
	touch(d)
	return nil
}

// SelectProduct pre-populates the financial terms from the product
// template and flags a product the customer already has running.
func (c *Controller) SelectProduct(ctx context.Context, draftID string, productID uint64) error {
	e, err := c.entry(draftID)
	if err != nil {
		return err
	}
	p, err := c.products.Get(ctx, productID)
	if err != nil {
		return fmt.Errorf("product lookup: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	d := e.d
	d.ProductID = productID
	d.InterestRate = formatAmount(p.InterestRate)
	d.ApprovedAmount = formatAmount(p.LoanAmount)
	d.RequestedAmount = formatAmount(p.LoanAmount)
	d.Tenure = fmt.Sprintf("%d", p.LoanTerm)
	if loanDomain.ValidRentalType(p.TermType) {
		d.RentalType = p.TermType
	}
	if d.ProductActive(productID) {
		d.Warnings["product"] = fmt.Sprintf("customer already has an active %s loan", p.Name)
	} else {
		delete(d.Warnings, "product")
	}
	clearField(d, "product")
	touch(d)
	return nil
}

// Summary holds the two display figures derived from the draft. They
// are recomputed on every call, never cached.
type Summary struct {
	TotalFees       float64 `json:"total_fees"`
	NetDisbursement float64 `json:"net_disbursement"`
}

func (c *Controller) Summary(draftID string) (*Summary, error) {
	e, err := c.entry(draftID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return &Summary{
		TotalFees:       e.d.TotalFees(),
		NetDisbursement: e.d.NetDisbursement(),
	}, nil
}

// ---- internals ----

func (c *Controller) entry(draftID string) (*entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.drafts[draftID]
	if !ok {
		return nil, ErrDraftNotFound
	}
	return e, nil
}

// resetDownstream clears everything below the changed level so a stale
// child selection can never survive a parent change.
func resetDownstream(d *domain.Draft, includeGroup bool) {
	if includeGroup {
		d.GroupID = 0
	}
	d.CustomerID = 0
	d.ActiveProductIDs = nil
	clearGuarantors(d)
	delete(d.Warnings, "gender")
	delete(d.Warnings, "product")
}

func clearGuarantors(d *domain.Draft) {
	d.Guarantor1Name, d.Guarantor1NIC = "", ""
	d.Guarantor2Name, d.Guarantor2NIC = "", ""
}

// assignGuarantors takes the first two roster members other than the
// applicant, in the order the store returned them. Deterministic so the
// assignment stays traceable to group membership at application time.
func assignGuarantors(d *domain.Draft, roster []portfolio.Customer, applicantID uint64) {
	clearGuarantors(d)
	var others []portfolio.Customer
	for _, m := range roster {
		if m.ID != applicantID {
			others = append(others, m)
		}
	}
	if len(others) >= 1 {
		d.Guarantor1Name, d.Guarantor1NIC = others[0].FullName, others[0].CustomerCode
	}
	if len(others) >= 2 {
		d.Guarantor2Name, d.Guarantor2NIC = others[1].FullName, others[1].CustomerCode
	}
}

// applyGenderWarning flags a recorded gender that disagrees with the
// NIC-derived sex. Soft for the applicant; the guardian gets the hard
// rule in the validation gate.
func applyGenderWarning(d *domain.Draft, cust *portfolio.Customer) {
	delete(d.Warnings, "gender")
	if cust.Gender == "" {
		return
	}
	derived, err := nic.GenderOf(cust.CustomerCode)
	if err != nil {
		return
	}
	if string(derived) != cust.Gender {
		d.Warnings["gender"] = fmt.Sprintf("customer record says %s but the NIC decodes %s", cust.Gender, derived)
	}
}

func activeProductIDs(loans []portfolio.LoanSummary) []uint64 {
	var out []uint64
	for _, l := range loans {
		if !loanDomain.State(l.Status).Closed() {
			out = append(out, l.ProductID)
		}
	}
	return out
}

func clearField(d *domain.Draft, field string) {
	delete(d.Errors, field)
}

func touch(d *domain.Draft) {
	d.Dirty = true
	d.UpdatedAt = time.Now().UTC()
}

func formatAmount(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

// snapshot copies the draft so callers never share the live record.
func snapshot(d *domain.Draft) *domain.Draft {
	cp := *d
	cp.Errors = domain.FieldErrors{}
	cp.Errors.Merge(d.Errors)
	cp.Warnings = domain.FieldErrors{}
	cp.Warnings.Merge(d.Warnings)
	cp.ActiveProductIDs = append([]uint64(nil), d.ActiveProductIDs...)
	return &cp
}
