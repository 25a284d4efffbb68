package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domainApproval "microfin-backoffice/internal/domain/approval"
	domainLoan "microfin-backoffice/internal/domain/loan"
	"microfin-backoffice/internal/domain/uow"
	"microfin-backoffice/internal/testutil/approvalmock"
	"microfin-backoffice/internal/testutil/loanmock"
	"microfin-backoffice/internal/testutil/uowmock"
	ucApproval "microfin-backoffice/internal/usecase/approval"
	"microfin-backoffice/internal/usecase/loanbook"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const testLoanID = "llllllllllllllllllllllllllllllll"

func bookWith(loans *loanmock.Repo) *loanbook.Usecase { return loanbook.NewUsecase(loans) }

func approvalsWith(l *domainLoan.Loan, loans *loanmock.Repo, apprs *approvalmock.Repo) *ucApproval.Usecase {
	tx := uowmock.New()
	tx.WithinLoanTxFn = func(ctx context.Context, loanID string, fn func(r uow.Repos, l *domainLoan.Loan) error) error {
		if loanID != testLoanID {
			return domainLoan.ErrNotFound
		}
		return fn(uow.Repos{Loans: loans, Approvals: apprs}, l)
	}
	return ucApproval.NewUsecase(tx)
}

func TestListLoans(t *testing.T) {
	e := newEchoWithValidator()
	loans := &loanmock.Repo{
		ListFn: func(ctx context.Context, f domainLoan.ListFilter) ([]domainLoan.Loan, int64, error) {
			if f.Search != "kandy" || f.State != domainLoan.StateActive {
				t.Fatalf("filter: %+v", f)
			}
			return []domainLoan.Loan{{LoanID: testLoanID, State: domainLoan.StateActive}}, 1, nil
		},
		StatsFn: func(ctx context.Context) (*domainLoan.Stats, error) {
			return &domainLoan.Stats{TotalCount: 1, ActiveCount: 1}, nil
		},
	}
	h := NewLoanHandler(bookWith(loans), nil)

	req := httptest.NewRequest(stdhttp.MethodGet, "/loans?search=kandy&status=active", nil)
	rec := httptest.NewRecorder()
	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("List error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var out loanbook.ListOutput
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(out.Data) != 1 || out.Meta.Total != 1 || out.Meta.Stats.ActiveCount != 1 {
		t.Fatalf("output: %+v", out)
	}
}

func TestGetLoan_NotFound(t *testing.T) {
	e := newEchoWithValidator()
	loans := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, loanID string) (*domainLoan.Loan, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	h := NewLoanHandler(bookWith(loans), nil)

	req := httptest.NewRequest(stdhttp.MethodGet, "/loans/"+testLoanID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues(testLoanID)

	if err := h.Get(c); err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestExportLoans_CSVHeaders(t *testing.T) {
	e := newEchoWithValidator()
	loans := &loanmock.Repo{
		ListFn: func(ctx context.Context, f domainLoan.ListFilter) ([]domainLoan.Loan, int64, error) {
			return []domainLoan.Loan{{LoanID: testLoanID, RentalType: "Weekly", State: domainLoan.StateActive}}, 1, nil
		},
	}
	h := NewLoanHandler(bookWith(loans), nil)

	req := httptest.NewRequest(stdhttp.MethodGet, "/loans/export", nil)
	rec := httptest.NewRecorder()
	if err := h.Export(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Export error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content-type: %q", ct)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, "loans_export_") {
		t.Fatalf("content-disposition: %q", cd)
	}
	if !strings.Contains(rec.Body.String(), testLoanID) {
		t.Fatalf("body missing loan row: %s", rec.Body.String())
	}
}

func approveRequest(e *echo.Echo, body map[string]any, withActor bool) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(stdhttp.MethodPatch, "/loans/"+testLoanID+"/approve", mustJSON(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if withActor {
		req.Header.Set("Ax-Staff-Id", "STF009")
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues(testLoanID)
	return c, rec
}

func approvalNotFound(ctx context.Context, loanID uint64) (*domainApproval.Approval, error) {
	return nil, gorm.ErrRecordNotFound
}

func approvalCreateOK(ctx context.Context, a *domainApproval.Approval) error { return nil }

func TestApprove_Success(t *testing.T) {
	e := newEchoWithValidator()
	l := &domainLoan.Loan{ID: 42, LoanID: testLoanID, State: domainLoan.StatePendingApproval}
	loans := &loanmock.Repo{SaveFn: func(ctx context.Context, l *domainLoan.Loan) error { return nil }}
	h := NewLoanHandler(nil, approvalsWith(l, loans, &approvalmock.Repo{
		GetApprovalByLoanIDFn: approvalNotFound,
		CreateFn:              approvalCreateOK,
	}))

	c, rec := approveRequest(e, map[string]any{"action": "approve"}, true)
	if err := h.Approve(c); err != nil {
		t.Fatalf("Approve error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Data ucApproval.DecisionDTO `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if body.Data.State != string(domainLoan.StateApproved) || body.Data.LoanID != testLoanID {
		t.Fatalf("dto: %+v", body.Data)
	}
}

func TestApprove_MissingActorHeader(t *testing.T) {
	e := newEchoWithValidator()
	h := NewLoanHandler(nil, approvalsWith(nil, &loanmock.Repo{}, &approvalmock.Repo{}))

	c, rec := approveRequest(e, map[string]any{"action": "approve"}, false)
	if err := h.Approve(c); err != nil {
		t.Fatalf("Approve error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestApprove_UnknownActionFailsValidation(t *testing.T) {
	e := newEchoWithValidator()
	h := NewLoanHandler(nil, approvalsWith(nil, &loanmock.Repo{}, &approvalmock.Repo{}))

	c, rec := approveRequest(e, map[string]any{"action": "reject"}, true)
	if err := h.Approve(c); err != nil {
		t.Fatalf("Approve error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !containsFieldMsg(body.Details, "Action", "one of") {
		t.Fatalf("details: %+v", body.Details)
	}
}

func TestApprove_AlreadyDecidedIsConflict(t *testing.T) {
	e := newEchoWithValidator()
	l := &domainLoan.Loan{ID: 42, LoanID: testLoanID, State: domainLoan.StateApproved}
	h := NewLoanHandler(nil, approvalsWith(l, &loanmock.Repo{}, &approvalmock.Repo{}))

	c, rec := approveRequest(e, map[string]any{"action": "approve"}, true)
	if err := h.Approve(c); err != nil {
		t.Fatalf("Approve error: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestApprove_SendBackWithReason(t *testing.T) {
	e := newEchoWithValidator()
	l := &domainLoan.Loan{ID: 42, LoanID: testLoanID, State: domainLoan.StatePendingApproval}
	loans := &loanmock.Repo{SaveFn: func(ctx context.Context, l *domainLoan.Loan) error { return nil }}
	h := NewLoanHandler(nil, approvalsWith(l, loans, &approvalmock.Repo{
		GetApprovalByLoanIDFn: approvalNotFound,
		CreateFn:              approvalCreateOK,
	}))

	c, rec := approveRequest(e, map[string]any{"action": "send_back", "reason": "incomplete guarantors"}, true)
	if err := h.Approve(c); err != nil {
		t.Fatalf("Approve error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Data ucApproval.DecisionDTO `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if body.Data.State != string(domainLoan.StateSentBack) {
		t.Fatalf("state=%s", body.Data.State)
	}
}
