package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	domainLoan "microfin-backoffice/internal/domain/loan"
	domainRepayment "microfin-backoffice/internal/domain/repayment"
	"microfin-backoffice/internal/domain/uow"
	"microfin-backoffice/internal/testutil/loanmock"
	"microfin-backoffice/internal/testutil/repaymentmock"
	"microfin-backoffice/internal/testutil/uowmock"
	ucCollections "microfin-backoffice/internal/usecase/collections"

	"github.com/labstack/echo/v4"
)

func collectionsWith(l *domainLoan.Loan, loans *loanmock.Repo, repayments *repaymentmock.Repo) *ucCollections.Usecase {
	tx := uowmock.New()
	tx.WithinLoanTxFn = func(ctx context.Context, loanID string, fn func(r uow.Repos, l *domainLoan.Loan) error) error {
		if loanID != testLoanID {
			return domainLoan.ErrNotFound
		}
		return fn(uow.Repos{Loans: loans, Repayments: repayments}, l)
	}
	tx.WithinTxFn = func(ctx context.Context, fn func(r uow.Repos) error) error {
		return fn(uow.Repos{Loans: loans, Repayments: repayments})
	}
	return ucCollections.NewUsecase(tx)
}

func collectionRequest(e *echo.Echo, path string, body map[string]any, withActor bool) (echo.Context, *httptest.ResponseRecorder) {
	var req *stdhttp.Request
	if body != nil {
		req = httptest.NewRequest(stdhttp.MethodPost, "/loans/"+testLoanID+path, mustJSON(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(stdhttp.MethodPost, "/loans/"+testLoanID+path, nil)
	}
	if withActor {
		req.Header.Set("Ax-Staff-Id", "STF005")
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues(testLoanID)
	return c, rec
}

func TestDisburse_ApprovedLoan(t *testing.T) {
	e := newEchoWithValidator()
	l := &domainLoan.Loan{ID: 42, LoanID: testLoanID, ApprovedAmount: 50000, InterestRate: 24, State: domainLoan.StateApproved}
	loans := &loanmock.Repo{SaveFn: func(ctx context.Context, l *domainLoan.Loan) error { return nil }}
	h := NewCollectionHandler(collectionsWith(l, loans, &repaymentmock.Repo{}))

	c, rec := collectionRequest(e, "/disburse", nil, true)
	if err := h.Disburse(c); err != nil {
		t.Fatalf("Disburse error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Data ucCollections.LoanStateDTO `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if body.Data.State != string(domainLoan.StateActive) || body.Data.LoanID != testLoanID {
		t.Fatalf("dto: %+v", body.Data)
	}
}

func TestDisburse_PendingLoanIsConflict(t *testing.T) {
	e := newEchoWithValidator()
	l := &domainLoan.Loan{ID: 42, LoanID: testLoanID, State: domainLoan.StatePendingApproval}
	h := NewCollectionHandler(collectionsWith(l, &loanmock.Repo{}, &repaymentmock.Repo{}))

	c, rec := collectionRequest(e, "/disburse", nil, true)
	if err := h.Disburse(c); err != nil {
		t.Fatalf("Disburse error: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestDisburse_MissingActorHeader(t *testing.T) {
	e := newEchoWithValidator()
	h := NewCollectionHandler(collectionsWith(nil, &loanmock.Repo{}, &repaymentmock.Repo{}))

	c, rec := collectionRequest(e, "/disburse", nil, false)
	if err := h.Disburse(c); err != nil {
		t.Fatalf("Disburse error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRecordRepayment_Created(t *testing.T) {
	e := newEchoWithValidator()
	l := &domainLoan.Loan{ID: 42, LoanID: testLoanID, ApprovedAmount: 50000, InterestRate: 24, State: domainLoan.StateActive}
	var receipt *domainRepayment.Repayment
	repayments := &repaymentmock.Repo{
		CreateFn: func(ctx context.Context, r *domainRepayment.Repayment) error {
			receipt = r
			return nil
		},
		TotalByLoanIDFn: func(ctx context.Context, loanID uint64) (float64, error) { return 12000, nil },
	}
	h := NewCollectionHandler(collectionsWith(l, &loanmock.Repo{}, repayments))

	c, rec := collectionRequest(e, "/repayments", map[string]any{"amount": 12000}, true)
	if err := h.RecordRepayment(c); err != nil {
		t.Fatalf("RecordRepayment error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if receipt == nil || receipt.CollectedBy != "STF005" {
		t.Fatalf("receipt: %+v", receipt)
	}
	var body struct {
		Data ucCollections.ReceiptDTO `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if body.Data.Outstanding != 50000 || body.Data.State != string(domainLoan.StateActive) {
		t.Fatalf("dto: %+v", body.Data)
	}
}

func TestRecordRepayment_NonPositiveAmountRejected(t *testing.T) {
	e := newEchoWithValidator()
	h := NewCollectionHandler(collectionsWith(nil, &loanmock.Repo{}, &repaymentmock.Repo{}))

	c, rec := collectionRequest(e, "/repayments", map[string]any{"amount": -10}, true)
	if err := h.RecordRepayment(c); err != nil {
		t.Fatalf("RecordRepayment error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if !containsFieldMsg(body.Details, "Amount", "greater than") {
		t.Fatalf("details: %+v", body.Details)
	}
}

func TestRecordRepayment_UnknownLoan(t *testing.T) {
	e := newEchoWithValidator()
	h := NewCollectionHandler(collectionsWith(nil, &loanmock.Repo{}, &repaymentmock.Repo{}))

	req := httptest.NewRequest(stdhttp.MethodPost, "/loans/zzz/repayments", mustJSON(map[string]any{"amount": 100}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Ax-Staff-Id", "STF005")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues("zzz")

	if err := h.RecordRepayment(c); err != nil {
		t.Fatalf("RecordRepayment error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestWriteOff_ActiveLoan(t *testing.T) {
	e := newEchoWithValidator()
	l := &domainLoan.Loan{ID: 42, LoanID: testLoanID, ApprovedAmount: 50000, InterestRate: 24, State: domainLoan.StateActive}
	loans := &loanmock.Repo{SaveFn: func(ctx context.Context, l *domainLoan.Loan) error { return nil }}
	repayments := &repaymentmock.Repo{
		TotalByLoanIDFn: func(ctx context.Context, loanID uint64) (float64, error) { return 20000, nil },
	}
	h := NewCollectionHandler(collectionsWith(l, loans, repayments))

	c, rec := collectionRequest(e, "/write-off", nil, true)
	if err := h.WriteOff(c); err != nil {
		t.Fatalf("WriteOff error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Data ucCollections.LoanStateDTO `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if body.Data.State != string(domainLoan.StateWrittenOff) {
		t.Fatalf("dto: %+v", body.Data)
	}
}

func TestListReceipts(t *testing.T) {
	e := newEchoWithValidator()
	l := &domainLoan.Loan{ID: 42, LoanID: testLoanID, State: domainLoan.StateActive}
	loans := &loanmock.Repo{
		GetByLoanIDFn: func(ctx context.Context, loanID string) (*domainLoan.Loan, error) { return l, nil },
	}
	repayments := &repaymentmock.Repo{
		ListByLoanIDFn: func(ctx context.Context, loanID uint64) ([]domainRepayment.Repayment, error) {
			return []domainRepayment.Repayment{{ReceiptID: "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb", LoanID: 42, Amount: 12000}}, nil
		},
	}
	h := NewCollectionHandler(collectionsWith(l, loans, repayments))

	req := httptest.NewRequest(stdhttp.MethodGet, "/loans/"+testLoanID+"/repayments", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues(testLoanID)

	if err := h.ListReceipts(c); err != nil {
		t.Fatalf("ListReceipts error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Data []domainRepayment.Repayment `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].Amount != 12000 {
		t.Fatalf("data: %+v", body.Data)
	}
}
