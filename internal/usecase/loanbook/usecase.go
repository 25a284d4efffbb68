package loanbook

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"microfin-backoffice/internal/domain/loan"
)

type Usecase struct{ repo loan.Repository }

func NewUsecase(r loan.Repository) *Usecase { return &Usecase{repo: r} }

const defaultPerPage = 20

type ListInput struct {
	Search  string
	Status  string
	Page    int
	PerPage int
}

type ListMeta struct {
	CurrentPage int        `json:"current_page"`
	LastPage    int        `json:"last_page"`
	Total       int64      `json:"total"`
	PerPage     int        `json:"per_page"`
	Stats       loan.Stats `json:"stats"`
}

type ListOutput struct {
	Data []loan.Loan `json:"data"`
	Meta ListMeta    `json:"meta"`
}

func (u *Usecase) List(ctx context.Context, in ListInput) (*ListOutput, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PerPage < 1 {
		in.PerPage = defaultPerPage
	}
	f := loan.ListFilter{
		Search:  in.Search,
		Page:    in.Page,
		PerPage: in.PerPage,
	}
	if in.Status != "" && in.Status != "All" {
		f.State = loan.State(in.Status)
	}

	items, total, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	stats, err := u.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	lastPage := int((total + int64(in.PerPage) - 1) / int64(in.PerPage))
	if lastPage < 1 {
		lastPage = 1
	}
	return &ListOutput{
		Data: items,
		Meta: ListMeta{
			CurrentPage: in.Page,
			LastPage:    lastPage,
			Total:       total,
			PerPage:     in.PerPage,
			Stats:       *stats,
		},
	}, nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*loan.Loan, error) {
	return u.repo.GetByLoanID(ctx, loanID)
}

var exportHeader = []string{
	"loan_id", "customer_id", "center_id", "group_id", "product_id",
	"requested_amount", "approved_amount", "interest_rate", "terms", "rental_type",
	"state", "created_at",
}

// ExportCSV streams the filtered loan book. Pagination is bypassed;
// the export always covers the whole filtered set.
func (u *Usecase) ExportCSV(ctx context.Context, in ListInput, w io.Writer) error {
	f := loan.ListFilter{Search: in.Search}
	if in.Status != "" && in.Status != "All" {
		f.State = loan.State(in.Status)
	}
	items, _, err := u.repo.List(ctx, f)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, l := range items {
		rec := []string{
			l.LoanID,
			strconv.FormatUint(l.CustomerID, 10),
			strconv.FormatUint(l.CenterID, 10),
			strconv.FormatUint(l.GroupID, 10),
			strconv.FormatUint(l.ProductID, 10),
			fmt.Sprintf("%.2f", l.RequestedAmount),
			fmt.Sprintf("%.2f", l.ApprovedAmount),
			fmt.Sprintf("%.2f", l.InterestRate),
			strconv.Itoa(l.TermCount),
			l.RentalType,
			string(l.State),
			l.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
