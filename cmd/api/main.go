package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "microfin-backoffice/internal/adapter/http"
	mw "microfin-backoffice/internal/adapter/middleware"
	"microfin-backoffice/internal/adapter/repository/mysql"
	"microfin-backoffice/internal/config"
	"microfin-backoffice/internal/infrastructure/cache"
	"microfin-backoffice/internal/infrastructure/db"
	approvalUC "microfin-backoffice/internal/usecase/approval"
	collectionsUC "microfin-backoffice/internal/usecase/collections"
	customerUC "microfin-backoffice/internal/usecase/customer"
	draftUC "microfin-backoffice/internal/usecase/draft"
	"microfin-backoffice/internal/usecase/loanbook"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	// repositories
	portfolioRepo := mysql.NewPortfolioRepository(gdb)
	productRepo := mysql.NewProductRepository(gdb)
	staffRepo := mysql.NewStaffRepository(gdb)
	loanRepo := mysql.NewLoanRepository(gdb)
	unit := mysql.NewGormUoW(gdb)

	// usecases
	drafts := draftUC.NewController(portfolioRepo, productRepo, staffRepo, loanRepo, cfg.NICSearchDebounce)
	customers := customerUC.NewUsecase(portfolioRepo)
	book := loanbook.NewUsecase(loanRepo)
	approvals := approvalUC.NewUsecase(unit)
	coll := collectionsUC.NewUsecase(unit)

	// handlers
	h := httpadp.NewHandler()
	draftH := httpadp.NewDraftHandler(drafts)
	lookupH := httpadp.NewLookupHandler(portfolioRepo, productRepo, staffRepo, customers)
	loanH := httpadp.NewLoanHandler(book, approvals)
	collH := httpadp.NewCollectionHandler(coll)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	idemp := mw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	// routes
	e.GET("/health", h.Health)

	e.GET("/centers", lookupH.ListCenters)
	e.GET("/centers/:id/groups", lookupH.ListGroups)
	e.GET("/groups/:id/customers", lookupH.ListGroupCustomers)
	e.GET("/customers/search", lookupH.FindCustomerByNIC)
	e.GET("/customers/:id", lookupH.GetCustomer)
	e.POST("/customers", lookupH.CreateCustomer)
	e.GET("/loan-products", lookupH.ListProducts)
	e.GET("/staffs/witness-candidates", lookupH.ListWitnessCandidates)

	e.POST("/drafts", draftH.Create)
	e.GET("/drafts/:id", draftH.Get)
	e.DELETE("/drafts/:id", draftH.Discard)
	e.PUT("/drafts/:id/center", draftH.SelectCenter)
	e.PUT("/drafts/:id/group", draftH.SelectGroup)
	e.PUT("/drafts/:id/customer", draftH.SelectCustomer)
	e.PUT("/drafts/:id/product", draftH.SelectProduct)
	e.POST("/drafts/:id/nic", draftH.SetNIC)
	e.PATCH("/drafts/:id", draftH.Patch)
	e.GET("/drafts/:id/summary", draftH.Summary)
	e.POST("/drafts/:id/submit", draftH.Submit, idemp)

	e.GET("/loans", loanH.List)
	e.GET("/loans/export", loanH.Export)
	e.GET("/loans/:loan_id", loanH.Get)
	e.PATCH("/loans/:loan_id/approve", loanH.Approve, idemp)
	e.POST("/loans/:loan_id/disburse", collH.Disburse, idemp)
	e.POST("/loans/:loan_id/repayments", collH.RecordRepayment, idemp)
	e.POST("/loans/:loan_id/write-off", collH.WriteOff, idemp)
	e.GET("/loans/:loan_id/repayments", collH.ListReceipts)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
