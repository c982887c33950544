package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nexvolt/evretail-api/internal/application/auth"
	"github.com/nexvolt/evretail-api/internal/application/billing"
	"github.com/nexvolt/evretail-api/internal/application/ledger"
	"github.com/nexvolt/evretail-api/internal/application/usecase"
	"github.com/nexvolt/evretail-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	BranchUC  *usecase.BranchUseCase
	CatalogUC *usecase.CatalogUseCase
	LedgerUC  *ledger.UseCase
	IssueUC   *billing.IssueInvoiceUseCase
	PDFUC     *billing.PDFUseCase
	UserUC    *usecase.UserUseCase
	TeamUC    *usecase.TeamUseCase
	WalletUC  *usecase.WalletUseCase
	JWTSecret string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Everything below requires a Bearer token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleAdmin)
	stockRoles := RequireRole(entity.RoleAdmin, entity.RoleDealer)

	// Branches: reads for any authenticated user, writes admin-only.
	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Get("/", branchHandler.List)
	branches.Get("/:code", branchHandler.GetByCode)
	branches.Post("/", adminOnly, branchHandler.Create)
	branches.Put("/:code", adminOnly, branchHandler.Update)
	branches.Delete("/:code", adminOnly, branchHandler.Delete)

	// Catalog: reads for any authenticated user, writes admin-only.
	catalog := protected.Group("/catalog")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalog.Get("/vehicles", catalogHandler.ListVehicles)
	catalog.Get("/vehicles/:id", catalogHandler.GetVehicle)
	catalog.Post("/vehicles", adminOnly, catalogHandler.CreateVehicle)
	catalog.Put("/vehicles/:id", adminOnly, catalogHandler.UpdateVehicle)
	catalog.Delete("/vehicles/:id", adminOnly, catalogHandler.DeleteVehicle)
	catalog.Get("/parts", catalogHandler.ListParts)
	catalog.Get("/parts/:id", catalogHandler.GetPart)
	catalog.Post("/parts", adminOnly, catalogHandler.CreatePart)
	catalog.Put("/parts/:id", adminOnly, catalogHandler.UpdatePart)
	catalog.Delete("/parts/:id", adminOnly, catalogHandler.DeletePart)

	// Stock ledger: admin and dealers (dealers confined to their own branch).
	stock := protected.Group("/stock", stockRoles)
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	stock.Get("/current", ledgerHandler.CurrentStock)
	stock.Get("/ledger", ledgerHandler.Ledger)
	stock.Post("/entries", ledgerHandler.StockIn)
	stock.Post("/sales", ledgerHandler.Sale)
	stock.Post("/reports", ledgerHandler.Report)
	stock.Delete("/entries/:kind/:serial", adminOnly, ledgerHandler.DeleteRecord)

	// Invoices: admin and dealers.
	invoices := protected.Group("/invoices", stockRoles)
	invoiceHandler := NewInvoiceHandler(deps.IssueUC, deps.PDFUC)
	invoices.Post("/", invoiceHandler.Issue)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)

	// Users and referral team.
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC, deps.TeamUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id/status", userHandler.SetStatus)
	protected.Get("/team", userHandler.Team)
	protected.Get("/team/tree", userHandler.TeamTree)

	// Wallet and payment requests.
	walletHandler := NewWalletHandler(deps.WalletUC)
	protected.Get("/wallet", walletHandler.GetWallet)
	protected.Post("/payment-requests", walletHandler.CreatePaymentRequest)
	protected.Get("/payment-requests", walletHandler.ListPaymentRequests)
	protected.Post("/payment-requests/:id/approve", adminOnly, walletHandler.Approve)
	protected.Post("/payment-requests/:id/reject", adminOnly, walletHandler.Reject)
}
