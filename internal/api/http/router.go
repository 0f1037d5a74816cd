package http

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"

	"fleetops-backend/internal/logger"
	"fleetops-backend/internal/service"
)

// Services bundles everything the API needs.
type Services struct {
	Driver    service.DriverService
	Ledger    service.LedgerService
	Report    service.ReportService
	Overdraft service.OverdraftService
	Expense   service.ExpenseService
	Audit     service.AuditService
}

// NewHandler builds the full API handler: routes, CORS and request logging.
func NewHandler(svcs Services, allowedOrigins []string) http.Handler {
	router := mux.NewRouter()

	driverHandler := NewDriverHandler(svcs.Driver)
	ledgerHandler := NewLedgerHandler(svcs.Ledger, svcs.Report, svcs.Overdraft, svcs.Audit)
	expenseHandler := NewExpenseHandler(svcs.Expense)

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/drivers", driverHandler.CreateDriver).Methods("POST")
	api.HandleFunc("/drivers", driverHandler.ListDrivers).Methods("GET")
	api.HandleFunc("/drivers/{id}", driverHandler.GetDriver).Methods("GET")

	api.HandleFunc("/drivers/{id}/account", ledgerHandler.GetAccount).Methods("GET")
	api.HandleFunc("/drivers/{id}/account/limit", ledgerHandler.SetSpendingLimit).Methods("PUT")
	api.HandleFunc("/drivers/{id}/account/topup", ledgerHandler.TopUp).Methods("POST")
	api.HandleFunc("/drivers/{id}/account/expense", ledgerHandler.RecordExpense).Methods("POST")
	api.HandleFunc("/drivers/{id}/account/adjust", ledgerHandler.AdjustBalance).Methods("POST")
	api.HandleFunc("/drivers/{id}/transactions", ledgerHandler.ListTransactions).Methods("GET")
	api.HandleFunc("/transactions/{id}/amend", ledgerHandler.AmendTransaction).Methods("POST")
	api.HandleFunc("/transactions/{id}", ledgerHandler.DeleteTransaction).Methods("DELETE")

	api.HandleFunc("/drivers/{id}/spend-summary", ledgerHandler.GetSpendSummary).Methods("GET")
	api.HandleFunc("/reports/overdrafts", ledgerHandler.GetOverdraftReport).Methods("GET")

	api.HandleFunc("/expenses", expenseHandler.CreateExpense).Methods("POST")
	api.HandleFunc("/drivers/{id}/expenses", expenseHandler.ListExpenses).Methods("GET")

	api.HandleFunc("/audit-log", ledgerHandler.GetAuditLog).Methods("GET")

	router.Use(requestLogging)

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	corsMiddleware := cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Actor-Name", "X-Actor-Role"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	return corsMiddleware(router)
}

func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds())
	})
}
