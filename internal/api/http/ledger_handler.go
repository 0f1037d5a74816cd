package http

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"fleetops-backend/internal/service"
)

// LedgerHandler exposes the spending-ledger operations over JSON.
type LedgerHandler struct {
	ledgerSvc    service.LedgerService
	reportSvc    service.ReportService
	overdraftSvc service.OverdraftService
	auditSvc     service.AuditService
}

func NewLedgerHandler(
	ledgerSvc service.LedgerService,
	reportSvc service.ReportService,
	overdraftSvc service.OverdraftService,
	auditSvc service.AuditService,
) *LedgerHandler {
	return &LedgerHandler{
		ledgerSvc:    ledgerSvc,
		reportSvc:    reportSvc,
		overdraftSvc: overdraftSvc,
		auditSvc:     auditSvc,
	}
}

type amountRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	BookingID   *int64          `json:"booking_id,omitempty"`
}

func (h *LedgerHandler) TopUp(w http.ResponseWriter, r *http.Request) {
	driverID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req amountRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	tx, err := h.ledgerSvc.TopUp(r.Context(), actorFrom(r), driverID, req.Amount, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, tx)
}

func (h *LedgerHandler) RecordExpense(w http.ResponseWriter, r *http.Request) {
	driverID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req amountRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	tx, err := h.ledgerSvc.RecordExpense(r.Context(), actorFrom(r), driverID, req.Amount, req.Description, req.BookingID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, tx)
}

type adjustRequest struct {
	Amount decimal.Decimal `json:"amount"` // signed: positive credits, negative debits
	Notes  string          `json:"notes"`
}

func (h *LedgerHandler) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	driverID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req adjustRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	tx, err := h.ledgerSvc.AdjustBalance(r.Context(), actorFrom(r), driverID, req.Amount, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, tx)
}

type amendRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Notes  string          `json:"notes"`
}

func (h *LedgerHandler) AmendTransaction(w http.ResponseWriter, r *http.Request) {
	txID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req amendRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	tx, err := h.ledgerSvc.EditTransaction(r.Context(), actorFrom(r), txID, req.Amount, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, tx)
}

func (h *LedgerHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	txID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	reversal, err := h.ledgerSvc.DeleteTransaction(r.Context(), actorFrom(r), txID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, reversal)
}

type limitRequest struct {
	Limit decimal.Decimal `json:"limit"`
}

func (h *LedgerHandler) SetSpendingLimit(w http.ResponseWriter, r *http.Request) {
	driverID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req limitRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	account, err := h.ledgerSvc.SetSpendingLimit(r.Context(), actorFrom(r), driverID, req.Limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, account)
}

func (h *LedgerHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	driverID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	account, err := h.ledgerSvc.GetAccount(r.Context(), driverID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, account)
}

type transactionPage struct {
	Transactions any   `json:"transactions"`
	Total        int32 `json:"total"`
}

func (h *LedgerHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	driverID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 50)
	txs, total, err := h.ledgerSvc.ListTransactions(r.Context(), driverID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, transactionPage{Transactions: txs, Total: total})
}

func (h *LedgerHandler) GetSpendSummary(w http.ResponseWriter, r *http.Request) {
	driverID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	summary, err := h.reportSvc.GetSpendSummary(r.Context(), driverID, time.Now().UTC())
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, summary)
}

func (h *LedgerHandler) GetOverdraftReport(w http.ResponseWriter, r *http.Request) {
	topN := int(queryInt32(r, "limit", 20))
	report, err := h.overdraftSvc.GetOverdraftReport(r.Context(), topN)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, report)
}

func (h *LedgerHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	limit := queryInt32(r, "limit", 100)
	entries, err := h.auditSvc.ListRecentActivity(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, entries)
}
