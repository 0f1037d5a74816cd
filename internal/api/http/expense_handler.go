package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"fleetops-backend/internal/domain"
	"fleetops-backend/internal/service"
)

type ExpenseHandler struct {
	expenseSvc service.ExpenseService
}

func NewExpenseHandler(expenseSvc service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseSvc: expenseSvc}
}

type createExpenseRequest struct {
	DriverID    int64           `json:"driver_id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	BookingID   *int64          `json:"booking_id,omitempty"`
}

func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	expense, err := h.expenseSvc.RecordExpense(r.Context(), actorFrom(r), req.DriverID,
		domain.ExpenseCategory(req.Category), req.Amount, req.Description, req.BookingID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusCreated, expense)
}

type expensePage struct {
	Expenses any   `json:"expenses"`
	Total    int32 `json:"total"`
}

func (h *ExpenseHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	driverID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 50)
	expenses, total, err := h.expenseSvc.ListExpenses(r.Context(), driverID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, expensePage{Expenses: expenses, Total: total})
}
