package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/betawi/internal/account"
	"github.com/MrJamesThe3rd/betawi/internal/http/respond"
	"github.com/MrJamesThe3rd/betawi/internal/ledger"
)

type Handler struct {
	svc *account.Service
}

func NewHandler(svc *account.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes mounts the helper accounts.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.open)
	r.Get("/", h.list)
	r.Get("/summary", h.summary)
	r.Get("/{id}", h.get)
	r.Post("/{id}/payout", h.payout)
}

// LedgerRoutes mounts the transaction ledger.
func (h *Handler) LedgerRoutes(r chi.Router) {
	r.Get("/", h.transactions)
	r.Post("/income", h.recordIncome)
}

type openAccountRequest struct {
	HelperID    int    `json:"helper_id"`
	Name        string `json:"name"`
	BankAccount string `json:"bank_account"`
}

type recordIncomeRequest struct {
	HelperID    int           `json:"helper_id"`
	From        string        `json:"from"`
	Amount      int64         `json:"amount"`
	Date        respond.Date  `json:"date"`
	Status      ledger.Status `json:"status,omitempty"`
	Description string        `json:"description"`
}

type accountResponse struct {
	ID              int            `json:"id"`
	HelperID        int            `json:"helper_id"`
	Name            string         `json:"name"`
	TotalEarnings   int64          `json:"total_earnings"`
	TotalCommission int64          `json:"total_commission"`
	PendingPayout   int64          `json:"pending_payout"`
	LastPayout      respond.Date   `json:"last_payout"`
	BankAccount     string         `json:"bank_account"`
	Status          account.Status `json:"status"`
}

type transactionResponse struct {
	ID          int           `json:"id"`
	Type        ledger.Type   `json:"type"`
	HelperID    int           `json:"helper_id"`
	From        string        `json:"from"`
	Amount      int64         `json:"amount"`
	Commission  int64         `json:"commission"`
	Date        respond.Date  `json:"date"`
	Status      ledger.Status `json:"status"`
	Description string        `json:"description"`
}

type payoutResponse struct {
	Account     accountResponse     `json:"account"`
	Transaction transactionResponse `json:"transaction"`
}

type summaryResponse struct {
	TotalIncome     int64 `json:"total_income"`
	TotalCommission int64 `json:"total_commission"`
	TotalPayouts    int64 `json:"total_payouts"`
	PlatformBalance int64 `json:"platform_balance"`
}

func toAccountResponse(a *account.HelperAccount) accountResponse {
	return accountResponse{
		ID:              a.ID,
		HelperID:        a.HelperID,
		Name:            a.Name,
		TotalEarnings:   a.TotalEarnings,
		TotalCommission: a.TotalCommission,
		PendingPayout:   a.PendingPayout,
		LastPayout:      respond.Date{Time: a.LastPayout},
		BankAccount:     a.BankAccount,
		Status:          a.Status,
	}
}

func toTransactionResponse(t *ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		Type:        t.Type,
		HelperID:    t.HelperID,
		From:        t.From,
		Amount:      t.Amount,
		Commission:  t.Commission,
		Date:        respond.Date{Time: t.Date},
		Status:      t.Status,
		Description: t.Description,
	}
}

func (h *Handler) open(w http.ResponseWriter, r *http.Request) {
	var req openAccountRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	a, err := h.svc.Open(r.Context(), account.OpenParams(req))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toAccountResponse(a))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.List(r.Context(), respond.Query[account.Status](r, "status"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]accountResponse, len(accounts))
	for i, a := range accounts {
		resp[i] = toAccountResponse(a)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	a, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toAccountResponse(a))
}

func (h *Handler) payout(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	p, err := h.svc.ProcessPayout(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, payoutResponse{
		Account:     toAccountResponse(p.Account),
		Transaction: toTransactionResponse(p.Transaction),
	})
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Summary(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, summaryResponse(s))
}

func (h *Handler) transactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.svc.Transactions(r.Context(), account.TransactionFilter{
		Type:     respond.Query[ledger.Type](r, "type"),
		Status:   respond.Query[ledger.Status](r, "status"),
		HelperID: respond.QueryInt(r, "helper_id"),
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]transactionResponse, len(txs))
	for i, t := range txs {
		resp[i] = toTransactionResponse(t)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) recordIncome(w http.ResponseWriter, r *http.Request) {
	var req recordIncomeRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	tx, err := h.svc.RecordIncome(r.Context(), account.IncomeParams{
		HelperID:    req.HelperID,
		From:        req.From,
		Amount:      req.Amount,
		Date:        req.Date.Time,
		Status:      req.Status,
		Description: req.Description,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toTransactionResponse(tx))
}
