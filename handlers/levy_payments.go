package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketpadi/backend/config"
	"github.com/marketpadi/backend/middleware"
	"github.com/marketpadi/backend/models"
	"github.com/marketpadi/backend/pkg/levy"
)

type recordPaymentReq struct {
	TraderID  uuid.UUID            `json:"traderId"`
	MarketID  uuid.UUID            `json:"marketId"`
	Amount    decimal.Decimal      `json:"amount"`
	Method    models.PaymentMethod `json:"paymentMethod"`
	Reference string               `json:"transactionReference"`
	Pending   bool                 `json:"pending"`
	Latitude  *float64             `json:"latitude,omitempty"`
	Longitude *float64             `json:"longitude,omitempty"`
}

// RecordLevyPayment handles a collector scan-and-pay event. The collector
// identity comes from the caller's claims, not the body.
func RecordLevyPayment(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	scope := middleware.GetScope(r)
	payment, err := levyRecorder().RecordPayment(levy.RecordPaymentInput{
		TraderID:  req.TraderID,
		MarketID:  req.MarketID,
		GoodBoyID: scope.GoodBoyID,
		Amount:    req.Amount,
		Method:    req.Method,
		Reference: req.Reference,
		Pending:   req.Pending,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		writeLevyError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

// ConfirmLevyPayment moves a pending payment to Paid.
func ConfirmLevyPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	payment, err := levyRecorder().ConfirmPayment(id)
	if err != nil {
		writeLevyError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

// RejectLevyPayment moves a pending payment to Failed.
func RejectLevyPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	payment, err := levyRecorder().RejectPayment(id)
	if err != nil {
		writeLevyError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}

// GetLevyPayments lists payments with market/trader/status/date filters,
// paginated. Setup-mirror rows are excluded unless includeSetups=true.
func GetLevyPayments(w http.ResponseWriter, r *http.Request) {
	filter := models.PageFilterFromRequest(r)
	q := config.DB.Model(&models.LevyPayment{})

	if r.URL.Query().Get("includeSetups") != "true" {
		q = q.Where("is_setup_record = ?", false)
	}
	if marketID := r.URL.Query().Get("marketId"); marketID != "" {
		id, err := uuid.Parse(marketID)
		if err != nil {
			http.Error(w, "invalid marketId", http.StatusBadRequest)
			return
		}
		q = q.Where("market_id = ?", id)
	}
	if traderID := r.URL.Query().Get("traderId"); traderID != "" {
		id, err := uuid.Parse(traderID)
		if err != nil {
			http.Error(w, "invalid traderId", http.StatusBadRequest)
			return
		}
		q = q.Where("trader_id = ?", id)
	}
	if status := r.URL.Query().Get("status"); status != "" {
		if !models.PaymentStatus(status).Valid() {
			http.Error(w, "invalid payment status", http.StatusBadRequest)
			return
		}
		q = q.Where("payment_status = ?", status)
	}
	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			http.Error(w, "invalid from date", http.StatusBadRequest)
			return
		}
		q = q.Where("payment_date >= ?", t)
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			http.Error(w, "invalid to date", http.StatusBadRequest)
			return
		}
		q = q.Where("payment_date <= ?", t.AddDate(0, 0, 1))
	}

	// Collectors only ever see their own market's book.
	scope := middleware.GetScope(r)
	if scope.MarketID != nil {
		q = q.Where("market_id = ?", *scope.MarketID)
	}

	var payments []models.LevyPayment
	page, err := models.Paginate(q.Order("payment_date DESC"), filter, &payments)
	if err != nil {
		http.Error(w, "failed to fetch payments", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GetLevyPayment fetches a single payment.
func GetLevyPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	payment, err := levy.NewStore(config.DB).GetPayment(id)
	if err != nil {
		writeLevyError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}
