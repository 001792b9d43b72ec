package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/marketpadi/backend/config"
	"github.com/marketpadi/backend/middleware"
	"github.com/marketpadi/backend/models"
	"github.com/marketpadi/backend/pkg/levy"
)

// levyRecorder wires the levy core onto the shared connection.
func levyRecorder() *levy.Recorder {
	store := levy.NewStore(config.DB)
	return levy.NewRecorder(store, levy.NewResolver(store))
}

type configureLevyReq struct {
	MarketID      uuid.UUID               `json:"marketId"`
	OccupancyType *models.OccupancyType   `json:"occupancyType,omitempty"`
	Frequency     models.PaymentFrequency `json:"paymentFrequency"`
	Amount        decimal.Decimal         `json:"amount"`
}

// ConfigureLevySetup establishes or supersedes the rate for a
// market/occupancy/frequency combination. The superseded row is deactivated,
// not deleted.
func ConfigureLevySetup(w http.ResponseWriter, r *http.Request) {
	var req configureLevyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	scope := middleware.GetScope(r)
	setup, err := levyRecorder().ConfigureLevy(levy.ConfigureLevyInput{
		MarketID:      req.MarketID,
		ChairmanID:    scope.ChairmanID,
		OccupancyType: req.OccupancyType,
		Frequency:     req.Frequency,
		Amount:        req.Amount,
	})
	if err != nil {
		writeLevyError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, setup)
}

// GetActiveLevySetups lists the active configuration rows for a market.
func GetActiveLevySetups(w http.ResponseWriter, r *http.Request) {
	marketID, err := uuid.Parse(mux.Vars(r)["marketId"])
	if err != nil {
		http.Error(w, "invalid market id", http.StatusBadRequest)
		return
	}
	setups, err := levy.NewStore(config.DB).ActiveSetups(marketID)
	if err != nil {
		http.Error(w, "failed to fetch levy setups", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, setups)
}

// GetLevySetupHistory lists every configuration row ever written for a
// market, superseded ones included.
func GetLevySetupHistory(w http.ResponseWriter, r *http.Request) {
	marketID, err := uuid.Parse(mux.Vars(r)["marketId"])
	if err != nil {
		http.Error(w, "invalid market id", http.StatusBadRequest)
		return
	}
	setups, err := levy.NewStore(config.DB).SetupHistory(marketID)
	if err != nil {
		http.Error(w, "failed to fetch levy setup history", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, setups)
}

// ResolveLevyRate answers "what would this trader pay" without writing
// anything: market + occupancy (+ optional frequency) to the governing setup.
func ResolveLevyRate(w http.ResponseWriter, r *http.Request) {
	marketID, err := uuid.Parse(mux.Vars(r)["marketId"])
	if err != nil {
		http.Error(w, "invalid market id", http.StatusBadRequest)
		return
	}
	occupancy := models.OccupancyType(r.URL.Query().Get("occupancy"))
	if !occupancy.Valid() {
		http.Error(w, "invalid occupancy type", http.StatusBadRequest)
		return
	}
	var frequency *models.PaymentFrequency
	if f := r.URL.Query().Get("frequency"); f != "" {
		pf := models.PaymentFrequency(f)
		if !pf.Valid() {
			http.Error(w, "invalid payment frequency", http.StatusBadRequest)
			return
		}
		frequency = &pf
	}

	store := levy.NewStore(config.DB)
	setup, err := levy.NewResolver(store).ResolveActiveSetup(marketID, occupancy, frequency)
	if err != nil {
		http.Error(w, "failed to resolve levy rate", http.StatusInternalServerError)
		return
	}
	if setup == nil {
		http.Error(w, "levy not configured for this market and occupancy", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, setup)
}

// writeLevyError maps core sentinel errors onto HTTP statuses.
func writeLevyError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, levy.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, levy.ErrConfigurationMissing):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, levy.ErrInvalidTransition), errors.Is(err, levy.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, levy.ErrDuplicateActiveSetup):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
