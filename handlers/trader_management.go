package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/marketpadi/backend/config"
	"github.com/marketpadi/backend/models"
)

// GetAllTraders returns a paginated trader listing scoped by optional
// market/caretaker/occupancy query filters.
func GetAllTraders(w http.ResponseWriter, r *http.Request) {
	filter := models.PageFilterFromRequest(r)

	q := config.DB.Model(&models.Trader{}).Preload("BuildingTypes")
	if marketID := r.URL.Query().Get("marketId"); marketID != "" {
		id, err := uuid.Parse(marketID)
		if err != nil {
			http.Error(w, "invalid marketId", http.StatusBadRequest)
			return
		}
		q = q.Where("market_id = ?", id)
	}
	if caretakerID := r.URL.Query().Get("caretakerId"); caretakerID != "" {
		id, err := uuid.Parse(caretakerID)
		if err != nil {
			http.Error(w, "invalid caretakerId", http.StatusBadRequest)
			return
		}
		q = q.Where("caretaker_id = ?", id)
	}
	if occ := r.URL.Query().Get("occupancy"); occ != "" {
		q = q.Where("trader_occupancy = ?", occ)
	}

	var traders []models.Trader
	page, err := models.Paginate(q.Order("full_name"), filter, &traders)
	if err != nil {
		http.Error(w, "failed to fetch traders", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(page)
}

func GetTrader(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid trader id", http.StatusBadRequest)
		return
	}
	var trader models.Trader
	if err := config.DB.Preload("BuildingTypes").Preload("Market").
		First(&trader, "id = ?", id).Error; err != nil {
		http.Error(w, "trader not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(trader)
}

func CreateTrader(w http.ResponseWriter, r *http.Request) {
	var trader models.Trader
	if err := json.NewDecoder(r.Body).Decode(&trader); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if trader.MarketID == uuid.Nil {
		http.Error(w, "marketId is required", http.StatusBadRequest)
		return
	}
	if !trader.TraderOccupancy.Valid() {
		http.Error(w, "invalid occupancy type", http.StatusBadRequest)
		return
	}
	if trader.PaymentFrequency != nil && !trader.PaymentFrequency.Valid() {
		http.Error(w, "invalid payment frequency", http.StatusBadRequest)
		return
	}
	if err := config.DB.Create(&trader).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			http.Error(w, "TIN already registered", http.StatusConflict)
		} else {
			http.Error(w, "failed to create trader", http.StatusInternalServerError)
		}
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(trader)
}

func UpdateTrader(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid trader id", http.StatusBadRequest)
		return
	}
	var trader models.Trader
	if err := config.DB.First(&trader, "id = ?", id).Error; err != nil {
		http.Error(w, "trader not found", http.StatusNotFound)
		return
	}

	var updates models.Trader
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if updates.TraderOccupancy != "" && !updates.TraderOccupancy.Valid() {
		http.Error(w, "invalid occupancy type", http.StatusBadRequest)
		return
	}
	if updates.PaymentFrequency != nil && !updates.PaymentFrequency.Valid() {
		http.Error(w, "invalid payment frequency", http.StatusBadRequest)
		return
	}

	if err := config.DB.Model(&trader).Updates(map[string]interface{}{
		"full_name":         updates.FullName,
		"phone":             updates.Phone,
		"gender":            updates.Gender,
		"caretaker_id":      updates.CaretakerID,
		"section_id":        updates.SectionID,
		"trader_occupancy":  updates.TraderOccupancy,
		"amount":            updates.Amount,
		"payment_frequency": updates.PaymentFrequency,
	}).Error; err != nil {
		http.Error(w, "failed to update trader", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(trader)
}

// DeleteTrader removes a trader; its building-type line items cascade.
func DeleteTrader(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid trader id", http.StatusBadRequest)
		return
	}
	if err := config.DB.Delete(&models.Trader{}, "id = ?", id).Error; err != nil {
		http.Error(w, "failed to delete trader", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetBuildingTypes replaces a trader's building-type line items.
func SetBuildingTypes(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid trader id", http.StatusBadRequest)
		return
	}
	var trader models.Trader
	if err := config.DB.First(&trader, "id = ?", id).Error; err != nil {
		http.Error(w, "trader not found", http.StatusNotFound)
		return
	}

	var items []models.BuildingType
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	for i := range items {
		items[i].TraderID = trader.ID
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trader_id = ?", trader.ID).Delete(&models.BuildingType{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		http.Error(w, "failed to save building types", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}
