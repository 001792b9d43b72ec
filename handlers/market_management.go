package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/marketpadi/backend/config"
	"github.com/marketpadi/backend/models"
	"github.com/marketpadi/backend/utils"
)

// GetAllLocalGovernments returns the authority list.
func GetAllLocalGovernments(w http.ResponseWriter, r *http.Request) {
	var lgas []models.LocalGovernment
	if err := config.DB.Order("name").Find(&lgas).Error; err != nil {
		http.Error(w, "failed to fetch local governments", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lgas)
}

func CreateLocalGovernment(w http.ResponseWriter, r *http.Request) {
	var lga models.LocalGovernment
	if err := json.NewDecoder(r.Body).Decode(&lga); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := config.DB.Create(&lga).Error; err != nil {
		http.Error(w, "failed to create local government", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(lga)
}

// GetAllMarkets returns a paginated market listing, optionally filtered by
// LGA name or market name.
func GetAllMarkets(w http.ResponseWriter, r *http.Request) {
	filter := models.PageFilterFromRequest(r)

	q := config.DB.Model(&models.Market{}).Preload("LocalGovernment")
	if name := r.URL.Query().Get("name"); name != "" {
		q = q.Where("markets.name ILIKE ?", "%"+name+"%")
	}
	if lga := r.URL.Query().Get("lga"); lga != "" {
		q = q.Joins("JOIN local_governments ON local_governments.id = markets.local_government_id").
			Where("local_governments.name ILIKE ?", "%"+lga+"%")
	}

	var markets []models.Market
	page, err := models.Paginate(q.Order("markets.name"), filter, &markets)
	if err != nil {
		http.Error(w, "failed to fetch markets", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(page)
}

func GetMarket(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid market id", http.StatusBadRequest)
		return
	}
	var market models.Market
	if err := config.DB.Preload("LocalGovernment").Preload("Chairman").Preload("Caretaker").
		First(&market, "id = ?", id).Error; err != nil {
		http.Error(w, "market not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(market)
}

func CreateMarket(w http.ResponseWriter, r *http.Request) {
	var market models.Market
	if err := json.NewDecoder(r.Body).Decode(&market); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if market.LocalGovernmentID == uuid.Nil {
		http.Error(w, "localGovernmentId is required", http.StatusBadRequest)
		return
	}
	if len(market.Geofence) > 0 {
		if _, err := utils.ParseGeofence(market.Geofence); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if err := config.DB.Create(&market).Error; err != nil {
		http.Error(w, "failed to create market", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(market)
}

func UpdateMarket(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid market id", http.StatusBadRequest)
		return
	}
	var market models.Market
	if err := config.DB.First(&market, "id = ?", id).Error; err != nil {
		http.Error(w, "market not found", http.StatusNotFound)
		return
	}

	var updates models.Market
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(updates.Geofence) > 0 {
		if _, err := utils.ParseGeofence(updates.Geofence); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	// Cached aggregate columns are owned by report runs, never by API writes.
	if err := config.DB.Model(&market).
		Omit("total_revenue", "total_traders", "compliance_rate", "compliant_traders", "non_compliant_traders", "stats_refreshed_at").
		Updates(map[string]interface{}{
			"name":       updates.Name,
			"location":   updates.Location,
			"latitude":   updates.Latitude,
			"longitude":  updates.Longitude,
			"geofence":   updates.Geofence,
			"facilities": updates.Facilities,
			"capacity":   updates.Capacity,
		}).Error; err != nil {
		http.Error(w, "failed to update market", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(market)
}

func DeleteMarket(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid market id", http.StatusBadRequest)
		return
	}
	if err := config.DB.Delete(&models.Market{}, "id = ?", id).Error; err != nil {
		http.Error(w, "failed to delete market", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type assignRoleReq struct {
	ChairmanID  *uuid.UUID `json:"chairmanId,omitempty"`
	CaretakerID *uuid.UUID `json:"caretakerId,omitempty"`
}

// AssignMarketRoles sets the market's chairman and/or caretaker.
func AssignMarketRoles(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid market id", http.StatusBadRequest)
		return
	}
	var req assignRoleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updates := map[string]interface{}{}
	if req.ChairmanID != nil {
		updates["chairman_id"] = *req.ChairmanID
	}
	if req.CaretakerID != nil {
		updates["caretaker_id"] = *req.CaretakerID
	}
	if len(updates) == 0 {
		http.Error(w, "nothing to assign", http.StatusBadRequest)
		return
	}

	result := config.DB.Model(&models.Market{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		http.Error(w, "failed to assign roles", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "market not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
