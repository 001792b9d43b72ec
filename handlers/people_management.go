package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/marketpadi/backend/config"
	"github.com/marketpadi/backend/models"
)

// pathID parses the {id} route variable, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ---- Chairmen ----

func GetAllChairmen(w http.ResponseWriter, r *http.Request) {
	filter := models.PageFilterFromRequest(r)
	var chairmen []models.Chairman
	page, err := models.Paginate(config.DB.Model(&models.Chairman{}).Order("full_name"), filter, &chairmen)
	if err != nil {
		http.Error(w, "failed to fetch chairmen", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func CreateChairman(w http.ResponseWriter, r *http.Request) {
	var c models.Chairman
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := config.DB.Create(&c).Error; err != nil {
		http.Error(w, "failed to create chairman", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func DeleteChairman(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := config.DB.Delete(&models.Chairman{}, "id = ?", id).Error; err != nil {
		http.Error(w, "failed to delete chairman", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- Caretakers ----

func GetAllCaretakers(w http.ResponseWriter, r *http.Request) {
	filter := models.PageFilterFromRequest(r)
	q := config.DB.Model(&models.Caretaker{})
	if marketID := r.URL.Query().Get("marketId"); marketID != "" {
		id, err := uuid.Parse(marketID)
		if err != nil {
			http.Error(w, "invalid marketId", http.StatusBadRequest)
			return
		}
		q = q.Where("market_id = ?", id)
	}
	var caretakers []models.Caretaker
	page, err := models.Paginate(q.Order("full_name"), filter, &caretakers)
	if err != nil {
		http.Error(w, "failed to fetch caretakers", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func CreateCaretaker(w http.ResponseWriter, r *http.Request) {
	var c models.Caretaker
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := config.DB.Create(&c).Error; err != nil {
		http.Error(w, "failed to create caretaker", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func DeleteCaretaker(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := config.DB.Delete(&models.Caretaker{}, "id = ?", id).Error; err != nil {
		http.Error(w, "failed to delete caretaker", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- GoodBoys ----

func GetAllGoodBoys(w http.ResponseWriter, r *http.Request) {
	filter := models.PageFilterFromRequest(r)
	q := config.DB.Model(&models.GoodBoy{})
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
	var goodBoys []models.GoodBoy
	page, err := models.Paginate(q.Order("full_name"), filter, &goodBoys)
	if err != nil {
		http.Error(w, "failed to fetch collectors", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func CreateGoodBoy(w http.ResponseWriter, r *http.Request) {
	var g models.GoodBoy
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if g.MarketID == uuid.Nil {
		http.Error(w, "marketId is required", http.StatusBadRequest)
		return
	}
	g.IsActive = true
	if err := config.DB.Create(&g).Error; err != nil {
		http.Error(w, "failed to create collector", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

func DeactivateGoodBoy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	result := config.DB.Model(&models.GoodBoy{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		http.Error(w, "failed to deactivate collector", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "collector not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
