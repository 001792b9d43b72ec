package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/marketpadi/backend/config"
	"github.com/marketpadi/backend/models"
)

// ---- Vendors ----

func GetAllVendors(w http.ResponseWriter, r *http.Request) {
	filter := models.PageFilterFromRequest(r)
	q := config.DB.Model(&models.Vendor{})
	if cat := r.URL.Query().Get("category"); cat != "" {
		q = q.Where("category = ?", cat)
	}
	var vendors []models.Vendor
	page, err := models.Paginate(q.Order("business_name"), filter, &vendors)
	if err != nil {
		http.Error(w, "failed to fetch vendors", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func CreateVendor(w http.ResponseWriter, r *http.Request) {
	var v models.Vendor
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	v.IsActive = true
	if err := config.DB.Create(&v).Error; err != nil {
		http.Error(w, "failed to create vendor", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func DeleteVendor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := config.DB.Delete(&models.Vendor{}, "id = ?", id).Error; err != nil {
		http.Error(w, "failed to delete vendor", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- Customers ----

func GetAllCustomers(w http.ResponseWriter, r *http.Request) {
	filter := models.PageFilterFromRequest(r)
	var customers []models.Customer
	page, err := models.Paginate(config.DB.Model(&models.Customer{}).Order("full_name"), filter, &customers)
	if err != nil {
		http.Error(w, "failed to fetch customers", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var c models.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := config.DB.Create(&c).Error; err != nil {
		http.Error(w, "failed to create customer", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// ---- Advertisements ----

func GetAllAdvertisements(w http.ResponseWriter, r *http.Request) {
	filter := models.PageFilterFromRequest(r)
	q := config.DB.Model(&models.Advertisement{}).Preload("Vendor")
	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	var adverts []models.Advertisement
	page, err := models.Paginate(q.Order("created_at DESC"), filter, &adverts)
	if err != nil {
		http.Error(w, "failed to fetch advertisements", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func CreateAdvertisement(w http.ResponseWriter, r *http.Request) {
	var ad models.Advertisement
	if err := json.NewDecoder(r.Body).Decode(&ad); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if ad.Status == "" {
		ad.Status = models.AdvertDraft
	}
	if err := config.DB.Create(&ad).Error; err != nil {
		http.Error(w, "failed to create advertisement", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, ad)
}

// PublishAdvertisement flips a draft advert live, expiring it automatically
// by EndDate during listing.
func PublishAdvertisement(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var ad models.Advertisement
	if err := config.DB.First(&ad, "id = ?", id).Error; err != nil {
		http.Error(w, "advertisement not found", http.StatusNotFound)
		return
	}
	if ad.EndDate != nil && ad.EndDate.Before(time.Now()) {
		http.Error(w, "advertisement end date has passed", http.StatusBadRequest)
		return
	}
	if err := config.DB.Model(&ad).Update("status", models.AdvertActive).Error; err != nil {
		http.Error(w, "failed to publish advertisement", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, ad)
}

func DeleteAdvertisement(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := config.DB.Delete(&models.Advertisement{}, "id = ?", id).Error; err != nil {
		http.Error(w, "failed to delete advertisement", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
