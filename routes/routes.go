package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/marketpadi/backend/handlers"
	"github.com/marketpadi/backend/middleware"
	"github.com/marketpadi/backend/models"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/register", handlers.Register).Methods("POST")
	r.HandleFunc("/login", handlers.Login).Methods("POST")
	r.HandleFunc("/token", handlers.GetCurrentUser).Methods("GET")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir("./uploads"))),
	)

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.SecurityMiddleware)
	api.Use(middleware.JWTMiddleware)

	// User profile endpoint
	api.HandleFunc("/profile", handleProfile).Methods("GET")

	registerLevyRoutes(api)
	registerDashboardRoutes(api)
	registerMarketRoutes(api)
	registerPeopleRoutes(api)
	registerCommerceRoutes(api)

	// =====================================================
	// Admin Routes (platform administration)
	// =====================================================
	admin := api.PathPrefix("/admin").Subrouter()
	registerAdminRoutes(admin)

	return r
}

// handleProfile returns the authenticated user's claims
func handleProfile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	response := map[string]interface{}{
		"userID":   claims.UserID,
		"name":     claims.Name,
		"phone":    claims.Phone,
		"role":     claims.Role,
		"marketId": claims.MarketID,
	}
	json.NewEncoder(w).Encode(response)
}

// registerLevyRoutes registers levy setup and payment endpoints
func registerLevyRoutes(api *mux.Router) {
	collectors := []string{models.RoleChairman, models.RoleCaretaker, models.RoleGoodBoy}
	managers := []string{models.RoleChairman, models.RoleCaretaker}

	// Setup configuration and resolution
	api.Handle("/levy/setups", middleware.RequireRole(managers,
		http.HandlerFunc(handlers.ConfigureLevySetup))).Methods("POST")
	api.Handle("/markets/{marketId}/levy/setups", middleware.RequireRole(collectors,
		http.HandlerFunc(handlers.GetActiveLevySetups))).Methods("GET")
	api.Handle("/markets/{marketId}/levy/setups/history", middleware.RequireRole(managers,
		http.HandlerFunc(handlers.GetLevySetupHistory))).Methods("GET")
	api.Handle("/markets/{marketId}/levy/rate", middleware.RequireRole(collectors,
		http.HandlerFunc(handlers.ResolveLevyRate))).Methods("GET")

	// Payment recording and lifecycle
	api.Handle("/levy/payments", middleware.RequireRole(collectors,
		http.HandlerFunc(handlers.RecordLevyPayment))).Methods("POST")
	api.Handle("/levy/payments", middleware.RequireRole(collectors,
		http.HandlerFunc(handlers.GetLevyPayments))).Methods("GET")
	api.Handle("/levy/payments/{id}", middleware.RequireRole(collectors,
		http.HandlerFunc(handlers.GetLevyPayment))).Methods("GET")
	api.Handle("/levy/payments/{id}/confirm", middleware.RequireRole(managers,
		http.HandlerFunc(handlers.ConfirmLevyPayment))).Methods("POST")
	api.Handle("/levy/payments/{id}/reject", middleware.RequireRole(managers,
		http.HandlerFunc(handlers.RejectLevyPayment))).Methods("POST")
}

// registerDashboardRoutes registers analytics and export endpoints
func registerDashboardRoutes(api *mux.Router) {
	viewers := []string{models.RoleChairman, models.RoleCaretaker}

	api.Handle("/dashboard", middleware.RequireRole(viewers,
		http.HandlerFunc(handlers.GetDashboard))).Methods("GET")
	api.Handle("/markets/{id}/stats", middleware.RequireRole(viewers,
		http.HandlerFunc(handlers.GetMarketStats))).Methods("GET")
	api.Handle("/reports/levy/csv", middleware.RequireRole(viewers,
		http.HandlerFunc(handlers.ExportLevyReportToCSV))).Methods("GET")
	api.Handle("/reports/levy/excel", middleware.RequireRole(viewers,
		http.HandlerFunc(handlers.ExportLevyReportToExcel))).Methods("GET")
}

// registerMarketRoutes registers market and trader endpoints
func registerMarketRoutes(api *mux.Router) {
	managers := []string{models.RoleChairman, models.RoleCaretaker}
	collectors := []string{models.RoleChairman, models.RoleCaretaker, models.RoleGoodBoy}

	api.Handle("/markets", middleware.RequireRole(collectors,
		http.HandlerFunc(handlers.GetAllMarkets))).Methods("GET")
	api.Handle("/markets/{id}", middleware.RequireRole(collectors,
		http.HandlerFunc(handlers.GetMarket))).Methods("GET")

	api.Handle("/traders", middleware.RequireRole(collectors,
		http.HandlerFunc(handlers.GetAllTraders))).Methods("GET")
	api.Handle("/traders", middleware.RequireRole(managers,
		http.HandlerFunc(handlers.CreateTrader))).Methods("POST")
	api.Handle("/traders/{id}", middleware.RequireRole(collectors,
		http.HandlerFunc(handlers.GetTrader))).Methods("GET")
	api.Handle("/traders/{id}", middleware.RequireRole(managers,
		http.HandlerFunc(handlers.UpdateTrader))).Methods("PUT")
	api.Handle("/traders/{id}", middleware.RequireRole(managers,
		http.HandlerFunc(handlers.DeleteTrader))).Methods("DELETE")
	api.Handle("/traders/{id}/building-types", middleware.RequireRole(managers,
		http.HandlerFunc(handlers.SetBuildingTypes))).Methods("PUT")
}

// registerPeopleRoutes registers market personnel endpoints
func registerPeopleRoutes(api *mux.Router) {
	chairmen := []string{models.RoleChairman}
	managers := []string{models.RoleChairman, models.RoleCaretaker}

	api.Handle("/caretakers", middleware.RequireRole(chairmen,
		http.HandlerFunc(handlers.GetAllCaretakers))).Methods("GET")
	api.Handle("/caretakers", middleware.RequireRole(chairmen,
		http.HandlerFunc(handlers.CreateCaretaker))).Methods("POST")
	api.Handle("/caretakers/{id}", middleware.RequireRole(chairmen,
		http.HandlerFunc(handlers.DeleteCaretaker))).Methods("DELETE")

	api.Handle("/goodboys", middleware.RequireRole(managers,
		http.HandlerFunc(handlers.GetAllGoodBoys))).Methods("GET")
	api.Handle("/goodboys", middleware.RequireRole(managers,
		http.HandlerFunc(handlers.CreateGoodBoy))).Methods("POST")
	api.Handle("/goodboys/{id}/deactivate", middleware.RequireRole(managers,
		http.HandlerFunc(handlers.DeactivateGoodBoy))).Methods("POST")
}

// registerCommerceRoutes registers vendor, customer and advertisement endpoints
func registerCommerceRoutes(api *mux.Router) {
	managers := []string{models.RoleChairman, models.RoleCaretaker}

	api.Handle("/vendors", middleware.RequireRole(managers,
		http.HandlerFunc(handlers.GetAllVendors))).Methods("GET")
	api.Handle("/vendors", middleware.RequireRole(managers,
		http.HandlerFunc(handlers.CreateVendor))).Methods("POST")
	api.Handle("/vendors/{id}", middleware.RequireRole(managers,
		http.HandlerFunc(handlers.DeleteVendor))).Methods("DELETE")

	api.Handle("/customers", middleware.RequireRole(managers,
		http.HandlerFunc(handlers.GetAllCustomers))).Methods("GET")
	api.Handle("/customers", middleware.RequireRole(managers,
		http.HandlerFunc(handlers.CreateCustomer))).Methods("POST")

	api.Handle("/advertisements", middleware.RequireRole(managers,
		http.HandlerFunc(handlers.GetAllAdvertisements))).Methods("GET")
	api.Handle("/advertisements", middleware.RequireRole(managers,
		http.HandlerFunc(handlers.CreateAdvertisement))).Methods("POST")
	api.Handle("/advertisements/{id}/publish", middleware.RequireRole(managers,
		http.HandlerFunc(handlers.PublishAdvertisement))).Methods("POST")
	api.Handle("/advertisements/{id}", middleware.RequireRole(managers,
		http.HandlerFunc(handlers.DeleteAdvertisement))).Methods("DELETE")
	api.Handle("/advertisements/media", middleware.RequireRole(managers,
		http.HandlerFunc(handlers.UploadAdvertMedia))).Methods("POST")
}

// registerAdminRoutes registers platform-admin-only routes. RequireRole always
// admits Admin, so an empty role list restricts the route to admins.
func registerAdminRoutes(admin *mux.Router) {
	adminOnly := []string{}

	admin.Handle("/lgas", middleware.RequireRole(adminOnly,
		http.HandlerFunc(handlers.GetAllLocalGovernments))).Methods("GET")
	admin.Handle("/lgas", middleware.RequireRole(adminOnly,
		http.HandlerFunc(handlers.CreateLocalGovernment))).Methods("POST")

	admin.Handle("/markets", middleware.RequireRole(adminOnly,
		http.HandlerFunc(handlers.CreateMarket))).Methods("POST")
	admin.Handle("/markets/{id}", middleware.RequireRole(adminOnly,
		http.HandlerFunc(handlers.UpdateMarket))).Methods("PUT")
	admin.Handle("/markets/{id}", middleware.RequireRole(adminOnly,
		http.HandlerFunc(handlers.DeleteMarket))).Methods("DELETE")
	admin.Handle("/markets/{id}/roles", middleware.RequireRole(adminOnly,
		http.HandlerFunc(handlers.AssignMarketRoles))).Methods("PUT")

	admin.Handle("/chairmen", middleware.RequireRole(adminOnly,
		http.HandlerFunc(handlers.GetAllChairmen))).Methods("GET")
	admin.Handle("/chairmen", middleware.RequireRole(adminOnly,
		http.HandlerFunc(handlers.CreateChairman))).Methods("POST")
	admin.Handle("/chairmen/{id}", middleware.RequireRole(adminOnly,
		http.HandlerFunc(handlers.DeleteChairman))).Methods("DELETE")
}
