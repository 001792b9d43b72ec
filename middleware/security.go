package middleware

import (
	"log"
	"net"
	"net/http"
	"os"
	"strings"
)

// APIClientConfig describes what a known API client may do.
type APIClientConfig struct {
	AppName        string
	AllowedMethods map[string]bool
	SkipIPCheck    bool
}

var apiKeyConfigs = map[string]APIClientConfig{
	os.Getenv("MOBILE_APP_KEY"): {
		AppName: "CollectorApp",
		AllowedMethods: map[string]bool{
			http.MethodGet:  true,
			http.MethodPost: true,
		},
		SkipIPCheck: true,
	},
	os.Getenv("ADMIN_PORTAL_KEY"): {
		AppName: "AdminPortal",
		AllowedMethods: map[string]bool{
			http.MethodGet:    true,
			http.MethodPost:   true,
			http.MethodPut:    true,
			http.MethodDelete: true,
		},
		SkipIPCheck: true,
	},
	os.Getenv("PARTNER_PORTAL_KEY"): {
		AppName: "PartnerPortal",
		AllowedMethods: map[string]bool{
			http.MethodGet: true,
		},
		SkipIPCheck: false,
	},
}

var whitelistedIPs = map[string]bool{
	"127.0.0.1": true,
	"::1":       true,
}

// SecurityMiddleware enforces API key, method and IP checks per client app.
func SecurityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get("x-api-key")
		clientConfig, ok := apiKeyConfigs[apiKey]
		if !ok || apiKey == "" {
			log.Printf("[SECURITY] blocked - invalid API key. IP=%s Path=%s", getClientIP(r), r.URL.Path)
			http.Error(w, "Invalid or missing API key", http.StatusUnauthorized)
			return
		}
		if !clientConfig.AllowedMethods[r.Method] {
			log.Printf("[SECURITY] blocked - method %s not allowed for %s", r.Method, clientConfig.AppName)
			http.Error(w, "method not allowed for this client", http.StatusMethodNotAllowed)
			return
		}
		if !clientConfig.SkipIPCheck && !whitelistedIPs[getClientIP(r)] {
			log.Printf("[SECURITY] blocked - IP %s not whitelisted for %s", getClientIP(r), clientConfig.AppName)
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
