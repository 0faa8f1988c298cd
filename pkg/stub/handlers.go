// Package stub is a fake storefront backend for local development and
// integration tests. It serves the demo catalog and honors the auth
// redirect handshake contract without a real identity provider.
package stub

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const demoToken = "stub-session-token"

type Options struct {
	// IdentityProviderURL is the base of the fake provider the stub
	// redirects sign-in/sign-out to.
	IdentityProviderURL string
}

func Router(opts Options) http.Handler {
	if opts.IdentityProviderURL == "" {
		opts.IdentityProviderURL = "https://idp.example"
	}

	h := &handlers{opts: opts}

	r := mux.NewRouter()
	s := r.PathPrefix("/api/v1").Subrouter()

	s.HandleFunc("/auth/Login", h.login).Methods(http.MethodPost)
	s.HandleFunc("/auth/Logout", h.logout).Methods(http.MethodPost)
	s.HandleFunc("/auth/GetMyProfile", h.myProfile).Methods(http.MethodPost)
	s.HandleFunc("/products", h.listProducts).Methods(http.MethodGet)
	s.HandleFunc("/products/{ID}", h.getProduct).Methods(http.MethodGet)
	s.HandleFunc("/patients/{ID}", h.getPatient).Methods(http.MethodGet)
	s.HandleFunc("/patients/{ID}/orders", h.listOrders).Methods(http.MethodGet)
	s.HandleFunc("/patients/{ID}/prescriptions", h.emptyPage).Methods(http.MethodGet)
	s.HandleFunc("/patients/{ID}/appointments", h.emptyPage).Methods(http.MethodGet)

	return logMiddleware(r)
}

type handlers struct {
	opts Options
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"Username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"IsSuccess":   true,
		"RedirectURL": h.opts.IdentityProviderURL + "/authorize",
	})
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"IsSuccess":   true,
		"RedirectURL": h.opts.IdentityProviderURL + "/logout",
	})
}

func (h *handlers) myProfile(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "Bearer "+demoToken {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"Id":             "usr-1",
		"ExternalUserId": "ext-42",
		"Username":       "demo",
		"Email":          "demo@example.com",
		"FirstName":      "Demo",
		"LastName":       "User",
		"Gender":         "",
	})
}

// DemoToken is the bearer credential the stub accepts.
func DemoToken() string { return demoToken }

func (h *handlers) listProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	matched := make([]product, 0, len(demoProducts))
	for _, p := range demoProducts {
		if category == "" || p.Category == category {
			matched = append(matched, p)
		}
	}

	writeJSON(w, http.StatusOK, envelope{Data: pageOf(matched)})
}

func (h *handlers) getProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["ID"]
	for _, p := range demoProducts {
		if p.ID == id {
			writeJSON(w, http.StatusOK, envelope{Data: p})
			return
		}
	}
	http.NotFound(w, r)
}

func (h *handlers) getPatient(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{Data: map[string]any{
		"id":        mux.Vars(r)["ID"],
		"firstName": "Demo",
		"lastName":  "User",
		"email":     "demo@example.com",
	}})
}

func (h *handlers) listOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{Data: pageOf(demoOrders)})
}

func (h *handlers) emptyPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{Data: pageOf([]struct{}{})})
}

type envelope struct {
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

type listPage struct {
	Data  any `json:"data"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func pageOf[T any](items []T) listPage {
	return listPage{Data: items, Total: len(items), Page: 1, Limit: 20}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithField("err", err).Error("write response")
	}
}

func logMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		}).Info("got a new request")
		h.ServeHTTP(w, r)
	})
}
