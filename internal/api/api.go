package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/IlyasAtabaev731/vending-machine/internal/config"
	"github.com/IlyasAtabaev731/vending-machine/internal/domain/models"
	"github.com/IlyasAtabaev731/vending-machine/internal/lib/jwt"
	"github.com/IlyasAtabaev731/vending-machine/internal/vending"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

const requestIDHeader = "X-Request-ID"

type ctxKey int

const (
	ctxRequestID ctxKey = iota
	ctxOperator
)

type APIServer struct {
	config  *config.Config
	logger  *slog.Logger
	server  *http.Server
	machine *vending.Machine
}

func New(config *config.Config, logger *slog.Logger, machine *vending.Machine) *APIServer {
	s := &APIServer{
		config: config,
		logger: logger,
		server: &http.Server{
			Addr: config.ApiHost + ":" + strconv.Itoa(config.ApiPort),
		},
		machine: machine,
	}
	s.configureRouter()
	return s
}

func (s *APIServer) Start() error {
	s.logger.Info("Starting server", slog.String("port", strconv.Itoa(s.config.ApiPort)))

	return s.server.ListenAndServe()
}

func (s *APIServer) MustStart() {
	err := s.Start()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic("Failed to start server: " + err.Error())
	}
}

func (s *APIServer) Stop(ctx context.Context) error {
	defer s.logger.Info("Server successfully stopped")
	return s.server.Shutdown(ctx)
}

func (s *APIServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *APIServer) configureRouter() {
	router := mux.NewRouter()
	router.Use(s.requestID)
	router.HandleFunc("/api/inventory", s.inventoryHandler()).Methods("GET")
	router.HandleFunc("/api/purchase/{item}", s.purchaseHandler()).Methods("POST")
	router.HandleFunc("/api/auth", s.authHandler()).Methods("POST")
	router.HandleFunc("/api/stock", s.authenticate(s.stockHandler())).Methods("GET")
	router.HandleFunc("/api/restock", s.authenticate(s.restockHandler())).Methods("POST")
	router.HandleFunc("/api/bank", s.authenticate(s.bankHandler())).Methods("GET")
	router.HandleFunc("/api/bank", s.authenticate(s.loadCoinsHandler())).Methods("POST")
	s.server.Handler = router
}

func (s *APIServer) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxRequestID, id)))
	})
}

func (s *APIServer) log(r *http.Request) *slog.Logger {
	id, _ := r.Context().Value(ctxRequestID).(string)
	log := s.logger.With(slog.String("request_id", id))
	if operator, ok := r.Context().Value(ctxOperator).(string); ok {
		log = log.With(slog.String("operator", operator))
	}
	return log
}

type AuthRequest struct {
	Key string `json:"key"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

func (s *APIServer) authHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AuthRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := s.machine.Authorize(req.Key); err != nil {
			s.log(r).Warn("Rejected restock key")
			s.writeError(w, r, err)
			return
		}

		token, err := jwt.NewToken(jwt.RoleOperator, s.config.JwtSecret, s.config.TokenTTL)
		if err != nil {
			s.log(r).Error("Failed to issue token", "error", err)
			http.Error(w, "Failed to issue token", http.StatusInternalServerError)
			return
		}

		s.writeJSON(w, r, AuthResponse{Token: token})
	}
}

func (s *APIServer) authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenHeader := r.Header.Get("Authorization")
		if tokenHeader == "" {
			http.Error(w, "Missing token", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(tokenHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid token format", http.StatusUnauthorized)
			return
		}

		claims, err := jwt.ParseToken(parts[1], s.config.JwtSecret)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		r = r.WithContext(context.WithValue(r.Context(), ctxOperator, claims["sub"]))
		next(w, r)
	}
}

func (s *APIServer) inventoryHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, r, s.machine.Inventory())
	}
}

type PurchaseRequest struct {
	Payment decimal.Decimal `json:"payment"`
}

func (s *APIServer) purchaseHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		item := mux.Vars(r)["item"]

		var req PurchaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		change, err := s.machine.Purchase(item, req.Payment)
		if err != nil {
			s.log(r).Info("Purchase rejected", slog.String("item", item), slog.String("payment", req.Payment.String()), "error", err)
			s.writeError(w, r, err)
			return
		}

		s.log(r).Info("Purchase", slog.String("item", item), slog.String("payment", req.Payment.String()))
		s.writeJSON(w, r, change)
	}
}

func (s *APIServer) stockHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		stock, err := s.machine.GetStock(s.config.RestockKey)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, r, stock)
	}
}

type RestockRequest struct {
	Name   string              `json:"name"`
	Amount int                 `json:"amount"`
	Cost   decimal.NullDecimal `json:"cost"`
}

func (s *APIServer) restockHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RestockRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := s.machine.Restock(s.config.RestockKey, req.Name, req.Amount, req.Cost); err != nil {
			s.log(r).Info("Restock rejected", slog.String("item", req.Name), "error", err)
			s.writeError(w, r, err)
			return
		}

		s.log(r).Info("Restock", slog.String("item", req.Name), slog.Int("amount", req.Amount))
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *APIServer) bankHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		bank, err := s.machine.GetBank(s.config.RestockKey)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, r, bank)
	}
}

func (s *APIServer) loadCoinsHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var coins models.Bank
		if err := json.NewDecoder(r.Body).Decode(&coins); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := s.machine.LoadCoins(s.config.RestockKey, coins); err != nil {
			s.writeError(w, r, err)
			return
		}

		s.log(r).Info("Coins loaded", slog.Any("coins", coins))
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *APIServer) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log(r).Error("Failed to encode response", "error", err)
	}
}

func (s *APIServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.log(r).Error("Unexpected machine error", "error", err)
	}
	http.Error(w, err.Error(), status)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, vending.ErrInvalidRestockKey):
		return http.StatusUnauthorized
	case errors.Is(err, vending.ErrInvalidItem):
		return http.StatusNotFound
	case errors.Is(err, vending.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, vending.ErrInsufficientStock),
		errors.Is(err, vending.ErrInsufficientChange):
		return http.StatusConflict
	case errors.Is(err, vending.ErrInvalidCost),
		errors.Is(err, vending.ErrInvalidAmount),
		errors.Is(err, vending.ErrInvalidCoins):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
