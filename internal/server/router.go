// Package server monta as rotas HTTP do CRM.
package server

import (
	"net/http"
	"strings"

	"github.com/KromaEnergia/api-crm/internal/actionitem"
	"github.com/KromaEnergia/api-crm/internal/auth"
	"github.com/KromaEnergia/api-crm/internal/client"
	"github.com/KromaEnergia/api-crm/internal/config"
	"github.com/KromaEnergia/api-crm/internal/deal"
	"github.com/KromaEnergia/api-crm/internal/paymentschedule"
	"github.com/KromaEnergia/api-crm/internal/stagehistory"
	"github.com/KromaEnergia/api-crm/internal/user"
	"github.com/KromaEnergia/api-crm/internal/utils"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Deps são as dependências compartilhadas pelos handlers.
type Deps struct {
	DB     *gorm.DB
	Config config.Config
	Logger logrus.FieldLogger
	Issuer *auth.TokenIssuer
}

// NewRouter registra todas as rotas sob o prefixo da API.
// Ordem dos middlewares: recovery, request id, logging, CORS.
func NewRouter(d Deps) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	r.HandleFunc("/healthz", healthz(d.DB)).Methods(http.MethodGet)

	api := r
	if prefix := strings.TrimRight(d.Config.APIPrefix, "/"); prefix != "" {
		api = r.PathPrefix(prefix).Subrouter()
		api.NotFoundHandler = r.NotFoundHandler
		api.MethodNotAllowedHandler = r.MethodNotAllowedHandler
	}
	protected := auth.Middleware(d.Issuer)

	userHandler := user.NewHandler(d.DB, d.Issuer, d.Logger)
	clientHandler := client.NewHandler(d.DB, d.Logger, d.Config.PhoneRegion)
	dealHandler := deal.NewHandler(d.DB, d.Logger)
	historyHandler := stagehistory.NewHandler(d.DB, d.Logger)
	paymentHandler := paymentschedule.NewHandler(d.DB, d.Logger)
	itemHandler := actionitem.NewHandler(d.DB, d.Logger)

	// Usuários e login
	api.HandleFunc("/auth/login", userHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/users", userHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/users", userHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/users/{id:[0-9]+}", userHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/users/{id:[0-9]+}", userHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/users/{id:[0-9]+}", userHandler.Delete).Methods(http.MethodDelete)

	// Clientes
	api.HandleFunc("/clients", clientHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/clients", clientHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/clients/{id:[0-9]+}", clientHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/clients/{id:[0-9]+}", clientHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/clients/{id:[0-9]+}", clientHandler.Delete).Methods(http.MethodDelete)

	// Deals; listagem, estatísticas e exportação exigem token
	api.Handle("/deals", protected(http.HandlerFunc(dealHandler.List))).Methods(http.MethodGet)
	api.Handle("/deals/export", protected(http.HandlerFunc(dealHandler.Export))).Methods(http.MethodGet)
	api.Handle("/stats/deals", protected(http.HandlerFunc(dealHandler.DealStats))).Methods(http.MethodGet)
	api.Handle("/stats/payments", protected(http.HandlerFunc(dealHandler.PaymentStats))).Methods(http.MethodGet)
	api.Handle("/stats/clients", protected(http.HandlerFunc(dealHandler.ClientStats))).Methods(http.MethodGet)
	api.HandleFunc("/deals", dealHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/deals/{id:[0-9]+}", dealHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/deals/{id:[0-9]+}", dealHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/deals/{id:[0-9]+}", dealHandler.Delete).Methods(http.MethodDelete)

	// Histórico de etapas (somente leitura)
	api.HandleFunc("/deals/{id:[0-9]+}/stage_history", historyHandler.ListByDeal).Methods(http.MethodGet)

	// Parcelas
	api.HandleFunc("/deals/{id:[0-9]+}/payment_schedules", paymentHandler.ListByDeal).Methods(http.MethodGet)
	api.HandleFunc("/deals/{id:[0-9]+}/payment_schedules", paymentHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/payment_schedules/{id:[0-9]+}", paymentHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/payment_schedules/{id:[0-9]+}", paymentHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/payment_schedules/{id:[0-9]+}", paymentHandler.Delete).Methods(http.MethodDelete)

	// Tarefas
	api.HandleFunc("/deals/{id:[0-9]+}/action_items", itemHandler.ListByDeal).Methods(http.MethodGet)
	api.HandleFunc("/deals/{id:[0-9]+}/action_items", itemHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/action_items/{id:[0-9]+}", itemHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/action_items/{id:[0-9]+}", itemHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/action_items/{id:[0-9]+}", itemHandler.Delete).Methods(http.MethodDelete)

	var h http.Handler = r
	h = corsHandler(d.Config.CORSOrigins).Handler(h)
	h = logging(d.Logger)(h)
	h = requestID(h)
	h = recovery(d.Logger)(h)
	return h
}

func healthz(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			utils.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteMessage(w, http.StatusNotFound, "Resource not found")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	utils.WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
}
