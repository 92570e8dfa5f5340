package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/newrelic/go-agent/v3/newrelic"
	log "github.com/sirupsen/logrus"

	"stripe-payments/internal/database"
	"stripe-payments/internal/functions"
	"stripe-payments/internal/model"
)

// Server is the HTTP ingress for platform lifecycle events and for the
// application's charge record writes. A handler failure maps to a 500 so
// the delivering platform retries per its own policy.
type Server struct {
	port       int
	db         database.Client
	handlers   *functions.Handlers
	jwtKey     string
	nrApp      *newrelic.Application
	httpServer *http.Server
}

func NewServer(port int, db database.Client, handlers *functions.Handlers, jwtKey string, nrApp *newrelic.Application) *Server {
	return &Server{
		port:     port,
		db:       db,
		handlers: handlers,
		jwtKey:   jwtKey,
		nrApp:    nrApp,
	}
}

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc(s.instrument("/events/user-created", s.authenticate(s.userCreated))).Methods("POST")
	router.HandleFunc(s.instrument("/events/user-deleted", s.authenticate(s.userDeleted))).Methods("POST")
	router.HandleFunc(s.instrument("/users/{userID}/charges/{chargeID}", s.authenticate(s.writeCharge))).Methods("POST")
	router.HandleFunc(s.instrument("/users/{userID}/charges/{chargeID}", s.authenticate(s.getCharge))).Methods("GET")

	return router
}

// instrument wraps a route with the New Relic agent; with no agent
// configured the handler passes through unchanged.
func (s *Server) instrument(pattern string, handler http.HandlerFunc) (string, http.HandlerFunc) {
	return newrelic.WrapHandleFunc(s.nrApp, pattern, handler)
}

func (s *Server) Run() error {
	address := "0.0.0.0"

	log.Printf("listening requests at %v:%v", address, s.port)

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%v:%v", address, s.port),
		Handler: s.routes(),
	}

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) userCreated(w http.ResponseWriter, r *http.Request) {
	var event UserCreatedEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.handlers.UserCreated(model.UserRecord(event)); err != nil {
		log.Errorf("handling user-created event for %s: %v", event.UID, err)
		http.Error(w, "handling user-created event", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) userDeleted(w http.ResponseWriter, r *http.Request) {
	var event UserDeletedEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.handlers.UserDeleted(event.UID); err != nil {
		log.Errorf("handling user-deleted event for %s: %v", event.UID, err)
		http.Error(w, "handling user-deleted event", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// writeCharge persists the application's charge request and then runs the
// charge workflow on the value that was written, mirroring the database
// trigger contract. Repeating the request re-delivers the event.
func (s *Server) writeCharge(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var request WriteChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if request.Amount <= 0 {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}

	record, err := s.db.UpsertChargeAmount(vars["userID"], vars["chargeID"], request.Amount)
	if err != nil {
		log.Errorf("writing charge record %s/%s: %v", vars["userID"], vars["chargeID"], err)
		http.Error(w, "writing charge record", http.StatusInternalServerError)
		return
	}

	if err := s.handlers.ChargeWritten(record); err != nil {
		log.Errorf("handling charge write %s/%s: %v", vars["userID"], vars["chargeID"], err)
		http.Error(w, "handling charge write", http.StatusInternalServerError)
		return
	}

	record, err = s.db.GetCharge(vars["userID"], vars["chargeID"])
	if err != nil {
		http.Error(w, "reading charge record", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)

	if err := json.NewEncoder(w).Encode(record); err != nil {
		log.Errorf("encoding charge record: %v", err)
	}
}

func (s *Server) getCharge(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	record, err := s.db.GetCharge(vars["userID"], vars["chargeID"])
	if err != nil {
		http.Error(w, "reading charge record", http.StatusInternalServerError)
		return
	}
	if record == nil {
		http.Error(w, "charge not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(record); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
