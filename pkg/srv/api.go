/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package srv

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/lightshow/go-fseq/pkg/config"
	"github.com/lightshow/go-fseq/pkg/fseq"
	"github.com/lightshow/go-fseq/pkg/log"
	"github.com/lightshow/go-fseq/pkg/state"
)

const (
	// MaxUploadBytes bounds request bodies. The largest acceptable file is a
	// 64k header area plus five minutes of frames at the minimum step time.
	MaxUploadBytes = 4 << 20
)

type ApiServer struct {
	context.Context
	*config.Config
	*mux.Router
	state *state.State
}

// NewApiServer creates the API server. st may be nil, then nothing is recorded
// and the history endpoints answer 404.
func NewApiServer(ctx context.Context, cfg *config.Config, st *state.State) *ApiServer {
	log.Info("Initializing API server with address: %s port: %d", cfg.Address, cfg.Port)
	s := &ApiServer{
		Context: ctx,
		Config:  cfg,
		state:   st,
	}
	s.configureRouter()
	return s
}

// Handler returns the router wrapped into panic recovery and, from info level on, access logging
func (s *ApiServer) Handler() http.Handler {
	var h http.Handler = s.Router
	if log.Level() >= log.InfoLevel {
		h = handlers.LoggingHandler(log.Writer(), h)
	}
	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)
}

// Run serves until the context is cancelled
func (s *ApiServer) Run() error {
	log.Info("Starting API server: address: %s port: %d", s.Config.Address, s.Config.Port)
	httpServer := &http.Server{
		Handler: s.Handler(),
		Addr:    fmt.Sprintf("%s:%d", s.Config.Address, s.Config.Port),
	}
	go func() {
		<-s.Context.Done()
		httpServer.Close()
	}()
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *ApiServer) configureRouter() {
	s.Router = mux.NewRouter()
	subRouter := s.Router.PathPrefix("/api").Subrouter()
	subRouter.HandleFunc("/validate", s.handleValidate()).Methods("POST")
	subRouter.HandleFunc("/history", s.handleHistory()).Methods("GET")
	subRouter.HandleFunc("/history/{checksum:[0-9a-f]{64}}", s.handleHistoryGet()).Methods("GET")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Error while encoding response: %s", err)
	}
}

// handleValidate validates the request body. Invalid sequences are answered
// with 422 and a record carrying the error message.
func (s *ApiServer) handleValidate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxUploadBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
				return
			}
			log.Warning("Error while reading validate request body: %s", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Debug("Handling validate request: name: %s size: %d", name, len(data))

		checksum, err := state.Checksum(bytes.NewReader(data))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		res, validationErr := fseq.Validate(bytes.NewReader(data))
		if validationErr != nil && !fseq.IsValidationError(validationErr) {
			http.Error(w, validationErr.Error(), http.StatusInternalServerError)
			return
		}

		record := state.NewRecord(name, checksum, res, validationErr)
		if s.state != nil {
			if err := s.state.Put(record); err != nil {
				log.Error("Error while storing validation record: %s", err)
			}
		}

		status := http.StatusOK
		if validationErr != nil {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, record)
	}
}

func (s *ApiServer) handleHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Handling history request")
		if s.state == nil {
			http.Error(w, ErrHistoryDisabled{}.Error(), http.StatusNotFound)
			return
		}
		records, err := s.state.List()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

func (s *ApiServer) handleHistoryGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		log.Debug("Handling history request: checksum: %s", vars["checksum"])
		if s.state == nil {
			http.Error(w, ErrHistoryDisabled{}.Error(), http.StatusNotFound)
			return
		}
		record, err := s.state.Get(vars["checksum"])
		if err != nil {
			var notFound state.ErrRecordNotFound
			if errors.As(err, &notFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}
