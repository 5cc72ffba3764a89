package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-co-op/gocron"
)

// ---------------------------------------------------------------------------------//
// Handler Helper functions
// --------------------------------------------------------------------------------//

func writeResponse(rw http.ResponseWriter, payLoad ResponsePayload, statusCode int) {
	if statusCode >= http.StatusInternalServerError {
		logg.Error(payLoad.Errors)
	} else if statusCode >= http.StatusBadRequest {
		logg.Info(payLoad.Errors)
	}

	writeJSON(rw, payLoad, statusCode)
}

func writeJSON(rw http.ResponseWriter, body interface{}, statusCode int) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(statusCode)
	json.NewEncoder(rw).Encode(body)
}

func writeErrors(rw http.ResponseWriter, statusCode int, errs ...string) {
	writeResponse(rw, ResponsePayload{Errors: errs}, statusCode)
}

// intQueryParam returns the int value of query param 'key' or 'defaultVal' if it's absent
func intQueryParam(r *http.Request, key string, defaultVal int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return defaultVal, nil
	}

	return strconv.Atoi(value)
}

// requestBaseURL returns the externally visible base address of the server
// as seen by the client that sent r.
func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}

	host := r.Host
	if forwardedHost := r.Header.Get("X-Forwarded-Host"); forwardedHost != "" {
		host = strings.TrimSpace(strings.Split(forwardedHost, ",")[0])
	}

	return scheme + "://" + host
}

// ---------------------------------------------------------------------------------//
// Server Helper functions
// --------------------------------------------------------------------------------//

func serve(server *http.Server) {
	logg.Infof("Rolodex server is listening on port%v", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Fatal(err)
	}
}

func cleanup(scheduler *gocron.Scheduler, backup *sqliteBackup, server *http.Server) {
	scheduler.Stop()

	// Shutdown server gracefully
	ctxShutDown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutDown); err != nil {
		logg.Errorf("Rolodex server shutdown failed:%+s", err)
	}

	// Take a last snapshot once no more requests are being served
	if backup != nil {
		if err := backup.run(); err != nil {
			logg.Error(err)
		}
		backup.close()
	}

	logg.Infof("Rolodex server stopped properly")
}

func fatalOnError(err error) {
	if err != nil {
		logg.Fatal(err)
	}
}
