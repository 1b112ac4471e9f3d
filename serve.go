package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
)

// maxUploadBytes bounds the size of an uploaded trace.
const maxUploadBytes = 64 << 20

// server exposes a viewer over HTTP: the chart page with an upload form,
// an upload endpoint and the current layout as JSON.
type server struct {
	viewer *viewer
	config Config
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleChart)
	mux.HandleFunc("/load", s.handleLoad)
	mux.HandleFunc("/api/layout.json", s.handleLayoutJSON)
	return mux
}

func (s *server) handleChart(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	layout, source, loadErr := s.viewer.Snapshot()
	page := htmlPage{
		Source: source,
		Layout: layout,
		Config: s.config,
		Served: true,
	}
	if loadErr != nil {
		page.Error = loadErr.Error()
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := writeHTML(w, page); err != nil {
		log.Printf("template error: %v", err)
	}
}

// handleLoad accepts a multipart upload in the "trace" field. The browser is
// always sent back to the chart, which shows the new layout or the error.
func (s *server) handleLoad(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("trace")
	if err != nil {
		http.Error(w, fmt.Sprintf("missing trace upload: %v", err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	if err := s.viewer.Load(header.Filename, file); err != nil {
		log.Printf("load %s: %v", header.Filename, err)
	} else {
		log.Printf("loaded %s", header.Filename)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *server) handleLayoutJSON(w http.ResponseWriter, r *http.Request) {
	layout, _, _ := s.viewer.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(layout); err != nil {
		log.Printf("encode layout: %v", err)
	}
}

// listenAndServe runs the server until ctx is cancelled.
func (s *server) listenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	log.Printf("timerflame on %s", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
