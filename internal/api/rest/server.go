package rest

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/nemanja-m/mrlabs/internal/catalog"
	"github.com/nemanja-m/mrlabs/internal/shared/config"
	"github.com/nemanja-m/mrlabs/internal/shared/logging"
	"github.com/nemanja-m/mrlabs/internal/shell"
)

type API struct {
	source shell.Source
	shell  *shell.Shell
	logger logging.Logger
}

func NewAPI(source shell.Source, logger logging.Logger) *API {
	return &API{
		source: source,
		shell:  shell.New(source),
		logger: logger,
	}
}

func (a *API) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", a.page)
	mux.HandleFunc("GET /healthz", a.health)
	mux.HandleFunc("GET /api/experiments", a.listExperiments)
	mux.HandleFunc("GET /api/experiments/{name}", a.getExperiment)
	mux.HandleFunc("GET /api/experiments/{name}/script", a.downloadScript)
	mux.HandleFunc("GET /api/experiments/{name}/sample", a.downloadSample)
}

// page handles GET /?experiment=<name>
func (a *API) page(w http.ResponseWriter, r *http.Request) {
	var (
		view shell.View
		err  error
	)
	if name := r.URL.Query().Get("experiment"); name != "" {
		view, err = a.shell.Select(name)
	} else {
		view, err = a.shell.SelectDefault()
	}
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		a.logger.Error("Failed to select experiment", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderPage(w, view); err != nil {
		a.logger.Error("Failed to render page", "experiment", view.Selected, "error", err)
	}
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	a.respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// listExperiments handles GET /api/experiments
func (a *API) listExperiments(w http.ResponseWriter, r *http.Request) {
	names := a.source.Names()
	summaries := make([]ExperimentSummary, 0, len(names))
	for _, name := range names {
		exp, err := a.source.Get(name)
		if err != nil {
			a.logger.Error("Listed experiment is missing", "name", name, "error", err)
			a.respondError(w, http.StatusInternalServerError, "failed to list experiments", "")
			return
		}
		summaries = append(summaries, toExperimentSummary(exp))
	}

	a.respondJSON(w, http.StatusOK, ListExperimentsResponse{
		Experiments: summaries,
		Total:       len(summaries),
	})
}

// getExperiment handles GET /api/experiments/{name}
func (a *API) getExperiment(w http.ResponseWriter, r *http.Request) {
	exp, ok := a.lookup(w, r)
	if !ok {
		return
	}
	a.respondJSON(w, http.StatusOK, toGetExperimentResponse(exp))
}

// downloadScript handles GET /api/experiments/{name}/script
func (a *API) downloadScript(w http.ResponseWriter, r *http.Request) {
	exp, ok := a.lookup(w, r)
	if !ok {
		return
	}
	a.respondArtifact(w, shell.ExportScript(exp))
}

// downloadSample handles GET /api/experiments/{name}/sample
func (a *API) downloadSample(w http.ResponseWriter, r *http.Request) {
	exp, ok := a.lookup(w, r)
	if !ok {
		return
	}

	artifact, err := shell.ExportSample(exp)
	if errors.Is(err, shell.ErrNoSample) {
		a.respondError(w, http.StatusNotFound, shell.ErrNoSample.Error(), exp.SampleFile)
		return
	}
	if err != nil {
		a.logger.Error("Failed to export sample", "name", exp.Name, "error", err)
		a.respondError(w, http.StatusInternalServerError, "failed to export sample", "")
		return
	}
	a.respondArtifact(w, artifact)
}

func (a *API) lookup(w http.ResponseWriter, r *http.Request) (catalog.Experiment, bool) {
	name := r.PathValue("name")
	if name == "" {
		a.respondError(w, http.StatusBadRequest, "experiment name required", "")
		return catalog.Experiment{}, false
	}

	exp, err := a.source.Get(name)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			a.respondError(w, http.StatusNotFound, "experiment not found", name)
			return catalog.Experiment{}, false
		}
		a.logger.Error("Failed to get experiment", "name", name, "error", err)
		a.respondError(w, http.StatusInternalServerError, "failed to get experiment", "")
		return catalog.Experiment{}, false
	}
	return exp, true
}

func (a *API) respondArtifact(w http.ResponseWriter, artifact shell.Artifact) {
	w.Header().Set("Content-Type", artifact.MIMEType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": artifact.Filename,
	}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Data); err != nil {
		a.logger.Warn("Failed to write artifact", "filename", artifact.Filename, "error", err)
	}
}

func (a *API) respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (a *API) respondError(w http.ResponseWriter, statusCode int, error string, message string) {
	resp := ErrorResponse{
		Error:   error,
		Message: message,
		Code:    statusCode,
	}
	a.respondJSON(w, statusCode, resp)
}

func NewServer(cfg config.RESTConfig, source shell.Source, logger logging.Logger) *http.Server {
	api := NewAPI(source, logger)
	mux := http.NewServeMux()
	api.RegisterRoutes(mux)

	handler := ChainMiddleware(
		mux,
		RecoveryMiddleware(logger),
		RequestIDMiddleware,
		LoggingMiddleware(logger),
	)

	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}
