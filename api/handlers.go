package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"statscope/domain/analysis"
	"statscope/domain/core"
	"statscope/domain/dataset"
	"statscope/internal/testkit"
	"statscope/report"
)

// analyzeRequest is the JSON shape for one analysis run. Values arrive as
// raw strings; the engine's classifier performs all parsing.
type analyzeRequest struct {
	Name        string                 `json:"name"`
	ExplainMode analysis.ExplainMode   `json:"explain_mode,omitempty"`
	Columns     []analyzeRequestColumn `json:"columns"`
}

type analyzeRequestColumn struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	columns := make([]dataset.Column, len(req.Columns))
	for i, col := range req.Columns {
		cells := make([]dataset.Cell, len(col.Values))
		for j, raw := range col.Values {
			cells[j] = dataset.ParseCell(raw)
		}
		columns[i] = dataset.Column{Name: col.Name, Cells: cells}
	}

	name := req.Name
	if name == "" {
		name = "uploaded_dataset"
	}

	ds, err := dataset.New(name, columns)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	a.analyzeAndRespond(w, r, ds, req.ExplainMode)
}

func (a *App) handleAnalyzeSample(w http.ResponseWriter, r *http.Request) {
	mode := analysis.ExplainMode(r.URL.Query().Get("explain_mode"))
	a.analyzeAndRespond(w, r, testkit.SampleDataset(), mode)
}

// analyzeAndRespond runs the engine, stores the report, and returns it
func (a *App) analyzeAndRespond(w http.ResponseWriter, r *http.Request, ds *dataset.Dataset, mode analysis.ExplainMode) {
	service := a.serviceFor(mode)
	result, err := service.Analyze(r.Context(), ds)
	if err != nil {
		if core.IsStructuralError(err) {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		a.logger.Error("analysis failed: %v", err)
		respondError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	stored := analysis.NewStoredReport(*result)
	if err := a.reports.Save(r.Context(), stored); err != nil {
		a.logger.Error("failed to save report %s: %v", stored.ID, err)
		respondError(w, http.StatusInternalServerError, "failed to save report")
		return
	}

	respondJSON(w, http.StatusOK, stored)
}

func (a *App) handleListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := a.reports.List(r.Context(), 50, 0)
	if err != nil {
		a.logger.Error("failed to list reports: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to list reports")
		return
	}
	respondJSON(w, http.StatusOK, reports)
}

func (a *App) handleGetReport(w http.ResponseWriter, r *http.Request) {
	stored, ok := a.loadReport(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, stored)
}

func (a *App) handleExportReport(w http.ResponseWriter, r *http.Request) {
	stored, ok := a.loadReport(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(report.HTML(&stored.Result))
}

func (a *App) loadReport(w http.ResponseWriter, r *http.Request) (*analysis.StoredReport, bool) {
	id, err := core.ParseReportID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	stored, err := a.reports.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrReportNotFound) {
			respondError(w, http.StatusNotFound, "report not found")
			return nil, false
		}
		a.logger.Error("failed to load report %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "failed to load report")
		return nil, false
	}
	return stored, true
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
