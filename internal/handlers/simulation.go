package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/greencart/logistics/internal/db"
	"github.com/greencart/logistics/internal/events"
	"github.com/greencart/logistics/internal/metrics"
	"github.com/greencart/logistics/internal/models"
	"github.com/greencart/logistics/internal/sim"
)

// SimulationHandler runs delivery simulations and serves historical KPIs.
type SimulationHandler struct {
	engine      *sim.Engine
	collections *db.Collections
	publisher   events.Publisher
}

// NewSimulationHandler creates a simulation handler.
func NewSimulationHandler(engine *sim.Engine, collections *db.Collections, publisher events.Publisher) *SimulationHandler {
	return &SimulationHandler{
		engine:      engine,
		collections: collections,
		publisher:   publisher,
	}
}

// Simulate handles POST /api/simulate. It loads the current record
// snapshot, runs a simulation with the requested staffing parameters and
// returns per-order outcomes alongside the aggregated KPIs.
func (h *SimulationHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.SimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.SimulationRuns.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	snapshot, err := db.LoadSnapshot(r.Context(), h.collections)
	if err != nil {
		logrus.WithError(err).Error("Failed to load record snapshot")
		metrics.SimulationRuns.WithLabelValues("error").Inc()
		writeError(w, http.StatusInternalServerError, "Failed to load records")
		return
	}

	result, err := h.engine.Run(snapshot.Drivers, snapshot.Routes, snapshot.Orders, req)
	if err != nil {
		if sim.IsValidationError(err) {
			metrics.SimulationRuns.WithLabelValues("invalid").Inc()
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logrus.WithError(err).Error("Simulation run failed")
		metrics.SimulationRuns.WithLabelValues("error").Inc()
		writeError(w, http.StatusInternalServerError, "Simulation failed")
		return
	}

	metrics.SimulationRuns.WithLabelValues("ok").Inc()
	metrics.SimulationOrdersScored.Observe(float64(len(result.Orders)))

	if err := h.publisher.PublishRunCompleted(result); err != nil {
		// Event delivery is best effort; the caller still gets the result.
		logrus.WithError(err).Warn("Failed to publish simulation event")
	}

	logrus.WithFields(logrus.Fields{
		"drivers":     req.NumberOfDrivers,
		"totalProfit": result.TotalProfit,
		"efficiency":  result.Efficiency,
		"skipped":     result.SkippedOrders,
	}).Info("Simulation run completed")

	writeJSON(w, http.StatusOK, result)
}

// KPIs handles GET /api/kpis. It scores the stored orders against their
// recorded delivery timestamps and returns the aggregated report.
func (h *SimulationHandler) KPIs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	snapshot, err := db.LoadSnapshot(r.Context(), h.collections)
	if err != nil {
		logrus.WithError(err).Error("Failed to load record snapshot")
		writeError(w, http.StatusInternalServerError, "Failed to load records")
		return
	}

	report, err := h.engine.HistoricalKPIs(snapshot.Routes, snapshot.Orders)
	if err != nil {
		logrus.WithError(err).Error("KPI computation failed")
		writeError(w, http.StatusInternalServerError, "Failed to compute KPIs")
		return
	}

	writeJSON(w, http.StatusOK, report)
}
