package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/greencart/logistics/internal/db"
	"github.com/greencart/logistics/internal/events"
	"github.com/greencart/logistics/internal/models"
	"github.com/greencart/logistics/internal/sim"
)

func newSimulationFixture(drivers []models.Driver, routes []models.Route, orders []models.Order) (*SimulationHandler, *MockDriverCollection, *MockRouteCollection, *MockOrderCollection) {
	mockDrivers := new(MockDriverCollection)
	mockRoutes := new(MockRouteCollection)
	mockOrders := new(MockOrderCollection)

	mockDrivers.On("List", mock.Anything).Return(drivers, nil)
	mockRoutes.On("List", mock.Anything).Return(routes, nil)
	mockOrders.On("List", mock.Anything).Return(orders, nil)

	collections := &db.Collections{
		Drivers: mockDrivers,
		Routes:  mockRoutes,
		Orders:  mockOrders,
	}
	handler := NewSimulationHandler(sim.New(sim.DefaultConfig()), collections, events.NopPublisher{})
	return handler, mockDrivers, mockRoutes, mockOrders
}

func TestSimulationHandler_Simulate(t *testing.T) {
	drivers := []models.Driver{
		{Name: "Amit", CurrentShiftHours: 4, Past7DaysHours: 36},
		{Name: "Priya", CurrentShiftHours: 9, Past7DaysHours: 52},
	}
	routes := []models.Route{
		{RouteID: "R1", DistanceKm: 10, TrafficLevel: models.TrafficLow, BaseTimeMin: 40},
		{RouteID: "R2", DistanceKm: 12, TrafficLevel: models.TrafficHigh, BaseTimeMin: 30},
	}
	orders := []models.Order{
		{OrderID: "O1", ValueRs: 1500, AssignedRoute: "R1"},
		{OrderID: "O2", ValueRs: 500, AssignedRoute: "R2"},
	}

	t.Run("successful run", func(t *testing.T) {
		handler, _, _, _ := newSimulationFixture(drivers, routes, orders)

		body, _ := json.Marshal(models.SimulationRequest{
			NumberOfDrivers:   2,
			RouteStartTime:    "09:00",
			MaxHoursPerDriver: 8,
		})
		req := httptest.NewRequest("POST", "/api/simulate", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Simulate(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var result models.SimulationResult
		err := json.Unmarshal(w.Body.Bytes(), &result)
		assert.NoError(t, err)
		assert.Len(t, result.Orders, 2)
		assert.Equal(t, 0, result.SkippedOrders)
		assert.Equal(t, result.OnTimeDeliveries+result.LateDeliveries, len(result.Orders))
	})

	t.Run("too many drivers requested", func(t *testing.T) {
		handler, _, _, _ := newSimulationFixture(drivers, routes, orders)

		body, _ := json.Marshal(models.SimulationRequest{
			NumberOfDrivers:   5,
			RouteStartTime:    "09:00",
			MaxHoursPerDriver: 8,
		})
		req := httptest.NewRequest("POST", "/api/simulate", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Simulate(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed start time", func(t *testing.T) {
		handler, _, _, _ := newSimulationFixture(drivers, routes, orders)

		body, _ := json.Marshal(models.SimulationRequest{
			NumberOfDrivers:   1,
			RouteStartTime:    "25:00",
			MaxHoursPerDriver: 8,
		})
		req := httptest.NewRequest("POST", "/api/simulate", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Simulate(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown route skipped and counted", func(t *testing.T) {
		withBadOrder := append([]models.Order{}, orders...)
		withBadOrder = append(withBadOrder, models.Order{OrderID: "O3", ValueRs: 300, AssignedRoute: "R99"})
		handler, _, _, _ := newSimulationFixture(drivers, routes, withBadOrder)

		body, _ := json.Marshal(models.SimulationRequest{
			NumberOfDrivers:   2,
			RouteStartTime:    "09:00",
			MaxHoursPerDriver: 8,
		})
		req := httptest.NewRequest("POST", "/api/simulate", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Simulate(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var result models.SimulationResult
		err := json.Unmarshal(w.Body.Bytes(), &result)
		assert.NoError(t, err)
		assert.Equal(t, 1, result.SkippedOrders)
		assert.Len(t, result.Orders, 2)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		handler, _, _, _ := newSimulationFixture(drivers, routes, orders)

		req := httptest.NewRequest("POST", "/api/simulate", bytes.NewBufferString("{broken"))
		w := httptest.NewRecorder()

		handler.Simulate(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GET rejected", func(t *testing.T) {
		handler, _, _, _ := newSimulationFixture(drivers, routes, orders)

		req := httptest.NewRequest("GET", "/api/simulate", nil)
		w := httptest.NewRecorder()

		handler.Simulate(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		mockDrivers := new(MockDriverCollection)
		mockRoutes := new(MockRouteCollection)
		mockOrders := new(MockOrderCollection)
		mockDrivers.On("List", mock.Anything).Return(nil, errors.New("connection reset"))
		mockRoutes.On("List", mock.Anything).Return([]models.Route{}, nil).Maybe()
		mockOrders.On("List", mock.Anything).Return([]models.Order{}, nil).Maybe()

		collections := &db.Collections{Drivers: mockDrivers, Routes: mockRoutes, Orders: mockOrders}
		handler := NewSimulationHandler(sim.New(sim.DefaultConfig()), collections, events.NopPublisher{})

		body, _ := json.Marshal(models.SimulationRequest{
			NumberOfDrivers:   1,
			RouteStartTime:    "09:00",
			MaxHoursPerDriver: 8,
		})
		req := httptest.NewRequest("POST", "/api/simulate", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Simulate(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestSimulationHandler_KPIs(t *testing.T) {
	routes := []models.Route{
		{RouteID: "R1", DistanceKm: 8, TrafficLevel: models.TrafficHigh, BaseTimeMin: 60},
		{RouteID: "R2", DistanceKm: 5, TrafficLevel: models.TrafficLow, BaseTimeMin: 30},
	}
	orders := []models.Order{
		// 69 minutes <= 60+10, on time, high value.
		{OrderID: "O1", ValueRs: 1200, AssignedRoute: "R1", DeliveryTimestamp: "01:09"},
		// 50 minutes > 30+10, late.
		{OrderID: "O2", ValueRs: 500, AssignedRoute: "R2", DeliveryTimestamp: "00:50"},
	}

	t.Run("aggregated report", func(t *testing.T) {
		handler, _, _, _ := newSimulationFixture(nil, routes, orders)

		req := httptest.NewRequest("GET", "/api/kpis", nil)
		w := httptest.NewRecorder()

		handler.KPIs(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var report models.KPIReport
		err := json.Unmarshal(w.Body.Bytes(), &report)
		assert.NoError(t, err)
		assert.Equal(t, 1, report.OnTimeDeliveries)
		assert.Equal(t, 1, report.LateDeliveries)
		assert.Equal(t, 50, report.Efficiency)
	})

	t.Run("malformed stored timestamp", func(t *testing.T) {
		bad := []models.Order{{OrderID: "O9", ValueRs: 100, AssignedRoute: "R1", DeliveryTimestamp: "yesterday"}}
		handler, _, _, _ := newSimulationFixture(nil, routes, bad)

		req := httptest.NewRequest("GET", "/api/kpis", nil)
		w := httptest.NewRecorder()

		handler.KPIs(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("POST rejected", func(t *testing.T) {
		handler, _, _, _ := newSimulationFixture(nil, routes, orders)

		req := httptest.NewRequest("POST", "/api/kpis", nil)
		w := httptest.NewRecorder()

		handler.KPIs(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}
