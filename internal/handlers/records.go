package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/greencart/logistics/internal/db"
	"github.com/greencart/logistics/internal/models"
)

// DriversHandler exposes CRUD over driver records.
type DriversHandler struct {
	collection db.DriverCollection
}

// NewDriversHandler creates a drivers record handler.
func NewDriversHandler(collection db.DriverCollection) *DriversHandler {
	return &DriversHandler{collection: collection}
}

// Handle serves the collection endpoints: GET list and POST create.
func (h *DriversHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		drivers, err := h.collection.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to list drivers")
			return
		}
		writeJSON(w, http.StatusOK, drivers)
	case http.MethodPost:
		var driver models.Driver
		if err := json.NewDecoder(r.Body).Decode(&driver); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if err := driver.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		created, err := h.collection.Insert(r.Context(), driver)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to create driver")
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// HandleByID serves the record endpoints: GET, PUT, DELETE by id.
func (h *DriversHandler) HandleByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/drivers/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "Driver not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		driver, err := h.collection.FindByID(r.Context(), id)
		if err != nil {
			writeRecordError(w, err, "Driver not found", "Failed to load driver")
			return
		}
		writeJSON(w, http.StatusOK, driver)
	case http.MethodPut:
		var driver models.Driver
		if err := json.NewDecoder(r.Body).Decode(&driver); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if err := driver.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		updated, err := h.collection.Update(r.Context(), id, driver)
		if err != nil {
			writeRecordError(w, err, "Driver not found", "Failed to update driver")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := h.collection.Delete(r.Context(), id); err != nil {
			writeRecordError(w, err, "Driver not found", "Failed to delete driver")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Driver deleted"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// RoutesHandler exposes CRUD over route records.
type RoutesHandler struct {
	collection db.RouteCollection
}

// NewRoutesHandler creates a routes record handler.
func NewRoutesHandler(collection db.RouteCollection) *RoutesHandler {
	return &RoutesHandler{collection: collection}
}

// Handle serves the collection endpoints: GET list and POST create.
func (h *RoutesHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		routes, err := h.collection.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to list routes")
			return
		}
		writeJSON(w, http.StatusOK, routes)
	case http.MethodPost:
		var route models.Route
		if err := json.NewDecoder(r.Body).Decode(&route); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if err := route.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		created, err := h.collection.Insert(r.Context(), route)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to create route")
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// HandleByID serves the record endpoints: GET, PUT, DELETE by id.
func (h *RoutesHandler) HandleByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/routes/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "Route not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		route, err := h.collection.FindByID(r.Context(), id)
		if err != nil {
			writeRecordError(w, err, "Route not found", "Failed to load route")
			return
		}
		writeJSON(w, http.StatusOK, route)
	case http.MethodPut:
		var route models.Route
		if err := json.NewDecoder(r.Body).Decode(&route); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if err := route.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		updated, err := h.collection.Update(r.Context(), id, route)
		if err != nil {
			writeRecordError(w, err, "Route not found", "Failed to update route")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := h.collection.Delete(r.Context(), id); err != nil {
			writeRecordError(w, err, "Route not found", "Failed to delete route")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Route deleted"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// OrdersHandler exposes CRUD over order records.
type OrdersHandler struct {
	collection db.OrderCollection
}

// NewOrdersHandler creates an orders record handler.
func NewOrdersHandler(collection db.OrderCollection) *OrdersHandler {
	return &OrdersHandler{collection: collection}
}

// Handle serves the collection endpoints: GET list and POST create.
func (h *OrdersHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		orders, err := h.collection.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to list orders")
			return
		}
		writeJSON(w, http.StatusOK, orders)
	case http.MethodPost:
		var order models.Order
		if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if err := order.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		created, err := h.collection.Insert(r.Context(), order)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to create order")
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// HandleByID serves the record endpoints: GET, PUT, DELETE by id.
func (h *OrdersHandler) HandleByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/orders/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		order, err := h.collection.FindByID(r.Context(), id)
		if err != nil {
			writeRecordError(w, err, "Order not found", "Failed to load order")
			return
		}
		writeJSON(w, http.StatusOK, order)
	case http.MethodPut:
		var order models.Order
		if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if err := order.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		updated, err := h.collection.Update(r.Context(), id, order)
		if err != nil {
			writeRecordError(w, err, "Order not found", "Failed to update order")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := h.collection.Delete(r.Context(), id); err != nil {
			writeRecordError(w, err, "Order not found", "Failed to delete order")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Order deleted"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func writeRecordError(w http.ResponseWriter, err error, notFoundMsg, serverMsg string) {
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, notFoundMsg)
		return
	}
	writeError(w, http.StatusInternalServerError, serverMsg)
}
