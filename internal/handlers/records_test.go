package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/greencart/logistics/internal/db"
	"github.com/greencart/logistics/internal/models"
)

// MockDriverCollection is a mock implementation of DriverCollection
type MockDriverCollection struct {
	mock.Mock
}

func (m *MockDriverCollection) Insert(ctx context.Context, driver models.Driver) (*models.Driver, error) {
	args := m.Called(ctx, driver)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Driver), args.Error(1)
}

func (m *MockDriverCollection) List(ctx context.Context) ([]models.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Driver), args.Error(1)
}

func (m *MockDriverCollection) FindByID(ctx context.Context, id string) (*models.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Driver), args.Error(1)
}

func (m *MockDriverCollection) Update(ctx context.Context, id string, driver models.Driver) (*models.Driver, error) {
	args := m.Called(ctx, id, driver)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Driver), args.Error(1)
}

func (m *MockDriverCollection) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDriverCollection) ReplaceAll(ctx context.Context, drivers []models.Driver) error {
	args := m.Called(ctx, drivers)
	return args.Error(0)
}

// MockRouteCollection is a mock implementation of RouteCollection
type MockRouteCollection struct {
	mock.Mock
}

func (m *MockRouteCollection) Insert(ctx context.Context, route models.Route) (*models.Route, error) {
	args := m.Called(ctx, route)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Route), args.Error(1)
}

func (m *MockRouteCollection) List(ctx context.Context) ([]models.Route, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Route), args.Error(1)
}

func (m *MockRouteCollection) FindByID(ctx context.Context, id string) (*models.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Route), args.Error(1)
}

func (m *MockRouteCollection) Update(ctx context.Context, id string, route models.Route) (*models.Route, error) {
	args := m.Called(ctx, id, route)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Route), args.Error(1)
}

func (m *MockRouteCollection) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRouteCollection) ReplaceAll(ctx context.Context, routes []models.Route) error {
	args := m.Called(ctx, routes)
	return args.Error(0)
}

// MockOrderCollection is a mock implementation of OrderCollection
type MockOrderCollection struct {
	mock.Mock
}

func (m *MockOrderCollection) Insert(ctx context.Context, order models.Order) (*models.Order, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderCollection) List(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderCollection) FindByID(ctx context.Context, id string) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderCollection) Update(ctx context.Context, id string, order models.Order) (*models.Order, error) {
	args := m.Called(ctx, id, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderCollection) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderCollection) ReplaceAll(ctx context.Context, orders []models.Order) error {
	args := m.Called(ctx, orders)
	return args.Error(0)
}

func TestDriversHandler_List(t *testing.T) {
	mockCollection := new(MockDriverCollection)
	handler := NewDriversHandler(mockCollection)

	drivers := []models.Driver{
		{ID: primitive.NewObjectID(), Name: "Amit", CurrentShiftHours: 6, Past7DaysHours: 40},
		{ID: primitive.NewObjectID(), Name: "Priya", CurrentShiftHours: 9, Past7DaysHours: 52},
	}
	mockCollection.On("List", mock.Anything).Return(drivers, nil)

	req := httptest.NewRequest("GET", "/api/drivers", nil)
	w := httptest.NewRecorder()

	handler.Handle(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got []models.Driver
	err := json.Unmarshal(w.Body.Bytes(), &got)
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "Amit", got[0].Name)
}

func TestDriversHandler_Create(t *testing.T) {
	t.Run("valid driver", func(t *testing.T) {
		mockCollection := new(MockDriverCollection)
		handler := NewDriversHandler(mockCollection)

		created := &models.Driver{ID: primitive.NewObjectID(), Name: "Amit", CurrentShiftHours: 6, Past7DaysHours: 40}
		mockCollection.On("Insert", mock.Anything, mock.AnythingOfType("models.Driver")).Return(created, nil)

		body, _ := json.Marshal(models.Driver{Name: "Amit", CurrentShiftHours: 6, Past7DaysHours: 40})
		req := httptest.NewRequest("POST", "/api/drivers", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Handle(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockCollection.AssertExpectations(t)
	})

	t.Run("missing name rejected", func(t *testing.T) {
		mockCollection := new(MockDriverCollection)
		handler := NewDriversHandler(mockCollection)

		body, _ := json.Marshal(models.Driver{CurrentShiftHours: 6})
		req := httptest.NewRequest("POST", "/api/drivers", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Handle(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockCollection.AssertNotCalled(t, "Insert")
	})

	t.Run("negative hours rejected", func(t *testing.T) {
		mockCollection := new(MockDriverCollection)
		handler := NewDriversHandler(mockCollection)

		body, _ := json.Marshal(models.Driver{Name: "Amit", CurrentShiftHours: -1})
		req := httptest.NewRequest("POST", "/api/drivers", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Handle(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDriversHandler_ByID(t *testing.T) {
	id := primitive.NewObjectID()

	t.Run("get existing", func(t *testing.T) {
		mockCollection := new(MockDriverCollection)
		handler := NewDriversHandler(mockCollection)

		driver := &models.Driver{ID: id, Name: "Amit", CurrentShiftHours: 6}
		mockCollection.On("FindByID", mock.Anything, id.Hex()).Return(driver, nil)

		req := httptest.NewRequest("GET", "/api/drivers/"+id.Hex(), nil)
		w := httptest.NewRecorder()

		handler.HandleByID(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("get missing returns 404", func(t *testing.T) {
		mockCollection := new(MockDriverCollection)
		handler := NewDriversHandler(mockCollection)

		mockCollection.On("FindByID", mock.Anything, "deadbeef").Return(nil, db.ErrNotFound)

		req := httptest.NewRequest("GET", "/api/drivers/deadbeef", nil)
		w := httptest.NewRecorder()

		handler.HandleByID(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("update existing", func(t *testing.T) {
		mockCollection := new(MockDriverCollection)
		handler := NewDriversHandler(mockCollection)

		updated := &models.Driver{ID: id, Name: "Amit", CurrentShiftHours: 8}
		mockCollection.On("Update", mock.Anything, id.Hex(), mock.AnythingOfType("models.Driver")).Return(updated, nil)

		body, _ := json.Marshal(models.Driver{Name: "Amit", CurrentShiftHours: 8})
		req := httptest.NewRequest("PUT", "/api/drivers/"+id.Hex(), bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.HandleByID(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("delete missing returns 404", func(t *testing.T) {
		mockCollection := new(MockDriverCollection)
		handler := NewDriversHandler(mockCollection)

		mockCollection.On("Delete", mock.Anything, "deadbeef").Return(db.ErrNotFound)

		req := httptest.NewRequest("DELETE", "/api/drivers/deadbeef", nil)
		w := httptest.NewRecorder()

		handler.HandleByID(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("empty id returns 404", func(t *testing.T) {
		mockCollection := new(MockDriverCollection)
		handler := NewDriversHandler(mockCollection)

		req := httptest.NewRequest("GET", "/api/drivers/", nil)
		w := httptest.NewRecorder()

		handler.HandleByID(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRoutesHandler_Create(t *testing.T) {
	t.Run("valid route", func(t *testing.T) {
		mockCollection := new(MockRouteCollection)
		handler := NewRoutesHandler(mockCollection)

		created := &models.Route{ID: primitive.NewObjectID(), RouteID: "R1", DistanceKm: 10, TrafficLevel: models.TrafficLow, BaseTimeMin: 40}
		mockCollection.On("Insert", mock.Anything, mock.AnythingOfType("models.Route")).Return(created, nil)

		body, _ := json.Marshal(models.Route{RouteID: "R1", DistanceKm: 10, TrafficLevel: models.TrafficLow, BaseTimeMin: 40})
		req := httptest.NewRequest("POST", "/api/routes", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Handle(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("unknown traffic level rejected", func(t *testing.T) {
		mockCollection := new(MockRouteCollection)
		handler := NewRoutesHandler(mockCollection)

		body, _ := json.Marshal(models.Route{RouteID: "R1", DistanceKm: 10, TrafficLevel: "Gridlock", BaseTimeMin: 40})
		req := httptest.NewRequest("POST", "/api/routes", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Handle(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockCollection.AssertNotCalled(t, "Insert")
	})
}

func TestOrdersHandler_Create(t *testing.T) {
	t.Run("valid order", func(t *testing.T) {
		mockCollection := new(MockOrderCollection)
		handler := NewOrdersHandler(mockCollection)

		created := &models.Order{ID: primitive.NewObjectID(), OrderID: "O1", ValueRs: 500, AssignedRoute: "R1", DeliveryTimestamp: "10:30"}
		mockCollection.On("Insert", mock.Anything, mock.AnythingOfType("models.Order")).Return(created, nil)

		body, _ := json.Marshal(models.Order{OrderID: "O1", ValueRs: 500, AssignedRoute: "R1", DeliveryTimestamp: "10:30"})
		req := httptest.NewRequest("POST", "/api/orders", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Handle(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("negative value rejected", func(t *testing.T) {
		mockCollection := new(MockOrderCollection)
		handler := NewOrdersHandler(mockCollection)

		body, _ := json.Marshal(models.Order{OrderID: "O1", ValueRs: -10, AssignedRoute: "R1"})
		req := httptest.NewRequest("POST", "/api/orders", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Handle(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRecordsHandler_MethodNotAllowed(t *testing.T) {
	handler := NewDriversHandler(new(MockDriverCollection))

	req := httptest.NewRequest("PATCH", "/api/drivers", nil)
	w := httptest.NewRecorder()

	handler.Handle(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
