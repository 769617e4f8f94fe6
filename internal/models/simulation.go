package models

// SimulationRequest carries the per-invocation simulation parameters.
// RouteStartTime is an HH:MM 24-hour time-of-day shared by all orders in the
// run. MaxHoursPerDriver is validated (1-24) but reserved: it does not yet
// constrain assignment.
type SimulationRequest struct {
	NumberOfDrivers   int    `json:"numberOfDrivers"`
	RouteStartTime    string `json:"routeStartTime"`
	MaxHoursPerDriver int    `json:"maxHoursPerDriver"`
}

// OrderResult is the per-order outcome of a simulation run.
type OrderResult struct {
	OrderID      string       `json:"orderId"`
	ValueRs      float64      `json:"valueRs"`
	DriverName   string       `json:"driverName"`
	DeliveryTime string       `json:"deliveryTime"`
	TrafficLevel TrafficLevel `json:"trafficLevel"`
	IsLate       bool         `json:"isLate"`
	Penalty      float64      `json:"penalty"`
	Bonus        float64      `json:"bonus"`
	FuelCost     float64      `json:"fuelCost"`
}

// SimulationResult aggregates a run's KPIs. SkippedOrders counts orders that
// referenced a route absent from the route set and were excluded from all
// other figures.
type SimulationResult struct {
	TotalProfit       int                  `json:"totalProfit"`
	Efficiency        int                  `json:"efficiency"`
	OnTimeDeliveries  int                  `json:"onTimeDeliveries"`
	LateDeliveries    int                  `json:"lateDeliveries"`
	SkippedOrders     int                  `json:"skippedOrders"`
	FuelCostBreakdown map[TrafficLevel]int `json:"fuelCostBreakdown"`
	Orders            []OrderResult        `json:"orders"`
}

// KPIReport mirrors SimulationResult for the historical reporting path,
// which has no driver assignment and therefore no per-order rows.
type KPIReport struct {
	TotalProfit       int                  `json:"totalProfit"`
	Efficiency        int                  `json:"efficiency"`
	OnTimeDeliveries  int                  `json:"onTimeDeliveries"`
	LateDeliveries    int                  `json:"lateDeliveries"`
	SkippedOrders     int                  `json:"skippedOrders"`
	FuelCostBreakdown map[TrafficLevel]int `json:"fuelCostBreakdown"`
}
