// Package events publishes simulation KPI summaries to the fleet message
// broker so ops dashboards can react without polling the API.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/greencart/logistics/internal/models"
)

// Publisher emits an event after each completed simulation run.
type Publisher interface {
	PublishRunCompleted(result *models.SimulationResult) error
	Close()
}

// RunCompletedEvent is the published payload.
type RunCompletedEvent struct {
	CompletedAt       time.Time                   `json:"completed_at"`
	TotalProfit       int                         `json:"total_profit"`
	Efficiency        int                         `json:"efficiency"`
	OnTimeDeliveries  int                         `json:"on_time_deliveries"`
	LateDeliveries    int                         `json:"late_deliveries"`
	SkippedOrders     int                         `json:"skipped_orders"`
	FuelCostBreakdown map[models.TrafficLevel]int `json:"fuel_cost_breakdown"`
}

// MQTTPublisher publishes run events to an MQTT topic.
type MQTTPublisher struct {
	client mqtt.Client
	topic  string
	now    func() time.Time
}

// NewMQTTPublisher connects to the broker and returns a publisher.
func NewMQTTPublisher(broker, clientID, topic string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectTimeout(10 * time.Second).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect to %s timed out", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect to %s: %w", broker, err)
	}
	return &MQTTPublisher{client: client, topic: topic, now: time.Now}, nil
}

// PublishRunCompleted publishes the KPI summary of a finished run.
func (p *MQTTPublisher) PublishRunCompleted(result *models.SimulationResult) error {
	event := RunCompletedEvent{
		CompletedAt:       p.now(),
		TotalProfit:       result.TotalProfit,
		Efficiency:        result.Efficiency,
		OnTimeDeliveries:  result.OnTimeDeliveries,
		LateDeliveries:    result.LateDeliveries,
		SkippedOrders:     result.SkippedOrders,
		FuelCostBreakdown: result.FuelCostBreakdown,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal run event: %w", err)
	}
	token := p.client.Publish(p.topic, 0, false, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("mqtt publish to %s timed out", p.topic)
	}
	return token.Error()
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishRunCompleted(*models.SimulationResult) error { return nil }
func (NopPublisher) Close()                                             {}
