package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/greencart/logistics/internal/models"
)

var authToken string

func authorizedPost(url string, body *bytes.Buffer) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

// login obtains a JWT from the API, registering the load-test account if it
// does not exist yet.
func login(apiURL, username, password string) (string, error) {
	loginBody, _ := json.Marshal(models.LoginRequest{Username: username, Password: password})
	resp, err := authorizedPost(apiURL+"/auth/login", bytes.NewBuffer(loginBody))
	if err != nil {
		return "", fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		registerBody, _ := json.Marshal(models.RegisterRequest{
			Username: username,
			Email:    username + "@loadgen.local",
			Password: password,
			Role:     models.RoleManager,
		})
		regResp, err := authorizedPost(apiURL+"/auth/register", bytes.NewBuffer(registerBody))
		if err != nil {
			return "", fmt.Errorf("register request failed: %w", err)
		}
		defer regResp.Body.Close()
		if regResp.StatusCode != http.StatusCreated {
			return "", fmt.Errorf("registration failed with status: %d", regResp.StatusCode)
		}
		var created models.LoginResponse
		if err := json.NewDecoder(regResp.Body).Decode(&created); err != nil {
			return "", fmt.Errorf("failed to decode register response: %w", err)
		}
		return created.Token, nil
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed with status: %d", resp.StatusCode)
	}
	var loggedIn models.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loggedIn); err != nil {
		return "", fmt.Errorf("failed to decode login response: %w", err)
	}
	return loggedIn.Token, nil
}

func randomDriver(i int) models.Driver {
	return models.Driver{
		Name:              fmt.Sprintf("driver-%d", i+1),
		CurrentShiftHours: float64(rand.Intn(12)),
		Past7DaysHours:    30 + rand.Float64()*30,
	}
}

func randomRoute(i int) models.Route {
	return models.Route{
		RouteID:      fmt.Sprintf("R%d", i+1),
		DistanceKm:   5 + rand.Float64()*20,
		TrafficLevel: models.TrafficLevels[rand.Intn(len(models.TrafficLevels))],
		BaseTimeMin:  20 + float64(rand.Intn(60)),
	}
}

func randomOrder(i, routeCount int) models.Order {
	return models.Order{
		OrderID:           fmt.Sprintf("O%d", i+1),
		ValueRs:           100 + float64(rand.Intn(2400)),
		AssignedRoute:     fmt.Sprintf("R%d", rand.Intn(routeCount)+1),
		DeliveryTimestamp: fmt.Sprintf("%02d:%02d", rand.Intn(24), rand.Intn(60)),
	}
}

func createRecord(apiURL, path string, record interface{}) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	resp, err := authorizedPost(apiURL+path, bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("create %s failed with status: %d", path, resp.StatusCode)
	}
	return nil
}

func runSimulation(apiURL string, driverCount int) {
	req := models.SimulationRequest{
		NumberOfDrivers:   1 + rand.Intn(driverCount),
		RouteStartTime:    fmt.Sprintf("%02d:%02d", 6+rand.Intn(4), rand.Intn(60)),
		MaxHoursPerDriver: 6 + rand.Intn(6),
	}
	data, err := json.Marshal(req)
	if err != nil {
		log.WithError(err).Error("Failed to marshal simulation request")
		return
	}
	resp, err := authorizedPost(apiURL+"/simulate", bytes.NewBuffer(data))
	if err != nil {
		log.WithError(err).Error("Failed to run simulation")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.WithField("status", resp.Status).Warn("Simulation request rejected")
		return
	}
	var result models.SimulationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.WithError(err).Error("Failed to decode simulation result")
		return
	}
	log.WithFields(log.Fields{
		"drivers":      req.NumberOfDrivers,
		"total_profit": result.TotalProfit,
		"efficiency":   result.Efficiency,
		"on_time":      result.OnTimeDeliveries,
		"late":         result.LateDeliveries,
		"skipped":      result.SkippedOrders,
	}).Info("Simulation completed")
}

func main() {
	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api"
	}

	driverCount := 5
	if v := os.Getenv("LOADGEN_DRIVERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			driverCount = n
		}
	}
	routeCount := 8
	if v := os.Getenv("LOADGEN_ROUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			routeCount = n
		}
	}
	orderCount := 30
	if v := os.Getenv("LOADGEN_ORDERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			orderCount = n
		}
	}
	interval := 5 * time.Second
	if v := os.Getenv("LOADGEN_TICK_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			interval = time.Duration(n) * time.Second
		}
	}

	username := os.Getenv("LOADGEN_USERNAME")
	if username == "" {
		username = "loadgen"
	}
	password := os.Getenv("LOADGEN_PASSWORD")
	if password == "" {
		log.Fatal("LOADGEN_PASSWORD must be set")
	}

	token, err := login(apiURL, username, password)
	if err != nil {
		log.WithError(err).Fatal("Failed to authenticate")
	}
	authToken = token

	log.WithFields(log.Fields{
		"api_url":  apiURL,
		"drivers":  driverCount,
		"routes":   routeCount,
		"orders":   orderCount,
		"interval": interval,
	}).Info("Starting simulation load generator")

	for i := 0; i < driverCount; i++ {
		if err := createRecord(apiURL, "/drivers", randomDriver(i)); err != nil {
			log.WithError(err).Error("Failed to create driver")
		}
	}
	for i := 0; i < routeCount; i++ {
		if err := createRecord(apiURL, "/routes", randomRoute(i)); err != nil {
			log.WithError(err).Error("Failed to create route")
		}
	}
	for i := 0; i < orderCount; i++ {
		if err := createRecord(apiURL, "/orders", randomOrder(i, routeCount)); err != nil {
			log.WithError(err).Error("Failed to create order")
		}
	}
	log.Info("Record creation completed")

	tick := time.NewTicker(interval)
	defer tick.Stop()
	for range tick.C {
		runSimulation(apiURL, driverCount)
	}
}
