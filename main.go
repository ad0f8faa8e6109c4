package main

import (
	"log"
	"net/http"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/jdecock/go-novelan/bridge"
	"github.com/jdecock/go-novelan/config"
	"github.com/jdecock/go-novelan/routes"
	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.LoadConfiguration("novelan.json")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
		return
	}

	bridge, err := bridge.New(cfg)
	if err != nil {
		log.Fatalf("Error setting up bridge: %v", err)
		return
	}

	mqttOpts := cfg.Mqtt.ClientOptions()
	// Configure MQTT subscriptions in the ConnectHandler to make sure they are set up after reconnect
	mqttOpts.SetOnConnectHandler(func(client mqtt.Client) {
		bridge.SubscribeToControlCommands(client)
	})

	mqttClient := mqtt.NewClient(mqttOpts)
	if t := mqttClient.Connect(); t.Wait() && t.Error() != nil {
		log.Printf("MQTT connection error: %v", t.Error())
		return
	}

	// Controls
	bridge.RegisterControls(mqttClient)
	go loopSafely(func() {
		bridge.PollControls(mqttClient)

		time.Sleep(30 * time.Second)
	})

	// Readings
	go loopSafely(func() {
		bridge.PollReadings(mqttClient)

		time.Sleep(time.Minute)
	})

	// Start httprouter
	prometheus.MustRegister(bridge.MetricsCollector())

	router := httprouter.New()
	router.GET("/state", routes.State(bridge))
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	go loopSafely(func() {
		http.ListenAndServe(cfg.Web.ListenAddress, router)
	})

	select {}
}
