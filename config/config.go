package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const HomeAssistantPrefix = "homeassistant"
const TopicPrefix = "novelan"

const defaultPin = "999999"
const defaultListenAddress = ":8080"

type Configuration struct {
	HeatPump HeatPump `json:"heat_pump"`
	Mqtt     Mqtt     `json:"mqtt"`
	Web      Web      `json:"web"`
}

type HeatPump struct {
	Host string `json:"host"`
	Pin  string `json:"pin"`
}

type Mqtt struct {
	IpAddress string `json:"ip_address"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

type Web struct {
	ListenAddress string `json:"listen_address"`
}

func LoadConfiguration(filename string) (*Configuration, error) {
	var file *os.File
	var err error
	if file, err = os.Open(filename); err != nil {
		return nil, err
	}

	defer file.Close()
	decoder := json.NewDecoder(file)
	configuration := &Configuration{}
	if err := decoder.Decode(configuration); err != nil {
		return nil, err
	}

	if configuration.HeatPump.Host == "" {
		return nil, fmt.Errorf("configuration is missing heat_pump.host")
	}

	if configuration.HeatPump.Pin == "" {
		configuration.HeatPump.Pin = defaultPin
	}

	if configuration.Web.ListenAddress == "" {
		configuration.Web.ListenAddress = defaultListenAddress
	}

	return configuration, nil
}

func (m *Mqtt) ClientOptions() *mqtt.ClientOptions {
	return mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%v:1883", m.IpAddress)).
		SetUsername(m.Username).
		SetPassword(m.Password).
		SetAutoReconnect(true).
		SetConnectionLostHandler(func(client mqtt.Client, err error) {
			log.Printf("MQTT connection lost: %v", err)
		}).
		SetReconnectingHandler(func(client mqtt.Client, opts *mqtt.ClientOptions) {
			log.Printf("MQTT reconnecting")
		})
}
