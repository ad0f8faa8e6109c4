package homeassistant

import (
	"encoding/json"
	"fmt"
	"strings"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/jdecock/go-novelan/config"
)

type Client struct {
	mqtt mqtt.Client
}

func NewClient(mqtt mqtt.Client) *Client {
	return &Client{
		mqtt: mqtt,
	}
}

// SelectTopics returns the state and command topics a select entity with the
// given name lives on. Derived from the name alone so callers can subscribe to
// commands before the entity is registered.
func SelectTopics(name string) (string, string) {
	uniqueId := slugify(name)

	return fmt.Sprintf("%v/select/%v/state", config.TopicPrefix, uniqueId),
		fmt.Sprintf("%v/select/%v/cmd", config.TopicPrefix, uniqueId)
}

// RegisterSelect announces a select entity on the topics SelectTopics derives
// for its name.
func (h *Client) RegisterSelect(name string, options []string) error {
	uniqueId := slugify(name)
	stateTopic, commandTopic := SelectTopics(name)

	selectConfiguration, _ := json.Marshal(selectConfiguration{
		UniqueId:     uniqueId,
		Name:         name,
		StateTopic:   stateTopic,
		CommandTopic: commandTopic,
		Options:      options,
	})

	configTopic := fmt.Sprintf("%v/select/%v/config", config.HomeAssistantPrefix, uniqueId)

	if t := h.mqtt.Publish(configTopic, 0, true, selectConfiguration); t.Wait() && t.Error() != nil {
		return t.Error()
	}

	return nil
}

func (h *Client) RegisterSensor(name string, class string, unit string) (string, error) {
	uniqueId := slugify(name)

	var stateTopic string
	if class == "" {
		stateTopic = fmt.Sprintf("%v/%v", config.TopicPrefix, uniqueId)
	} else {
		stateTopic = fmt.Sprintf("%v/%v/%v", config.TopicPrefix, class, uniqueId)
	}

	sensorConfiguration, _ := json.Marshal(sensorConfiguration{
		UniqueId:          uniqueId,
		Name:              name,
		DeviceClass:       class,
		StateTopic:        stateTopic,
		UnitOfMeasurement: unit,
	})

	configTopic := fmt.Sprintf("%v/sensor/%v/config", config.HomeAssistantPrefix, uniqueId)

	if t := h.mqtt.Publish(configTopic, 0, true, sensorConfiguration); t.Wait() && t.Error() != nil {
		return "", t.Error()
	}

	return stateTopic, nil
}

// slugify turns a device field label into a topic-safe unique id. The
// controller labels fields in German, so the umlauts need transliterating.
func slugify(name string) string {
	slug := strings.ToLower(name)

	replacer := strings.NewReplacer(
		"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
		" ", "_", ".", "", "-", "_", "/", "_",
	)
	slug = replacer.Replace(slug)

	return slug
}
