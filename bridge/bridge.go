package bridge

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/jdecock/go-novelan/config"
	"github.com/jdecock/go-novelan/homeassistant"
	"github.com/jdecock/go-novelan/luxws"
	"github.com/jdecock/go-novelan/reading"
)

type Bridge struct {
	cfg       *config.Configuration
	luxClient *luxws.Client
	controls  []*controlState

	mutex        sync.Mutex
	stateTopics  map[string]string
	lastSnapshot reading.Snapshot
	lastPoll     time.Time
	lastError    error
}

// controlState tracks one selectable control. The topics are fixed at
// construction, control and lastValue are shared between the poll loop and the
// MQTT callback goroutine and are only touched under the bridge mutex.
type controlState struct {
	stateTopic   string
	commandTopic string

	control   luxws.Control
	lastValue string
}

func New(cfg *config.Configuration) (*Bridge, error) {
	log.Printf("Connecting to heat pump at %v", cfg.HeatPump.Host)

	luxClient := luxws.NewClient(cfg.HeatPump.Host, cfg.HeatPump.Pin)

	navigation, err := luxClient.NavigationTree()
	if err != nil {
		return nil, err
	}
	log.Printf("Connected, controller exposes %v pages", len(navigation.Items))

	controls, err := luxClient.Controls()
	if err != nil {
		return nil, err
	}
	log.Printf("Found %v selectable controls", len(controls))

	b := &Bridge{
		cfg:         cfg,
		luxClient:   luxClient,
		stateTopics: map[string]string{},
	}

	for _, control := range controls {
		stateTopic, commandTopic := homeassistant.SelectTopics(entityName(control.Name))

		b.controls = append(b.controls, &controlState{
			stateTopic:   stateTopic,
			commandTopic: commandTopic,
			control:      control,
		})
	}

	return b, nil
}

// RegisterControls announces every selectable control as a Home Assistant
// select entity and publishes its current value.
func (b *Bridge) RegisterControls(mqttClient mqtt.Client) error {
	homeAssistantClient := homeassistant.NewClient(mqttClient)

	for _, state := range b.controls {
		control := b.controlSnapshot(state)

		if err := homeAssistantClient.RegisterSelect(entityName(control.Name), optionLabels(control.Options)); err != nil {
			return err
		}
		log.Printf("Registered select %v", control.Name)

		if control.Value != "" {
			if t := mqttClient.Publish(state.stateTopic, 0, true, control.Value); t.Wait() && t.Error() != nil {
				log.Printf("MQTT publishing failed: %v", t.Error())
			}
			b.setControlValue(state, control.Value)
		}
	}

	return nil
}

// SubscribeToControlCommands wires the command topics to Lux_WS writes. Called
// from the MQTT connect handler so subscriptions survive a reconnect. The
// topics are fixed in New, so the handler has no ordering dependency on
// RegisterControls.
func (b *Bridge) SubscribeToControlCommands(mqttClient mqtt.Client) {
	for _, state := range b.controls {
		if t := mqttClient.Subscribe(state.commandTopic, 0, func(client mqtt.Client, msg mqtt.Message) {
			label := string(msg.Payload())

			if err := b.applyControl(state, label); err != nil {
				log.Printf("Error setting %v to %v: %v", b.controlSnapshot(state).Name, label, err)
				return
			}

			if t := client.Publish(state.stateTopic, 0, true, label); t.Wait() && t.Error() != nil {
				log.Printf("MQTT publishing failed: %v", t.Error())
			}
			b.setControlValue(state, label)
		}); t.Wait() && t.Error() != nil {
			log.Printf("MQTT receive error: %v", t.Error())
		}
	}
}

func (b *Bridge) applyControl(state *controlState, label string) error {
	control := b.controlSnapshot(state)

	value, ok := optionValue(control.Options, label)
	if !ok {
		return fmt.Errorf("control has no option %q", label)
	}

	// Stage controls only accept stages 1 to 4, reject anything else before
	// it reaches the device.
	if strings.Contains(control.Name, "Stufe") {
		stage, err := strconv.Atoi(strings.TrimSpace(label))
		if err != nil || stage < reading.MinStage || stage > reading.MaxStage {
			return fmt.Errorf("stage %q outside %v-%v", label, reading.MinStage, reading.MaxStage)
		}
	}

	return b.luxClient.Set(control.PageID, control.ID, value)
}

// PollControls refreshes control values and republishes the ones that changed.
func (b *Bridge) PollControls(mqttClient mqtt.Client) {
	controls, err := b.luxClient.Controls()
	if err != nil {
		log.Printf("Failed to refresh controls: %v", err)
		return
	}

	for _, state := range b.controls {
		for _, control := range controls {
			if control.Name != b.controlSnapshot(state).Name {
				continue
			}

			b.mutex.Lock()
			state.control.ID = control.ID
			state.control.PageID = control.PageID
			changed := control.Value != "" && control.Value != state.lastValue
			b.mutex.Unlock()

			if !changed {
				continue
			}

			if t := mqttClient.Publish(state.stateTopic, 0, true, control.Value); t.Wait() && t.Error() != nil {
				log.Printf("MQTT publishing failed: %v", t.Error())
				continue
			}
			b.setControlValue(state, control.Value)
		}
	}
}

func (b *Bridge) controlSnapshot(state *controlState) luxws.Control {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	return state.control
}

func (b *Bridge) setControlValue(state *controlState, value string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	state.lastValue = value
}

// PollReadings fetches one Informationen snapshot, registers fields the first
// time they show up and publishes their parsed values. A failed poll leaves
// the previous snapshot in place and is reported via /state and /metrics.
func (b *Bridge) PollReadings(mqttClient mqtt.Client) {
	payload, err := b.luxClient.Information()
	if err != nil {
		log.Printf("Failed to poll heat pump: %v", err)
		b.recordFailure(err)
		return
	}

	snapshot, err := reading.ParseResponse(payload)
	if err != nil {
		log.Printf("Failed to parse poll response: %v", err)
		b.recordFailure(err)
		return
	}

	homeAssistantClient := homeassistant.NewClient(mqttClient)

	for name, parsed := range snapshot {
		if parsed.Unknown {
			log.Printf("Unparsable value for %v: %q", name, parsed.Raw)
			continue
		}

		stateTopic, ok := b.stateTopic(name)
		if !ok {
			meta := sensorClasses[parsed.Kind]
			registered, err := homeAssistantClient.RegisterSensor(entityName(name), meta.class, meta.unit)
			if err != nil {
				log.Printf("Failed to register sensor %v: %v", name, err)
				continue
			}

			log.Printf("Registered sensor %v", name)
			stateTopic = registered
			b.setStateTopic(name, stateTopic)
		}

		if t := mqttClient.Publish(stateTopic, 0, true, displayValue(parsed)); t.Wait() && t.Error() != nil {
			log.Printf("MQTT publishing failed: %v", t.Error())
			continue
		}
	}

	b.recordSnapshot(snapshot)
}

// Snapshot returns the last parsed poll for the web and metrics surfaces.
func (b *Bridge) Snapshot() (reading.Snapshot, time.Time, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	return b.lastSnapshot, b.lastPoll, b.lastError
}

func (b *Bridge) recordSnapshot(snapshot reading.Snapshot) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.lastSnapshot = snapshot
	b.lastPoll = time.Now()
	b.lastError = nil
}

func (b *Bridge) recordFailure(err error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.lastError = err
}

func (b *Bridge) stateTopic(name string) (string, bool) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	topic, ok := b.stateTopics[name]
	return topic, ok
}

func (b *Bridge) setStateTopic(name string, topic string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.stateTopics[name] = topic
}

func entityName(field string) string {
	return "Novelan " + strings.ReplaceAll(field, "_", " ")
}

func optionLabels(options []luxws.Option) []string {
	labels := make([]string, 0, len(options))
	for _, option := range options {
		labels = append(labels, strings.TrimSpace(option.Label))
	}

	return labels
}

func optionValue(options []luxws.Option, label string) (string, bool) {
	for _, option := range options {
		if strings.TrimSpace(option.Label) == label {
			return option.Value, true
		}
	}

	return "", false
}
