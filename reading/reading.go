// Package reading classifies the fields a Novelan LADV9 controller reports and
// coerces their display strings into typed values.
package reading

import (
	"fmt"
	"strconv"
	"strings"
)

// SensorType selects the parsing strategy for a field and maps onto a Home
// Assistant device class downstream.
type SensorType string

const (
	Temperature       SensorType = "temperature"
	TemperatureKelvin SensorType = "temperature.kelvin"
	BinarySensor      SensorType = "binary_sensor"
	Pressure          SensorType = "pressure"
	FlowRate          SensorType = "flow_rate"
	Voltage           SensorType = "voltage"
	Percentage        SensorType = "percentage"
	Speed             SensorType = "speed"
	Duration          SensorType = "duration"
	OperatingHours    SensorType = "operating_hours"
	ErrorLog          SensorType = "error_log"
	SystemStatus      SensorType = "system_status"
	Energy            SensorType = "energy"
	Stage             SensorType = "stage"
	Text              SensorType = "text"
)

// MinStage and MaxStage bound the ventilation stage enumeration.
const (
	MinStage = 1
	MaxStage = 4
)

// Reading is the typed result of interpreting one device field.
type Reading struct {
	Kind SensorType
	Raw  string

	// Number holds the value for numeric kinds, Stage and On for the
	// enumerated ones. For Text kinds Raw is the value.
	Number float64
	Stage  int
	On     bool

	// Unknown marks a numeric field whose value did not parse. The rest of
	// the snapshot stays valid.
	Unknown bool
}

// Classify returns the sensor type for a field name. Names outside the known
// vocabulary classify as Text, never as an error.
func Classify(name string) SensorType {
	if kind, ok := sensorTypes[name]; ok {
		return kind
	}

	if group, _, ok := strings.Cut(name, "_"); ok {
		if kind, ok := groupTypes[group]; ok {
			return kind
		}
	}

	return Text
}

// Parse coerces a raw display string according to its sensor type. A numeric
// value that does not parse returns an error, the caller reports that single
// field as unknown. Enumerated values outside the expected vocabulary degrade
// to a Text reading instead of failing.
func Parse(raw string, kind SensorType) (Reading, error) {
	switch {
	case kind.numeric():
		number, err := normalizeNumber(raw)
		if err != nil {
			return Reading{}, err
		}

		return Reading{Kind: kind, Raw: raw, Number: number}, nil
	case kind == Stage:
		stage, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || stage < MinStage || stage > MaxStage {
			return Reading{Kind: Text, Raw: raw}, nil
		}

		return Reading{Kind: Stage, Raw: raw, Stage: stage}, nil
	case kind == BinarySensor:
		switch strings.TrimSpace(raw) {
		case "Ein":
			return Reading{Kind: BinarySensor, Raw: raw, On: true}, nil
		case "Aus":
			return Reading{Kind: BinarySensor, Raw: raw, On: false}, nil
		}

		return Reading{Kind: Text, Raw: raw}, nil
	default:
		return Reading{Kind: kind, Raw: raw}, nil
	}
}

func (s SensorType) numeric() bool {
	switch s {
	case Temperature, TemperatureKelvin, Pressure, FlowRate, Voltage, Percentage, Speed, OperatingHours, Energy:
		return true
	}

	return false
}

// normalizeNumber strips the device's display formatting: a trailing unit
// suffix (°C, K, bar, l/h, V, %, RPM, h, kWh) and the firmware-dependent
// decimal comma.
func normalizeNumber(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)

	end := len(trimmed)
	for i, r := range trimmed {
		if !strings.ContainsRune("0123456789+-.,", r) {
			end = i
			break
		}
	}

	number := strings.ReplaceAll(trimmed[:end], ",", ".")
	if number == "" {
		return 0, fmt.Errorf("no numeric value in %q", raw)
	}

	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, fmt.Errorf("unparsable numeric value %q", raw)
	}

	return value, nil
}
