package bridge

import (
	"strconv"

	"github.com/jdecock/go-novelan/reading"
)

type sensorMetadata struct {
	class string
	unit  string
}

// sensorClasses maps a sensor type onto the Home Assistant device class and
// unit its readings are announced with. Kinds without an entry register as
// plain text sensors.
var sensorClasses = map[reading.SensorType]sensorMetadata{
	reading.Temperature:       {class: "temperature", unit: "°C"},
	reading.TemperatureKelvin: {class: "temperature", unit: "K"},
	reading.Pressure:          {class: "pressure", unit: "bar"},
	reading.FlowRate:          {unit: "L/h"},
	reading.Voltage:           {class: "voltage", unit: "V"},
	reading.Percentage:        {unit: "%"},
	reading.Speed:             {unit: "RPM"},
	reading.OperatingHours:    {class: "duration", unit: "h"},
	reading.Energy:            {class: "energy", unit: "kWh"},
}

// displayValue renders a parsed reading the way it is published to its state
// topic.
func displayValue(r reading.Reading) string {
	switch {
	case r.Kind == reading.Stage:
		return strconv.Itoa(r.Stage)
	case r.Kind == reading.BinarySensor:
		if r.On {
			return "ON"
		}
		return "OFF"
	case r.Kind == reading.Text, r.Kind == reading.Duration,
		r.Kind == reading.ErrorLog, r.Kind == reading.SystemStatus:
		return r.Raw
	default:
		return strconv.FormatFloat(r.Number, 'f', -1, 64)
	}
}
