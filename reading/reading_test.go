package reading

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"testing"
)

func TestClassify_KnownFields(t *testing.T) {
	tests := []struct {
		name string
		want SensorType
	}{
		{"Temperaturen_Aussentemperatur", Temperature},
		{"Temperaturen_Überhitzung", TemperatureKelvin},
		{"Eingänge_HD", Pressure},
		{"Eingänge_Durchfluss", FlowRate},
		{"Eingänge_ASD", BinarySensor},
		{"Ausgänge_Ventilator", Speed},
		{"Ausgänge_AO1", Voltage},
		{"Wärmemenge_Heizung", Energy},
		{"Betriebsstunden_BStd. VD1", OperatingHours},
		{"Ablaufzeiten_HRM-Zeit", Duration},
		{"Fehlerspeicher_Fehler 1", ErrorLog},
		{"Anlagenstatus_Betriebszustand", SystemStatus},
		{"Lüftung_Stufe", Stage},
	}

	for _, tt := range tests {
		if got := Classify(tt.name); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestClassify_Deterministic(t *testing.T) {
	for name := range sensorTypes {
		first := Classify(name)
		for i := 0; i < 3; i++ {
			if got := Classify(name); got != first {
				t.Fatalf("Classify(%q) changed between calls: %v then %v", name, first, got)
			}
		}
	}
}

func TestClassify_GroupFallback(t *testing.T) {
	// A leaf the table does not know still classifies by its group.
	if got := Classify("Temperaturen_Solarkollektor"); got != Temperature {
		t.Errorf("Classify() = %v, want %v", got, Temperature)
	}

	// Input and output groups mix value kinds, unknown members stay text.
	if got := Classify("Eingänge_STB"); got != Text {
		t.Errorf("Classify() = %v, want %v", got, Text)
	}
}

func TestClassify_UnknownNames(t *testing.T) {
	for _, name := range []string{"", "Bogus", "Unbekannt_Feld", "Temperaturen"} {
		if got := Classify(name); got != Text {
			t.Errorf("Classify(%q) = %v, want %v", name, got, Text)
		}
	}
}

func TestParse_Numeric(t *testing.T) {
	tests := []struct {
		raw  string
		kind SensorType
		want float64
	}{
		{"5,3°C", Temperature, 5.3},
		{"28.1°C", Temperature, 28.1},
		{"-7,5°C", Temperature, -7.5},
		{"2,9 K", TemperatureKelvin, 2.9},
		{"8,20 bar", Pressure, 8.2},
		{"1200 l/h", FlowRate, 1200},
		{"4,5 V", Voltage, 4.5},
		{"100 %", Percentage, 100},
		{"1430 RPM", Speed, 1430},
		{"1234h", OperatingHours, 1234},
		{"12345 kWh", Energy, 12345},
	}

	for _, tt := range tests {
		parsed, err := Parse(tt.raw, tt.kind)
		if err != nil {
			t.Errorf("Parse(%q, %v) error = %v", tt.raw, tt.kind, err)
			continue
		}

		if parsed.Number != tt.want {
			t.Errorf("Parse(%q, %v) = %v, want %v", tt.raw, tt.kind, parsed.Number, tt.want)
		}
	}
}

func TestParse_NumericRoundTrip(t *testing.T) {
	// Formatting a value the way the device renders it and parsing it back
	// reproduces the original number.
	for _, value := range []float64{-15.2, -0.5, 0, 5.3, 28.1, 61.9} {
		display := strings.Replace(strconv.FormatFloat(value, 'f', 1, 64), ".", ",", 1) + "°C"

		parsed, err := Parse(display, Temperature)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", display, err)
		}

		if math.Abs(parsed.Number-value) > 1e-9 {
			t.Errorf("round trip of %v via %q = %v", value, display, parsed.Number)
		}
	}
}

func TestParse_UnparsableNumeric(t *testing.T) {
	for _, raw := range []string{"", "---", "n/a", "°C"} {
		if _, err := Parse(raw, Temperature); err == nil {
			t.Errorf("Parse(%q, Temperature) expected error, got nil", raw)
		}
	}
}

func TestParse_Stage(t *testing.T) {
	for stage := MinStage; stage <= MaxStage; stage++ {
		parsed, err := Parse(strconv.Itoa(stage), Stage)
		if err != nil {
			t.Fatalf("Parse(%d, Stage) error = %v", stage, err)
		}

		if parsed.Kind != Stage || parsed.Stage != stage {
			t.Errorf("Parse(%d, Stage) = %+v", stage, parsed)
		}
	}
}

func TestParse_StageOutOfRange(t *testing.T) {
	// Unexpected stage tokens pass through as text instead of failing.
	for _, raw := range []string{"0", "9", "-1", "Auto"} {
		parsed, err := Parse(raw, Stage)
		if err != nil {
			t.Fatalf("Parse(%q, Stage) error = %v", raw, err)
		}

		if parsed.Kind != Text || parsed.Raw != raw {
			t.Errorf("Parse(%q, Stage) = %+v, want text pass-through", raw, parsed)
		}
	}
}

func TestParse_Binary(t *testing.T) {
	on, err := Parse("Ein", BinarySensor)
	if err != nil || on.Kind != BinarySensor || !on.On {
		t.Errorf("Parse(Ein) = %+v, err %v", on, err)
	}

	off, err := Parse("Aus", BinarySensor)
	if err != nil || off.Kind != BinarySensor || off.On {
		t.Errorf("Parse(Aus) = %+v, err %v", off, err)
	}

	other, err := Parse("Vielleicht", BinarySensor)
	if err != nil || other.Kind != Text {
		t.Errorf("Parse(Vielleicht) = %+v, err %v, want text pass-through", other, err)
	}
}

func TestParse_Text(t *testing.T) {
	parsed, err := Parse("00:00", Duration)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if parsed.Kind != Duration || parsed.Raw != "00:00" {
		t.Errorf("Parse() = %+v", parsed)
	}
}

const pollPayload = `<Content>
	<item id="0x1">
		<name>Temperaturen</name>
		<item id="0x11"><name>Aussentemperatur</name><value>5,3°C</value></item>
		<item id="0x12"><name>Vorlauf</name><value>28.1°C</value></item>
		<item id="0x13"><name>Rücklauf</name><value>---</value></item>
	</item>
	<item id="0x2">
		<name>Lüftung</name>
		<item id="0x21"><name>Stufe</name><value>2</value></item>
	</item>
	<item id="0x3">
		<name>Ausgänge</name>
		<item id="0x31"><name>Verdichter</name><value>Ein</value></item>
	</item>
</Content>`

func TestParseResponse(t *testing.T) {
	snapshot, err := ParseResponse([]byte(pollPayload))
	if err != nil {
		t.Fatalf("ParseResponse() error = %v", err)
	}

	outside, ok := snapshot["Temperaturen_Aussentemperatur"]
	if !ok {
		t.Fatal("missing Temperaturen_Aussentemperatur")
	}
	if outside.Kind != Temperature || outside.Number != 5.3 {
		t.Errorf("Aussentemperatur = %+v, want temperature 5.3", outside)
	}

	stage, ok := snapshot["Lüftung_Stufe"]
	if !ok {
		t.Fatal("missing Lüftung_Stufe")
	}
	if stage.Kind != Stage || stage.Stage != 2 {
		t.Errorf("Stufe = %+v, want stage 2", stage)
	}

	compressor := snapshot["Ausgänge_Verdichter"]
	if compressor.Kind != BinarySensor || !compressor.On {
		t.Errorf("Verdichter = %+v, want binary on", compressor)
	}
}

func TestParseResponse_UnparsableFieldIsIsolated(t *testing.T) {
	snapshot, err := ParseResponse([]byte(pollPayload))
	if err != nil {
		t.Fatalf("ParseResponse() error = %v", err)
	}

	broken, ok := snapshot["Temperaturen_Rücklauf"]
	if !ok {
		t.Fatal("unparsable field should still be present")
	}
	if !broken.Unknown || broken.Raw != "---" {
		t.Errorf("Rücklauf = %+v, want unknown with raw preserved", broken)
	}

	// The failure stays contained to that field.
	if snapshot["Temperaturen_Vorlauf"].Number != 28.1 {
		t.Errorf("Vorlauf = %+v, want 28.1", snapshot["Temperaturen_Vorlauf"])
	}
}

func TestParseResponse_StageOutOfRange(t *testing.T) {
	payload := `<Content><item id="0x2"><name>Lüftung</name><item id="0x21"><name>Stufe</name><value>9</value></item></item></Content>`

	snapshot, err := ParseResponse([]byte(payload))
	if err != nil {
		t.Fatalf("ParseResponse() error = %v", err)
	}

	stage := snapshot["Lüftung_Stufe"]
	if stage.Kind != Text || stage.Raw != "9" {
		t.Errorf("Stufe = %+v, want text pass-through of raw value", stage)
	}
}

func TestParseResponse_MalformedPayload(t *testing.T) {
	payloads := []string{
		`<Content><item id="0x1"><name>Temperaturen</name>`,
		`not xml at all`,
		`<Navigation><item id="0x1"/></Navigation>`,
	}

	for _, payload := range payloads {
		if _, err := ParseResponse([]byte(payload)); !errors.Is(err, ErrMalformedPayload) {
			t.Errorf("ParseResponse(%q) error = %v, want ErrMalformedPayload", payload, err)
		}
	}
}

func TestParseResponse_UnknownFieldPreserved(t *testing.T) {
	payload := `<Content><item id="0x9"><name>Neues Menü</name><item id="0x91"><name>Feld</name><value>etwas</value></item></item></Content>`

	snapshot, err := ParseResponse([]byte(payload))
	if err != nil {
		t.Fatalf("ParseResponse() error = %v", err)
	}

	field := snapshot["Neues Menü_Feld"]
	if field.Kind != Text || field.Raw != "etwas" {
		t.Errorf("unknown field = %+v, want preserved as text", field)
	}
}

func ExampleParseResponse() {
	payload := `<Content><item id="0x1"><name>Temperaturen</name><item id="0x11"><name>Aussentemperatur</name><value>5,3°C</value></item></item></Content>`

	snapshot, _ := ParseResponse([]byte(payload))
	fmt.Println(snapshot["Temperaturen_Aussentemperatur"].Number)
	// Output: 5.3
}
