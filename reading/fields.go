package reading

// Field name prefixes as the controller groups them on the Informationen page.
const (
	GroupTemperatures   = "Temperaturen"
	GroupInputs         = "Eingänge"
	GroupOutputs        = "Ausgänge"
	GroupElapsedTimes   = "Ablaufzeiten"
	GroupOperatingHours = "Betriebsstunden"
	GroupErrorMemory    = "Fehlerspeicher"
	GroupShutdowns      = "Abschaltungen"
	GroupSystemStatus   = "Anlagenstatus"
	GroupHeatQuantity   = "Wärmemenge"
	GroupVentilation    = "Lüftung"
)

// sensorTypes is the fixed classification table for the LADV9 field
// vocabulary. Classification is a function of the field name only; fields the
// table does not know fall back to their group, then to raw text.
var sensorTypes = map[string]SensorType{
	"Temperaturen_Vorlauf":          Temperature,
	"Temperaturen_Rücklauf":         Temperature,
	"Temperaturen_Rückl.-Soll":      Temperature,
	"Temperaturen_Heissgas":         Temperature,
	"Temperaturen_Aussentemperatur": Temperature,
	"Temperaturen_Mitteltemperatur": Temperature,
	"Temperaturen_Warmwasser-Ist":   Temperature,
	"Temperaturen_Warmwasser-Soll":  Temperature,
	"Temperaturen_Wärmequelle-Ein":  Temperature,
	"Temperaturen_Wärmequelle-Aus":  Temperature,
	"Temperaturen_Vorlauf max.":     Temperature,
	"Temperaturen_Ansaug VD":        Temperature,
	"Temperaturen_VD-Heizung":       Temperature,
	"Temperaturen_Überhitzung":      TemperatureKelvin,
	"Temperaturen_Überhitzung Soll": TemperatureKelvin,
	"Eingänge_ASD":                  BinarySensor,
	"Eingänge_EVU":                  BinarySensor,
	"Eingänge_MOT":                  BinarySensor,
	"Eingänge_Abtau":                BinarySensor,
	"Eingänge_HD":                   Pressure,
	"Eingänge_ND":                   Pressure,
	"Eingänge_Durchfluss":           FlowRate,
	"Ausgänge_BUP":                  BinarySensor,
	"Ausgänge_HUP":                  BinarySensor,
	"Ausgänge_ZIP":                  BinarySensor,
	"Ausgänge_ZUP":                  BinarySensor,
	"Ausgänge_ZWE1":                 BinarySensor,
	"Ausgänge_ZWE2":                 BinarySensor,
	"Ausgänge_Verdichter":           BinarySensor,
	"Ausgänge_Ventil.-BOSUP":        BinarySensor,
	"Ausgänge_AO1":                  Voltage,
	"Ausgänge_AO2":                  Voltage,
	"Ausgänge_Mischer 1 Auf":        Percentage,
	"Ausgänge_Mischer 1 Zu":         Percentage,
	"Ausgänge_Ventilator":           Speed,
	"Wärmemenge_Heizung":            Energy,
	"Wärmemenge_Warmwasser":         Energy,
	"Wärmemenge_Gesamt":             Energy,
	"Lüftung_Stufe":                 Stage,
	"Anlagenstatus_Wärmepumpen Typ": SystemStatus,
	"Anlagenstatus_Softwarestand":   SystemStatus,
	"Anlagenstatus_Betriebszustand": SystemStatus,
	"Anlagenstatus_Bivalenz Stufe":  SystemStatus,
	"Betriebsstunden_BStd. VD1":     OperatingHours,
	"Betriebsstunden_BStd. ZWE1":    OperatingHours,
	"Betriebsstunden_BStd. Heizung": OperatingHours,
	"Betriebsstunden_BStd. WW":      OperatingHours,
	"Betriebsstunden_Impulse VD1":   OperatingHours,
	"Ablaufzeiten_HRM-Zeit":         Duration,
	"Ablaufzeiten_HRW-Zeit":         Duration,
	"Ablaufzeiten_TDI-Zeit":         Duration,
	"Ablaufzeiten_Sperre WW":        Duration,
}

// groupTypes classifies fields of a known group whose leaf name is not in the
// exact table. Input and output groups are absent on purpose: their members
// mix binary, pressure, flow and voltage readings, so an unknown member cannot
// be typed from the name and stays raw text.
var groupTypes = map[string]SensorType{
	GroupTemperatures:   Temperature,
	GroupElapsedTimes:   Duration,
	GroupOperatingHours: OperatingHours,
	GroupErrorMemory:    ErrorLog,
	GroupShutdowns:      ErrorLog,
	GroupSystemStatus:   SystemStatus,
	GroupHeatQuantity:   Energy,
}
