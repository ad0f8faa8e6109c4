package homeassistant

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Novelan Temperaturen Aussentemperatur", "novelan_temperaturen_aussentemperatur"},
		{"Novelan Temperaturen Rückl.-Soll", "novelan_temperaturen_rueckl_soll"},
		{"Novelan Wärmemenge Heizung", "novelan_waermemenge_heizung"},
		{"Novelan Lüftung Stufe", "novelan_lueftung_stufe"},
	}

	for _, tt := range tests {
		if got := slugify(tt.name); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

// The topics have to be derivable from the entity name alone, otherwise
// command subscriptions would depend on the entity being registered first.
func TestSelectTopics(t *testing.T) {
	state, command := SelectTopics("Novelan Heizkreis")

	if want := "novelan/select/novelan_heizkreis/state"; state != want {
		t.Errorf("state topic = %q, want %q", state, want)
	}
	if want := "novelan/select/novelan_heizkreis/cmd"; command != want {
		t.Errorf("command topic = %q, want %q", command, want)
	}
}
