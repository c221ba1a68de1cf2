package admins

import "testing"

func TestJSONField(t *testing.T) {
	if got, err := jsonField("  "); err != nil || got != nil {
		t.Errorf("blank input: got %v, %v", got, err)
	}
	if got, err := jsonField(`{"yield_kg": 1200, "spend": 45000}`); err != nil || got == nil {
		t.Errorf("valid document rejected: %v", err)
	}
	if _, err := jsonField(`{"yield_kg": `); err == nil {
		t.Error("truncated document accepted")
	}
	if _, err := jsonField("not json"); err == nil {
		t.Error("plain text accepted")
	}
}

func TestOptionalText(t *testing.T) {
	if optionalText("  ") != nil {
		t.Error("blank input should map to nil")
	}
	got := optionalText("  crop doing well  ")
	if got == nil || *got != "crop doing well" {
		t.Errorf("got %v", got)
	}
}
