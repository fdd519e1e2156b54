package domain

import "testing"

func TestLocalizedName(t *testing.T) {
	svc := Service{Name: map[string]string{"es": "Corte de pelo", "en": "Haircut"}}

	if got := svc.LocalizedName("es"); got != "Corte de pelo" {
		t.Errorf("expected exact translation, got %q", got)
	}
	if got := svc.LocalizedName("en"); got != "Haircut" {
		t.Errorf("expected exact translation, got %q", got)
	}

	// Unknown language falls back to the lowest key for determinism.
	if got := svc.LocalizedName("fr"); got != "Haircut" {
		t.Errorf("expected deterministic fallback, got %q", got)
	}

	// Empty translations are skipped when falling back.
	svc.Name = map[string]string{"en": "", "es": "Corte"}
	if got := svc.LocalizedName("fr"); got != "Corte" {
		t.Errorf("expected empty translation to be skipped, got %q", got)
	}

	svc.Name = nil
	if got := svc.LocalizedName("es"); got != FallbackServiceName {
		t.Errorf("expected generic fallback, got %q", got)
	}
}
