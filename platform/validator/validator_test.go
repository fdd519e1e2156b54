package validator

import "testing"

func TestHHMMTag(t *testing.T) {
	v := New()

	for _, valid := range []string{"00:00", "09:30", "17:05", "23:59"} {
		if err := v.Var(valid, TagHHMM); err != nil {
			t.Errorf("expected %q to pass, got %v", valid, err)
		}
	}
	for _, invalid := range []string{"24:00", "9:30", "09:60", "0930", "09:3a", ""} {
		if err := v.Var(invalid, TagHHMM); err == nil {
			t.Errorf("expected %q to fail", invalid)
		}
	}
}
