package Models

import (
	"reflect"
	"testing"
)

func TestAffectedTeethRoundTrip(t *testing.T) {
	cases := []struct {
		teeth  []string
		stored string
	}{
		{
			teeth:  []string{},
			stored: "",
		},
		{
			teeth:  []string{"36"},
			stored: "36",
		},
		{
			teeth:  []string{"11", "36", "47"},
			stored: "11,36,47",
		},
	}

	for _, c := range cases {
		var visit Visit
		visit.SetAffectedTeeth(c.teeth)
		if visit.AffectedTeeth != c.stored {
			t.Fatalf("expected stored %q, got %q", c.stored, visit.AffectedTeeth)
		}
		if got := visit.AffectedTeethList(); !reflect.DeepEqual(got, c.teeth) {
			t.Fatalf("expected %v, got %v", c.teeth, got)
		}
	}
}

func TestVisitIsCompleted(t *testing.T) {
	visit := Visit{Status: VisitStatusStarted}
	if visit.IsCompleted() {
		t.Fatal("started visit must not report completed")
	}
	visit.Status = VisitStatusCompleted
	if !visit.IsCompleted() {
		t.Fatal("completed visit must report completed")
	}
}
