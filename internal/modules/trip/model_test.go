// README: State machine and enumeration tests (no database).
package trip

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		// the only legal edges
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusInProgress, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusInProgress, StatusCompleted, true},
		// terminal states have no outgoing transitions
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		// skipping states
		{StatusPending, StatusInProgress, false},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, false},
		// no backwards edges
		{StatusConfirmed, StatusPending, false},
		{StatusInProgress, StatusConfirmed, false},
		{StatusInProgress, StatusCancelled, false},
		// self loops are not edges
		{StatusPending, StatusPending, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestStatusIsTerminal(t *testing.T) {
	for status, terminal := range map[Status]bool{
		StatusPending:    false,
		StatusConfirmed:  false,
		StatusInProgress: false,
		StatusCompleted:  true,
		StatusCancelled:  true,
	} {
		if got := status.IsTerminal(); got != terminal {
			t.Errorf("%s.IsTerminal() = %v, want %v", status, got, terminal)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if s, ok := ParseStatus("In-Progress"); !ok || s != StatusInProgress {
		t.Errorf("ParseStatus(In-Progress) = %q, %v", s, ok)
	}
	if _, ok := ParseStatus("driving"); ok {
		t.Error("ParseStatus(driving) accepted an unknown status")
	}
	if _, ok := ParseStatus(""); ok {
		t.Error("ParseStatus(empty) accepted an empty status")
	}
}

func TestParseCategory(t *testing.T) {
	for _, raw := range []string{"Luxury", "safari", "TOUR", "adventure", "Casual"} {
		if _, ok := ParseCategory(raw); !ok {
			t.Errorf("ParseCategory(%s) rejected a valid category", raw)
		}
	}
	if _, ok := ParseCategory("cruise"); ok {
		t.Error("ParseCategory(cruise) accepted an unknown category")
	}
}
