package interval

import (
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 2, 1, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{"touching end to start", Span{Start: at(10, 0), End: at(11, 0)}, Span{Start: at(11, 0), End: at(12, 0)}, false},
		{"partial overlap", Span{Start: at(10, 0), End: at(11, 0)}, Span{Start: at(10, 30), End: at(11, 30)}, true},
		{"contained", Span{Start: at(10, 0), End: at(12, 0)}, Span{Start: at(10, 30), End: at(11, 0)}, true},
		{"identical", Span{Start: at(10, 0), End: at(11, 0)}, Span{Start: at(10, 0), End: at(11, 0)}, true},
		{"disjoint", Span{Start: at(8, 0), End: at(9, 0)}, Span{Start: at(13, 0), End: at(14, 0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, tt.b); got != tt.want {
				t.Errorf("Overlaps(a,b) = %v, want %v", got, tt.want)
			}
			// symmetry
			if got := Overlaps(tt.b, tt.a); got != tt.want {
				t.Errorf("Overlaps(b,a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnyOverlapExcludesSelf(t *testing.T) {
	existing := []Span{
		{ID: "a", Start: at(10, 0), End: at(11, 0)},
		{ID: "b", Start: at(12, 0), End: at(13, 0)},
	}

	// a slot never conflicts with itself when excluded by id
	candidate := Span{ID: "a", Start: at(10, 0), End: at(11, 0)}
	if AnyOverlap(existing, candidate, "a") {
		t.Error("excluded span should not conflict with itself")
	}
	if !AnyOverlap(existing, candidate, "") {
		t.Error("expected conflict without exclusion")
	}

	// exclusion does not hide other conflicts
	moved := Span{ID: "a", Start: at(12, 30), End: at(13, 30)}
	if !AnyOverlap(existing, moved, "a") {
		t.Error("expected conflict with span b")
	}
}
