package entities

import (
	"errors"
	"testing"
)

func TestQuantity_Validation(t *testing.T) {
	q, err := NewQuantity(3, 6)
	if err != nil {
		t.Fatalf("Expected valid quantity creation to succeed: %v", err)
	}
	if q.String() != "1/2" {
		t.Errorf("Expected quantity 1/2, got %s", q)
	}

	if _, err := NewQuantity(1, 0); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Expected ErrDivisionByZero, got %v", err)
	}

	if _, err := NewQuantity(-1, 2); err == nil {
		t.Error("Expected error for negative quantity")
	}
}

func TestQuantity_ZeroValue(t *testing.T) {
	var q Quantity
	if !q.IsZero() {
		t.Error("Expected zero value to be zero")
	}
	if q.String() != "0" {
		t.Errorf("Expected 0, got %s", q)
	}
	if !q.Add(WholeQuantity(2)).Equal(WholeQuantity(2)) {
		t.Error("Expected 0 + 2 = 2")
	}
}

func TestQuantity_Arithmetic(t *testing.T) {
	half := MustQuantity(1, 2)
	third := MustQuantity(1, 3)

	if got := half.Add(third); !got.Equal(MustQuantity(5, 6)) {
		t.Errorf("Expected 5/6, got %s", got)
	}
	if got := half.Sub(third); !got.Equal(MustQuantity(1, 6)) {
		t.Errorf("Expected 1/6, got %s", got)
	}
	if got := third.Sub(half); !got.IsZero() {
		t.Errorf("Expected subtraction to clamp at 0, got %s", got)
	}
	if got := half.Mul(third); !got.Equal(MustQuantity(1, 6)) {
		t.Errorf("Expected 1/6, got %s", got)
	}

	got, err := half.Quo(third)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !got.Equal(MustQuantity(3, 2)) {
		t.Errorf("Expected 3/2, got %s", got)
	}

	if _, err := half.Quo(Quantity{}); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Expected ErrDivisionByZero, got %v", err)
	}

	// Operands are never modified
	if !half.Equal(MustQuantity(1, 2)) || !third.Equal(MustQuantity(1, 3)) {
		t.Error("Expected operands to be unchanged")
	}
}

func TestQuantity_ThirdsStayExact(t *testing.T) {
	third := MustQuantity(1, 3)
	sum := third.Add(third).Add(third)
	if !sum.Equal(WholeQuantity(1)) {
		t.Errorf("Expected 1/3 + 1/3 + 1/3 = 1, got %s", sum)
	}
	if !sum.IsInteger() {
		t.Error("Expected sum to be an integer")
	}
}

func TestQuantity_RoundUp(t *testing.T) {
	testCases := []struct {
		name     string
		q        Quantity
		step     Quantity
		expected Quantity
	}{
		{"already a multiple", WholeQuantity(2), MustQuantity(1, 2), WholeQuantity(2)},
		{"rounds up to half", MustQuantity(7, 6), MustQuantity(1, 2), MustQuantity(3, 2)},
		{"rounds up to whole", MustQuantity(1, 10), WholeQuantity(1), WholeQuantity(1)},
		{"eighths", MustQuantity(13, 24), MustQuantity(1, 8), MustQuantity(5, 8)},
		{"zero step leaves value", MustQuantity(1, 3), Quantity{}, MustQuantity(1, 3)},
		{"zero stays zero", Quantity{}, WholeQuantity(1), Quantity{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.q.RoundUp(tc.step)
			if !got.Equal(tc.expected) {
				t.Errorf("Expected %s, got %s", tc.expected, got)
			}
			if got.Cmp(tc.q) < 0 {
				t.Errorf("Expected rounded %s to be >= %s", got, tc.q)
			}
		})
	}
}

func TestQuantity_RatIsCopy(t *testing.T) {
	q := MustQuantity(1, 2)
	r := q.Rat()
	r.SetInt64(9)
	if !q.Equal(MustQuantity(1, 2)) {
		t.Errorf("Expected quantity to stay 1/2, got %s", q)
	}
}

func TestQuantity_MarshalJSON(t *testing.T) {
	data, err := MustQuantity(3, 2).MarshalJSON()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(data) != `"3/2"` {
		t.Errorf("Expected \"3/2\", got %s", data)
	}
}
