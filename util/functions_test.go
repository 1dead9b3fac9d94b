package util

import (
	"math"
	"testing"
)

func TestLogAdd(t *testing.T) {
	cases := []struct {
		a, b float64
	}{
		{math.Log(0.25), math.Log(0.5)},
		{math.Log(0.5), math.Log(0.25)},
		{0, 0},
		{-1000, -1001},
		{-3, -3},
	}
	for _, c := range cases {
		got := LogAdd(c.a, c.b)
		var want float64
		if c.a > -700 {
			want = math.Log(math.Exp(c.a) + math.Exp(c.b))
		} else {
			want = c.a + math.Log(1+math.Exp(c.b-c.a))
		}
		if !AlmostEqual(got, want, 1e-12) {
			t.Errorf("LogAdd(%v, %v) = %v, expected %v", c.a, c.b, got, want)
		}
	}
}

func TestLogAddUnderflow(t *testing.T) {
	// the naive formula returns -Inf here
	got := LogAdd(-2000, -2000)
	want := -2000 + math.Ln2
	if !AlmostEqual(got, want, 1e-9) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestLogAddZeroProbability(t *testing.T) {
	negInf := math.Inf(-1)
	if got := LogAdd(negInf, -2); got != -2 {
		t.Errorf("Expected -2, got %v", got)
	}
	if got := LogAdd(-2, negInf); got != -2 {
		t.Errorf("Expected -2, got %v", got)
	}
	if got := LogAdd(negInf, negInf); !math.IsInf(got, -1) {
		t.Errorf("Expected -Inf, got %v", got)
	}
}

func TestLogSum(t *testing.T) {
	got := LogSum([]float64{math.Log(0.1), math.Log(0.2), math.Log(0.7)})
	if !AlmostEqual(got, 0, 1e-12) {
		t.Errorf("Expected 0, got %v", got)
	}
	if got := LogSum(nil); !math.IsInf(got, -1) {
		t.Errorf("Expected -Inf for empty sum, got %v", got)
	}
}

func TestEnumSetSet(t *testing.T) {
	e := NewEnumSet(4)
	if err := e.Set(2, "NP"); err != nil {
		t.Fatal(err)
	}
	if err := e.Set(0, "S"); err != nil {
		t.Fatal(err)
	}
	if e.Len() != 3 {
		t.Errorf("Expected length 3, got %d", e.Len())
	}
	if v, ok := e.ValueOf(2); !ok || v != "NP" {
		t.Errorf("Expected NP at 2, got %q (%v)", v, ok)
	}
	if _, ok := e.ValueOf(1); ok {
		t.Error("Index 1 was never bound")
	}
	if i, ok := e.IndexOf("S"); !ok || i != 0 {
		t.Errorf("Expected S at 0, got %d (%v)", i, ok)
	}
	if err := e.Set(2, "VP"); err == nil {
		t.Error("Expected error rebinding index 2")
	}
	e.Frozen = true
	if err := e.Set(3, "VP"); err == nil {
		t.Error("Expected error setting on frozen set")
	}
}
