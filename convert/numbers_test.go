package convert

import (
	"math"
	"testing"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		wantErr  bool
	}{
		{name: "period separator", input: "104.52", expected: 104.52},
		{name: "comma separator", input: "104,52", expected: 104.52},
		{name: "integer", input: "95", expected: 95},
		{name: "negative price", input: "-4,31", expected: -4.31},
		{name: "surrounding spaces", input: " 0,5 ", expected: 0.5},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "n.d.", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimal(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDecimal(%q) expected an error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDecimal(%q) unexpected error: %v", tt.input, err)
			}
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("ParseDecimal(%q) expected %f, got %f", tt.input, tt.expected, got)
			}
		})
	}
}

func TestMWhToKWh(t *testing.T) {
	if got := MWhToKWh(132.5); math.Abs(got-0.1325) > 1e-12 {
		t.Errorf("MWhToKWh(132.5) expected 0.1325, got %f", got)
	}
}

func TestRoundFloat64(t *testing.T) {
	if got := RoundFloat64(1.23456, 3); got != 1.235 {
		t.Errorf("RoundFloat64 expected 1.235, got %f", got)
	}
	if got := TwoDecimals(1.234); got != 1.23 {
		t.Errorf("TwoDecimals(1.234) expected 1.23, got %f", got)
	}
}
