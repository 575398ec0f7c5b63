package units

import "testing"

func TestUnitFromFloat(t *testing.T) {
	tests := []struct {
		name    string
		in      float64
		want    Unit
		wantErr bool
	}{
		{name: "one unit", in: 1, want: 1000},
		{name: "quarter unit", in: 0.25, want: 250},
		{name: "spacebar", in: 6.25, want: 6250},
		{name: "twentieth", in: 0.05, want: 50},
		{name: "zero", in: 0, want: 0},
		{name: "negative offset", in: -0.5, want: -500},
		{name: "off grid", in: 0.0005, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UnitFromFloat(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("UnitFromFloat(%v) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("UnitFromFloat(%v): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("UnitFromFloat(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnitString(t *testing.T) {
	tests := []struct {
		u    Unit
		want string
	}{
		{1000, "1"},
		{6250, "6.25"},
		{1500, "1.5"},
		{-500, "-0.5"},
	}

	for _, tt := range tests {
		if got := tt.u.String(); got != tt.want {
			t.Errorf("Unit(%d).String() = %q, want %q", tt.u, got, tt.want)
		}
	}
}

func TestNanoMM(t *testing.T) {
	tests := []struct {
		name string
		n    Nano
		want string
	}{
		{name: "whole", n: 19 * NanoPerMM, want: "19"},
		{name: "two decimals", n: 17_780_000, want: "17.78"},
		{name: "negative", n: -52_375_000, want: "-52.375"},
		{name: "trailing zeros trimmed", n: 2_500_000, want: "2.5"},
		{name: "zero", n: 0, want: "0"},
		{name: "sub-micron", n: 19_050, want: "0.01905"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.n.MM(); got != tt.want {
				t.Errorf("Nano(%d).MM() = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}

func TestNanoFromMMRoundTrip(t *testing.T) {
	// The key pitch must survive mm -> nm -> mm exactly; a drifting pitch
	// would shift every switch on the board.
	if got := NanoFromMM(19.05); got != 19_050_000 {
		t.Fatalf("NanoFromMM(19.05) = %d, want 19050000", got)
	}
	if got := NanoFromMM(-6.35); got != -6_350_000 {
		t.Fatalf("NanoFromMM(-6.35) = %d, want -6350000", got)
	}
}
