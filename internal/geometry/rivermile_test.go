package geometry

import "testing"

func TestRiverMileHeadwaterFirst(t *testing.T) {
	cases := []struct {
		fraction float64
		want     float64
	}{
		{0, 0},
		{0.2, 2.0},
		{0.8, 8.0},
		{1, 10.0},
		{0.333, 3.3},
	}
	for _, c := range cases {
		got, err := RiverMile(c.fraction, 10.0, true)
		if err != nil {
			t.Fatalf("RiverMile(%f): %v", c.fraction, err)
		}
		if got != c.want {
			t.Errorf("RiverMile(%f, 10, headwater-first) = %f; want %f", c.fraction, got, c.want)
		}
	}
}

func TestRiverMileMouthFirst(t *testing.T) {
	got, err := RiverMile(0.2, 10.0, false)
	if err != nil {
		t.Fatalf("RiverMile: %v", err)
	}
	if got != 8.0 {
		t.Errorf("RiverMile(0.2, 10, mouth-first) = %f; want 8.0", got)
	}
}

func TestRiverMileMonotonic(t *testing.T) {
	fractions := []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1}

	prev := -1.0
	for _, f := range fractions {
		mile, err := RiverMile(f, 100.0, true)
		if err != nil {
			t.Fatalf("RiverMile(%f): %v", f, err)
		}
		if mile <= prev {
			t.Errorf("headwater-first not increasing: f=%f mile=%f prev=%f", f, mile, prev)
		}
		prev = mile
	}

	prev = 101.0
	for _, f := range fractions {
		mile, err := RiverMile(f, 100.0, false)
		if err != nil {
			t.Fatalf("RiverMile(%f): %v", f, err)
		}
		if mile >= prev {
			t.Errorf("mouth-first not decreasing: f=%f mile=%f prev=%f", f, mile, prev)
		}
		prev = mile
	}
}

func TestRiverMileRejectsBadInputs(t *testing.T) {
	if _, err := RiverMile(-0.01, 10, true); err == nil {
		t.Error("RiverMile(-0.01) did not fail")
	}
	if _, err := RiverMile(1.01, 10, true); err == nil {
		t.Error("RiverMile(1.01) did not fail")
	}
	if _, err := RiverMile(0.5, -1, true); err == nil {
		t.Error("RiverMile with negative length did not fail")
	}
}

func TestMileForPoint(t *testing.T) {
	p, err := NewPolyline([]Point{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}})
	if err != nil {
		t.Fatalf("NewPolyline: %v", err)
	}

	snapped, mile, err := MileForPoint(p, Point{Lon: 0.5, Lat: 0.1}, 10.0, true)
	if err != nil {
		t.Fatalf("MileForPoint: %v", err)
	}
	if mile != 5.0 {
		t.Errorf("mile = %f; want 5.0", mile)
	}
	if snapped.Lat != 0 {
		t.Errorf("snapped latitude = %f; want 0", snapped.Lat)
	}
}
