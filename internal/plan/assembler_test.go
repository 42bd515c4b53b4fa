package plan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/driftwell/riverplan/internal/models"
)

func fl(v float64) *float64 { return &v }

type fakeStores struct {
	rivers   map[int64]*models.River
	points   map[int64]*models.AccessPoint
	vessels  map[int64]*models.VesselType
	hazards  []models.Hazard
	rangeLo  float64
	rangeHi  float64
	reading  *models.ConditionReading
	gaugeErr error
	routeErr error
	route    *models.DriveEstimate
}

func (f *fakeStores) GetRiverByID(id int64) (*models.River, error)        { return f.rivers[id], nil }
func (f *fakeStores) GetAccessPointByID(id int64) (*models.AccessPoint, error) {
	return f.points[id], nil
}
func (f *fakeStores) GetVesselByID(id int64) (*models.VesselType, error) { return f.vessels[id], nil }

func (f *fakeStores) HazardsInRange(riverID int64, minMile, maxMile float64) ([]models.Hazard, error) {
	f.rangeLo, f.rangeHi = minMile, maxMile
	var out []models.Hazard
	for _, h := range f.hazards {
		if h.RiverID == riverID && h.RiverMile >= minMile && h.RiverMile <= maxMile {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeStores) Latest(_ context.Context, _ string) (*models.ConditionReading, error) {
	if f.gaugeErr != nil {
		return nil, f.gaugeErr
	}
	return f.reading, nil
}

func (f *fakeStores) Route(_ context.Context, _, _ models.Coordinate, _ models.CacheFreshness) (*models.DriveEstimate, error) {
	if f.routeErr != nil {
		return nil, f.routeErr
	}
	return f.route, nil
}

func testFixture() *fakeStores {
	return &fakeStores{
		rivers: map[int64]*models.River{
			1: {
				ID: 1, Name: "Cannon River", Slug: "cannon",
				LengthMiles: 10, HeadwaterFirst: true,
				GaugeStationID: "05355200", GaugeName: "Cannon at Welch",
				LowFt: fl(1.5), OptimalMinFt: fl(2), OptimalMaxFt: fl(4),
				HighFt: fl(6), DangerousFt: fl(9),
			},
		},
		points: map[int64]*models.AccessPoint{
			10: {ID: 10, RiverID: 1, Name: "Upper Landing", RiverMile: 2.0, SnappedLat: 44.5, SnappedLon: -92.9},
			11: {ID: 11, RiverID: 1, Name: "Lower Landing", RiverMile: 8.0, SnappedLat: 44.6, SnappedLon: -92.7},
			12: {ID: 12, RiverID: 2, Name: "Other River Ramp", RiverMile: 1.0},
		},
		vessels: map[int64]*models.VesselType{
			3: {ID: 3, Name: "Canoe", Slug: "canoe", LowWaterMph: 2, NormalMph: 3, HighWaterMph: 5},
		},
		hazards: []models.Hazard{
			{ID: 1, RiverID: 1, Name: "Lowhead Dam", RiverMile: 5.0, Severity: models.SeverityDanger, PortageReqd: true},
			{ID: 2, RiverID: 1, Name: "Riffle", RiverMile: 9.5, Severity: models.SeverityInfo},
		},
		reading: &models.ConditionReading{
			GaugeHeightFt: fl(3.0),
			DischargeCFS:  fl(420),
			ObservedAt:    time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
			StationID:     "05355200",
		},
		route: &models.DriveEstimate{Minutes: 22, Miles: 12.5, Geometry: "abc"},
	}
}

func baseRequest() Request {
	return Request{RiverID: 1, PutInID: 10, TakeOutID: 11, VesselID: 3}
}

func TestAssembleHappyPath(t *testing.T) {
	f := testFixture()
	a := NewAssembler(f, f, f, f, f, f)

	p, err := a.Assemble(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if p.DistanceMiles != 6.0 {
		t.Errorf("distance = %f; want 6.0", p.DistanceMiles)
	}
	if p.Conditions.Code != models.ConditionOptimal {
		t.Errorf("condition = %s; want optimal", p.Conditions.Code)
	}
	if p.Float == nil || p.Float.Minutes != 120 {
		t.Errorf("float = %+v; want 120 minutes", p.Float)
	}
	if p.Drive.Minutes != 22 {
		t.Errorf("drive minutes = %d; want 22", p.Drive.Minutes)
	}
	if len(p.Hazards) != 1 || p.Hazards[0].Name != "Lowhead Dam" {
		t.Errorf("hazards = %+v; want only the dam between miles 2 and 8", p.Hazards)
	}
	if f.rangeLo != 2.0 || f.rangeHi != 8.0 {
		t.Errorf("hazard range = [%f, %f]; want [2, 8]", f.rangeLo, f.rangeHi)
	}
	if len(p.Warnings) != 1 || p.Warnings[0] != WarningPortage {
		t.Errorf("warnings = %v; want only the portage warning", p.Warnings)
	}
	if p.Conditions.GaugeHeightFt == nil || *p.Conditions.GaugeHeightFt != 3.0 {
		t.Errorf("snapshot height = %v; want 3.0", p.Conditions.GaugeHeightFt)
	}
	if p.Conditions.GaugeName != "Cannon at Welch" {
		t.Errorf("snapshot gauge name = %q", p.Conditions.GaugeName)
	}
}

func TestAssembleReversedPoints(t *testing.T) {
	f := testFixture()
	a := NewAssembler(f, f, f, f, f, f)

	req := baseRequest()
	req.PutInID, req.TakeOutID = req.TakeOutID, req.PutInID

	p, err := a.Assemble(context.Background(), req)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if p.DistanceMiles != 6.0 {
		t.Errorf("reversed distance = %f; want 6.0", p.DistanceMiles)
	}
}

func TestAssembleNotFound(t *testing.T) {
	f := testFixture()
	a := NewAssembler(f, f, f, f, f, f)

	cases := []struct {
		name string
		req  Request
	}{
		{"missing river", Request{RiverID: 99, PutInID: 10, TakeOutID: 11, VesselID: 3}},
		{"missing put-in", Request{RiverID: 1, PutInID: 99, TakeOutID: 11, VesselID: 3}},
		{"missing vessel", Request{RiverID: 1, PutInID: 10, TakeOutID: 11, VesselID: 99}},
		{"cross-river take-out", Request{RiverID: 1, PutInID: 10, TakeOutID: 12, VesselID: 3}},
	}
	for _, c := range cases {
		if _, err := a.Assemble(context.Background(), c.req); !errors.Is(err, ErrNotFound) {
			t.Errorf("%s: error = %v; want ErrNotFound", c.name, err)
		}
	}
}

func TestAssembleGaugeDownDegrades(t *testing.T) {
	f := testFixture()
	f.gaugeErr = errors.New("timeout")
	a := NewAssembler(f, f, f, f, f, f)

	p, err := a.Assemble(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("Assemble with gauge down: %v", err)
	}
	if p.Conditions.Code != models.ConditionUnknown {
		t.Errorf("condition = %s; want unknown when gauge is down", p.Conditions.Code)
	}
	// Unknown uses the normal speed.
	if p.Float == nil || p.Float.SpeedMph != 3 {
		t.Errorf("float = %+v; want normal speed under unknown", p.Float)
	}
}

func TestAssembleRoutingDownFails(t *testing.T) {
	f := testFixture()
	f.routeErr = errors.New("bad gateway")
	a := NewAssembler(f, f, f, f, f, f)

	if _, err := a.Assemble(context.Background(), baseRequest()); !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("error = %v; want ErrUpstreamUnavailable", err)
	}
}

func TestAssembleHighWaterWarnings(t *testing.T) {
	f := testFixture()
	f.reading.GaugeHeightFt = fl(9.5)
	a := NewAssembler(f, f, f, f, f, f)

	p, err := a.Assemble(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if p.Conditions.Code != models.ConditionDangerous {
		t.Fatalf("condition = %s; want dangerous", p.Conditions.Code)
	}
	if len(p.Warnings) == 0 || p.Warnings[0] != WarningDangerous {
		t.Errorf("warnings = %v; want the do-not-float warning first", p.Warnings)
	}
}

func TestAssembleIdenticalPoints(t *testing.T) {
	f := testFixture()
	a := NewAssembler(f, f, f, f, f, f)

	req := baseRequest()
	req.TakeOutID = req.PutInID

	p, err := a.Assemble(context.Background(), req)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if p.DistanceMiles != 0 {
		t.Errorf("distance = %f; want 0", p.DistanceMiles)
	}
	found := false
	for _, w := range p.Warnings {
		if w == WarningZeroLength {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v; want zero-length warning", p.Warnings)
	}
}
