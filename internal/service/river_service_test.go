package service

import (
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/driftwell/riverplan/internal/database"
	"github.com/driftwell/riverplan/internal/models"
	"github.com/driftwell/riverplan/internal/plan"
	"github.com/driftwell/riverplan/internal/repository"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// One connection, or each pooled connection would get its own
	// empty in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func ptr(v float64) *float64 { return &v }

// equatorRiver is a straight west-east line on the equator, about 69.1
// miles of true arc-length.
func equatorRiver() RiverInput {
	return RiverInput{
		Name:           "Test River",
		Slug:           "test-river",
		LengthMiles:    68.0,
		Geometry:       []models.Coordinate{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}},
		HeadwaterFirst: true,
		Thresholds: models.GaugeThresholds{
			LowFt: ptr(1.5), OptimalMinFt: ptr(2), OptimalMaxFt: ptr(4),
			HighFt: ptr(6), DangerousFt: ptr(9),
		},
	}
}

func newServices(t *testing.T) (*RiverService, *AccessPointService, *sql.DB) {
	db := testDB(t)
	riverRepo := repository.NewRiverRepository(db)
	pointRepo := repository.NewAccessPointRepository(db)
	return NewRiverService(db, riverRepo, pointRepo), NewAccessPointService(pointRepo, riverRepo), db
}

func TestCreateRiverValidation(t *testing.T) {
	rivers, _, _ := newServices(t)

	in := equatorRiver()
	in.Geometry = in.Geometry[:1]
	if _, err := rivers.CreateRiver(in); !errors.Is(err, plan.ErrValidation) {
		t.Errorf("1-vertex geometry: error = %v; want ErrValidation", err)
	}

	in = equatorRiver()
	in.Thresholds.HighFt = ptr(1.0) // below optimal max
	if _, err := rivers.CreateRiver(in); !errors.Is(err, plan.ErrValidation) {
		t.Errorf("non-monotonic thresholds: error = %v; want ErrValidation", err)
	}

	in = equatorRiver()
	in.LengthMiles = 10 // true length is ~69.1 miles
	if _, err := rivers.CreateRiver(in); !errors.Is(err, plan.ErrValidation) {
		t.Errorf("inconsistent length: error = %v; want ErrValidation", err)
	}
}

func TestCreateRiverDerivesLength(t *testing.T) {
	rivers, _, _ := newServices(t)

	in := equatorRiver()
	in.LengthMiles = 0
	river, err := rivers.CreateRiver(in)
	if err != nil {
		t.Fatalf("CreateRiver: %v", err)
	}
	if river.LengthMiles < 68.8 || river.LengthMiles > 69.4 {
		t.Errorf("derived length = %f; want ~69.1", river.LengthMiles)
	}
}

func TestAccessPointDerivedMile(t *testing.T) {
	rivers, points, _ := newServices(t)

	river, err := rivers.CreateRiver(equatorRiver())
	if err != nil {
		t.Fatalf("CreateRiver: %v", err)
	}

	point, err := points.CreateAccessPoint(AccessPointInput{
		RiverID:  river.ID,
		Name:     "Quarter Landing",
		Lat:      0.1,
		Lon:      0.25,
		Approved: true,
	})
	if err != nil {
		t.Fatalf("CreateAccessPoint: %v", err)
	}

	// Fraction 0.25 along a 68-mile river.
	if point.RiverMile != 17.0 {
		t.Errorf("river mile = %f; want 17.0", point.RiverMile)
	}
	if point.SnappedLat != 0 {
		t.Errorf("snapped lat = %f; want 0 (on the centerline)", point.SnappedLat)
	}
}

func TestUpdateRiverResnapsPoints(t *testing.T) {
	rivers, points, _ := newServices(t)

	river, err := rivers.CreateRiver(equatorRiver())
	if err != nil {
		t.Fatalf("CreateRiver: %v", err)
	}

	point, err := points.CreateAccessPoint(AccessPointInput{
		RiverID: river.ID, Name: "Quarter Landing", Lat: 0.1, Lon: 0.25,
	})
	if err != nil {
		t.Fatalf("CreateAccessPoint: %v", err)
	}
	if point.RiverMile != 17.0 {
		t.Fatalf("initial river mile = %f; want 17.0", point.RiverMile)
	}

	// Flip the stored direction: the same point must now sit at
	// length - 17 miles.
	in := equatorRiver()
	in.HeadwaterFirst = false
	if _, err := rivers.UpdateRiver(river.ID, in); err != nil {
		t.Fatalf("UpdateRiver: %v", err)
	}

	updated, err := points.repo.GetAccessPointByID(point.ID)
	if err != nil {
		t.Fatalf("GetAccessPointByID: %v", err)
	}
	if updated.RiverMile != 51.0 {
		t.Errorf("re-snapped river mile = %f; want 51.0", updated.RiverMile)
	}
}

func TestUpdateRiverResnapAtomic(t *testing.T) {
	rivers, points, db := newServices(t)

	river, err := rivers.CreateRiver(equatorRiver())
	if err != nil {
		t.Fatalf("CreateRiver: %v", err)
	}
	point, err := points.CreateAccessPoint(AccessPointInput{
		RiverID: river.ID, Name: "Quarter Landing", Lat: 0.1, Lon: 0.25,
	})
	if err != nil {
		t.Fatalf("CreateAccessPoint: %v", err)
	}

	// Run the same update-then-resnap sequence the service uses, failing
	// after both writes. Neither may survive the rollback.
	riverRepo := repository.NewRiverRepository(db)
	pointRepo := repository.NewAccessPointRepository(db)
	errResnap := errors.New("resnap interrupted")

	modified := *river
	modified.Name = "Renamed River"
	err = database.Transaction(db, func(tx *sql.Tx) error {
		if err := riverRepo.WithTx(tx).UpdateRiver(&modified); err != nil {
			return err
		}
		if err := pointRepo.WithTx(tx).UpdateSnap(point.ID, 9, 9, 99); err != nil {
			return err
		}
		return errResnap
	})
	if !errors.Is(err, errResnap) {
		t.Fatalf("Transaction error = %v; want errResnap", err)
	}

	got, err := riverRepo.GetRiverByID(river.ID)
	if err != nil {
		t.Fatalf("GetRiverByID: %v", err)
	}
	if got.Name != river.Name {
		t.Errorf("river name = %q after rollback; want %q", got.Name, river.Name)
	}

	kept, err := pointRepo.GetAccessPointByID(point.ID)
	if err != nil {
		t.Fatalf("GetAccessPointByID: %v", err)
	}
	if kept.RiverMile != point.RiverMile {
		t.Errorf("river mile = %f after rollback; want %f", kept.RiverMile, point.RiverMile)
	}
}

func TestPreviewMatchesCreatePath(t *testing.T) {
	rivers, points, _ := newServices(t)

	river, err := rivers.CreateRiver(equatorRiver())
	if err != nil {
		t.Fatalf("CreateRiver: %v", err)
	}

	preview, err := points.Preview(river.ID, models.Coordinate{Lon: 0.25, Lat: 0.1})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}

	created, err := points.CreateAccessPoint(AccessPointInput{
		RiverID: river.ID, Name: "Same Spot", Lat: 0.1, Lon: 0.25,
	})
	if err != nil {
		t.Fatalf("CreateAccessPoint: %v", err)
	}

	// Preview and create run the same translator, so they must agree.
	if preview.RiverMile != created.RiverMile {
		t.Errorf("preview mile %f != created mile %f", preview.RiverMile, created.RiverMile)
	}

	if _, err := points.Preview(999, models.Coordinate{}); !errors.Is(err, plan.ErrNotFound) {
		t.Errorf("preview on unknown river: error = %v; want ErrNotFound", err)
	}
}
