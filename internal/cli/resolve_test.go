package cli

import "testing"

func TestBuildQuery(t *testing.T) {
	q, err := buildQuery("Golden Gate Bridge", "", "37.8199,-122.4783")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if q.Coordinate == nil || q.Coordinate.Lat != 37.8199 || q.Coordinate.Lon != -122.4783 {
		t.Errorf("coordinate not parsed: %+v", q.Coordinate)
	}

	q, err = buildQuery("Hyde Park", "London", "")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if q.Coordinate != nil {
		t.Errorf("no --at flag, no coordinate expected: %+v", q.Coordinate)
	}
	if q.Name != "Hyde Park" || q.Address != "London" {
		t.Errorf("fields mangled: %+v", q)
	}
}

func TestBuildQuery_PipeInNameAndAddress(t *testing.T) {
	q, err := buildQuery("Bar | Grill", "12 Main St | Suite 4", "48.8584,2.2945")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if q.Name != "Bar | Grill" {
		t.Errorf("name must pass through verbatim, got %q", q.Name)
	}
	if q.Address != "12 Main St | Suite 4" {
		t.Errorf("address must pass through verbatim, got %q", q.Address)
	}
	if q.Coordinate == nil || q.Coordinate.Lat != 48.8584 {
		t.Errorf("coordinate not parsed: %+v", q.Coordinate)
	}
}

func TestBuildQuery_BadCoordinate(t *testing.T) {
	for _, at := range []string{"not-a-coordinate", "91,0", "1,2,3"} {
		if _, err := buildQuery("x", "", at); err == nil {
			t.Errorf("coordinate %q must be rejected", at)
		}
	}
}
