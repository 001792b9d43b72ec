package utils

import "testing"

var squareFence = []byte(`{
	"name": "test market",
	"coordinates": [
		{"lat": 6.45, "lng": 3.38},
		{"lat": 6.45, "lng": 3.40},
		{"lat": 6.47, "lng": 3.40},
		{"lat": 6.47, "lng": 3.38}
	]
}`)

func TestParseGeofence(t *testing.T) {
	gf, err := ParseGeofence(squareFence)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gf == nil || len(gf.Coordinates) != 4 {
		t.Fatalf("expected 4 coordinates, got %+v", gf)
	}

	// Empty and absent fences are allowed.
	if gf, err := ParseGeofence(nil); err != nil || gf != nil {
		t.Errorf("nil input: got %+v, %v", gf, err)
	}
	if gf, err := ParseGeofence([]byte(`{"coordinates":[]}`)); err != nil || gf != nil {
		t.Errorf("empty coordinates: got %+v, %v", gf, err)
	}
}

func TestParseGeofenceRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", `{{`},
		{"too few points", `{"coordinates":[{"lat":1,"lng":1},{"lat":2,"lng":2}]}`},
		{"latitude out of range", `{"coordinates":[{"lat":91,"lng":1},{"lat":2,"lng":2},{"lat":3,"lng":3}]}`},
		{"longitude out of range", `{"coordinates":[{"lat":1,"lng":181},{"lat":2,"lng":2},{"lat":3,"lng":3}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseGeofence([]byte(tc.raw)); err == nil {
				t.Errorf("expected error for %s", tc.name)
			}
		})
	}
}

func TestGeofenceContains(t *testing.T) {
	gf, err := ParseGeofence(squareFence)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !gf.Contains(6.46, 3.39) {
		t.Error("point inside the square reported outside")
	}
	if gf.Contains(6.50, 3.39) {
		t.Error("point north of the square reported inside")
	}
	if gf.Contains(6.46, 3.50) {
		t.Error("point east of the square reported inside")
	}
}
