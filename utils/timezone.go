package utils

import (
	"log"
	"time"
)

// LoadLocation resolves an IANA timezone name, degrading to UTC when the
// name is unknown so a bad timezone never fails a whole report.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("unknown timezone %q, falling back to UTC", name)
		return time.UTC
	}
	return loc
}
