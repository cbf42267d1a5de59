package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"roadside-dispatch-service/internal/domain"
)

const (
	emergencyHeader     = "🚨 EMERGENCY ROADSIDE ASSISTANCE REQUEST 🚨"
	locationUnavailable = "not available"
	mapsBaseURL         = "https://maps.google.com/?q="
	messageTimeLayout   = "Mon, 02 Jan 2006 3:04 PM MST"
)

// ComposeMessage renders the dispatch text sent to the assistance desk.
//
// Lines are fixed: header, service, location (a maps link, or a "not available"
// marker when location is nil) and the local time of the request. tz selects
// the zone used for the time line; nil means time.Local.
func ComposeMessage(serviceName string, location *domain.Coordinates, at time.Time, tz *time.Location) (string, error) {
	name := strings.TrimSpace(serviceName)
	if name == "" {
		return "", fmt.Errorf("compose message: %w: service name must be non-empty", domain.ErrInvalidArgument)
	}

	loc := locationUnavailable
	if location != nil {
		if err := location.Validate(); err != nil {
			return "", fmt.Errorf("compose message: %w", err)
		}
		loc = MapsLink(*location)
	}

	if tz == nil {
		tz = time.Local
	}

	var b strings.Builder
	b.WriteString(emergencyHeader)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Service: %s\n", name)
	fmt.Fprintf(&b, "Location: %s\n", loc)
	fmt.Fprintf(&b, "Time: %s", at.In(tz).Format(messageTimeLayout))

	return b.String(), nil
}

// MapsLink points a maps deep link at the coordinate, printed without padding.
func MapsLink(c domain.Coordinates) string {
	return mapsBaseURL +
		strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," +
		strconv.FormatFloat(c.Lon, 'f', -1, 64)
}
