package netatmo

import (
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the Netatmo cloud API host
	DefaultBaseURL = "https://api.netatmo.com/"

	// DefaultTimeout is applied to every outbound request
	DefaultTimeout = 10 * time.Second
)

// Endpoint paths, relative to the base URL. Only the token and station-data
// endpoints are called by this package; the others are exported for callers
// that issue their own requests.
const (
	PathToken           = "oauth2/token"
	PathMeasure         = "api/getmeasure"
	PathStationsData    = "api/getstationsdata"
	PathThermostatsData = "api/getthermostatsdata"
	PathHomeData        = "api/gethomedata"
	PathCameraPicture   = "api/getcamerapicture"
	PathEventsUntil     = "api/geteventsuntil"
)

// Camera commands are issued against the camera's own VPN URL, not the API host.
const (
	CameraSnapshotPath     = "/live/snapshot_720.jpg"
	CameraChangeStatusPath = "/command/changestatus?status=%s" // "on" | "off"
)

// Presence camera detection settings
var (
	PresenceDetectionKinds  = []string{"humans", "animals", "vehicles", "movements"}
	PresenceDetectionSetups = []string{"ignore", "record", "record & notify"}
)

// Grant types accepted by the token endpoint
const (
	grantPassword     = "password"
	grantRefreshToken = "refresh_token"
)

// DefaultScope is requested when Credentials carry no scope
var DefaultScope = []string{
	"read_station",
	"read_camera",
	"access_camera",
	"write_camera",
	"read_smokedetector",
	"read_presence",
	"access_presence",
	"write_presence",
	"read_thermostat",
	"write_thermostat",
}

// ParseScope splits a space separated scope string as returned by the token endpoint
func ParseScope(scope string) []string {
	return strings.Fields(scope)
}

// JoinScope renders a scope set in the space separated wire form
func JoinScope(scope []string) string {
	return strings.Join(scope, " ")
}
