package netatmo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
)

// stationsResponse is the envelope of the station-data endpoint
type stationsResponse struct {
	Body       json.RawMessage `json:"body"`
	Status     string          `json:"status"`
	TimeServer int64           `json:"time_server"`
}

type stationsBody struct {
	Devices []stationDevice `json:"devices"`
	User    stationUser     `json:"user"`
}

type stationDevice struct {
	ID            string          `json:"_id"`
	Type          ModuleType      `json:"type"`
	ModuleName    string          `json:"module_name"`
	StationName   string          `json:"station_name"`
	Reachable     bool            `json:"reachable"`
	DashboardData Dashboard       `json:"dashboard_data"`
	Modules       []stationModule `json:"modules"`
}

type stationModule struct {
	ID             string     `json:"_id"`
	Type           ModuleType `json:"type"`
	ModuleName     string     `json:"module_name"`
	Reachable      bool       `json:"reachable"`
	BatteryPercent int        `json:"battery_percent"`
	DashboardData  Dashboard  `json:"dashboard_data"`
}

type stationUser struct {
	Mail           string                     `json:"mail"`
	Administrative map[string]json.RawMessage `json:"administrative"`
}

// FetchStationData posts the access token to the station-data endpoint and
// normalizes the response. It makes exactly one request.
func (c *Client) FetchStationData(ctx context.Context, accessToken string) (*StationSnapshot, error) {
	raw, err := c.postStationsData(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	return NormalizeStationData(raw)
}

// FetchUser fetches station data but only projects the account owner, so it
// succeeds for accounts whose station lacks the outside or secondary module.
func (c *Client) FetchUser(ctx context.Context, accessToken string) (User, error) {
	raw, err := c.postStationsData(ctx, accessToken)
	if err != nil {
		return User{}, err
	}
	return NormalizeUser(raw)
}

func (c *Client) postStationsData(ctx context.Context, accessToken string) ([]byte, error) {
	form := url.Values{}
	form.Set("access_token", accessToken)

	resp, err := c.postForm(ctx, PathStationsData, form)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(PathStationsData, resp)
	}

	return resp.Body, nil
}

// decodeStationsBody unwraps the envelope. An empty body means the account
// has no station.
func decodeStationsBody(raw []byte) (*stationsBody, error) {
	var envelope stationsResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, NewParseError(PathStationsData, "failed to parse station data", err)
	}

	if isEmptyJSON(envelope.Body) {
		return nil, NewNoStationError()
	}

	var body stationsBody
	if err := json.Unmarshal(envelope.Body, &body); err != nil {
		return nil, NewParseError(PathStationsData, "failed to parse station data body", err)
	}
	return &body, nil
}

// NormalizeUser projects only the user of a raw station-data response
func NormalizeUser(raw []byte) (User, error) {
	body, err := decodeStationsBody(raw)
	if err != nil {
		return User{}, err
	}
	return projectUser(body.User)
}

// NormalizeStationData projects a raw station-data response into a
// StationSnapshot. The primary station is the first device; the outside and
// secondary slots take the first module of type NAModule1 and NAModule4.
func NormalizeStationData(raw []byte) (*StationSnapshot, error) {
	body, err := decodeStationsBody(raw)
	if err != nil {
		return nil, err
	}

	if len(body.Devices) == 0 {
		return nil, NewNoDeviceError()
	}
	device := body.Devices[0]

	user, err := projectUser(body.User)
	if err != nil {
		return nil, err
	}

	modules := make([]Module, 0, len(device.Modules))
	for _, m := range device.Modules {
		modules = append(modules, Module{
			ID:             m.ID,
			Type:           m.Type,
			Name:           m.ModuleName,
			Reachable:      m.Reachable,
			BatteryPercent: m.BatteryPercent,
			Dashboard:      orEmpty(m.DashboardData),
		})
	}

	outside, ok := FindModule(modules, ModuleOutdoor)
	if !ok {
		return nil, NewModuleNotFoundError(ModuleOutdoor)
	}

	secondary, ok := FindModule(modules, ModuleIndoor)
	if !ok {
		return nil, NewModuleNotFoundError(ModuleIndoor)
	}

	return &StationSnapshot{
		User: user,
		Master: Station{
			ID:          device.ID,
			Type:        device.Type,
			Name:        device.ModuleName,
			StationName: device.StationName,
			Reachable:   device.Reachable,
			Dashboard:   orEmpty(device.DashboardData),
		},
		Outside:   outside,
		Secondary: secondary,
		Modules:   modules,
	}, nil
}

// projectUser copies the mail address and resolves unit categories to labels.
// Keys that are not unit categories pass through unchanged.
func projectUser(raw stationUser) (User, error) {
	user := User{
		Mail:           raw.Mail,
		Administrative: make(map[string]any, len(raw.Administrative)),
	}

	for key, value := range raw.Administrative {
		if !IsUnitCategory(key) {
			var v any
			if err := json.Unmarshal(value, &v); err != nil {
				return User{}, NewParseError(PathStationsData, fmt.Sprintf("invalid administrative value for %q", key), err)
			}
			user.Administrative[key] = v
			continue
		}

		code, err := decodeUnitCode(value)
		if err != nil {
			return User{}, NewParseError(PathStationsData, fmt.Sprintf("invalid unit code for %q", key), err)
		}

		label := unitLabelOrUnknown(key, code)
		user.Administrative[key] = label

		switch key {
		case UnitCategorySystem:
			user.Unit = label
		case UnitCategoryWind:
			user.WindUnit = label
		case UnitCategoryPressure:
			user.PressureUnit = label
		}
	}

	return user, nil
}

// decodeUnitCode accepts 1 and 1.0 but rejects null, fractional, out of range
// or non-numeric codes
func decodeUnitCode(value json.RawMessage) (int, error) {
	if string(bytes.TrimSpace(value)) == "null" {
		return 0, fmt.Errorf("unit code is null")
	}
	var f float64
	if err := json.Unmarshal(value, &f); err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("unit code %v is not an integer", f)
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, fmt.Errorf("unit code %v is out of range", f)
	}
	return int(f), nil
}

// isEmptyJSON reports an absent, null, or empty object/array value
func isEmptyJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	switch string(trimmed) {
	case "", "null", "{}", "[]", `""`:
		return true
	}
	return false
}

func orEmpty(d Dashboard) Dashboard {
	if d == nil {
		return Dashboard{}
	}
	return d
}
