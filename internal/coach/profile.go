package coach

import (
	"context"
	"fmt"
)

var hrZoneNames = []string{"Recovery", "Aerobic Endurance", "Tempo", "Threshold", "VO2max"}
var paceZoneNames = []string{"Easy", "Aerobic", "Tempo", "Threshold", "Interval"}

// AthleteProfile returns identity, biometrics, physiological thresholds and
// all training zones (HR, pace, power) from the account query.
func AthleteProfile(ctx context.Context, c API) (map[string]any, error) {
	data, err := c.GetAccountFull(ctx)
	if err != nil {
		return nil, err
	}
	zoneData := getMap(data, "zoneData")

	identity := map[string]any{}
	setIf(identity, "user_id", getString(data, "userId"))
	setIf(identity, "nickname", getString(data, "nickname"))
	setIf(identity, "email", getString(data, "email"))
	setIf(identity, "birthday", CorosToDate(getInt(data, "birthday")))
	setIf(identity, "sex", formatSex(getInt(data, "sex")))
	setIf(identity, "country", getString(data, "countryCode"))

	biometrics := map[string]any{}
	setIf(biometrics, "height_cm", getFloat(data, "stature"))
	setIf(biometrics, "weight_kg", getFloat(data, "weight"))

	thresholds := map[string]any{}
	if maxHR := getInt(zoneData, "maxHr"); maxHR > 0 {
		thresholds["max_hr"] = maxHR
	} else {
		setIf(thresholds, "max_hr", getInt(data, "maxHr"))
	}
	if rhr := getInt(zoneData, "rhr"); rhr > 0 {
		thresholds["resting_hr"] = rhr
	} else {
		setIf(thresholds, "resting_hr", getInt(data, "rhr"))
	}
	setIf(thresholds, "lthr", getInt(zoneData, "lthr"))
	setIf(thresholds, "ltsp", FormatPaceKM(getInt(zoneData, "ltsp")))
	setIf(thresholds, "ftp", getInt(zoneData, "ftp"))

	result := map[string]any{
		"identity":   identity,
		"biometrics": biometrics,
		"thresholds": thresholds,
	}

	hrZones := intSlice(zoneData, "maxHrZone")
	if len(hrZones) == 0 {
		hrZones = intSlice(zoneData, "lthrZone")
	}
	if zones := formatHRZones(hrZones); zones != nil {
		result["hr_zones"] = zones
	}
	if zones := formatPaceZones(intSlice(zoneData, "ltspZone")); zones != nil {
		result["pace_zones"] = zones
	}
	if power := getSlice(zoneData, "cyclePowerZone"); len(power) > 0 {
		result["power_zones"] = power
	}

	return result, nil
}

func formatSex(code int) string {
	switch code {
	case 1:
		return "male"
	case 2:
		return "female"
	}
	return ""
}

// formatHRZones turns zone boundary values [z1_max, z2_max, ...] into named
// bpm ranges.
func formatHRZones(boundaries []int) []map[string]any {
	if len(boundaries) < 2 {
		return nil
	}
	zones := make([]map[string]any, 0, len(boundaries))
	prev := 0
	for i, upper := range boundaries {
		name := fmt.Sprintf("Zone %d", i+1)
		if i < len(hrZoneNames) {
			name = hrZoneNames[i]
		}
		r := fmt.Sprintf("%d-%d bpm", prev, upper)
		if i == 0 {
			r = fmt.Sprintf("<%d bpm", upper)
		}
		zones = append(zones, map[string]any{"zone": i + 1, "name": name, "range": r})
		prev = upper
	}
	return zones
}

// formatPaceZones turns pace boundaries in sec/km (slower to faster) into
// named ranges.
func formatPaceZones(boundaries []int) []map[string]any {
	if len(boundaries) < 2 {
		return nil
	}
	zones := make([]map[string]any, 0, len(boundaries))
	for i, pace := range boundaries {
		name := fmt.Sprintf("Zone %d", i+1)
		if i < len(paceZoneNames) {
			name = paceZoneNames[i]
		}
		var r string
		switch {
		case i == 0:
			r = "slower than " + FormatPaceKM(pace)
		case i == len(boundaries)-1:
			r = "faster than " + FormatPaceKM(pace)
		default:
			r = FormatPaceKM(boundaries[i-1]) + " to " + FormatPaceKM(pace)
		}
		zones = append(zones, map[string]any{"zone": i + 1, "name": name, "range": r})
	}
	return zones
}

func intSlice(m map[string]any, key string) []int {
	raw := getSlice(m, key)
	if len(raw) == 0 {
		return nil
	}
	out := make([]int, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(float64); ok {
			out = append(out, int(f))
		}
	}
	return out
}
