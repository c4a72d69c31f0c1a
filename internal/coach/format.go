package coach

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/glutamatt/coros-mcp/internal/codec"
)

// sportNames maps COROS activity sport type codes to display names. These
// are activity codes, not the program sport codes the codec uses.
var sportNames = map[int]string{
	0:   "Unknown",
	1:   "Run",
	2:   "Indoor Run",
	3:   "Trail Run",
	4:   "Track Run",
	5:   "Hike",
	6:   "Bike",
	7:   "Indoor Bike",
	8:   "Mountain Bike",
	9:   "Pool Swim",
	10:  "Open Water Swim",
	11:  "Triathlon",
	12:  "Multisport",
	13:  "Ski",
	14:  "Snowboard",
	15:  "XC Ski",
	16:  "Strength",
	17:  "Gym Cardio",
	18:  "Rowing",
	19:  "Walk",
	20:  "Flatwater",
	21:  "Whitewater",
	22:  "Windsurfing",
	23:  "Speedsurfing",
	24:  "GPS Cardio",
	100: "Other",
}

// SportName returns the display name for an activity sport type code.
func SportName(sportType int) string {
	if name, ok := sportNames[sportType]; ok {
		return name
	}
	return fmt.Sprintf("Sport_%d", sportType)
}

// FormatDistance renders meters as "10.0 km" above a kilometer and "800 m"
// below.
func FormatDistance(meters float64) string {
	if meters <= 0 {
		return "0 m"
	}
	if meters >= 1000 {
		return fmt.Sprintf("%.1f km", meters/1000)
	}
	return fmt.Sprintf("%d m", int(meters))
}

// FormatDuration renders seconds as "1h01m01s" / "25m30s" / "45s".
func FormatDuration(seconds int) string {
	return codec.FormatDuration(seconds)
}

// FormatPaceKM renders a sec/km pace as "5:30/km". Returns "" for
// non-positive input.
func FormatPaceKM(secPerKM int) string {
	if secPerKM <= 0 {
		return ""
	}
	return fmt.Sprintf("%d:%02d/km", secPerKM/60, secPerKM%60)
}

// getMap, getSlice, getString, getFloat and getInt navigate the raw
// map[string]any payloads json.Unmarshal produces. Missing keys and wrong
// types resolve to zero values; the upstream service omits fields freely.

func getMap(m map[string]any, key string) map[string]any {
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	return nil
}

func getSlice(m map[string]any, key string) []any {
	if v, ok := m[key].([]any); ok {
		return v
	}
	return nil
}

func getString(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

func getFloat(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	}
	return 0
}

func getInt(m map[string]any, key string) int {
	return int(getFloat(m, key))
}

// setIf adds a key only when the value is meaningful, keeping tool output
// free of empty fields the way the upstream payloads omit them.
func setIf(m map[string]any, key string, v any) {
	switch val := v.(type) {
	case nil:
		return
	case string:
		if val == "" {
			return
		}
	case int:
		if val == 0 {
			return
		}
	case float64:
		if val == 0 {
			return
		}
	}
	m[key] = v
}

// decodeExercises converts a raw exercises value from a program payload
// into human-readable entries. Unparseable input yields nil.
func decodeExercises(v any) []codec.Decoded {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var exercises []codec.RawExercise
	if err := json.Unmarshal(raw, &exercises); err != nil {
		return nil
	}
	if len(exercises) == 0 {
		return nil
	}
	return codec.Decode(exercises)
}
