package codec

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// COROS exercise type codes within a workout program.
const (
	ExerciseGroup    = 0
	ExerciseWarmup   = 1
	ExerciseInterval = 2
	ExerciseCooldown = 3
	ExerciseRecovery = 4
)

// COROS exercise target type codes.
const (
	TargetNone     = 0
	TargetDuration = 2
	TargetDistance = 5
)

// Display unit codes for exercise target values.
const (
	UnitSeconds    = 0
	UnitMeters     = 1
	UnitKilometers = 2
)

// Rest type codes between repeat sets.
const (
	RestTimed = 0
	RestNone  = 3
)

// Intensity type codes.
const (
	IntensityPace = 3
	IntensityHR   = 2
)

// hrTypeLTHR selects LTHR-based zones on heart rate targets.
const hrTypeLTHR = 3

// sportNameToCode maps user-friendly sport names to COROS program sport
// codes. These differ from activity sport type codes.
var sportNameToCode = map[string]int{
	"running":    1,
	"run":        1,
	"trail":      3,
	"strength":   4,
	"hike":       5,
	"bike":       6,
	"cycling":    6,
	"pool_swim":  9,
	"swim":       9,
	"open_water": 10,
}

// SportCode resolves a sport name (case-insensitive) to its COROS program
// sport code.
func SportCode(name string) (int, bool) {
	code, ok := sportNameToCode[strings.ToLower(name)]
	return code, ok
}

// SportNames returns the accepted sport names, sorted.
func SportNames() []string {
	names := make([]string, 0, len(sportNameToCode))
	for name := range sportNameToCode {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// exerciseTemplate carries metadata from the COROS exercise library
// (running). The upstream service expects these on every step.
type exerciseTemplate struct {
	Name            string
	Overview        string
	OriginID        string
	CreateTimestamp int64
	DefaultOrder    int
	IsDefaultAdd    int
}

var exerciseTemplates = map[int]exerciseTemplate{
	ExerciseWarmup: {
		Name:            "T1120",
		Overview:        "sid_run_warm_up_dist",
		OriginID:        "425895398452936705",
		CreateTimestamp: 1586584068,
		DefaultOrder:    1,
	},
	ExerciseInterval: {
		Name:            "T3001",
		Overview:        "sid_run_training",
		OriginID:        "426109589008859136",
		CreateTimestamp: 1587381919,
		DefaultOrder:    2,
		IsDefaultAdd:    1,
	},
	ExerciseCooldown: {
		Name:            "T1122",
		Overview:        "sid_run_cool_down_dist",
		OriginID:        "425895456971866112",
		CreateTimestamp: 1586584214,
		DefaultOrder:    3,
	},
	ExerciseRecovery: {
		Name:            "T1123",
		Overview:        "sid_run_cool_down_dist",
		OriginID:        "425895398452936705",
		CreateTimestamp: 1586584214,
		DefaultOrder:    3,
	},
}

// GroupRef is an exercise's reference to its enclosing repeat group. COROS
// encodes it as the empty string when the step is not inside a group and as
// the group's integer id when it is, so it needs custom JSON handling in
// both directions.
type GroupRef int

// MarshalJSON writes "" for the zero value and a bare number otherwise.
func (g GroupRef) MarshalJSON() ([]byte, error) {
	if g == 0 {
		return []byte(`""`), nil
	}
	return []byte(strconv.Itoa(int(g))), nil
}

// UnmarshalJSON accepts a number, a numeric string, or the empty string.
func (g *GroupRef) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*g = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Tolerate non-numeric ids from the upstream service.
		*g = 0
		return nil
	}
	*g = GroupRef(n)
	return nil
}

// FlexInt is an integer field the upstream service may send as a number, a
// numeric string, or the empty string (group records carry targetType as ""
// while steps carry an integer). Non-numeric input decodes to zero.
type FlexInt int

func (f FlexInt) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(f))), nil
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(n)
	return nil
}

// paceUnit is the intensityDisplayUnit field. COROS sends it as the string
// "1" (min/km) on pace targets and as the number 0 everywhere else.
type paceUnit bool

func (p paceUnit) MarshalJSON() ([]byte, error) {
	if p {
		return []byte(`"1"`), nil
	}
	return []byte("0"), nil
}

func (p *paceUnit) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	*p = s == "1"
	return nil
}

var _ json.Marshaler = GroupRef(0)
var _ json.Unmarshaler = (*GroupRef)(nil)
