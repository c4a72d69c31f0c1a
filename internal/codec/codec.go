// Package codec translates between human-authored workout blocks and the
// COROS flat exercise array: an ordered list of step and repeat-group
// records linked by sequential integer ids, with distances in centimeters
// and paces in sec/km x 1000.
//
// Encode is strict: it validates every block and fails fast, because the
// upstream service silently breaks on malformed exercise arrays. Decode is
// lenient: it consumes whatever the service returns and omits fields it
// cannot resolve rather than failing.
package codec

import (
	"fmt"
	"math"
	"strings"
)

// Encode converts workout blocks to the COROS flat exercise array.
//
// The returned bool reports whether this is a "simple" (single step, no
// group) workout. COROS flags simple workouts at the program level rather
// than just as a one-element array, so callers must propagate it.
func Encode(blocks []Block, sport string) ([]Exercise, bool, error) {
	sportCode, ok := SportCode(sport)
	if !ok {
		return nil, false, fmt.Errorf("%w %q, use one of: %s",
			ErrUnknownSport, sport, strings.Join(SportNames(), ", "))
	}

	for _, b := range blocks {
		if err := b.Validate(); err != nil {
			return nil, false, err
		}
	}

	// Simple workout: a single non-interval block with no repeats.
	if len(blocks) == 1 && blocks[0].Type != "interval" && blocks[0].Repeats == nil {
		step := buildStep(blocks[0], 1, 1, sportCode, 0)
		return []Exercise{step}, true, nil
	}

	var exercises []Exercise
	nextID := 1
	sortNo := 1

	for _, b := range blocks {
		if b.repeats() > 1 {
			groupID := nextID
			group := newGroup(groupID, sortNo, b.repeats(), b.restSeconds())
			exercises = append(exercises, group)
			nextID++

			// The work step shares the group's sortNo and is always an
			// interval inside a group, whatever the block's own type.
			work := buildStep(b, nextID, sortNo, sportCode, ExerciseInterval)
			work.GroupID = GroupRef(groupID)
			exercises = append(exercises, work)
			nextID++
			sortNo++

			if b.restSeconds() > 0 {
				recovery := newStep(nextID, sortNo, ExerciseRecovery, sportCode)
				recovery.GroupID = GroupRef(groupID)
				recovery.TargetType = TargetDuration
				recovery.TargetValue = b.restSeconds()
				recovery.TargetUnit = UnitSeconds
				exercises = append(exercises, recovery)
				nextID++
				sortNo++
			}
		} else {
			step := buildStep(b, nextID, sortNo, sportCode, 0)
			exercises = append(exercises, step)
			nextID++
			sortNo++
		}
	}

	return exercises, false, nil
}

// buildStep translates one validated block into a step record. forceType
// overrides the block's own exercise type when nonzero (work steps inside
// repeat groups are always intervals).
func buildStep(b Block, id, sortNo, sportCode, forceType int) *Step {
	exType := forceType
	if exType == 0 {
		var ok bool
		exType, ok = validBlockTypes[b.Type]
		if !ok {
			exType = ExerciseInterval
		}
	}
	step := newStep(id, sortNo, exType, sportCode)

	switch {
	case b.DurationMinutes != nil:
		step.TargetType = TargetDuration
		step.TargetValue = int(*b.DurationMinutes * 60)
		step.TargetUnit = UnitSeconds
	case b.DistanceKM != nil:
		step.TargetType = TargetDistance
		step.TargetValue = int(*b.DistanceKM * 100000) // km -> cm
		step.TargetUnit = UnitKilometers
	case b.DistanceM != nil:
		step.TargetType = TargetDistance
		step.TargetValue = *b.DistanceM * 100 // m -> cm
		step.TargetUnit = UnitMeters
	}

	// Blocks are validated before this point, so the parsers cannot fail.
	if b.PacePerKM != "" {
		low, high, _ := ParsePace(b.PacePerKM)
		step.IntensityType = IntensityPace
		step.IntensityValue = low
		step.IntensityExtend = high
		step.IntensityMult = 1000
		step.IntensityUnit = paceUnit(true)
	} else if b.HRBPM != "" {
		low, high, _ := ParseHeartRate(b.HRBPM)
		step.IntensityType = IntensityHR
		step.IntensityValue = low
		step.IntensityExtend = high
		step.IntensityCustom = 2
		step.HRType = hrTypeLTHR
	}

	return step
}

// RawExercise is one entry of a flat exercise array as returned by the
// schedule and plan detail endpoints. Every field is optional; zero values
// stand in for anything the service did not populate.
type RawExercise struct {
	IsGroup         bool     `json:"isGroup"`
	ID              int      `json:"id"`
	SortNo          int      `json:"sortNo"`
	Sets            int      `json:"sets"`
	RestType        int      `json:"restType"`
	RestValue       int      `json:"restValue"`
	ExerciseType    int      `json:"exerciseType"`
	GroupID         GroupRef `json:"groupId"`
	TargetType      FlexInt  `json:"targetType"`
	TargetValue     float64  `json:"targetValue"`
	IntensityType   int      `json:"intensityType"`
	IntensityValue  float64  `json:"intensityValue"`
	IntensityExtend float64  `json:"intensityValueExtend"`
	IntensityMult   int      `json:"intensityMultiplier"`
}

// Decoded is the human-readable form of one flat-array record. Fields the
// record did not carry are left at their zero value and omitted from JSON.
type Decoded struct {
	Type            string  `json:"type"`
	Repeats         int     `json:"repeats,omitempty"`
	RestSeconds     int     `json:"rest_seconds,omitempty"`
	DurationSeconds int     `json:"duration_seconds,omitempty"`
	DurationDisplay string  `json:"duration_display,omitempty"`
	DistanceKM      float64 `json:"distance_km,omitempty"`
	DistanceM       int     `json:"distance_m,omitempty"`
	PacePerKM       string  `json:"pace_per_km,omitempty"`
	HRBPM           string  `json:"hr_bpm,omitempty"`
	InGroup         bool    `json:"in_group,omitempty"`
}

// exerciseTypeNames maps COROS exercise type codes to block kind names.
var exerciseTypeNames = map[int]string{
	ExerciseGroup:    "repeat",
	ExerciseWarmup:   "warmup",
	ExerciseInterval: "interval",
	ExerciseCooldown: "cooldown",
	ExerciseRecovery: "recovery",
}

// Decode converts a COROS flat exercise array back into human-readable
// blocks. It never fails: missing or unrecognized fields are dropped from
// the output, since the service does not guarantee field population.
func Decode(exercises []RawExercise) []Decoded {
	result := make([]Decoded, 0, len(exercises))
	groups := make(map[int]bool)

	for _, ex := range exercises {
		if ex.IsGroup {
			groups[ex.ID] = true
			entry := Decoded{Type: "repeat", Repeats: ex.Sets}
			if entry.Repeats == 0 {
				entry.Repeats = 1
			}
			if ex.RestType == RestTimed && ex.RestValue > 0 {
				entry.RestSeconds = ex.RestValue
			}
			result = append(result, entry)
			continue
		}

		name, ok := exerciseTypeNames[ex.ExerciseType]
		if !ok {
			name = fmt.Sprintf("type_%d", ex.ExerciseType)
		}
		entry := Decoded{Type: name}

		switch {
		case int(ex.TargetType) == TargetDuration && ex.TargetValue > 0:
			entry.DurationSeconds = int(ex.TargetValue)
			entry.DurationDisplay = FormatDuration(entry.DurationSeconds)
		case int(ex.TargetType) == TargetDistance && ex.TargetValue > 0:
			meters := ex.TargetValue / 100 // cm -> m
			if meters >= 1000 {
				entry.DistanceKM = math.Round(meters/10) / 100
			} else {
				entry.DistanceM = int(meters)
			}
		}

		switch ex.IntensityType {
		case IntensityPace:
			// Only the x1000 encoding is decodable; other multipliers
			// belong to percent-based targets this layer does not model.
			if ex.IntensityMult == 1000 && ex.IntensityValue > 0 {
				entry.PacePerKM = FormatPace(ex.IntensityValue / 1000)
				if ex.IntensityExtend > 0 {
					entry.PacePerKM += "-" + FormatPace(ex.IntensityExtend/1000)
				}
			}
		case IntensityHR:
			if ex.IntensityValue > 0 {
				entry.HRBPM = fmt.Sprintf("%d", int(ex.IntensityValue))
				if ex.IntensityExtend > 0 {
					entry.HRBPM += fmt.Sprintf("-%d", int(ex.IntensityExtend))
				}
			}
		}

		if ex.GroupID != 0 && groups[int(ex.GroupID)] {
			entry.InGroup = true
		}

		result = append(result, entry)
	}

	return result
}
