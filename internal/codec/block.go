package codec

import (
	"errors"
	"fmt"
	"strings"
)

// Validation failure categories. Encode wraps every rejection in one of
// these so callers can distinguish bad sport names from bad blocks.
var (
	ErrUnknownSport   = errors.New("unknown sport")
	ErrInvalidBlock   = errors.New("invalid exercise")
	ErrMalformedRange = errors.New("malformed range")
)

// validBlockTypes are the accepted block kinds.
var validBlockTypes = map[string]int{
	"warmup":   ExerciseWarmup,
	"interval": ExerciseInterval,
	"cooldown": ExerciseCooldown,
	"recovery": ExerciseRecovery,
}

// Block is a single exercise block in a workout, as authored by a human or
// an LLM. Exactly one target (duration, distance_m, or distance_km) must be
// set unless the block is a recovery inside a repeat group.
type Block struct {
	Type            string   `json:"type"`
	DurationMinutes *float64 `json:"duration_minutes,omitempty"`
	DistanceM       *int     `json:"distance_m,omitempty"`
	DistanceKM      *float64 `json:"distance_km,omitempty"`
	Repeats         *int     `json:"repeats,omitempty"`
	RestSeconds     *int     `json:"rest_seconds,omitempty"`
	PacePerKM       string   `json:"pace_per_km,omitempty"`
	HRBPM           string   `json:"hr_bpm,omitempty"`
}

// Validate checks the block against the encoding preconditions. Encode
// calls this on every block before emitting anything.
func (b Block) Validate() error {
	if _, ok := validBlockTypes[b.Type]; !ok {
		return fmt.Errorf("%w type %q, must be one of: %s",
			ErrInvalidBlock, b.Type, strings.Join(blockTypeNames(), ", "))
	}

	targets := 0
	if b.DurationMinutes != nil {
		targets++
	}
	if b.DistanceM != nil {
		targets++
	}
	if b.DistanceKM != nil {
		targets++
	}
	if targets > 1 {
		return fmt.Errorf("%w: at most one target allowed (duration_minutes, distance_m, or distance_km)", ErrInvalidBlock)
	}
	if targets == 0 && b.Type != "recovery" {
		return fmt.Errorf("%w: type %q requires a target (duration_minutes, distance_m, or distance_km)", ErrInvalidBlock, b.Type)
	}

	if b.DurationMinutes != nil && *b.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration_minutes must be positive", ErrInvalidBlock)
	}
	if b.DistanceM != nil && *b.DistanceM <= 0 {
		return fmt.Errorf("%w: distance_m must be positive", ErrInvalidBlock)
	}
	if b.DistanceKM != nil && *b.DistanceKM <= 0 {
		return fmt.Errorf("%w: distance_km must be positive", ErrInvalidBlock)
	}

	if b.Repeats != nil && *b.Repeats < 1 {
		return fmt.Errorf("%w: repeats must be >= 1", ErrInvalidBlock)
	}
	if b.RestSeconds != nil && *b.RestSeconds < 0 {
		return fmt.Errorf("%w: rest_seconds must be >= 0", ErrInvalidBlock)
	}

	if b.PacePerKM != "" {
		if _, _, err := ParsePace(b.PacePerKM); err != nil {
			return err
		}
	}
	if b.HRBPM != "" {
		if _, _, err := ParseHeartRate(b.HRBPM); err != nil {
			return err
		}
	}

	return nil
}

// repeats returns the repeat count, 0 when unset.
func (b Block) repeats() int {
	if b.Repeats == nil {
		return 0
	}
	return *b.Repeats
}

// restSeconds returns the rest duration, 0 when unset.
func (b Block) restSeconds() int {
	if b.RestSeconds == nil {
		return 0
	}
	return *b.RestSeconds
}

func blockTypeNames() []string {
	return []string{"cooldown", "interval", "recovery", "warmup"}
}
