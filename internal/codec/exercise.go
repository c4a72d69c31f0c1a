package codec

// Exercise is one entry of the COROS flat exercise array: either a Step or
// a Group. The two shapes carry different field sets on the wire, so they
// are separate types rather than one struct with an isGroup flag.
type Exercise interface {
	// exerciseID returns the record's id within the flat array.
	exerciseID() int
}

// Step is a single work, warmup, cooldown, or recovery step. Field names
// and the full zeroed skeleton match what the COROS web app sends; the
// upstream service rejects or silently drops payloads with missing fields.
type Step struct {
	Access             int      `json:"access"`
	CreateTimestamp    int64    `json:"createTimestamp"`
	DefaultOrder       int      `json:"defaultOrder"`
	Equipment          []int    `json:"equipment"`
	ExerciseType       int      `json:"exerciseType"`
	GroupID            GroupRef `json:"groupId"`
	HRType             int      `json:"hrType"`
	ID                 int      `json:"id"`
	IntensityCustom    int      `json:"intensityCustom"`
	IntensityUnit      paceUnit `json:"intensityDisplayUnit"`
	IntensityMult      int      `json:"intensityMultiplier"`
	IntensityPct       int      `json:"intensityPercent"`
	IntensityPctExtend int      `json:"intensityPercentExtend"`
	IntensityType      int      `json:"intensityType"`
	IntensityValue     int      `json:"intensityValue"`
	IntensityExtend    int      `json:"intensityValueExtend"`
	IsDefaultAdd       int      `json:"isDefaultAdd"`
	IsGroup            bool     `json:"isGroup"`
	IsIntensityPercent bool     `json:"isIntensityPercent"`
	Name               string   `json:"name"`
	OriginID           string   `json:"originId"`
	Overview           string   `json:"overview"`
	Part               []int    `json:"part"`
	RestType           int      `json:"restType"`
	RestValue          int      `json:"restValue"`
	Sets               int      `json:"sets"`
	SortNo             int      `json:"sortNo"`
	SourceID           string   `json:"sourceId"`
	SourceURL          string   `json:"sourceUrl"`
	SportType          int      `json:"sportType"`
	SubType            int      `json:"subType"`
	TargetUnit         int      `json:"targetDisplayUnit"`
	TargetType         int      `json:"targetType"`
	TargetValue        int      `json:"targetValue"`
	UserID             int      `json:"userId"`
	VideoURL           string   `json:"videoUrl"`
}

func (s *Step) exerciseID() int { return s.ID }

// Group is a repeat-N-times wrapper around one work step and an optional
// recovery step. Note the group's targetType is the empty string on the
// wire, unlike the step's integer targetType.
type Group struct {
	Access          int    `json:"access"`
	DefaultOrder    int    `json:"defaultOrder"`
	ExerciseType    int    `json:"exerciseType"`
	ID              int    `json:"id"`
	IntensityCustom int    `json:"intensityCustom"`
	IntensityMult   int    `json:"intensityMultiplier"`
	IntensityType   int    `json:"intensityType"`
	IntensityValue  int    `json:"intensityValue"`
	IntensityExtend int    `json:"intensityValueExtend"`
	IsDefaultAdd    int    `json:"isDefaultAdd"`
	IsGroup         bool   `json:"isGroup"`
	Name            string `json:"name"`
	OriginID        string `json:"originId"`
	Overview        string `json:"overview"`
	ProgramID       string `json:"programId"`
	RestType        int    `json:"restType"`
	RestValue       int    `json:"restValue"`
	Sets            int    `json:"sets"`
	SortNo          int    `json:"sortNo"`
	SourceID        string `json:"sourceId"`
	SourceURL       string `json:"sourceUrl"`
	SportType       int    `json:"sportType"`
	SubType         int    `json:"subType"`
	TargetType      string `json:"targetType"`
	TargetValue     int    `json:"targetValue"`
	VideoURL        string `json:"videoUrl"`
}

func (g *Group) exerciseID() int { return g.ID }

// newStep builds a step skeleton with library template metadata for the
// given exercise type and everything else zeroed.
func newStep(id, sortNo, exerciseType, sportCode int) *Step {
	tmpl := exerciseTemplates[exerciseType]
	return &Step{
		CreateTimestamp: tmpl.CreateTimestamp,
		DefaultOrder:    tmpl.DefaultOrder,
		Equipment:       []int{1},
		ExerciseType:    exerciseType,
		ID:              id,
		IsDefaultAdd:    tmpl.IsDefaultAdd,
		Name:            tmpl.Name,
		OriginID:        tmpl.OriginID,
		Overview:        tmpl.Overview,
		Part:            []int{0},
		RestType:        RestNone,
		Sets:            1,
		SortNo:          sortNo,
		SourceID:        "0",
		SportType:       sportCode,
	}
}

// newGroup builds a repeat group. A nonzero rest marks the group as timed
// rest; otherwise the group declares no rest between sets.
func newGroup(id, sortNo, repeats, restSeconds int) *Group {
	restType := RestNone
	if restSeconds > 0 {
		restType = RestTimed
	}
	return &Group{
		ExerciseType: ExerciseGroup,
		ID:           id,
		IsGroup:      true,
		RestType:     restType,
		RestValue:    restSeconds,
		Sets:         repeats,
		SortNo:       sortNo,
		SourceID:     "0",
	}
}

// StepCount returns the number of non-group records in a flat exercise
// array. The upstream "simple" program shape wants this as its set count.
func StepCount(exercises []Exercise) int {
	n := 0
	for _, ex := range exercises {
		if _, ok := ex.(*Step); ok {
			n++
		}
	}
	return n
}
