package models

const (
	MinSleepQuality = 1
	MaxSleepQuality = 5
)

// WellnessLog is the body of POST /api/wellness/log.
type WellnessLog struct {
	WaterIntake     int    `json:"waterIntake"`
	SleepHours      int    `json:"sleepHours"`
	SleepQuality    int    `json:"sleepQuality"`
	ExerciseMinutes int    `json:"exerciseMinutes"`
	ExerciseType    string `json:"exerciseType"`
	Notes           string `json:"notes"`
}

// DefaultWellnessLog is the empty form: zero counters and a middling sleep
// quality.
func DefaultWellnessLog() WellnessLog {
	return WellnessLog{SleepQuality: 3}
}
