package models

import (
	"fmt"
	"strings"
)

// FlowIntensity is the average flow recorded for a period.
type FlowIntensity string

const (
	FlowLight     FlowIntensity = "LIGHT"
	FlowModerate  FlowIntensity = "MODERATE"
	FlowHeavy     FlowIntensity = "HEAVY"
	FlowVeryHeavy FlowIntensity = "VERY_HEAVY"
)

// FlowIntensities lists the accepted values in display order.
var FlowIntensities = []FlowIntensity{FlowLight, FlowModerate, FlowHeavy, FlowVeryHeavy}

// ParseFlowIntensity accepts any case.
func ParseFlowIntensity(s string) (FlowIntensity, error) {
	for _, f := range FlowIntensities {
		if strings.EqualFold(string(f), strings.TrimSpace(s)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown flow intensity %q", s)
}

const (
	MinPainLevel = 0
	MaxPainLevel = 10
)

// PeriodEntry is one logged period. ID is assigned by the server.
type PeriodEntry struct {
	ID                   ID            `json:"id,omitempty"`
	StartDate            Date          `json:"startDate"`
	EndDate              *Date         `json:"endDate"`
	AverageFlowIntensity FlowIntensity `json:"averageFlowIntensity"`
	PainLevel            int           `json:"painLevel"`
	Notes                string        `json:"notes"`
}

// NewPeriod is the create payload: a PeriodEntry without an id.
type NewPeriod struct {
	StartDate            Date          `json:"startDate"`
	EndDate              *Date         `json:"endDate"`
	AverageFlowIntensity FlowIntensity `json:"averageFlowIntensity"`
	PainLevel            int           `json:"painLevel"`
	Notes                string        `json:"notes"`
}
