package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AnalyticsAggregate is the body of GET /api/analytics/dashboard. Every
// section may be absent.
type AnalyticsAggregate struct {
	CycleConsistency *CycleConsistency `json:"cycleConsistency"`
	SymptomFrequency *SymptomFrequency `json:"symptomFrequency"`
	MoodTrends       *MoodTrends       `json:"moodTrends"`
	WellnessScore    *WellnessScore    `json:"wellnessScore"`
}

type CycleConsistency struct {
	AverageCycleLength *float64  `json:"averageCycleLength"`
	Consistency        string    `json:"consistency"`
	CycleLengths       []float64 `json:"cycleLengths"`
	StandardDeviation  *float64  `json:"standardDeviation"`
	TotalCycles        *int      `json:"totalCycles"`
}

type SymptomFrequency struct {
	Frequency      *OrderedCounts `json:"frequency"`
	TotalSymptoms  int            `json:"totalSymptoms"`
	UniqueSymptoms int            `json:"uniqueSymptoms"`
}

type MoodTrends struct {
	MoodDistribution *OrderedCounts `json:"moodDistribution"`
	TotalMoods       int            `json:"totalMoods"`
	AverageIntensity *float64       `json:"averageIntensity"`
}

type WellnessScore struct {
	Score     *float64 `json:"score"`
	Level     string   `json:"level"`
	LogsCount int      `json:"logsCount"`
}

// OrderedCounts is a JSON object of name → number that remembers the order
// in which keys appeared on the wire. A repeated key keeps its first
// position and takes the last value.
type OrderedCounts struct {
	Keys   []string
	Values []float64
}

func (o *OrderedCounts) Len() int {
	if o == nil {
		return 0
	}
	return len(o.Keys)
}

func (o *OrderedCounts) Set(key string, value float64) {
	for i, k := range o.Keys {
		if k == key {
			o.Values[i] = value
			return
		}
	}
	o.Keys = append(o.Keys, key)
	o.Values = append(o.Values, value)
}

func (o *OrderedCounts) UnmarshalJSON(b []byte) error {
	o.Keys, o.Values = nil, nil
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("ordered counts: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("ordered counts: expected key, got %v", tok)
		}
		var value *float64
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("ordered counts[%s]: %w", key, err)
		}
		var v float64
		if value != nil {
			v = *value
		}
		o.Set(key, v)
	}

	_, err = dec.Token()
	return err
}

func (o OrderedCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.Keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(o.Values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
