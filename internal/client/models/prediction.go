package models

// CyclePrediction is returned by GET /api/predictions/cycle.
type CyclePrediction struct {
	PredictedPeriodStart   *Date   `json:"predictedPeriodStart"`
	PredictedOvulationDate *Date   `json:"predictedOvulationDate"`
	FertileWindowStart     *Date   `json:"fertileWindowStart"`
	FertileWindowEnd       *Date   `json:"fertileWindowEnd"`
	PredictionConfidence   float64 `json:"predictionConfidence"`
	Explanation            string  `json:"explanation"`
	IsIrregular            *bool   `json:"isIrregular"`
	EstimatedCycleLength   *int    `json:"estimatedCycleLength"`
}

// ConfidencePercent rounds the 0..1 confidence to a whole percentage.
func (p CyclePrediction) ConfidencePercent() int {
	c := p.PredictionConfidence
	if c < 0 {
		c = 0
	}
	if c > 1 {
		c = 1
	}
	return int(c*100 + 0.5)
}
