package models

import (
	"encoding/json"
	"fmt"
)

// Confidence is a probability on the 0-1 scale. Prediction confidences
// arrive on either scale depending on the API revision and are normalized
// while decoding. Recommendation confidences are always percentages.
type Confidence float64

func ConfidenceFromPercent(pct float64) Confidence {
	return Confidence(pct / 100)
}

func (c Confidence) Percent() float64 {
	return float64(c) * 100
}

func (c *Confidence) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = 0
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decoding confidence %s: %w", data, err)
	}

	if v > 1 {
		v /= 100
	}
	*c = clampConfidence(Confidence(v))
	return nil
}

func clampConfidence(c Confidence) Confidence {
	switch {
	case c < 0:
		return 0
	case c > 1:
		return 1
	}
	return c
}
