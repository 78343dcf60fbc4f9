package model

import "time"

// GeneratedPaper is a fabricated paper used for classroom demonstrations.
type GeneratedPaper struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Abstract       string    `json:"abstract"`
	Introduction   string    `json:"introduction"`
	Dataset        Dataset   `json:"dataset"`
	AIGenerated    bool      `json:"aiGenerated"`
	DetectionHints []string  `json:"detectionHints"`
	GeneratedAt    time.Time `json:"generatedAt"`
}

// Dataset describes the synthetic dataset a generated paper claims to use.
// The scores are preformatted strings, exactly as they are printed.
type Dataset struct {
	Name        string `json:"name"`
	Samples     int    `json:"samples"`
	Features    int    `json:"features"`
	Description string `json:"description"`
	Accuracy    string `json:"accuracy"`
	Precision   string `json:"precision"`
	Recall      string `json:"recall"`
}
