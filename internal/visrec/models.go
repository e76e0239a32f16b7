// Package visrec holds the wire types of the Visual Recognition API.
package visrec

// MatchType is the server-assigned confidence tier of a match.
type MatchType string

const (
	MatchStrong   MatchType = "strong"
	MatchProbable MatchType = "probable"
	MatchWeak     MatchType = "weak"
	MatchNone     MatchType = "none"
)

// RecognitionResult is the response body of an identify call. It is
// rendered as received; the client does not re-validate server output.
type RecognitionResult struct {
	Matched          bool       `json:"matched"`
	Title            string     `json:"title,omitempty"`
	Year             *int       `json:"year,omitempty"`
	Timestamp        *float64   `json:"timestamp,omitempty"`
	Confidence       float64    `json:"confidence"`
	MatchType        MatchType  `json:"match_type"`
	ProcessingTimeMS float64    `json:"processing_time_ms"`
	Debug            *DebugInfo `json:"debug,omitempty"`
	Error            string     `json:"error,omitempty"`
}

// DebugInfo carries pipeline counters the server attaches to results.
type DebugInfo struct {
	Stage1Candidates int `json:"stage1_candidates"`
	Stage2Candidates int `json:"stage2_candidates"`
	FramesSampled    int `json:"frames_sampled"`
	FramesMatched    int `json:"frames_matched"`
}

// HealthStatus is the health endpoint response.
type HealthStatus struct {
	Status       string `json:"status"`
	MediaItems   int    `json:"media_items"`
	Fingerprints int    `json:"fingerprints"`
	Version      string `json:"version"`
}

// MediaItem is one fingerprinted entry in the server catalog.
type MediaItem struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Year         *int     `json:"year"`
	Duration     *float64 `json:"duration"`
	Fingerprints int      `json:"fingerprints"`
}

// MediaList is the media endpoint response.
type MediaList struct {
	Media []MediaItem `json:"media"`
	Total int         `json:"total"`
}
