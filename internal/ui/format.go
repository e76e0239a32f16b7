package ui

import (
	"fmt"
	"strings"

	"github.com/awwal-10/visrec-go/internal/visrec"
)

// FormatResult turns a server result into display strings: confidence as
// a one-decimal percentage badge and a two-decimal detail value,
// processing time in seconds at one and two decimals, and the scene
// timestamp as minutes:seconds.
func FormatResult(res *visrec.RecognitionResult) ResultView {
	rv := ResultView{
		Title:            res.Title,
		ConfidenceBadge:  fmt.Sprintf("%.1f%% Match", res.Confidence*100),
		MatchBadge:       capitalize(string(res.MatchType)),
		TimeBadge:        fmt.Sprintf("%.1fs", res.ProcessingTimeMS/1000),
		ConfidenceDetail: fmt.Sprintf("%.2f%%", res.Confidence*100),
		TimeDetail:       fmt.Sprintf("%.2f seconds", res.ProcessingTimeMS/1000),
	}
	if res.Year != nil {
		rv.Year = *res.Year
		rv.HasYear = true
	}
	if res.Timestamp != nil {
		rv.SceneTimestamp = formatSceneTimestamp(*res.Timestamp)
	}
	return rv
}

// formatSceneTimestamp renders seconds into media as m:ss, flooring to
// whole seconds and zero-padding the seconds field.
func formatSceneTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
