// Package classify turns aligned fragment matches into classified
// differences.
//
//	cfg := classify.DefaultConfig()
//	cfg.IgnoreStyle = true
//	if diff, ok := classify.Classify(match, cfg); ok {
//	    fmt.Println(diff.Kind, diff.Severity)
//	}
//
// Text content is checked before position and style, so minor positional
// noise never hides a content change. Severities are bounded to [0, 1]:
// changed text scores 1 − similarity, layout shifts scale with the
// displacement relative to [Config.PositionTolerance], and style changes use
// a fixed score.
package classify
