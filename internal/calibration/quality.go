package calibration

import "fmt"

// Quality grades the outcome of a calibration as reported by the device.
// Values are ordered: a higher value is a strictly better grade, so
// qualities compare directly against the configured minimum.
type Quality int

const (
	QualityUnknown Quality = iota
	QualityFailed
	QualityPoor
	QualityAcceptable
	QualityGood
)

func (q Quality) String() string {
	switch q {
	case QualityUnknown:
		return "unknown"
	case QualityFailed:
		return "failed"
	case QualityPoor:
		return "poor"
	case QualityAcceptable:
		return "acceptable"
	case QualityGood:
		return "good"
	default:
		return fmt.Sprintf("quality(%d)", int(q))
	}
}

// QualityFromString parses the textual form produced by String.
func QualityFromString(s string) (Quality, error) {
	switch s {
	case "unknown":
		return QualityUnknown, nil
	case "failed":
		return QualityFailed, nil
	case "poor":
		return QualityPoor, nil
	case "acceptable":
		return QualityAcceptable, nil
	case "good":
		return QualityGood, nil
	default:
		return QualityUnknown, fmt.Errorf("calibration: unknown quality %q", s)
	}
}
