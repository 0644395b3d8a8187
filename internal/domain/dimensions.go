package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// AdviceToken is the placeholder a customer picks when they want us to
// recommend a dimension instead of choosing one.
const AdviceToken = "advies"

// AllowedWidths lists the selectable dakkapel widths in centimetres.
var AllowedWidths = []int{200, 250, 300, 350, 400, 450, 500, 550, 600}

// AllowedHeights lists the selectable front heights in centimetres.
var AllowedHeights = []int{130, 140, 150, 160, 170, 180}

const (
	DefaultWidth  = 300
	DefaultHeight = 150
)

// LowRoofAngle is the pitch (degrees) below which a warning is shown.
const LowRoofAngle = 25

func IsAllowedWidth(cm int) bool  { return contains(AllowedWidths, cm) }
func IsAllowedHeight(cm int) bool { return contains(AllowedHeights, cm) }

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// WidthBucket groups widths for the width-based base price.
type WidthBucket string

const (
	WidthBucketS  WidthBucket = "200-250"
	WidthBucketM  WidthBucket = "300-350"
	WidthBucketL  WidthBucket = "400-450"
	WidthBucketXL WidthBucket = "500-600"
)

var WidthBuckets = []WidthBucket{WidthBucketS, WidthBucketM, WidthBucketL, WidthBucketXL}

func BucketForWidth(cm int) WidthBucket {
	switch {
	case cm <= 250:
		return WidthBucketS
	case cm <= 350:
		return WidthBucketM
	case cm <= 450:
		return WidthBucketL
	default:
		return WidthBucketXL
	}
}

type RoofAngleBucket string

const (
	RoofAngleLow    RoofAngleBucket = "lt25"
	RoofAngleMedium RoofAngleBucket = "25-35"
	RoofAngleSteep  RoofAngleBucket = "35-45"
	RoofAngleVery   RoofAngleBucket = "gt45"
)

func BucketForRoofAngle(deg int) RoofAngleBucket {
	switch {
	case deg < LowRoofAngle:
		return RoofAngleLow
	case deg < 35:
		return RoofAngleMedium
	case deg <= 45:
		return RoofAngleSteep
	default:
		return RoofAngleVery
	}
}

// DimensionChoice is what a customer picked for a dimension field: either a
// concrete value in centimetres or a request for advice. Only concrete
// choices can be merged into a Configuration.
type DimensionChoice struct {
	advice bool
	cm     int
}

func Advise() DimensionChoice { return DimensionChoice{advice: true} }

func Concrete(cm int) DimensionChoice { return DimensionChoice{cm: cm} }

func (d DimensionChoice) IsAdvice() bool { return d.advice }

// Value returns the concrete value; ok is false for an advice request.
func (d DimensionChoice) Value() (cm int, ok bool) {
	if d.advice {
		return 0, false
	}
	return d.cm, true
}

func (d DimensionChoice) MarshalJSON() ([]byte, error) {
	if d.advice {
		return json.Marshal(AdviceToken)
	}
	return json.Marshal(d.cm)
}

func (d *DimensionChoice) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if strings.EqualFold(strings.TrimSpace(s), AdviceToken) {
			*d = Advise()
			return nil
		}
		return fmt.Errorf("dimension: unexpected value %q", s)
	}
	var cm int
	if err := json.Unmarshal(b, &cm); err != nil {
		return fmt.Errorf("dimension: %w", err)
	}
	*d = Concrete(cm)
	return nil
}

// SuggestWidth picks the smallest allowed width that fits the given number
// of windows (about 85 cm per window plus the side cheeks).
func SuggestWidth(windowCount int) int {
	if windowCount < 1 {
		windowCount = 1
	}
	need := windowCount*85 + 60
	for _, w := range AllowedWidths {
		if w >= need {
			return w
		}
	}
	return AllowedWidths[len(AllowedWidths)-1]
}

// SuggestHeight recommends a front height for the roof pitch. Steeper roofs
// leave more room under the ridge.
func SuggestHeight(roofAngle int) int {
	switch BucketForRoofAngle(roofAngle) {
	case RoofAngleLow:
		return 130
	case RoofAngleMedium:
		return 140
	case RoofAngleSteep:
		return 150
	default:
		return 170
	}
}
