package radar

import (
	"math"

	"github.com/tinyland-inc/cakeradar/pkg/classifier"
)

// Image evidence outweighs text evidence: a photo of a cake is stronger
// proof than the word "cake".
const (
	textWeight  = 0.4
	imageWeight = 0.6
)

// Assessment merges a text classification with an optional image
// classification into one routable decision.
type Assessment struct {
	Verdict         classifier.Verdict
	Aggregate       int
	TextConfidence  int
	ImageConfidence int
	ImageScored     bool // true iff the image result contributed to Aggregate
}

// Combine merges the text result with an optional image result.
//
// Without an image result, or when image classification came back
// Unparseable, the text result passes through untouched and Aggregate
// equals TextConfidence exactly. Otherwise the confidences are merged
// with the fixed weights and the verdict is affirmative if either side
// was affirmative.
func Combine(text classifier.Result, image *classifier.Result) Assessment {
	if image == nil || image.Verdict == classifier.Unparseable {
		return Assessment{
			Verdict:        text.Verdict,
			Aggregate:      text.Confidence,
			TextConfidence: text.Confidence,
		}
	}

	aggregate := int(math.Round(textWeight*float64(text.Confidence) + imageWeight*float64(image.Confidence)))

	verdict := classifier.Negative
	if text.Verdict == classifier.Affirmative || image.Verdict == classifier.Affirmative {
		verdict = classifier.Affirmative
	}

	return Assessment{
		Verdict:         verdict,
		Aggregate:       aggregate,
		TextConfidence:  text.Confidence,
		ImageConfidence: image.Confidence,
		ImageScored:     true,
	}
}
