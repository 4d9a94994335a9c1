package radar

import (
	"testing"

	"github.com/tinyland-inc/cakeradar/pkg/classifier"
)

func TestCombineTextOnly(t *testing.T) {
	a := Combine(classifier.Result{Verdict: classifier.Affirmative, Confidence: 70}, nil)

	if a.Verdict != classifier.Affirmative {
		t.Errorf("Verdict = %v, want yes", a.Verdict)
	}
	if a.Aggregate != a.TextConfidence || a.Aggregate != 70 {
		t.Errorf("without images aggregate must equal text confidence exactly, got %d/%d", a.Aggregate, a.TextConfidence)
	}
	if a.ImageScored {
		t.Error("ImageScored must be false without an image result")
	}
}

func TestCombineWeighting(t *testing.T) {
	a := Combine(
		classifier.Result{Verdict: classifier.Affirmative, Confidence: 80},
		&classifier.Result{Verdict: classifier.Affirmative, Confidence: 90},
	)

	// round(0.4*80 + 0.6*90) = 86
	if a.Aggregate != 86 {
		t.Errorf("Aggregate = %d, want 86", a.Aggregate)
	}
	if a.Verdict != classifier.Affirmative {
		t.Errorf("Verdict = %v, want yes", a.Verdict)
	}
	if !a.ImageScored || a.TextConfidence != 80 || a.ImageConfidence != 90 {
		t.Errorf("component confidences not preserved: %+v", a)
	}
}

func TestCombineVerdictOr(t *testing.T) {
	// Image evidence alone can make the combined verdict affirmative.
	a := Combine(
		classifier.Result{Verdict: classifier.Negative, Confidence: 20},
		&classifier.Result{Verdict: classifier.Affirmative, Confidence: 95},
	)
	if a.Verdict != classifier.Affirmative {
		t.Errorf("Verdict = %v, want yes when either side is affirmative", a.Verdict)
	}

	both := Combine(
		classifier.Result{Verdict: classifier.Negative, Confidence: 20},
		&classifier.Result{Verdict: classifier.Negative, Confidence: 30},
	)
	if both.Verdict != classifier.Negative {
		t.Errorf("Verdict = %v, want no when both sides are negative", both.Verdict)
	}
}

func TestCombineImageUnparseableFallsBackToText(t *testing.T) {
	a := Combine(
		classifier.Result{Verdict: classifier.Affirmative, Confidence: 70},
		&classifier.Result{Verdict: classifier.Unparseable},
	)

	if a.Verdict != classifier.Affirmative || a.Aggregate != 70 {
		t.Errorf("got %+v, want text-only fallback yes/70", a)
	}
	if a.ImageScored {
		t.Error("unparseable image result must not count as scored")
	}
}

func TestCombineRounding(t *testing.T) {
	// 0.4*81 + 0.6*90 = 86.4 → 86; 0.4*82 + 0.6*91 = 87.4 → 87
	a := Combine(
		classifier.Result{Verdict: classifier.Affirmative, Confidence: 81},
		&classifier.Result{Verdict: classifier.Affirmative, Confidence: 90},
	)
	if a.Aggregate != 86 {
		t.Errorf("Aggregate = %d, want 86", a.Aggregate)
	}

	// 0.4*75 + 0.6*90 = 84.0 exactly
	b := Combine(
		classifier.Result{Verdict: classifier.Affirmative, Confidence: 75},
		&classifier.Result{Verdict: classifier.Affirmative, Confidence: 90},
	)
	if b.Aggregate != 84 {
		t.Errorf("Aggregate = %d, want 84", b.Aggregate)
	}
}
