// Package classifier wraps external text/vision scoring services and
// normalizes their free-text replies into structured verdicts.
//
// The remote model is treated as a best-effort black box: any transport
// failure, timeout, or unexpected reply shape degrades to an Unparseable
// result rather than an error the caller has to handle for control flow.
package classifier

import (
	"context"
	"fmt"
)

// Verdict is the classifier's decision about a message.
type Verdict int

const (
	// Unparseable means the call failed or the reply did not follow the
	// expected "<yes|no>, <0-100>%" shape. Confidence is meaningless.
	Unparseable Verdict = iota
	Affirmative
	Negative
)

func (v Verdict) String() string {
	switch v {
	case Affirmative:
		return "yes"
	case Negative:
		return "no"
	default:
		return "unparseable"
	}
}

// Result is the output of one classifier call. Confidence is an integer
// 0-100 and only meaningful when Verdict is not Unparseable.
type Result struct {
	Verdict    Verdict
	Confidence int
}

func (r Result) String() string {
	return fmt.Sprintf("%s/%d%%", r.Verdict, r.Confidence)
}

// Image is a self-contained image payload for the vision classifier.
type Image struct {
	MimeType string
	Data     []byte
}

// Prompts holds the fixed instruction templates sent with every call.
// The text template must contain the "{message}" placeholder.
type Prompts struct {
	System string
	Text   string
	Image  string
}

// Client scores message text and image attachments.
//
// Implementations must always return a usable Result: on any failure the
// Result is {Unparseable, 0} and the error carries the cause for logging
// only. Callers never branch on the error to decide routing.
type Client interface {
	ClassifyText(ctx context.Context, text string) (Result, error)
	ClassifyImages(ctx context.Context, images []Image) (Result, error)
}
