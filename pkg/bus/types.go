package bus

// ImageAttachment is an image pulled from the source platform and held as
// raw bytes. Attachments are re-encoded before leaving the process so the
// classifier never needs source-platform credentials.
type ImageAttachment struct {
	MimeType string
	Data     []byte
}

// InboundMessage is one validated chat event handed to the pipeline.
// The event transport owns authenticity checks; by the time a message is
// on the bus it is trusted.
type InboundMessage struct {
	ChannelID string
	Timestamp string // platform ordering token, unique per channel
	ThreadTS  string // set iff the message is a threaded reply
	SenderID  string
	Text      string
	Images    []ImageAttachment
}

// HasImages reports whether the message carries at least one attachment
// worth sending to the vision classifier.
func (m InboundMessage) HasImages() bool {
	return len(m.Images) > 0
}

// OutboundMessage is a formatted alert bound for one destination channel.
type OutboundMessage struct {
	ChannelID string
	Text      string
}
