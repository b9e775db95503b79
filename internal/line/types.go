package line

// SignatureHeader is the HTTP header LINE uses to carry the base64 HMAC-SHA256
// signature of the webhook request body.
const SignatureHeader = "X-Line-Signature"

// EventTypeMessage is the webhook event type for inbound messages.
const EventTypeMessage = "message"

// MessageTypeText is the message type for plain text messages.
const MessageTypeText = "text"

// Event is a single webhook event from the platform envelope.
// Events the bot does not handle keep their raw Type and are skipped downstream.
type Event struct {
	Type       string  `json:"type"`
	ReplyToken string  `json:"replyToken,omitempty"`
	Timestamp  int64   `json:"timestamp,omitempty"`
	Message    Message `json:"message,omitempty"`
}

// Message is the message payload of a message event.
type Message struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
	Text string `json:"text,omitempty"`
}

// IsTextMessage reports whether the event carries a text message the bot can answer.
func (e Event) IsTextMessage() bool {
	return e.Type == EventTypeMessage && e.Message.Type == MessageTypeText
}

// replyRequest is the wire body for the reply API.
type replyRequest struct {
	ReplyToken string        `json:"replyToken"`
	Messages   []textMessage `json:"messages"`
}

type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}
