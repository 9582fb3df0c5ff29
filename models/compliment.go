package models

// Compliment is the persisted unit of content: one anonymous compliment
// from a sender to a receiver. The receiver never sees the sender.
type Compliment struct {
	ComplimentID string `dynamodbav:"complimentId" json:"complimentId"`
	Sender       string `dynamodbav:"sender" json:"sender,omitempty"`
	SenderFID    string `dynamodbav:"senderFID" json:"senderFID,omitempty"`
	Receiver     string `dynamodbav:"receiver" json:"receiver"`
	ReceiverFID  string `dynamodbav:"receiverFID,omitempty" json:"receiverFID,omitempty"`
	Compliment   string `dynamodbav:"compliment" json:"compliment"`
	CreatedAt    string `dynamodbav:"createdAt" json:"createdAt"`
	IsRead       bool   `dynamodbav:"isRead" json:"isRead"`
	Rating       *int   `dynamodbav:"rating,omitempty" json:"rating,omitempty"`
}

// ReceivedCompliment is a compliment as shown to its receiver. Locked
// entries have the body redacted until the unlock gate opens.
type ReceivedCompliment struct {
	Compliment
	Locked bool `json:"locked"`
}

// MaxComplimentLength caps the free-text body.
const MaxComplimentLength = 150

// GSI names on the Compliments table. All three use createdAt as the
// sort key so queries come back in time order.
const (
	SenderIndex    = "sender-index"
	ReceiverIndex  = "receiver-index"
	SenderFIDIndex = "senderFID-index"
)
