package models

// Unlock is a persisted payment entitlement. Once a user has paid to
// unlock their received compliments the record stays, so the unlock
// survives reloads and new sessions.
type Unlock struct {
	FID        string `dynamodbav:"fid" json:"fid"`
	PaymentID  string `dynamodbav:"paymentId" json:"paymentId"`
	Amount     string `dynamodbav:"amount,omitempty" json:"amount,omitempty"`
	UnlockedAt string `dynamodbav:"unlockedAt" json:"unlockedAt"`
}
