package domain

// Message is a single entry in a two-party conversation. Messages are created
// through the backend and immutable afterwards; ordering is whatever the
// backend returned last.
type Message struct {
	ID         string `json:"_id"`
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
}

// SentBy reports whether the message was written by the given account,
// which affects presentation only.
func (m Message) SentBy(accountID string) bool {
	return accountID != "" && m.SenderID == accountID
}
