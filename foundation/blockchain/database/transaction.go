package database

import "fmt"

// Tx is the transactional information between two parties.
//
// The core performs no validation of these fields. The sender and recipient
// are opaque identifiers and the amount is any number the client provided.
// Rejecting malformed input is the job of the layer accepting the request.
type Tx struct {
	Amount    float64 `json:"amount"`    // Value moved from the sender to the recipient.
	Recipient string  `json:"recipient"` // Identifier of the party receiving the value.
	Sender    string  `json:"sender"`    // Identifier of the party sending the value.
}

// NewTx constructs a new transaction.
func NewTx(sender string, recipient string, amount float64) Tx {
	return Tx{
		Amount:    amount,
		Recipient: recipient,
		Sender:    sender,
	}
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s->%s:%g", tx.Sender, tx.Recipient, tx.Amount)
}
