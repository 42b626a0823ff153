package session

import (
	"time"

	"github.com/pokerbankroll/sessioncore/pkg/money"
)

// Rebuy records additional chips bought into an active session.
type Rebuy struct {
	Amount money.Money `json:"amount"`
	At     time.Time   `json:"at"`
}

// StackUpdate records an observed value of the live stack.
type StackUpdate struct {
	StackAmount money.Money `json:"stack_amount"`
	At          time.Time   `json:"at"`
}

// HandNote is a free-text note about a hand.
type HandNote struct {
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}
