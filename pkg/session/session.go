package session

import (
	"strings"
	"time"

	"github.com/pokerbankroll/sessioncore/pkg/money"
)

// Status is the lifecycle state of a session record.
type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusEnded  Status = "ENDED"
)

// Session is the aggregate root for one player's live session. All owned
// sub-records (rebuys, stack updates, hand notes) are reached only
// through it, and all mutation goes through the transition methods,
// which validate invariants and bump the version.
type Session struct {
	Status  Status `json:"status"`
	Version int64  `json:"version"`

	PlayerName     string         `json:"player_name"`
	PlayerLocation PlayerLocation `json:"player_location"`

	GameType GameType    `json:"game_type"`
	Stake    Stake       `json:"stake"`
	BuyIn    money.Money `json:"buy_in"`

	StartTime   time.Time  `json:"start_time"`
	StopTime    *time.Time `json:"stop_time,omitempty"`
	CashoutTime *time.Time `json:"cashout_time,omitempty"`

	FinalStack *money.Money `json:"final_stack,omitempty"`
	LiveStack  *money.Money `json:"live_stack,omitempty"`

	Rebuys       []Rebuy       `json:"rebuys"`
	StackUpdates []StackUpdate `json:"stack_updates"`
	HandNotes    []HandNote    `json:"hand_notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StartParams describes a new session. A zero StartTime means "now".
type StartParams struct {
	PlayerName     string
	PlayerLocation PlayerLocation
	GameType       GameType
	Stake          Stake
	BuyIn          money.Money
	StartTime      time.Time
}

// EndParams closes a session. Zero times mean "now"; FinalStack must
// share the buy-in currency and may be zero (a busted stack cashes out
// at nothing).
type EndParams struct {
	StopTime    time.Time
	CashoutTime time.Time
	FinalStack  money.Money
}

// NewSession validates the start parameters and builds an ACTIVE session
// at version 1 with the live stack equal to the buy-in.
func NewSession(p StartParams, now time.Time) (*Session, error) {
	if strings.TrimSpace(p.PlayerName) == "" {
		return nil, validationErr("player name is required")
	}
	if err := p.PlayerLocation.Validate(); err != nil {
		return nil, err
	}
	if !p.GameType.Valid() {
		return nil, validationErr("unknown game type %q", p.GameType)
	}
	if err := p.Stake.Validate(); err != nil {
		return nil, err
	}
	if p.Stake.GameType() != p.GameType {
		return nil, validationErr("stake variant %q does not match game type %q", p.Stake.GameType(), p.GameType)
	}
	if err := p.BuyIn.Validate(); err != nil {
		return nil, validationErr("buy-in: %v", err)
	}
	if p.BuyIn.AmountCents <= 0 {
		return nil, validationErr("buy-in must be positive, got %d", p.BuyIn.AmountCents)
	}

	startTime := p.StartTime
	if startTime.IsZero() {
		startTime = now
	}

	liveStack := p.BuyIn
	return &Session{
		Status:         StatusActive,
		Version:        1,
		PlayerName:     p.PlayerName,
		PlayerLocation: p.PlayerLocation,
		GameType:       p.GameType,
		Stake:          p.Stake,
		BuyIn:          p.BuyIn,
		StartTime:      startTime,
		LiveStack:      &liveStack,
		Rebuys:         []Rebuy{},
		StackUpdates:   []StackUpdate{},
		HandNotes:      []HandNote{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// IsActive reports whether the session is still being played.
func (s *Session) IsActive() bool {
	return s != nil && s.Status == StatusActive
}

// IsEnded reports whether the session has been cashed out.
func (s *Session) IsEnded() bool {
	return s != nil && s.Status == StatusEnded
}

// End transitions the session to ENDED. The time ordering is inclusive
// at every boundary: stopTime ≥ startTime and cashoutTime ≥ stopTime
// both hold with equality. On success the live stack becomes the final
// stack and a closing StackUpdate is appended.
func (s *Session) End(p EndParams, now time.Time) error {
	if !s.IsActive() {
		return ErrSessionEnded
	}

	stopTime := p.StopTime
	if stopTime.IsZero() {
		stopTime = now
	}
	cashoutTime := p.CashoutTime
	if cashoutTime.IsZero() {
		cashoutTime = now
	}

	if err := p.FinalStack.Validate(); err != nil {
		return validationErr("final stack: %v", err)
	}
	if !p.FinalStack.SameCurrency(s.BuyIn) {
		return validationErr("final stack currency %q does not match buy-in currency %q",
			p.FinalStack.Currency, s.BuyIn.Currency)
	}
	if stopTime.Before(s.StartTime) {
		return validationErr("stop time %s precedes start time %s", stopTime, s.StartTime)
	}
	if cashoutTime.Before(stopTime) {
		return validationErr("cashout time %s precedes stop time %s", cashoutTime, stopTime)
	}

	finalStack := p.FinalStack
	s.StopTime = &stopTime
	s.CashoutTime = &cashoutTime
	s.FinalStack = &finalStack
	s.LiveStack = &finalStack
	s.StackUpdates = append(s.StackUpdates, StackUpdate{StackAmount: finalStack, At: cashoutTime})
	s.Status = StatusEnded
	s.bump(now)
	return nil
}

// AddRebuy records additional chips bought in and grows the live stack.
func (s *Session) AddRebuy(amount money.Money, at, now time.Time) error {
	if !s.IsActive() {
		return ErrSessionEnded
	}
	if err := amount.Validate(); err != nil {
		return validationErr("rebuy: %v", err)
	}
	if amount.AmountCents <= 0 {
		return validationErr("rebuy must be positive, got %d", amount.AmountCents)
	}
	if !amount.SameCurrency(s.BuyIn) {
		return validationErr("rebuy currency %q does not match buy-in currency %q",
			amount.Currency, s.BuyIn.Currency)
	}

	if at.IsZero() {
		at = now
	}

	if s.LiveStack == nil {
		return ErrCorruptRecord
	}
	stack, err := s.LiveStack.Add(amount)
	if err != nil {
		return validationErr("rebuy: %v", err)
	}
	s.LiveStack = &stack
	s.Rebuys = append(s.Rebuys, Rebuy{Amount: amount, At: at})
	s.bump(now)
	return nil
}

// ApplyStackUpdate records an observed live-stack value.
func (s *Session) ApplyStackUpdate(stackAmount money.Money, at, now time.Time) error {
	if !s.IsActive() {
		return ErrSessionEnded
	}
	if err := stackAmount.Validate(); err != nil {
		return validationErr("stack update: %v", err)
	}
	if !stackAmount.SameCurrency(s.BuyIn) {
		return validationErr("stack currency %q does not match buy-in currency %q",
			stackAmount.Currency, s.BuyIn.Currency)
	}

	if at.IsZero() {
		at = now
	}

	s.LiveStack = &stackAmount
	s.StackUpdates = append(s.StackUpdates, StackUpdate{StackAmount: stackAmount, At: at})
	s.bump(now)
	return nil
}

// AddHandNote appends a free-text note.
func (s *Session) AddHandNote(text string, at, now time.Time) error {
	if !s.IsActive() {
		return ErrSessionEnded
	}
	if strings.TrimSpace(text) == "" {
		return validationErr("hand note text is required")
	}

	if at.IsZero() {
		at = now
	}

	s.HandNotes = append(s.HandNotes, HandNote{Text: text, At: at})
	s.bump(now)
	return nil
}

// bump records an accepted mutation: version +1, updatedAt refreshed.
func (s *Session) bump(now time.Time) {
	s.Version++
	s.UpdatedAt = now
}

// TotalBuyIn sums the initial buy-in and every rebuy.
func (s *Session) TotalBuyIn() (money.Money, error) {
	total := s.BuyIn
	for _, r := range s.Rebuys {
		var err error
		if total, err = total.Add(r.Amount); err != nil {
			return money.Money{}, err
		}
	}
	return total, nil
}

// NetResult is the signed cents difference between the live stack and
// the total buy-in: positive for a winning session.
func (s *Session) NetResult() (int64, error) {
	if s.LiveStack == nil {
		return 0, validationErr("session has no live stack")
	}
	total, err := s.TotalBuyIn()
	if err != nil {
		return 0, err
	}
	return s.LiveStack.Diff(total)
}

// Duration is the elapsed play time: stop−start once ENDED, now−start
// while ACTIVE.
func (s *Session) Duration(now time.Time) time.Duration {
	if s.IsEnded() && s.StopTime != nil {
		return s.StopTime.Sub(s.StartTime)
	}
	return now.Sub(s.StartTime)
}
