package session

import (
	"encoding/json"
	"fmt"
)

// GameType discriminates the two supported game formats.
type GameType string

const (
	GameTypeCash       GameType = "CASH_GAME"
	GameTypeTournament GameType = "TOURNAMENT"
)

// Valid reports whether the game type is one of the known formats.
func (g GameType) Valid() bool {
	return g == GameTypeCash || g == GameTypeTournament
}

// CashStake is the blind structure of a cash game. Blinds are required;
// the ante defaults to zero.
type CashStake struct {
	SmallBlindCents int64
	BigBlindCents   int64
	AnteCents       int64
}

// TournamentStake is the (possibly unknown) blind structure of a
// tournament; blinds escalate out-of-band, so every field is optional
// with zero meaning unknown.
type TournamentStake struct {
	SmallBlindCents int64
	BigBlindCents   int64
	AnteCents       int64
}

// Stake is a tagged union over the two stake variants. The game type is
// part of the value itself and is fixed at construction, so it can never
// disagree with the populated variant.
type Stake struct {
	gameType   GameType
	cash       *CashStake
	tournament *TournamentStake
}

// NewCashStake builds a cash-game stake, validating the blind structure.
func NewCashStake(smallBlindCents, bigBlindCents, anteCents int64) (Stake, error) {
	s := Stake{
		gameType: GameTypeCash,
		cash: &CashStake{
			SmallBlindCents: smallBlindCents,
			BigBlindCents:   bigBlindCents,
			AnteCents:       anteCents,
		},
	}
	if err := s.Validate(); err != nil {
		return Stake{}, err
	}
	return s, nil
}

// NewTournamentStake builds a tournament stake. Zero fields mean the
// blind level is unknown or escalates out-of-band.
func NewTournamentStake(smallBlindCents, bigBlindCents, anteCents int64) (Stake, error) {
	s := Stake{
		gameType: GameTypeTournament,
		tournament: &TournamentStake{
			SmallBlindCents: smallBlindCents,
			BigBlindCents:   bigBlindCents,
			AnteCents:       anteCents,
		},
	}
	if err := s.Validate(); err != nil {
		return Stake{}, err
	}
	return s, nil
}

// GameType returns the discriminator of the populated variant.
func (s Stake) GameType() GameType {
	return s.gameType
}

// Cash returns the cash variant, if that is what the stake holds.
func (s Stake) Cash() (CashStake, bool) {
	if s.cash == nil {
		return CashStake{}, false
	}
	return *s.cash, true
}

// Tournament returns the tournament variant, if that is what the stake
// holds.
func (s Stake) Tournament() (TournamentStake, bool) {
	if s.tournament == nil {
		return TournamentStake{}, false
	}
	return *s.tournament, true
}

// Validate checks the variant shape against its game type.
func (s Stake) Validate() error {
	switch s.gameType {
	case GameTypeCash:
		if s.cash == nil || s.tournament != nil {
			return validationErr("cash stake holds the wrong variant")
		}
		c := s.cash
		if c.SmallBlindCents <= 0 {
			return validationErr("small blind must be positive, got %d", c.SmallBlindCents)
		}
		if c.BigBlindCents <= 0 {
			return validationErr("big blind must be positive, got %d", c.BigBlindCents)
		}
		if c.BigBlindCents < c.SmallBlindCents {
			return validationErr("big blind %d below small blind %d", c.BigBlindCents, c.SmallBlindCents)
		}
		if c.AnteCents < 0 {
			return validationErr("ante must not be negative, got %d", c.AnteCents)
		}
	case GameTypeTournament:
		if s.tournament == nil || s.cash != nil {
			return validationErr("tournament stake holds the wrong variant")
		}
		tr := s.tournament
		if tr.SmallBlindCents < 0 || tr.BigBlindCents < 0 || tr.AnteCents < 0 {
			return validationErr("tournament blinds must not be negative")
		}
	default:
		return validationErr("unknown game type %q", s.gameType)
	}
	return nil
}

// stakeJSON is the flat wire form of the union; the game_type field
// selects the variant on decode.
type stakeJSON struct {
	GameType        GameType `json:"game_type"`
	SmallBlindCents int64    `json:"small_blind_cents,omitempty"`
	BigBlindCents   int64    `json:"big_blind_cents,omitempty"`
	AnteCents       int64    `json:"ante_cents,omitempty"`
}

func (s Stake) MarshalJSON() ([]byte, error) {
	out := stakeJSON{GameType: s.gameType}
	switch {
	case s.cash != nil:
		out.SmallBlindCents = s.cash.SmallBlindCents
		out.BigBlindCents = s.cash.BigBlindCents
		out.AnteCents = s.cash.AnteCents
	case s.tournament != nil:
		out.SmallBlindCents = s.tournament.SmallBlindCents
		out.BigBlindCents = s.tournament.BigBlindCents
		out.AnteCents = s.tournament.AnteCents
	}
	return json.Marshal(out)
}

func (s *Stake) UnmarshalJSON(data []byte) error {
	var in stakeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	var (
		decoded Stake
		err     error
	)
	switch in.GameType {
	case GameTypeCash:
		decoded, err = NewCashStake(in.SmallBlindCents, in.BigBlindCents, in.AnteCents)
	case GameTypeTournament:
		decoded, err = NewTournamentStake(in.SmallBlindCents, in.BigBlindCents, in.AnteCents)
	default:
		err = fmt.Errorf("unknown game type %q", in.GameType)
	}
	if err != nil {
		return err
	}

	*s = decoded
	return nil
}
