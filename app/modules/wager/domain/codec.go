package wagerdomain

import (
	"encoding/json"
	"fmt"
)

// envelope tags a serialized bet with its kind.
type envelope struct {
	Kind Kind            `json:"kind"`
	Bet  json.RawMessage `json:"bet"`
}

// MarshalBets encodes a mixed bet collection into one JSON document.
func MarshalBets(bets []Bet) ([]byte, error) {
	envelopes := make([]envelope, 0, len(bets))
	for _, b := range bets {
		raw, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s bet %s: %w", b.Kind(), b.ID(), err)
		}
		envelopes = append(envelopes, envelope{Kind: b.Kind(), Bet: raw})
	}
	return json.Marshal(envelopes)
}

func UnmarshalBets(data []byte) ([]Bet, error) {
	var envelopes []envelope
	if err := json.Unmarshal(data, &envelopes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bets: %w", err)
	}
	bets := make([]Bet, 0, len(envelopes))
	for _, env := range envelopes {
		b, err := NewBetOfKind(env.Kind)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(env.Bet, b); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s bet: %w", env.Kind, err)
		}
		bets = append(bets, b)
	}
	return bets, nil
}

// NewBetOfKind returns an empty bet of the given kind, ready to be decoded into.
func NewBetOfKind(k Kind) (Bet, error) {
	switch k {
	case KindIndividual:
		return &IndividualMatchBet{}, nil
	case KindFourBall:
		return &FourBallMatchBet{}, nil
	case KindAlabama:
		return &AlabamaBet{}, nil
	case KindDoDa:
		return &DoDaBet{}, nil
	case KindSkins:
		return &SkinsBet{}, nil
	case KindPutting:
		return &PuttingLedgerBet{}, nil
	case KindCircus:
		return &CircusBet{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, k)
	}
}
