package session

import "context"

// CardSource is the slice of the progress-store API the queue builder
// needs. *api.Client satisfies it.
type CardSource interface {
	// DueCards returns the cards whose next review date has arrived.
	DueCards(ctx context.Context, setID int) ([]Card, error)
	// Cards returns the full card list for a set, without scheduling state.
	Cards(ctx context.Context, setID int) ([]Card, error)
	// ResetProgress clears the server-side study progress for a set.
	ResetProgress(ctx context.Context, setID int) error
}

// LoadQueue builds the card queue for a session according to the resume
// mode.
//
// Continue mode requests due cards and, when the due list is empty, falls
// back to the full card list. Restart mode resets server progress first
// and always loads the full list. Fetch failures degrade to an empty
// queue so the caller reaches the "nothing to study" terminal state
// instead of crashing; only the reset, a mutation, surfaces its error.
func LoadQueue(ctx context.Context, src CardSource, setID int, mode Mode) ([]Card, error) {
	if mode == ModeRestart {
		if err := src.ResetProgress(ctx, setID); err != nil {
			return nil, err
		}
		return fullList(ctx, src, setID), nil
	}

	due, err := src.DueCards(ctx, setID)
	if err == nil && len(due) > 0 {
		return due, nil
	}
	// All caught up, no scheduling state yet, or the fetch failed:
	// fall back to the raw card list.
	return fullList(ctx, src, setID), nil
}

func fullList(ctx context.Context, src CardSource, setID int) []Card {
	cards, err := src.Cards(ctx, setID)
	if err != nil {
		return nil
	}
	return withDisplayDefaults(cards)
}

// withDisplayDefaults fills client-synthesized scheduling fields on raw
// cards so the queue renders consistently. The server owns the real
// values.
func withDisplayDefaults(cards []Card) []Card {
	out := make([]Card, len(cards))
	for i, c := range cards {
		if c.EaseFactor == 0 {
			c.EaseFactor = DefaultEaseFactor
		}
		if c.Interval == 0 {
			c.Interval = DefaultInterval
		}
		out[i] = c
	}
	return out
}
