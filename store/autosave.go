package store

import (
	"context"

	"github.com/etnz/younginvestor"
	"github.com/rs/zerolog"
)

// Autosave returns a game subscriber that writes every snapshot to slot.
// Failures are logged, never returned: the game state stays authoritative.
func Autosave(ctx context.Context, s Store, slot string, log zerolog.Logger) func(younginvestor.Snapshot) {
	log = log.With().Str("component", "autosave").Str("slot", slot).Logger()
	return func(snap younginvestor.Snapshot) {
		if err := s.Save(ctx, slot, snap); err != nil {
			log.Error().Err(err).Msg("failed to save game")
			return
		}
		log.Debug().Int("turn", snap.Turn).Str("cash", snap.Cash.String()).Msg("game saved")
	}
}
