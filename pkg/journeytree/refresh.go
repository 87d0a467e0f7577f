package journeytree

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/zugtrip/zug/pkg/journey"
)

// Refresh fetches current realtime data for one selected journey per hop. An empty token
// stands for an unselected hop and yields the unselected sentinel; a failed refresh yields an
// error block so the caller still gets one sequence per hop.
func (b *Builder) Refresh(ctx context.Context, refreshTokens []string) [][]journey.Block {
	refreshed := make([][]journey.Block, len(refreshTokens))

	p := pool.New().WithMaxGoroutines(max(b.MaxGoroutines, 1))

	for i, token := range refreshTokens {
		if token == "" {
			refreshed[i] = journey.UnselectedBlocks()
			continue
		}

		p.Go(func() {
			itinerary, err := b.Source.RefreshJourney(ctx, token)
			if err != nil {
				log.Warn().Err(err).Int("hop", i).Msg("Failed to refresh journey")
				refreshed[i] = []journey.Block{journey.NewErrorBlock()}
				return
			}

			refreshed[i] = journey.ToBlocks(itinerary)
		})
	}

	p.Wait()

	return refreshed
}
