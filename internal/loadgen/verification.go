package loadgen

import (
	"context"
	"fmt"

	"github.com/mergington/activities/pkg/logger"
)

// verifyResults checks the roster after the run against the capacity and
// uniqueness rules and against what the service acknowledged.
func verifyResults(ctx context.Context, before, after Activity, accepted []string, stats *Stats) error {
	logger.Get().Info(ctx, "verifying roster",
		logger.Int("participants", len(after.Participants)),
		logger.Int("capacity", after.MaxParticipants),
	)

	if len(after.Participants) > after.MaxParticipants {
		return fmt.Errorf("%w: %d participants for %d places",
			ErrInvariant, len(after.Participants), after.MaxParticipants)
	}

	seen := make(map[string]struct{}, len(after.Participants))
	for _, email := range after.Participants {
		if _, dup := seen[email]; dup {
			return fmt.Errorf("%w: %s enrolled twice", ErrInvariant, email)
		}
		seen[email] = struct{}{}
	}

	for _, email := range accepted {
		if _, ok := seen[email]; !ok {
			return fmt.Errorf("%w: acknowledged signup %s missing from roster", ErrInvariant, email)
		}
	}

	spots := before.MaxParticipants - len(before.Participants)
	if stats.SignupsFailed == 0 && stats.SignupsAccepted != min(spots, stats.SignupsSubmitted) {
		// Other clients may have changed the roster concurrently.
		logger.Get().Warn(ctx, "accepted signups differ from free spots",
			logger.Int("accepted", stats.SignupsAccepted),
			logger.Int("spotsBefore", spots),
		)
	}

	logger.Get().Info(ctx, "roster verification passed")
	return nil
}
