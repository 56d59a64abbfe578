package loadgen

import (
	"context"

	"github.com/google/uuid"
	"github.com/mergington/activities/pkg/logger"
)

// generateEmails creates n unique student emails.
func generateEmails(ctx context.Context, n int, stats *Stats) []string {
	emails := make([]string, n)
	for i := range emails {
		emails[i] = "student-" + uuid.NewString() + "@" + emailDomain
	}
	stats.StudentsGenerated = len(emails)
	logger.Get().Info(ctx, "generated student emails", logger.Int("count", len(emails)))
	return emails
}
