package restore

import (
	"time"

	"github.com/google/uuid"

	"gsmonitor/internal/logging"
)

// retryDelay is the fixed wait between failed restoration attempts.
const retryDelay = 5 * time.Second

// Restorer runs the bounded retry sequence triggered by a failed probe. The
// action and sleep are fields so tests can count invocations. The production
// action is a stub that always reports success; a real deployment would plug
// in endpoint-specific recovery such as service restarts or firewall checks.
type Restorer struct {
	logger logging.Logger
	action func() bool
	sleep  func(time.Duration)
}

// New creates a restorer with the stub action wired in.
func New(logger logging.Logger) *Restorer {
	return &Restorer{
		logger: logger,
		action: func() bool {
			logger.Infof("Running restoration procedures")
			return true
		},
		sleep: time.Sleep,
	}
}

// RestoreAccess attempts the restoration action up to maxRetries times with a
// fixed delay between failed attempts. It returns true on the first success
// and false once every attempt has failed. Zero or negative maxRetries fails
// the episode without a single attempt.
func (r *Restorer) RestoreAccess(maxRetries int) bool {
	episode := uuid.NewString()

	for attempt := 1; attempt <= maxRetries; attempt++ {
		r.logger.Infof("Attempt %d/%d to restore access (episode %s)", attempt, maxRetries, episode)

		if r.action() {
			r.logger.Infof("Access restored successfully")
			return true
		}
		if attempt < maxRetries {
			r.sleep(retryDelay)
		}
	}

	r.logger.Errorf("Failed to restore access after %d attempts", maxRetries)
	return false
}
