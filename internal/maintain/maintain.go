package maintain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gsmonitor/internal/logging"
	"gsmonitor/internal/settings"
)

const (
	// maxLogAge is the pruning threshold for aged log files.
	maxLogAge = 7 * 24 * time.Hour

	// diskWarnPercent is the usage level above which a warning is logged.
	diskWarnPercent = 90.0

	logSuffix = ".log"
)

// Maintainer prunes aged log files and reports disk usage.
type Maintainer struct {
	logDir string
	logger logging.Logger
	now    func() time.Time
}

// New creates a maintainer operating on logDir.
func New(logDir string, logger logging.Logger) *Maintainer {
	return &Maintainer{logDir: logDir, logger: logger, now: time.Now}
}

// Run performs one maintenance pass: log pruning, disk reporting, then the
// service health stub. A disabled gate logs a single line and skips the rest,
// completion line included. Filesystem errors propagate; the caller treats
// them as fatal.
func (m *Maintainer) Run(s settings.Settings) error {
	if !s.MaintenanceEnabled {
		m.logger.Infof("Maintenance is disabled in configuration")
		return nil
	}

	m.logger.Infof("Performing maintenance tasks...")

	if _, err := m.PruneLogs(maxLogAge); err != nil {
		return err
	}
	if err := m.ReportDiskUsage("/"); err != nil {
		return err
	}
	m.checkServiceHealth()

	m.logger.Infof("Maintenance tasks completed")
	return nil
}

// PruneLogs deletes .log files in the log directory whose modification time
// is strictly older than maxAge, logging each deletion. Files without the
// log suffix are never touched. It returns the deleted paths.
func (m *Maintainer) PruneLogs(maxAge time.Duration) ([]string, error) {
	entries, err := os.ReadDir(m.logDir)
	if err != nil {
		return nil, fmt.Errorf("list log directory: %w", err)
	}

	cutoff := m.now().Add(-maxAge)
	var deleted []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), logSuffix) {
			continue
		}
		path := filepath.Join(m.logDir, e.Name())
		info, err := e.Info()
		if err != nil {
			return deleted, fmt.Errorf("stat %s: %w", path, err)
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil {
			return deleted, fmt.Errorf("delete %s: %w", path, err)
		}
		m.logger.Infof("Deleted old log file: %s", path)
		deleted = append(deleted, path)
	}
	return deleted, nil
}

// ReportDiskUsage logs usage for the filesystem holding path and warns above
// the threshold.
func (m *Maintainer) ReportDiskUsage(path string) error {
	usage, err := DiskUsage(path)
	if err != nil {
		return fmt.Errorf("query disk usage: %w", err)
	}

	percent := usage.PercentUsed()
	m.logger.Infof("Disk usage: %.2f%% (%d bytes free)", percent, usage.Free)
	if percent > diskWarnPercent {
		m.logger.Warnf("High disk usage detected: %.2f%%", percent)
	}
	return nil
}

// checkServiceHealth is the placeholder for future service-restart logic.
func (m *Maintainer) checkServiceHealth() {
	m.logger.Infof("Service health check completed")
}
