//go:build windows

package maintain

import (
	"golang.org/x/sys/windows"

	"gsmonitor/internal/models"
)

// DiskUsage reports filesystem statistics via GetDiskFreeSpaceEx. Free space
// is the byte count available to the calling user.
func DiskUsage(path string) (models.DiskUsage, error) {
	dir, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return models.DiskUsage{}, err
	}

	var free, total, totalFree uint64
	if err := windows.GetDiskFreeSpaceEx(dir, &free, &total, &totalFree); err != nil {
		return models.DiskUsage{}, err
	}
	return models.DiskUsage{
		Total: total,
		Used:  total - free,
		Free:  free,
	}, nil
}
