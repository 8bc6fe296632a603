//go:build unix

package maintain

import (
	"golang.org/x/sys/unix"

	"gsmonitor/internal/models"
)

// DiskUsage reports filesystem statistics via statfs. Free space is computed
// from the blocks still available to an unprivileged caller, so reserved
// blocks count as used.
func DiskUsage(path string) (models.DiskUsage, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return models.DiskUsage{}, err
	}

	bsize := uint64(st.Bsize)
	total := bsize * st.Blocks
	free := bsize * st.Bavail
	return models.DiskUsage{
		Total: total,
		Used:  total - free,
		Free:  free,
	}, nil
}
