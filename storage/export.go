package storage

import "time"

// ExportFileName returns the default file name for a technology-list
// export.
func ExportFileName(now time.Time) string {
	return "technology-roadmap-" + now.Format("2006-01-02") + ".json"
}

// BackupFileName returns the default file name for a full-state export.
func BackupFileName(now time.Time) string {
	return "roadmap-backup-" + now.Format("2006-01-02") + ".json"
}
