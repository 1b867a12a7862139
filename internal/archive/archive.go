package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ArchiveMedia moves the generated-media directory to an archive with
// timestamp instead of deleting it. Used with --archive so committed
// card media survives outside of Anki's own collection.
func ArchiveMedia(mediaDir string) error {
	// Check if media directory exists
	if _, err := os.Stat(mediaDir); os.IsNotExist(err) {
		return fmt.Errorf("media directory does not exist: %s", mediaDir)
	}

	// Get parent directory and create archive path
	parentDir := filepath.Dir(mediaDir)
	archiveDir := filepath.Join(parentDir, "archive")

	// Create archive directory if it doesn't exist
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	// Generate timestamp
	timestamp := time.Now().Format("20060102-150405")
	archiveName := fmt.Sprintf("media-%s", timestamp)
	archivePath := filepath.Join(archiveDir, archiveName)

	// Check if archive already exists (unlikely but possible)
	if _, err := os.Stat(archivePath); err == nil {
		// Add microseconds to make it unique
		timestamp = time.Now().Format("20060102-150405.000000")
		archiveName = fmt.Sprintf("media-%s", timestamp)
		archivePath = filepath.Join(archiveDir, archiveName)
	}

	// Rename media directory to archive
	if err := os.Rename(mediaDir, archivePath); err != nil {
		return fmt.Errorf("failed to archive media directory: %w", err)
	}

	fmt.Printf("Media directory archived to: %s\n", archivePath)
	return nil
}
