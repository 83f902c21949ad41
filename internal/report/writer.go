package report

import (
	"fmt"
	"os"
)

// WriteFile writes the rendered report as the complete contents of the
// named file, replacing whatever was there before.
func WriteFile(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", path, err)
	}
	return nil
}
