package swcio

import (
	"fmt"
	"os"
)

// ExportFile writes data to the file at path, creating it with 0644
// permissions and overwriting any existing content.
func ExportFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
