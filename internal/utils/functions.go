package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func GetRandomUserAgent() string {
	return userAgents[time.Now().UnixNano()%int64(len(userAgents))]
}

// FileExists reports whether path exists with non-zero size. Zero-length
// files count as missing since an interrupted transfer can leave them
// behind.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}

func ParseHeaderArgs(headers []string) map[string]string {
	result := make(map[string]string)
	for _, header := range headers {
		parts := strings.SplitN(header, ":", 2)
		if len(parts) == 2 {
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])
			result[key] = value
		}
	}
	return result
}

func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func FormatSpeed(bytes int64, elapsed float64) string {
	if elapsed == 0 {
		return "0 B/s"
	}
	bps := float64(bytes) / elapsed
	return fmt.Sprintf("%s/s", FormatBytes(uint64(bps)))
}

// CleanTemp removes the hidden temp directory under dir, left behind by an
// interrupted run.
func CleanTemp(dir string) error {
	tempDir := filepath.Join(dir, TempDirName)
	if err := os.RemoveAll(tempDir); err != nil {
		return fmt.Errorf("error removing temp directory %s: %v", tempDir, err)
	}
	return nil
}
