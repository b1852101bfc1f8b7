package fetcher

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg" // JPEG decoder registration

	_ "golang.org/x/image/tiff" // TIFF decoder registration
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
}

// HasImageExtension reports whether path names a raster product that can be
// validated by decoding.
func HasImageExtension(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsValidImage fully decodes the file. A transfer killed mid-file leaves a
// truncated image that decodes partially at best, so a header check is not
// enough.
func IsValidImage(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	_, _, err = image.Decode(f)
	return err == nil
}
