package archive

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/chrisVisazure/StereoPipeline/internal/utils"
)

// BaseURL is the archive root. Variable so tests can stand in a local server.
var BaseURL = "https://n5eil01u.ecs.nsidc.org"

var typeBasePaths = map[FileType]string{
	TypeImage: "/ICEBRIDGE_FTP/IODMS0_DMSraw_v01",
	TypeOrtho: "/ICEBRIDGE/IODMS1B.001",
	TypeDEM:   "/ICEBRIDGE/IODMS3.001",
	TypeLVIS:  "/ICEBRIDGE/ILVIS2.001",
	TypeATM1:  "/ICEBRIDGE/ILATM1B.001",
	TypeATM2:  "/ICEBRIDGE/ILATM1B.002",
}

// ErrNoLidar means none of the lidar sources has a folder for the flight.
var ErrNoLidar = errors.New("no lidar data found for flight")

// YearFolder returns the per-campaign folder component. Only the raw image
// tree has this level.
func YearFolder(year int, site string) string {
	return fmt.Sprintf("%d_%s_NASA", year, site)
}

// DateFolder returns the per-flight folder component. Raw images use
// MMDDYYYY_raw, every other product uses YYYY.MM.DD.
func DateFolder(year, month, day int, fileType FileType) string {
	if fileType == TypeImage {
		return fmt.Sprintf("%02d%02d%04d_raw", month, day, year)
	}
	return fmt.Sprintf("%04d.%02d.%02d", year, month, day)
}

// FolderURL builds the full URL of the archive folder holding the files for
// one flight. fileType must be a concrete type, not the lidar pseudo-type.
func FolderURL(year, month, day int, site string, fileType FileType) (string, error) {
	basePath, ok := typeBasePaths[fileType]
	if !ok {
		return "", fmt.Errorf("no base URL for file type %q", fileType)
	}
	base := BaseURL + basePath
	if fileType == TypeImage {
		return fmt.Sprintf("%s/%s/%s", base, YearFolder(year, site), DateFolder(year, month, day, fileType)), nil
	}
	return fmt.Sprintf("%s/%s", base, DateFolder(year, month, day, fileType)), nil
}

// FolderExists probes a folder URL with a HEAD request. The archive answers
// 403 or 301 for folders that exist and 404 otherwise, so redirects must not
// be followed here.
func FolderExists(client utils.HTTPDoer, folderURL string) (bool, error) {
	req, err := http.NewRequest("HEAD", folderURL, nil)
	if err != nil {
		return false, fmt.Errorf("error creating HEAD request: %v", err)
	}
	resp, err := client.DoNoRedirect(req)
	if err != nil {
		return false, fmt.Errorf("error probing %s: %v", folderURL, err)
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusMovedPermanently, nil
}

// ResolveLidar finds the first lidar source with data for the given date and
// returns it together with its folder URL. Sources are probed in the
// LidarTypes order, LVIS before the two ATM revisions.
func ResolveLidar(client utils.HTTPDoer, year, month, day int, site string) (FileType, string, error) {
	for _, lt := range LidarTypes {
		folderURL, err := FolderURL(year, month, day, site, lt)
		if err != nil {
			return "", "", err
		}
		exists, err := FolderExists(client, folderURL)
		if err != nil {
			return "", "", err
		}
		if exists {
			return lt, folderURL, nil
		}
	}
	return "", "", fmt.Errorf("%w: %04d-%02d-%02d", ErrNoLidar, year, month, day)
}
