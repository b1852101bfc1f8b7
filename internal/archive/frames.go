package archive

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
)

// Per-type filename patterns. Listings mix data files with checksums,
// sidecars and navigation links, so only exact matches are kept.
var typePatterns = map[FileType]*regexp.Regexp{
	TypeImage: regexp.MustCompile(`(?i)^[0-9_]+\.JPG$`),
	TypeOrtho: regexp.MustCompile(`(?i)^DMS\w*\.tif$`),
	TypeDEM:   regexp.MustCompile(`(?i)^IODMS\w*DEM\.tif$`),
	TypeLVIS:  regexp.MustCompile(`(?i)^ILVIS\w+\.TXT$`),
	TypeATM1:  regexp.MustCompile(`(?i)^ILATM1B[0-9_]+\.ATM\w+\.qi$`),
	TypeATM2:  regexp.MustCompile(`(?i)^ILATM1B[0-9_]+\.ATM\w+\.h5$`),
}

// MatchesType reports whether name looks like a data file of the given type.
func MatchesType(name string, fileType FileType) bool {
	re, ok := typePatterns[fileType]
	if !ok {
		return false
	}
	return re.MatchString(name)
}

// FrameNumber derives the frame number encoded in an archive filename.
//
// Raw images and LVIS granules carry the frame as the last numeric token,
// e.g. 2009_10_16_02202.JPG or ILVIS2_AQ2011_1020_R1203_049752.TXT. Ortho
// files put it third, e.g. DMS_1381721_04474_20101116_14199922.tif. DEMs
// keep it just before the DEM marker, e.g.
// IODMS3_20091016_17534868_02202_DEM.tif. ATM granules have no per-shot
// frame, so the HHMMSS timestamp stands in for one, e.g.
// ILATM1B_20111018_145455.ATM4BT4.qi.
func FrameNumber(name string, fileType FileType) (int, error) {
	base := path.Base(name)
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	tokens := strings.Split(base, "_")

	switch fileType {
	case TypeOrtho:
		if len(tokens) < 3 {
			return 0, fmt.Errorf("cannot find frame number in %q", name)
		}
		return parseFrameToken(name, tokens[2])
	case TypeDEM:
		last := tokens[len(tokens)-1]
		if strings.EqualFold(last, "DEM") && len(tokens) > 1 {
			return parseFrameToken(name, tokens[len(tokens)-2])
		}
		// Marker may be glued to the frame token.
		if n := strings.TrimSuffix(strings.TrimSuffix(last, "DEM"), "dem"); isDigits(n) {
			return parseFrameToken(name, n)
		}
		return 0, fmt.Errorf("cannot find frame number in %q", name)
	default:
		for i := len(tokens) - 1; i >= 0; i-- {
			if isDigits(tokens[i]) {
				return parseFrameToken(name, tokens[i])
			}
		}
		return 0, fmt.Errorf("cannot find frame number in %q", name)
	}
}

func parseFrameToken(name, token string) (int, error) {
	frame, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("bad frame token %q in %q: %v", token, name, err)
	}
	return frame, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
