package archive

import (
	"fmt"
	"sort"
	"strings"
)

// FileType identifies one class of archive product. Each type lives in its
// own folder tree on the archive and has its own filename convention.
type FileType string

const (
	TypeImage FileType = "image" // raw DMS camera frames
	TypeOrtho FileType = "ortho" // DMS orthorectified imagery
	TypeDEM   FileType = "dem"   // photogrammetric DEMs
	TypeLVIS  FileType = "lvis"  // LVIS lidar granules
	TypeATM1  FileType = "atm1"  // ATM qfit lidar
	TypeATM2  FileType = "atm2"  // ATM HDF5 lidar
)

// TypeLidar is a pseudo-type that resolves to whichever of the lidar
// sources has data for the requested date.
const TypeLidar FileType = "lidar"

// LidarTypes lists the concrete lidar sources in probe order.
var LidarTypes = []FileType{TypeLVIS, TypeATM1, TypeATM2}

// ParseFileType validates a user-supplied type string. The pseudo-type
// "lidar" is accepted and must be resolved before building URLs.
func ParseFileType(s string) (FileType, error) {
	switch t := FileType(strings.ToLower(s)); t {
	case TypeImage, TypeOrtho, TypeDEM, TypeLVIS, TypeATM1, TypeATM2, TypeLidar:
		return t, nil
	default:
		return "", fmt.Errorf("unknown file type %q (expected image, ortho, dem, or lidar)", s)
	}
}

// IsLidar reports whether t is one of the concrete lidar sources.
func (t FileType) IsLidar() bool {
	for _, lt := range LidarTypes {
		if t == lt {
			return true
		}
	}
	return false
}

// HasSidecar reports whether files of this type carry an .xml metadata
// sidecar that must be fetched alongside the data file.
func (t FileType) HasSidecar() bool {
	return t == TypeOrtho || t.IsLidar()
}

// NeedsSite reports whether the folder URL for this type requires a site
// code (AN or GR).
func (t FileType) NeedsSite() bool {
	return t == TypeImage
}

// Entry is one row of the frame table.
type Entry struct {
	Frame int
	Name  string
}

// FrameIndex is the reconciled frame number to filename table for one
// archive folder.
type FrameIndex struct {
	Type  FileType
	Files map[int]string
}

// NewFrameIndex returns an empty table for the given type.
func NewFrameIndex(t FileType) *FrameIndex {
	return &FrameIndex{Type: t, Files: make(map[int]string)}
}

// Frames returns all frame numbers in ascending order.
func (fi *FrameIndex) Frames() []int {
	frames := make([]int, 0, len(fi.Files))
	for f := range fi.Files {
		frames = append(frames, f)
	}
	sort.Ints(frames)
	return frames
}

// Bounds returns the smallest and largest frame in the table. ok is false
// for an empty table.
func (fi *FrameIndex) Bounds() (first, last int, ok bool) {
	for f := range fi.Files {
		if !ok {
			first, last, ok = f, f, true
			continue
		}
		if f < first {
			first = f
		}
		if f > last {
			last = f
		}
	}
	return first, last, ok
}
