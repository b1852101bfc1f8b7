package fetcher

import (
	"fmt"
	"strconv"

	"github.com/chrisVisazure/StereoPipeline/internal/archive"
)

// Job describes one flight fetch: a date, site and product type plus the
// frame range and destination. The yaml tags serve the batch flight list.
type Job struct {
	Year     int    `yaml:"year"`
	Month    int    `yaml:"month"`
	Day      int    `yaml:"day"`
	YYYYMMDD string `yaml:"yyyymmdd"`
	Site     string `yaml:"site"`
	Type     string `yaml:"type"`

	StartFrame int  `yaml:"start_frame"`
	StopFrame  int  `yaml:"stop_frame"`
	AllFrames  bool `yaml:"all_frames"`

	OutputDir string `yaml:"output"`

	DryRun       bool `yaml:"-"`
	RefetchIndex bool `yaml:"-"`
	RequireAll   bool `yaml:"-"`

	// Progress, when set, receives download counts for display.
	Progress func(done, total int) `yaml:"-"`

	fileType archive.FileType
}

// FileType returns the parsed product type. Only valid after Validate.
func (j *Job) FileType() archive.FileType {
	return j.fileType
}

// Validate normalizes the job in place: the unified yyyymmdd date is split,
// the type string is parsed, and the frame range is completed. It mirrors
// the CLI's own argument checking so batch entries get the same errors.
func (j *Job) Validate() error {
	if j.YYYYMMDD != "" {
		if len(j.YYYYMMDD) != 8 {
			return fmt.Errorf("bad yyyymmdd value %q", j.YYYYMMDD)
		}
		year, errY := strconv.Atoi(j.YYYYMMDD[0:4])
		month, errM := strconv.Atoi(j.YYYYMMDD[4:6])
		day, errD := strconv.Atoi(j.YYYYMMDD[6:8])
		if errY != nil || errM != nil || errD != nil {
			return fmt.Errorf("bad yyyymmdd value %q", j.YYYYMMDD)
		}
		j.Year, j.Month, j.Day = year, month, day
	}
	if j.Year == 0 || j.Month == 0 || j.Day == 0 {
		return fmt.Errorf("year, month, and day must be provided")
	}
	if j.OutputDir == "" {
		return fmt.Errorf("output folder must be provided")
	}

	if j.Type == "" {
		j.Type = string(archive.TypeImage)
	}
	fileType, err := archive.ParseFileType(j.Type)
	if err != nil {
		return err
	}
	j.fileType = fileType

	if fileType.NeedsSite() && j.Site != "AN" && j.Site != "GR" {
		return fmt.Errorf("site must be AN or GR for %s files", fileType)
	}

	// Lidar granules are few and cover the whole flight, always take all.
	if fileType == archive.TypeLidar {
		j.AllFrames = true
	}
	if !j.AllFrames {
		if j.StartFrame == 0 {
			return fmt.Errorf("either a start frame or all-frames must be given")
		}
		if j.StopFrame == 0 {
			j.StopFrame = j.StartFrame
		}
		if j.StopFrame < j.StartFrame {
			return fmt.Errorf("stop frame %d is before start frame %d", j.StopFrame, j.StartFrame)
		}
	}
	return nil
}

// Label is a short human-readable description for progress display.
func (j *Job) Label() string {
	site := j.Site
	if site == "" {
		site = "--"
	}
	return fmt.Sprintf("%04d-%02d-%02d %s %s", j.Year, j.Month, j.Day, site, j.Type)
}
