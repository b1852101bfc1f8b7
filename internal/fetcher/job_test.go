package fetcher

import (
	"testing"

	"github.com/chrisVisazure/StereoPipeline/internal/archive"
)

func TestJobValidateUnifiedDate(t *testing.T) {
	job := Job{YYYYMMDD: "20091016", Site: "GR", Type: "image", StartFrame: 100, OutputDir: "out"}
	if err := job.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if job.Year != 2009 || job.Month != 10 || job.Day != 16 {
		t.Errorf("date = %d-%d-%d, want 2009-10-16", job.Year, job.Month, job.Day)
	}
	if job.StopFrame != 100 {
		t.Errorf("stop frame should default to start frame, got %d", job.StopFrame)
	}
	if job.FileType() != archive.TypeImage {
		t.Errorf("file type = %s, want image", job.FileType())
	}
}

func TestJobValidateErrors(t *testing.T) {
	cases := []struct {
		name string
		job  Job
	}{
		{"missing date", Job{Site: "GR", StartFrame: 1, OutputDir: "out"}},
		{"bad yyyymmdd", Job{YYYYMMDD: "200910", Site: "GR", StartFrame: 1, OutputDir: "out"}},
		{"missing output", Job{YYYYMMDD: "20091016", Site: "GR", StartFrame: 1}},
		{"bad site for images", Job{YYYYMMDD: "20091016", Site: "XX", StartFrame: 1, OutputDir: "out"}},
		{"missing site for images", Job{YYYYMMDD: "20091016", StartFrame: 1, OutputDir: "out"}},
		{"unknown type", Job{YYYYMMDD: "20091016", Type: "sonar", StartFrame: 1, OutputDir: "out"}},
		{"no range", Job{YYYYMMDD: "20091016", Site: "GR", OutputDir: "out"}},
		{"inverted range", Job{YYYYMMDD: "20091016", Site: "GR", StartFrame: 5, StopFrame: 2, OutputDir: "out"}},
	}
	for _, c := range cases {
		if err := c.job.Validate(); err == nil {
			t.Errorf("%s: expected validation error", c.name)
		}
	}
}

func TestJobValidateNoSiteForOrtho(t *testing.T) {
	job := Job{YYYYMMDD: "20101116", Type: "ortho", StartFrame: 10, OutputDir: "out"}
	if err := job.Validate(); err != nil {
		t.Errorf("ortho should not require a site: %v", err)
	}
}

func TestJobValidateLidarForcesAllFrames(t *testing.T) {
	job := Job{YYYYMMDD: "20111018", Type: "lidar", OutputDir: "out"}
	if err := job.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if !job.AllFrames {
		t.Error("lidar jobs should always take all frames")
	}
}
