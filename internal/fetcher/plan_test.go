package fetcher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chrisVisazure/StereoPipeline/internal/archive"
)

func orthoIndex() *archive.FrameIndex {
	index := archive.NewFrameIndex(archive.TypeOrtho)
	index.Files[4474] = "DMS_1381721_04474_20101116_14199922.tif"
	index.Files[4475] = "DMS_1381721_04475_20101116_14199974.tif"
	index.Files[4480] = "DMS_1381721_04480_20101116_14200101.tif"
	return index
}

func TestBuildPlanRangeAndSidecars(t *testing.T) {
	dir := t.TempDir()
	plan := BuildPlan(orthoIndex(), "https://archive/folder", dir, 4474, 4475, false)

	// Two frames in range, each with an .xml sidecar.
	if len(plan.Required) != 4 {
		t.Fatalf("got %d required files, want 4: %v", len(plan.Required), plan.Required)
	}
	if len(plan.Missing) != 4 {
		t.Fatalf("got %d missing files, want 4", len(plan.Missing))
	}
	wantURL := "https://archive/folder/DMS_1381721_04474_20101116_14199922.tif"
	if plan.Missing[0].URL != wantURL {
		t.Errorf("first item URL = %q, want %q", plan.Missing[0].URL, wantURL)
	}
	if filepath.Base(plan.Missing[1].OutputPath) != "DMS_1381721_04474_20101116_14199922.tif.xml" {
		t.Errorf("sidecar not planned after data file: %v", plan.Missing[1])
	}
}

func TestBuildPlanSkipsExisting(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "DMS_1381721_04474_20101116_14199922.tif")
	if err := os.WriteFile(existing, []byte("present"), 0644); err != nil {
		t.Fatalf("writing existing file: %v", err)
	}
	plan := BuildPlan(orthoIndex(), "https://archive/folder", dir, 4474, 4474, false)
	if len(plan.Required) != 2 {
		t.Fatalf("got %d required files, want 2", len(plan.Required))
	}
	if len(plan.Missing) != 1 {
		t.Fatalf("got %d missing files, want just the sidecar: %v", len(plan.Missing), plan.Missing)
	}
	if filepath.Ext(plan.Missing[0].Name) != ".xml" {
		t.Errorf("missing item should be the sidecar, got %s", plan.Missing[0].Name)
	}
}

func TestBuildPlanEmptyFileCountsAsMissing(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "DMS_1381721_04474_20101116_14199922.tif")
	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatalf("writing empty file: %v", err)
	}
	plan := BuildPlan(orthoIndex(), "https://archive/folder", dir, 4474, 4474, false)
	if len(plan.Missing) != 2 {
		t.Fatalf("zero-length file should be refetched, missing = %v", plan.Missing)
	}
}

func TestBuildPlanStrictWipesInvalidImage(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "DMS_1381721_04474_20101116_14199922.tif")
	if err := os.WriteFile(bad, []byte("this is not a TIFF"), 0644); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}
	plan := BuildPlan(orthoIndex(), "https://archive/folder", dir, 4474, 4474, true)
	if _, err := os.Stat(bad); !os.IsNotExist(err) {
		t.Error("corrupt image should have been wiped in strict mode")
	}
	if len(plan.Missing) != 2 {
		t.Fatalf("wiped file should be planned again, missing = %v", plan.Missing)
	}
}
