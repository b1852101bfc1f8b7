package archive

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chrisVisazure/StereoPipeline/internal/utils"
)

const sampleListing = `<html><body>
<h1>Index of /ICEBRIDGE/IODMS1B.001/2010.11.16</h1>
<table>
<tr><td><a href="../">Parent Directory</a></td></tr>
<tr><td><a href="DMS_1381721_04474_20101116_14199922.tif">DMS_1381721_04474_20101116_14199922.tif</a></td><td>12M</td></tr>
<tr><td><a href="DMS_1381721_04474_20101116_14199922.tif.xml">DMS_1381721_04474_20101116_14199922.tif.xml</a></td><td>9.1K</td></tr>
<tr><td><a href="DMS_1381721_04475_20101116_14199974.tif">DMS_1381721_04475_20101116_14199974.tif</a></td><td>12M</td></tr>
<tr><td><a href="index.html">index.html</a></td></tr>
</table>
</body></html>`

func TestParseListing(t *testing.T) {
	files, err := ParseListing(strings.NewReader(sampleListing), TypeOrtho)
	if err != nil {
		t.Fatalf("ParseListing error: %v", err)
	}
	want := []string{
		"DMS_1381721_04474_20101116_14199922.tif",
		"DMS_1381721_04475_20101116_14199974.tif",
	}
	if len(files) != len(want) {
		t.Fatalf("got %d files %v, want %d", len(files), files, len(want))
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestParseListingAnchorTextOnly(t *testing.T) {
	// Some listing generations put the name only in the anchor text.
	listing := `<html><body><a href="/download?id=77">2009_10_16_00150.JPG</a></body></html>`
	files, err := ParseListing(strings.NewReader(listing), TypeImage)
	if err != nil {
		t.Fatalf("ParseListing error: %v", err)
	}
	if len(files) != 1 || files[0] != "2009_10_16_00150.JPG" {
		t.Fatalf("got %v, want the anchor-text filename", files)
	}
}

func TestBuildIndex(t *testing.T) {
	files := []string{
		"DMS_1381721_04474_20101116_14199922.tif",
		"DMS_1381721_04475_20101116_14199974.tif",
	}
	index := BuildIndex(files, TypeOrtho)
	if len(index.Files) != 2 {
		t.Fatalf("got %d entries, want 2", len(index.Files))
	}
	if index.Files[4474] != files[0] {
		t.Errorf("frame 4474 = %q, want %q", index.Files[4474], files[0])
	}
	first, last, ok := index.Bounds()
	if !ok || first != 4474 || last != 4475 {
		t.Errorf("Bounds() = %d, %d, %v, want 4474, 4475, true", first, last, ok)
	}
}

func TestIndexCSVRoundTrip(t *testing.T) {
	index := NewFrameIndex(TypeImage)
	index.Files[150] = "2009_10_16_00150.JPG"
	index.Files[149] = "2009_10_16_00149.JPG"

	csvPath := filepath.Join(t.TempDir(), "image_index.html.csv")
	if err := index.WriteCSV(csvPath); err != nil {
		t.Fatalf("WriteCSV error: %v", err)
	}
	loaded, err := ReadCSV(csvPath, TypeImage)
	if err != nil {
		t.Fatalf("ReadCSV error: %v", err)
	}
	if len(loaded.Files) != 2 {
		t.Fatalf("got %d entries, want 2", len(loaded.Files))
	}
	if loaded.Files[149] != "2009_10_16_00149.JPG" {
		t.Errorf("frame 149 = %q after round trip", loaded.Files[149])
	}
	frames := loaded.Frames()
	if frames[0] != 149 || frames[1] != 150 {
		t.Errorf("Frames() = %v, want ascending order", frames)
	}
}

func TestFetchIndex(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleListing))
	}))
	defer ts.Close()

	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "ortho_index.html")
	csvPath := htmlPath + ".csv"
	client := utils.NewClient(utils.HTTPClientConfig{}, nil, nil)

	index, err := FetchIndex(client, ts.URL, htmlPath, csvPath, TypeOrtho)
	if err != nil {
		t.Fatalf("FetchIndex error: %v", err)
	}
	if len(index.Files) != 2 {
		t.Fatalf("got %d entries, want 2", len(index.Files))
	}
	if !strings.Contains(index.Files[4475], "04475") {
		t.Errorf("frame 4475 = %q", index.Files[4475])
	}
	// Both the raw HTML and the parsed table must be on disk.
	if _, err := os.Stat(htmlPath); err != nil {
		t.Errorf("index HTML not saved: %v", err)
	}
	loaded, err := ReadCSV(csvPath, TypeOrtho)
	if err != nil {
		t.Fatalf("ReadCSV error: %v", err)
	}
	if len(loaded.Files) != 2 {
		t.Errorf("persisted table has %d entries, want 2", len(loaded.Files))
	}
}

func TestFetchIndexError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	dir := t.TempDir()
	client := utils.NewClient(utils.HTTPClientConfig{}, nil, nil)
	_, err := FetchIndex(client, ts.URL, filepath.Join(dir, "i.html"), filepath.Join(dir, "i.csv"), TypeImage)
	if err == nil {
		t.Fatal("expected error for 404 index")
	}
}
