package archive

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"github.com/chrisVisazure/StereoPipeline/internal/utils"
)

// ParseListing walks an HTML directory listing and returns the data
// filenames matching the given type, in listing order. Both anchor hrefs and
// anchor text are considered since the archive has served both layouts over
// the years.
func ParseListing(r io.Reader, fileType FileType) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML listing: %v", err)
	}
	seen := make(map[string]bool)
	var files []string
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" || !MatchesType(name, fileType) || seen[name] {
			return
		}
		seen[name] = true
		files = append(files, name)
	}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				href := attr.Val
				if unescaped, err := url.PathUnescape(href); err == nil {
					href = unescaped
				}
				add(path.Base(href))
			}
			add(anchorText(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return files, nil
}

func anchorText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(anchorText(c))
	}
	return sb.String()
}

// BuildIndex maps each filename to its frame number. Names whose frame
// cannot be derived are skipped with a warning; a later duplicate frame
// replaces an earlier one, matching the archive convention that reprocessed
// files sort last.
func BuildIndex(files []string, fileType FileType) *FrameIndex {
	logger := log.With().Str("op", "archive/index").Logger()
	index := NewFrameIndex(fileType)
	for _, name := range files {
		frame, err := FrameNumber(name, fileType)
		if err != nil {
			logger.Warn().Msgf("Skipping unparseable listing entry: %v", err)
			continue
		}
		index.Files[frame] = name
	}
	return index
}

// WriteCSV persists the frame table as "frame, filename" lines.
func (fi *FrameIndex) WriteCSV(csvPath string) error {
	f, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("error creating index table %s: %v", csvPath, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, frame := range fi.Frames() {
		fmt.Fprintf(w, "%d, %s\n", frame, fi.Files[frame])
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("error writing index table %s: %v", csvPath, err)
	}
	return nil
}

// ReadCSV loads a previously persisted frame table.
func ReadCSV(csvPath string, fileType FileType) (*FrameIndex, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("error opening index table %s: %v", csvPath, err)
	}
	defer f.Close()
	index := NewFrameIndex(fileType)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed index table line %q in %s", line, csvPath)
		}
		frame, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("bad frame number in %s: %v", csvPath, err)
		}
		index.Files[frame] = strings.TrimSpace(parts[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading index table %s: %v", csvPath, err)
	}
	return index, nil
}

// FetchIndex downloads the folder's HTML index to htmlPath, extracts the
// frame table and persists it to csvPath.
func FetchIndex(client utils.HTTPDoer, folderURL, htmlPath, csvPath string, fileType FileType) (*FrameIndex, error) {
	logger := log.With().Str("op", "archive/index").Logger()
	req, err := http.NewRequest("GET", folderURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating GET request: %v", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching index %s: %v", folderURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("index fetch for %s returned status %d", folderURL, resp.StatusCode)
	}

	f, err := os.Create(htmlPath)
	if err != nil {
		return nil, fmt.Errorf("error creating index file %s: %v", htmlPath, err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return nil, fmt.Errorf("error saving index file %s: %v", htmlPath, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("error closing index file %s: %v", htmlPath, err)
	}

	logger.Info().Msgf("Extracting file names from %s", htmlPath)
	saved, err := os.Open(htmlPath)
	if err != nil {
		return nil, fmt.Errorf("error reopening index file %s: %v", htmlPath, err)
	}
	defer saved.Close()
	files, err := ParseListing(saved, fileType)
	if err != nil {
		return nil, err
	}
	index := BuildIndex(files, fileType)
	if err := index.WriteCSV(csvPath); err != nil {
		return nil, err
	}
	logger.Info().Msgf("Indexed %d %s files from %s", len(index.Files), fileType, folderURL)
	return index, nil
}
