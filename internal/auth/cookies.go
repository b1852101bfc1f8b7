package auth

import (
	"bufio"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// CookieJarPath returns the conventional location of the Earthdata session
// cookie file shared with curl.
func CookieJarPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error locating home directory: %v", err)
	}
	return filepath.Join(home, ".urs_cookies"), nil
}

type cookieEntry struct {
	Domain     string
	IncludeSub bool
	Path       string
	Secure     bool
	Expires    int64 // unix seconds, 0 for session cookies
	Name       string
	Value      string
}

// FileJar is an http.CookieJar backed by a Netscape-format cookie file, the
// same format curl reads and writes. Session state therefore survives across
// runs and remains interchangeable with curl-driven workflows.
type FileJar struct {
	mu      sync.Mutex
	path    string
	entries map[string]cookieEntry // keyed by domain \t path \t name
}

// OpenFileJar loads the cookie file at path. A missing file yields an empty
// jar; Save creates it.
func OpenFileJar(path string) (*FileJar, error) {
	jar := &FileJar{path: path, entries: make(map[string]cookieEntry)}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return jar, nil
		}
		return nil, fmt.Errorf("error opening cookie file %s: %v", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		httpOnly := strings.HasPrefix(line, "#HttpOnly_")
		if httpOnly {
			line = strings.TrimPrefix(line, "#HttpOnly_")
		} else if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 7 {
			continue
		}
		expires, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			continue
		}
		entry := cookieEntry{
			Domain:     strings.TrimPrefix(fields[0], "."),
			IncludeSub: strings.EqualFold(fields[1], "TRUE"),
			Path:       fields[2],
			Secure:     strings.EqualFold(fields[3], "TRUE"),
			Expires:    expires,
			Name:       fields[5],
			Value:      fields[6],
		}
		jar.entries[entry.key()] = entry
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading cookie file %s: %v", path, err)
	}
	return jar, nil
}

func (e cookieEntry) key() string {
	return e.Domain + "\t" + e.Path + "\t" + e.Name
}

func (e cookieEntry) expired(now time.Time) bool {
	return e.Expires != 0 && e.Expires < now.Unix()
}

func (e cookieEntry) matches(u *url.URL) bool {
	host := u.Hostname()
	if e.Secure && u.Scheme != "https" {
		return false
	}
	if host != e.Domain {
		if !e.IncludeSub || !strings.HasSuffix(host, "."+e.Domain) {
			return false
		}
	}
	p := u.Path
	if p == "" {
		p = "/"
	}
	return p == e.Path || strings.HasPrefix(p, strings.TrimSuffix(e.Path, "/")+"/")
}

// SetCookies implements http.CookieJar.
func (j *FileJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, c := range cookies {
		if c.Name == "" {
			continue
		}
		domain := strings.TrimPrefix(c.Domain, ".")
		includeSub := c.Domain != ""
		if domain == "" {
			domain = u.Hostname()
		}
		cookiePath := c.Path
		if cookiePath == "" {
			cookiePath = "/"
		}
		entry := cookieEntry{
			Domain:     domain,
			IncludeSub: includeSub,
			Path:       cookiePath,
			Secure:     c.Secure,
			Name:       c.Name,
			Value:      c.Value,
		}
		if !c.Expires.IsZero() {
			entry.Expires = c.Expires.Unix()
		} else if c.MaxAge > 0 {
			entry.Expires = time.Now().Add(time.Duration(c.MaxAge) * time.Second).Unix()
		}
		if c.MaxAge < 0 || entry.expired(time.Now()) {
			delete(j.entries, entry.key())
			continue
		}
		j.entries[entry.key()] = entry
	}
}

// Cookies implements http.CookieJar.
func (j *FileJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	now := time.Now()
	var keys []string
	for k, e := range j.entries {
		if !e.expired(now) && e.matches(u) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	cookies := make([]*http.Cookie, 0, len(keys))
	for _, k := range keys {
		e := j.entries[k]
		cookies = append(cookies, &http.Cookie{Name: e.Name, Value: e.Value})
	}
	return cookies
}

// Save writes the jar back to its file in Netscape format, dropping expired
// entries. The file is written with owner-only permissions since it holds
// session tokens.
func (j *FileJar) Save() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	var keys []string
	now := time.Now()
	for k, e := range j.entries {
		if !e.expired(now) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("# Netscape HTTP Cookie File\n")
	sb.WriteString("# This file was generated by icefetch. Edits may be lost.\n\n")
	for _, k := range keys {
		e := j.entries[k]
		domain := e.Domain
		includeSub := "FALSE"
		if e.IncludeSub {
			domain = "." + domain
			includeSub = "TRUE"
		}
		secure := "FALSE"
		if e.Secure {
			secure = "TRUE"
		}
		fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			domain, includeSub, e.Path, secure, e.Expires, e.Name, e.Value)
	}
	if err := os.WriteFile(j.path, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("error writing cookie file %s: %v", j.path, err)
	}
	return nil
}
