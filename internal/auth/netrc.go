// Package auth handles Earthdata login material: machine credentials from
// the user's netrc file and a curl-compatible persistent cookie jar.
package auth

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// URSHost is the Earthdata login host the archive redirects through.
const URSHost = "urs.earthdata.nasa.gov"

// CredentialHelpURL points at the archive's bulk-download setup
// instructions, shown when credential files are missing.
const CredentialHelpURL = "https://nsidc.org/support/faq/what-options-are-available-bulk-downloading-data-https-earthdata-login-enabled"

// Credentials is one machine entry from a netrc file.
type Credentials struct {
	Login    string
	Password string
}

// Netrc holds the parsed contents of a netrc file.
type Netrc struct {
	machines map[string]Credentials
	fallback *Credentials // "default" entry
}

// NetrcPath returns the conventional location of the user's netrc file.
func NetrcPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error locating home directory: %v", err)
	}
	return filepath.Join(home, ".netrc"), nil
}

// ParseNetrc reads a netrc file. Only the machine, default, login and
// password tokens are honored; macdef blocks are skipped.
func ParseNetrc(path string) (*Netrc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening netrc file %s: %v", path, err)
	}
	defer f.Close()

	var tokens []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		tokens = append(tokens, strings.Fields(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading netrc file %s: %v", path, err)
	}

	n := &Netrc{machines: make(map[string]Credentials)}
	var current *Credentials
	var currentName string
	flush := func() {
		if current != nil && currentName != "" {
			n.machines[currentName] = *current
		}
	}
	for i := 0; i < len(tokens); i++ {
		switch tokens[i] {
		case "machine":
			if i+1 >= len(tokens) {
				return nil, fmt.Errorf("netrc file %s: machine token without a name", path)
			}
			flush()
			i++
			currentName = tokens[i]
			current = &Credentials{}
		case "default":
			flush()
			currentName = ""
			current = &Credentials{}
			n.fallback = current
		case "login":
			if current != nil && i+1 < len(tokens) {
				i++
				current.Login = tokens[i]
			}
		case "password":
			if current != nil && i+1 < len(tokens) {
				i++
				current.Password = tokens[i]
			}
		case "macdef":
			// Macro definitions run to a blank line the token stream no
			// longer has, so everything after one is ignored.
			flush()
			return n, nil
		}
	}
	flush()
	return n, nil
}

// Lookup returns the credentials for a host, falling back to the default
// entry when present.
func (n *Netrc) Lookup(host string) (Credentials, bool) {
	if cred, ok := n.machines[host]; ok {
		return cred, ok
	}
	if n.fallback != nil {
		return *n.fallback, true
	}
	return Credentials{}, false
}
