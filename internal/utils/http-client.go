package utils

import (
	"net/http"
	"time"

	"github.com/chrisVisazure/StereoPipeline/internal/auth"
)

type HTTPClientConfig struct {
	Timeout   time.Duration
	KATimeout time.Duration
	UserAgent string
	Headers   map[string]string
}

// HTTPDoer is the request surface consumers need from the shared client:
// ordinary requests plus raw-status probes.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
	DoNoRedirect(req *http.Request) (*http.Response, error)
}

// Client is the shared archive HTTP client. It follows the Earthdata login
// redirect chain, applying netrc basic auth on matching hosts and carrying
// session cookies through the persistent jar.
type Client struct {
	client *http.Client
	config HTTPClientConfig
	jar    *auth.FileJar
}

type authRoundTripper struct {
	base  http.RoundTripper
	netrc *auth.Netrc
}

// RoundTrip attaches basic auth per hop so credentials reach the login host
// even when it only appears mid-redirect.
func (a *authRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if a.netrc != nil && req.Header.Get("Authorization") == "" {
		if cred, ok := a.netrc.Lookup(req.URL.Hostname()); ok && cred.Login != "" {
			req = req.Clone(req.Context())
			req.SetBasicAuth(cred.Login, cred.Password)
		}
	}
	return a.base.RoundTrip(req)
}

func NewClient(cfg HTTPClientConfig, netrc *auth.Netrc, jar *auth.FileJar) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.KATimeout == 0 {
		cfg.KATimeout = 60 * time.Second
	}
	transport := &http.Transport{
		IdleConnTimeout:     cfg.KATimeout,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		DisableCompression:  true,
		MaxConnsPerHost:     0,
	}
	httpClient := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: &authRoundTripper{base: transport, netrc: netrc},
	}
	if jar != nil {
		httpClient.Jar = jar
	}
	return &Client{client: httpClient, config: cfg, jar: jar}
}

func (c *Client) SetHeader(key, value string) {
	if c.config.Headers == nil {
		c.config.Headers = make(map[string]string)
	}
	c.config.Headers[key] = value
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	} else {
		req.Header.Set("User-Agent", ToolUserAgent)
	}
	for k, v := range c.config.Headers {
		req.Header.Set(k, v)
	}
	return c.client.Do(req)
}

// DoNoRedirect performs a request without following redirects, for probes
// that care about the raw status code.
func (c *Client) DoNoRedirect(req *http.Request) (*http.Response, error) {
	probe := *c.client
	probe.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	} else {
		req.Header.Set("User-Agent", ToolUserAgent)
	}
	for k, v := range c.config.Headers {
		req.Header.Set(k, v)
	}
	return probe.Do(req)
}

// SaveCookies flushes the session jar back to disk so curl workflows see the
// refreshed session.
func (c *Client) SaveCookies() error {
	if c.jar == nil {
		return nil
	}
	return c.jar.Save()
}
