// Package imsdb streams movie scripts from the Internet Movie Script
// Database as documents.
//
// The all-scripts listing and each script text are cached on disk, so
// repeat runs only fetch what is missing. Scripts have no author.
package imsdb

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/clockprose/clockprose-cli/internal/core/domain"
	"github.com/clockprose/clockprose-cli/internal/core/ports/driven"
	"github.com/clockprose/clockprose-cli/internal/excerpt"
	"github.com/clockprose/clockprose-cli/internal/logger"
	"github.com/clockprose/clockprose-cli/internal/sources/fetch"
)

// Ensure Source implements the interface.
var _ driven.Source = (*Source)(nil)

const (
	// baseURL is the IMSDb host.
	baseURL = "https://imsdb.com"

	// listCacheFile holds the cached script name listing.
	listCacheFile = "_script_list.json"

	// DefaultMaxScripts caps a single run.
	DefaultMaxScripts = 50
)

// sceneHeading matches slugline rows that open every scene.
var sceneHeading = regexp.MustCompile(`(?m)^(INT\.|EXT\.|INT/EXT).*$`)

// blankRuns matches three or more consecutive newlines.
var blankRuns = regexp.MustCompile(`\n{3,}`)

// Config configures an IMSDb source.
type Config struct {
	// Client performs the HTTP fetches (required).
	Client *fetch.Client

	// CacheDir stores the listing and script texts (required).
	CacheDir string

	// ScriptNames pins the run to specific scripts; when empty the
	// source discovers names from the all-scripts listing.
	ScriptNames []string

	// MaxScripts caps how many scripts are fetched (default: 50).
	MaxScripts int

	// BaseURL overrides the IMSDb host, for tests.
	BaseURL string
}

// Source streams IMSDb movie scripts.
type Source struct {
	client      *fetch.Client
	cacheDir    string
	scriptNames []string
	maxScripts  int
	baseURL     string

	mu     sync.Mutex
	closed bool
}

// NewSource creates an IMSDb source, creating the cache directory.
func NewSource(cfg Config) (*Source, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("imsdb: fetch client is required")
	}
	if cfg.CacheDir == "" {
		return nil, fmt.Errorf("imsdb: cache directory is required")
	}
	if cfg.MaxScripts <= 0 {
		cfg.MaxScripts = DefaultMaxScripts
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = baseURL
	}

	if err := os.MkdirAll(cfg.CacheDir, 0700); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	return &Source{
		client:      cfg.Client,
		cacheDir:    cfg.CacheDir,
		scriptNames: cfg.ScriptNames,
		maxScripts:  cfg.MaxScripts,
		baseURL:     cfg.BaseURL,
	}, nil
}

// Name returns the source name used in logs and source IDs.
func (s *Source) Name() string {
	return "imsdb"
}

// Capabilities returns what this source supports.
func (s *Source) Capabilities() driven.SourceCapabilities {
	return driven.SourceCapabilities{
		SupportsPagination: true,
		SupportsCaching:    true,
	}
}

// Documents streams scripts sequentially in listing order.
func (s *Source) Documents(ctx context.Context) (<-chan domain.Document, <-chan error) {
	docsChan := make(chan domain.Document)
	errsChan := make(chan error, 1)

	go func() {
		defer close(docsChan)
		defer close(errsChan)

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			errsChan <- domain.ErrSourceClosed
			return
		}
		s.mu.Unlock()

		names := s.scriptNames
		if len(names) == 0 {
			var err error
			names, err = s.scriptList(ctx)
			if err != nil {
				errsChan <- fmt.Errorf("script list: %w", err)
				return
			}
		}
		if len(names) > s.maxScripts {
			names = names[:s.maxScripts]
		}

		for _, name := range names {
			select {
			case <-ctx.Done():
				return
			default:
			}

			doc, err := s.fetchScript(ctx, name)
			if err != nil {
				select {
				case errsChan <- fmt.Errorf("script %s: %w", name, err):
				default:
					logger.Warn("imsdb: script %s: %v", name, err)
				}
				continue
			}

			select {
			case docsChan <- *doc:
			case <-ctx.Done():
				return
			}
		}
	}()

	return docsChan, errsChan
}

// Close marks the source closed; subsequent Documents calls fail.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// scriptList returns all available script names, from the disk cache
// when present, otherwise by parsing the all-scripts listing page.
func (s *Source) scriptList(ctx context.Context) ([]string, error) {
	cachePath := filepath.Join(s.cacheDir, listCacheFile)
	if data, err := os.ReadFile(cachePath); err == nil {
		var names []string
		if err := json.Unmarshal(data, &names); err == nil && len(names) > 0 {
			logger.Debug("imsdb: loaded %d scripts from cache", len(names))
			return names, nil
		}
	}

	logger.Info("imsdb: fetching script list")
	page, err := s.client.GetText(ctx, s.baseURL+"/all-scripts.html")
	if err != nil {
		return nil, err
	}

	names, err := parseScriptList(page)
	if err != nil {
		return nil, err
	}
	logger.Info("imsdb: found %d scripts", len(names))

	if data, err := json.Marshal(names); err == nil {
		if err := os.WriteFile(cachePath, data, 0600); err != nil {
			logger.Warn("imsdb: caching script list: %v", err)
		}
	}

	return names, nil
}

// parseScriptList extracts script names from the all-scripts listing.
// Names are URL path segments with spaces replaced by hyphens.
func parseScriptList(page string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parsing listing: %w", err)
	}

	var names []string
	seen := make(map[string]bool)
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !strings.Contains(href, "/Movie Scripts/") || !strings.HasSuffix(href, " Script.html") {
			return
		}
		name := strings.TrimPrefix(href, "/Movie Scripts/")
		name = strings.TrimSuffix(name, " Script.html")
		name = strings.ReplaceAll(name, " ", "-")
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	})

	return names, nil
}

// fetchScript returns one script as a cleaned document.
func (s *Source) fetchScript(ctx context.Context, name string) (*domain.Document, error) {
	text, err := s.scriptText(ctx, name)
	if err != nil {
		return nil, err
	}

	return &domain.Document{
		Text:     excerpt.CleanText(cleanScriptText(text)),
		Title:    displayTitle(name),
		Author:   "",
		SourceID: "imsdb:" + name,
	}, nil
}

// scriptText loads a script from the disk cache or downloads and
// extracts it from its HTML page.
func (s *Source) scriptText(ctx context.Context, name string) (string, error) {
	cachePath := filepath.Join(s.cacheDir, name+".txt")
	if data, err := os.ReadFile(cachePath); err == nil {
		return string(data), nil
	}

	page, err := s.client.GetText(ctx, s.baseURL+"/scripts/"+name+".html")
	if err != nil {
		return "", err
	}

	text, err := extractScriptText(page)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(cachePath, []byte(text), 0600); err != nil {
		logger.Warn("imsdb: caching script %s: %v", name, err)
	}
	return text, nil
}

// extractScriptText pulls the script body out of an IMSDb page. Most
// pages wrap the script in a <pre> tag; a few use a .scrtext container.
func extractScriptText(page string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parsing script page: %w", err)
	}

	if pre := doc.Find("pre").First(); pre.Length() > 0 {
		return pre.Text(), nil
	}
	if scrtext := doc.Find(".scrtext").First(); scrtext.Length() > 0 {
		return scrtext.Text(), nil
	}

	return "", fmt.Errorf("no script content found: %w", domain.ErrNotFound)
}

// cleanScriptText drops sluglines and squeezes runs of blank lines so
// excerpts read as prose instead of screenplay layout.
func cleanScriptText(text string) string {
	text = blankRuns.ReplaceAllString(text, "\n\n")
	text = sceneHeading.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// displayTitle converts a hyphenated script name to a display title.
func displayTitle(name string) string {
	words := strings.Split(strings.ReplaceAll(name, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
