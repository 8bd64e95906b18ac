// Package gutenberg streams Project Gutenberg books as documents.
//
// Book texts are fetched from the gutenberg.org mirror with a bounded
// worker pool, cached on disk, and stripped of the header and footer
// boilerplate the project wraps around every text.
package gutenberg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/clockprose/clockprose-cli/internal/core/domain"
	"github.com/clockprose/clockprose-cli/internal/core/ports/driven"
	"github.com/clockprose/clockprose-cli/internal/excerpt"
	"github.com/clockprose/clockprose-cli/internal/logger"
	"github.com/clockprose/clockprose-cli/internal/sources/fetch"
)

// Ensure Source implements the interface.
var _ driven.Source = (*Source)(nil)

const (
	// mirror is the Project Gutenberg host all book URLs derive from.
	mirror = "https://www.gutenberg.org"

	// DefaultWorkers bounds parallel book downloads.
	DefaultWorkers = 5

	// DefaultMaxBooks caps a single run.
	DefaultMaxBooks = 50
)

// bookMeta is the fallback metadata for well-known book IDs.
type bookMeta struct {
	title  string
	author string
}

// knownBooks maps popular Gutenberg IDs to their metadata. IDs outside
// this table get a placeholder title.
var knownBooks = map[int]bookMeta{
	1342:  {"Pride and Prejudice", "Jane Austen"},
	84:    {"Frankenstein", "Mary Shelley"},
	1661:  {"The Adventures of Sherlock Holmes", "Arthur Conan Doyle"},
	11:    {"Alice's Adventures in Wonderland", "Lewis Carroll"},
	98:    {"A Tale of Two Cities", "Charles Dickens"},
	2701:  {"Moby Dick", "Herman Melville"},
	1952:  {"The Yellow Wallpaper", "Charlotte Perkins Gilman"},
	174:   {"The Picture of Dorian Gray", "Oscar Wilde"},
	345:   {"Dracula", "Bram Stoker"},
	16328: {"Beowulf", "Anonymous"},
	100:   {"The Complete Works of Shakespeare", "William Shakespeare"},
	1232:  {"The Prince", "Niccolò Machiavelli"},
	76:    {"Adventures of Tom Sawyer", "Mark Twain"},
	74:    {"Adventures of Huckleberry Finn", "Mark Twain"},
	1400:  {"Great Expectations", "Charles Dickens"},
}

// Config configures a Gutenberg source.
type Config struct {
	// Client performs the HTTP fetches (required).
	Client *fetch.Client

	// CacheDir stores downloaded book texts (required).
	CacheDir string

	// BookIDs selects which books to stream (required, non-empty).
	BookIDs []int

	// MaxBooks caps how many of BookIDs are fetched (default: 50).
	MaxBooks int

	// Workers bounds parallel downloads (default: 5).
	Workers int
}

// Source streams Gutenberg books.
type Source struct {
	client   *fetch.Client
	cacheDir string
	bookIDs  []int
	maxBooks int
	workers  int

	mu     sync.Mutex
	closed bool
}

// NewSource creates a Gutenberg source, creating the cache directory.
func NewSource(cfg Config) (*Source, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("gutenberg: fetch client is required")
	}
	if cfg.CacheDir == "" {
		return nil, fmt.Errorf("gutenberg: cache directory is required")
	}
	if len(cfg.BookIDs) == 0 {
		return nil, fmt.Errorf("gutenberg: book ID list is empty: %w", domain.ErrInvalidInput)
	}
	if cfg.MaxBooks <= 0 {
		cfg.MaxBooks = DefaultMaxBooks
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}

	if err := os.MkdirAll(cfg.CacheDir, 0700); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	return &Source{
		client:   cfg.Client,
		cacheDir: cfg.CacheDir,
		bookIDs:  cfg.BookIDs,
		maxBooks: cfg.MaxBooks,
		workers:  cfg.Workers,
	}, nil
}

// Name returns the source name used in logs and source IDs.
func (s *Source) Name() string {
	return "gutenberg"
}

// Capabilities returns what this source supports.
func (s *Source) Capabilities() driven.SourceCapabilities {
	return driven.SourceCapabilities{
		SupportsParallelFetch: true,
		SupportsCaching:       true,
	}
}

// Documents streams books through a bounded worker pool. Completion
// order follows download completion, not the configured ID order.
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

		ids := s.bookIDs
		if len(ids) > s.maxBooks {
			ids = ids[:s.maxBooks]
		}

		jobs := make(chan int)
		var wg sync.WaitGroup

		for w := 0; w < s.workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for id := range jobs {
					doc, err := s.fetchBook(ctx, id)
					if err != nil {
						select {
						case errsChan <- fmt.Errorf("book %d: %w", id, err):
						default:
							logger.Warn("gutenberg: book %d: %v", id, err)
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
		}

		for _, id := range ids {
			select {
			case jobs <- id:
			case <-ctx.Done():
				close(jobs)
				wg.Wait()
				return
			}
		}
		close(jobs)
		wg.Wait()
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

// fetchBook returns one book as a cleaned document.
func (s *Source) fetchBook(ctx context.Context, id int) (*domain.Document, error) {
	text, err := s.bookText(ctx, id)
	if err != nil {
		return nil, err
	}

	meta, ok := knownBooks[id]
	if !ok {
		meta = bookMeta{title: fmt.Sprintf("Book %d", id), author: "Unknown"}
	}

	return &domain.Document{
		Text:     excerpt.CleanText(stripBoilerplate(text)),
		Title:    meta.title,
		Author:   meta.author,
		SourceID: fmt.Sprintf("gutenberg:%d", id),
	}, nil
}

// bookText loads a book from the disk cache or downloads it, trying
// each known URL layout in turn.
func (s *Source) bookText(ctx context.Context, id int) (string, error) {
	cachePath := filepath.Join(s.cacheDir, fmt.Sprintf("%d.txt", id))
	if data, err := os.ReadFile(cachePath); err == nil {
		return string(data), nil
	}

	urls := []string{
		fmt.Sprintf("%s/cache/epub/%d/pg%d.txt", mirror, id, id),
		fmt.Sprintf("%s/files/%d/%d-0.txt", mirror, id, id),
		fmt.Sprintf("%s/files/%d/%d.txt", mirror, id, id),
	}

	var lastErr error
	for _, url := range urls {
		text, err := s.client.GetText(ctx, url)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			continue
		}

		if err := os.WriteFile(cachePath, []byte(text), 0600); err != nil {
			logger.Warn("gutenberg: caching book %d: %v", id, err)
		}
		return text, nil
	}

	return "", fmt.Errorf("all download URLs failed: %w", lastErr)
}

// Boilerplate markers delimiting the actual text of a Gutenberg book.
var (
	startMarkers = []string{
		"*** START OF THIS PROJECT GUTENBERG",
		"*** START OF THE PROJECT GUTENBERG",
		"*END*THE SMALL PRINT",
	}
	endMarkers = []string{
		"*** END OF THIS PROJECT GUTENBERG",
		"*** END OF THE PROJECT GUTENBERG",
		"End of the Project Gutenberg",
	}
)

// stripBoilerplate removes the licence header and footer wrapped around
// every Gutenberg text, keeping only the work itself.
func stripBoilerplate(text string) string {
	for _, marker := range startMarkers {
		if pos := strings.Index(text, marker); pos != -1 {
			if newline := strings.IndexByte(text[pos:], '\n'); newline != -1 {
				text = text[pos+newline+1:]
			}
			break
		}
	}

	for _, marker := range endMarkers {
		if pos := strings.Index(text, marker); pos != -1 {
			text = text[:pos]
			break
		}
	}

	return strings.TrimSpace(text)
}
