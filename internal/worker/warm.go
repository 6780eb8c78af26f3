package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/libris/internal/model"
)

// PostFetcher loads a single post. A nil post with a nil error means the
// slug does not exist.
type PostFetcher interface {
	PostBySlug(ctx context.Context, slug string) (*model.Post, error)
}

// WarmResult reports the outcome of pre-fetching one slug
type WarmResult struct {
	Slug  string
	Found bool
	Error error
}

// GetError returns the fetch error, if any
func (r *WarmResult) GetError() error {
	return r.Error
}

type warmJob struct {
	slug    string
	fetcher PostFetcher
}

func (j *warmJob) Execute(ctx context.Context) Result {
	post, err := j.fetcher.PostBySlug(ctx, j.slug)
	return &WarmResult{
		Slug:  j.slug,
		Found: post != nil,
		Error: err,
	}
}

// WarmProcessor fetches many posts concurrently so later page loads hit
// the cache
type WarmProcessor struct {
	fetcher PostFetcher
	pool    *Pool
}

// NewWarmProcessor creates a processor using the given concurrency
func NewWarmProcessor(fetcher PostFetcher, concurrency int) *WarmProcessor {
	return &WarmProcessor{
		fetcher: fetcher,
		pool:    NewPool(concurrency),
	}
}

// WarmSlugs fetches every slug, returning one result per slug in input order
func (w *WarmProcessor) WarmSlugs(ctx context.Context, slugs []string) []*WarmResult {
	jobs := make([]Job, len(slugs))
	for i, slug := range slugs {
		jobs[i] = &warmJob{slug: slug, fetcher: w.fetcher}
	}

	results := w.pool.Run(ctx, jobs)

	out := make([]*WarmResult, len(results))
	for i, r := range results {
		if wr, ok := r.(*WarmResult); ok {
			out[i] = wr
			continue
		}
		out[i] = &WarmResult{Slug: slugs[i], Error: r.GetError()}
	}
	return out
}

// WarmFile reads slugs from filePath and warms them
func (w *WarmProcessor) WarmFile(ctx context.Context, filePath string) ([]*WarmResult, error) {
	slugs, err := ReadLinesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read slugs: %w", err)
	}
	return w.WarmSlugs(ctx, slugs), nil
}

// ReadLinesFromFile reads one entry per line, skipping blanks and '#'
// comments and dropping duplicates
func ReadLinesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var lines []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return lines, nil
}
