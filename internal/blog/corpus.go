package blog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Corpus names where posts come from. Markdown documents in Dir win when they
// yield any post; otherwise the records file is used; otherwise the built-in
// sample posts.
type Corpus struct {
	Dir     string
	Records string
}

// Load reads the corpus. A missing directory or records file is not an error.
func (c Corpus) Load(ctx context.Context, loader *Loader) ([]Post, error) {
	if c.Dir != "" {
		posts, err := loader.LoadDir(ctx, os.DirFS(c.Dir), "*.md")
		switch {
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("load %s: %w", c.Dir, err)
		case len(posts) > 0:
			return posts, nil
		}
	}

	if c.Records != "" {
		f, err := os.Open(c.Records)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("open %s: %w", c.Records, err)
		default:
			defer f.Close()
			posts, err := loader.LoadRecords(f)
			if err != nil {
				return nil, fmt.Errorf("load %s: %w", c.Records, err)
			}
			if len(posts) > 0 {
				return posts, nil
			}
		}
	}

	loader.logger.Info("no content found, using sample posts")
	return SamplePosts(), nil
}
