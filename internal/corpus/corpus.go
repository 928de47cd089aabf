// Package corpus loads the movie-review working set from a TSV file and
// samples reviews from it. The set is read-only after load, so sampling
// needs no locking beyond the shared rand source.
package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math/rand"
	"os"

	"go.uber.org/zap"
)

// ErrEmptyCorpus is returned when sampling from an empty working set.
var ErrEmptyCorpus = errors.New("review corpus is empty")

const textColumn = "text"

// Corpus holds the loaded review texts.
type Corpus struct {
	reviews []string
}

// Load reads a tab-separated file with a header row and returns a corpus of
// the non-empty values of its "text" column. A missing file, unreadable
// content, or a header without a "text" column is an error; the caller keeps
// an empty working set in that case.
func Load(path string, logger *zap.Logger) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing corpus file: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("corpus file %s has no header row", path)
	}

	textIdx := -1
	for i, col := range rows[0] {
		if col == textColumn {
			textIdx = i
			break
		}
	}
	if textIdx == -1 {
		return nil, fmt.Errorf("corpus file %s has no %q column", path, textColumn)
	}

	reviews := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if textIdx >= len(row) || row[textIdx] == "" {
			continue
		}
		reviews = append(reviews, row[textIdx])
	}

	logger.Info("Loaded review corpus",
		zap.String("path", path),
		zap.Int("reviews", len(reviews)),
		zap.Int("skipped", len(rows)-1-len(reviews)))

	return &Corpus{reviews: reviews}, nil
}

// Empty returns a corpus with no reviews, used when loading failed.
func Empty() *Corpus {
	return &Corpus{}
}

// Len reports the number of loaded reviews.
func (c *Corpus) Len() int {
	return len(c.reviews)
}

// Sample returns a uniformly random review from the working set.
func (c *Corpus) Sample() (string, error) {
	if len(c.reviews) == 0 {
		return "", ErrEmptyCorpus
	}
	return c.reviews[rand.Intn(len(c.reviews))], nil
}
