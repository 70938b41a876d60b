package enigma

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// EncryptParallel encrypts text in chunks of chunkSize symbols on up to
// workers goroutines, each using its own clone of m.  The result equals
// m.Encrypt(text).
func EncryptParallel(ctx context.Context, m *Machine, text string, chunkSize, workers int) (string, error) {
	if chunkSize < 1 {
		return "", fmt.Errorf("chunk size must be at least 1: %d", chunkSize)
	}
	if workers < 1 {
		workers = 1
	}
	runes := []rune(text)
	out := make([]string, (len(runes)+chunkSize-1)/chunkSize)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range out {
		start := i * chunkSize
		chunk := string(runes[start:min(start+chunkSize, len(runes))])
		c := m.Clone()
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			enc, err := c.Encrypt(chunk)
			if err != nil {
				return fmt.Errorf("chunk at %d: %w", start, err)
			}
			out[i] = enc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	return strings.Join(out, ""), nil
}

// DecryptParallel resets m and then runs EncryptParallel.
func DecryptParallel(ctx context.Context, m *Machine, text string, chunkSize, workers int) (string, error) {
	m.Reset()
	return EncryptParallel(ctx, m, text, chunkSize, workers)
}
