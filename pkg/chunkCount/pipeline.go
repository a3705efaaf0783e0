// Package chunkCount counts records by tallying symbols over fixed-size
// chunks of a stream, without modelling individual records.
package chunkCount

import (
	"bytes"
	"context"
	"io"
	"sync"

	"SeqStats/pkg/fastx"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultChunkSize = 1 << 20
	DefaultWorkers   = 4
)

type Options struct {
	ChunkSize int
	Workers   int
	QueueLen  int  // bounded queue depth, default 2*Workers
	Locked    bool // workers share the reader behind a mutex instead of a producer queue
}

func (opt *Options) defaults() {
	if opt.ChunkSize <= 0 {
		opt.ChunkSize = DefaultChunkSize
	}
	if opt.Workers <= 0 {
		opt.Workers = DefaultWorkers
	}
	if opt.QueueLen <= 0 {
		opt.QueueLen = 2 * opt.Workers
	}
}

// Counts are commutative partial sums; merging order does not matter.
type Counts struct {
	Bytes    uint64
	Newlines uint64
	Headers  uint64 // '>' at the start of a line
	Chunks   uint64

	// Unterminated is set when the stream does not end with '\n'.
	Unterminated bool
}

func (c *Counts) add(o Counts) {
	c.Bytes += o.Bytes
	c.Newlines += o.Newlines
	c.Headers += o.Headers
	c.Chunks += o.Chunks
}

// Lines counts a final line without '\n' as a line.
func (c Counts) Lines() uint64 {
	if c.Unterminated {
		return c.Newlines + 1
	}
	return c.Newlines
}

// Sequences is the record count for format: headers for FASTA, a quarter
// of the lines for FASTQ.
func (c Counts) Sequences(format fastx.Format) uint64 {
	if format == fastx.FASTQ {
		return c.Lines() / 4
	}
	return c.Headers
}

type chunk struct {
	data []byte
	prev byte // last byte of the preceding chunk, '\n' before the first
}

var headerStart = []byte("\n>")

func tally(c chunk) Counts {
	var n = Counts{
		Bytes:    uint64(len(c.data)),
		Newlines: uint64(bytes.Count(c.data, []byte{'\n'})),
		Headers:  uint64(bytes.Count(c.data, headerStart)),
		Chunks:   1,
	}
	if c.prev == '\n' && len(c.data) > 0 && c.data[0] == '>' {
		n.Headers++
	}
	return n
}

// fill reads until buf is full or the reader fails.
func fill(r io.Reader, buf []byte) (int, error) {
	var n int
	for n < len(buf) {
		m, err := r.Read(buf[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// Count reads r to the end and returns the merged counts. The first read
// error cancels all workers; partial counts are discarded.
func Count(ctx context.Context, r io.Reader, opt Options) (Counts, error) {
	opt.defaults()
	var (
		g, gctx = errgroup.WithContext(ctx)
		partial = make([]Counts, opt.Workers)
		last    = byte('\n')
	)
	if opt.Locked {
		lockedWorkers(gctx, g, r, opt, partial, &last)
	} else {
		queueWorkers(gctx, g, r, opt, partial, &last)
	}
	if err := g.Wait(); err != nil {
		return Counts{}, err
	}

	var total Counts
	for _, p := range partial {
		total.add(p)
	}
	total.Unterminated = total.Bytes > 0 && last != '\n'
	return total, nil
}

// queueWorkers starts one producer feeding a bounded queue and
// opt.Workers consumers draining it.
func queueWorkers(ctx context.Context, g *errgroup.Group, r io.Reader, opt Options, partial []Counts, last *byte) {
	var queue = make(chan chunk, opt.QueueLen)

	g.Go(func() error {
		defer close(queue)
		var prev = byte('\n')
		for {
			var buf = make([]byte, opt.ChunkSize)
			n, err := fill(r, buf)
			if n > 0 {
				select {
				case queue <- chunk{data: buf[:n], prev: prev}:
				case <-ctx.Done():
					return ctx.Err()
				}
				prev = buf[n-1]
			}
			if err == io.EOF {
				*last = prev
				return nil
			}
			if err != nil {
				return errors.Wrap(err, "read chunk")
			}
		}
	})

	for i := 0; i < opt.Workers; i++ {
		g.Go(func() error {
			for c := range queue {
				if err := ctx.Err(); err != nil {
					return err
				}
				partial[i].add(tally(c))
			}
			return nil
		})
	}
}

// lockedWorkers lets every worker read its own chunk from the shared
// reader. The read is serialised; counting runs in parallel.
func lockedWorkers(ctx context.Context, g *errgroup.Group, r io.Reader, opt Options, partial []Counts, last *byte) {
	var (
		mu   sync.Mutex
		prev = byte('\n')
		eof  bool
	)
	for i := 0; i < opt.Workers; i++ {
		g.Go(func() error {
			var buf = make([]byte, opt.ChunkSize)
			for {
				if err := ctx.Err(); err != nil {
					return err
				}
				mu.Lock()
				if eof {
					mu.Unlock()
					return nil
				}
				n, err := fill(r, buf)
				var c = chunk{data: buf[:n], prev: prev}
				if n > 0 {
					prev = buf[n-1]
				}
				switch {
				case err == io.EOF:
					eof = true
					*last = prev
				case err != nil:
					mu.Unlock()
					return errors.Wrap(err, "read chunk")
				}
				mu.Unlock()

				if n > 0 {
					partial[i].add(tally(c))
				}
			}
		})
	}
}
