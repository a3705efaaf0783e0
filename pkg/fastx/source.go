package fastx

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"regexp"

	gzip "github.com/klauspost/pgzip"
	"github.com/klauspost/compress/zstd"
)

// BufferSize is the read buffer in front of every source.
const BufferSize = 1 << 20

// regexp
var (
	gz  = regexp.MustCompile(`(?i)\.gz$`)
	zst = regexp.MustCompile(`(?i)\.zstd?$`)
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Source is a decompressed, buffered byte stream over one input.
type Source struct {
	Name string
	*bufio.Reader

	closers []io.Closer
}

// Open opens path for reading. "-" is stdin. Compression is chosen by
// suffix (.gz, .zst); inputs without a compression suffix are checked for
// gzip or zstd magic bytes so piped archives work too.
func Open(path string) (*Source, error) {
	var (
		src = &Source{Name: path}
		raw io.Reader
	)
	if path == "-" {
		raw = os.Stdin
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, ioError("open", path, err)
		}
		src.closers = append(src.closers, file)
		raw = file
	}

	var br = bufio.NewReaderSize(raw, BufferSize)
	switch {
	case gz.MatchString(path):
		return src.gzip(br)
	case zst.MatchString(path):
		return src.zstd(br)
	}

	magic, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF {
		src.Close()
		return nil, ioError("read", path, err)
	}
	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		return src.gzip(br)
	case bytes.HasPrefix(magic, zstdMagic):
		return src.zstd(br)
	}
	src.Reader = br
	return src, nil
}

func (src *Source) gzip(r io.Reader) (*Source, error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		src.Close()
		return nil, ioError("gunzip", src.Name, err)
	}
	src.closers = append(src.closers, gr)
	src.Reader = bufio.NewReaderSize(gr, BufferSize)
	return src, nil
}

func (src *Source) zstd(r io.Reader) (*Source, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		src.Close()
		return nil, ioError("unzstd", src.Name, err)
	}
	var rc = zr.IOReadCloser()
	src.closers = append(src.closers, rc)
	src.Reader = bufio.NewReaderSize(rc, BufferSize)
	return src, nil
}

// Read wraps decompression and read failures as *IOError.
func (src *Source) Read(p []byte) (int, error) {
	n, err := src.Reader.Read(p)
	if err != nil && err != io.EOF {
		return n, ioError("read", src.Name, err)
	}
	return n, err
}

// Close releases decoders first, then the file.
func (src *Source) Close() error {
	var first error
	for i := len(src.closers) - 1; i >= 0; i-- {
		if err := src.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	src.closers = nil
	return first
}
