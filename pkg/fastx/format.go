package fastx

import (
	"bufio"
	"io"
	"path/filepath"
	"regexp"
	"strings"
)

type Format int

const (
	Unknown Format = iota
	FASTA
	FASTQ
)

func (f Format) String() string {
	switch f {
	case FASTA:
		return "FASTA"
	case FASTQ:
		return "FASTQ"
	default:
		return "Unknown"
	}
}

// Ext is the file extension used when writing this format.
func (f Format) Ext() string {
	if f == FASTQ {
		return "fastq"
	}
	return "fasta"
}

// regexp
var (
	compressSuffix = regexp.MustCompile(`(?i)\.(gz|zst|zstd)$`)
	fastqSuffix    = regexp.MustCompile(`(?i)\.(fq|fastq)$`)
	fastaSuffix    = regexp.MustCompile(`(?i)\.(fa|fasta|fna|ffn|faa|frn|fas|mfa)$`)
)

// detectExt reports the format implied by the extension and whether the
// extension was one we recognise.
func detectExt(name string) (Format, bool) {
	if name == "" || name == "-" {
		return Unknown, false
	}
	var base = compressSuffix.ReplaceAllString(filepath.Base(name), "")
	switch {
	case fastqSuffix.MatchString(base):
		return FASTQ, true
	case fastaSuffix.MatchString(base):
		return FASTA, true
	}
	return FASTA, false
}

// Detect infers the format from the file name alone. One compression
// suffix is stripped first; anything that is not .fq/.fastq is FASTA.
// Stdin ("-") and empty names are Unknown.
func Detect(name string) Format {
	f, _ := detectExt(name)
	return f
}

// Sniff classifies the stream by its first non-blank byte without
// consuming anything from r.
func Sniff(r *bufio.Reader) (Format, error) {
	for n := 1; n <= r.Size(); n++ {
		buf, err := r.Peek(n)
		if len(buf) < n {
			if err == io.EOF {
				return Unknown, nil
			}
			return Unknown, err
		}
		switch buf[n-1] {
		case ' ', '\t', '\r', '\n':
			continue
		case '@':
			return FASTQ, nil
		case '>':
			return FASTA, nil
		default:
			return Unknown, nil
		}
	}
	return Unknown, nil
}

// Resolve picks the format for one input: a forced format wins, then a
// recognised extension, then the content sniff, then FASTA. With sniff
// set the content is consulted even when the extension is recognised.
func Resolve(name string, forced Format, sniff bool, r *bufio.Reader) (Format, error) {
	if forced != Unknown {
		return forced, nil
	}
	var f, ok = detectExt(name)
	if ok && !sniff {
		return f, nil
	}
	if r != nil {
		sniffed, err := Sniff(r)
		if err != nil {
			return Unknown, ioError("sniff", name, err)
		}
		if sniffed != Unknown {
			return sniffed, nil
		}
	}
	if f == Unknown {
		return FASTA, nil
	}
	return f, nil
}

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "fasta", "fa":
		return FASTA
	case "fastq", "fq":
		return FASTQ
	}
	return Unknown
}
