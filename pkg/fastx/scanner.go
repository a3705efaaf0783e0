package fastx

import (
	"bufio"
	"io"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// DefaultOffset is the Phred+33 (Sanger / Illumina 1.8+) quality offset.
const DefaultOffset = 33

// BaseCounts is the composition of one record. Other counts alphabetic
// symbols that are not A/C/G/T in either case.
type BaseCounts struct {
	A, C, G, T, Other uint64
}

func (b *BaseCounts) GC() uint64 { return b.G + b.C }

// Record is one FASTA/FASTQ entry. Name aliases scanner memory and is only
// valid until the next call to Scan.
type Record struct {
	Name   []byte
	Length uint64
	Bases  BaseCounts

	HasQuality bool
	ErrProb    float64 // sum of per-base error probabilities
	Q20, Q30   uint64
}

// AvgQuality is the log-domain mean Phred score of the record.
func (r *Record) AvgQuality() float64 {
	return AvgQuality(r.ErrProb, r.Length)
}

// AvgQuality converts a summed error probability over n bases back to a
// Phred score: -10*log10(sum/n). Zero when there is nothing to average.
func AvgQuality(errProb float64, n uint64) float64 {
	if n == 0 {
		return 0
	}
	var mean = errProb / float64(n)
	if mean == 0 {
		return 0
	}
	return -10 * math.Log10(mean)
}

func (r *Record) reset() {
	r.Name = r.Name[:0]
	r.Length = 0
	r.Bases = BaseCounts{}
	r.HasQuality = false
	r.ErrProb = 0
	r.Q20 = 0
	r.Q30 = 0
}

type Options struct {
	Format Format // FASTA or FASTQ; Unknown is treated as FASTA
	Offset int    // quality offset, 0 means DefaultOffset
	Names  bool   // capture record names
}

type state int

const (
	stateIdle state = iota
	stateFastaHeader
	stateFastaSequence
	stateFastqHeader
	stateFastqSequence
	stateFastqPlus
	stateFastqQuality
)

const (
	symNone byte = iota
	symA
	symC
	symG
	symT
	symOther
)

var symbols [256]byte

func init() {
	for c := 'a'; c <= 'z'; c++ {
		symbols[c] = symOther
		symbols[c-'a'+'A'] = symOther
	}
	for _, p := range []struct {
		c   byte
		sym byte
	}{{'A', symA}, {'C', symC}, {'G', symG}, {'T', symT}} {
		symbols[p.c] = p.sym
		symbols[p.c+'a'-'A'] = p.sym
	}
}

// Scanner reads records one at a time from a FASTA or FASTQ stream.
//
//	s := fastx.NewScanner(src, fastx.Options{Format: fastx.FASTQ})
//	for s.Scan() {
//		rec := s.Record()
//		...
//	}
//	if err := s.Err(); err != nil {
//		...
//	}
type Scanner struct {
	r    *bufio.Reader
	name string
	opt  Options

	state   state
	midLine bool // last fragment from ReadLine was a prefix
	nameEnd bool // whitespace seen in the current header
	qualLen uint64
	count   uint64

	cur, out *Record
	prob     [256]float64
	qual     [256]int

	done bool
	err  error
}

func NewScanner(r io.Reader, opt Options) *Scanner {
	if opt.Offset == 0 {
		opt.Offset = DefaultOffset
	}
	if opt.Format == Unknown {
		opt.Format = FASTA
	}
	var s = &Scanner{
		opt: opt,
		cur: &Record{},
		out: &Record{},
	}
	switch v := r.(type) {
	case *Source:
		s.r = v.Reader
		s.name = v.Name
	case *bufio.Reader:
		s.r = v
	default:
		s.r = bufio.NewReaderSize(r, BufferSize)
	}
	for i := range s.prob {
		var q = i - opt.Offset
		s.qual[i] = q
		s.prob[i] = math.Pow(10, -float64(q)/10)
	}
	if opt.Format == FASTQ {
		s.state = stateFastqHeader
	}
	return s
}

// Record returns the record produced by the last successful Scan.
func (s *Scanner) Record() *Record { return s.out }

// Err returns the first non-EOF error.
func (s *Scanner) Err() error { return s.err }

// Count is the number of records emitted so far.
func (s *Scanner) Count() uint64 { return s.count }

func (s *Scanner) Scan() bool {
	if s.done || s.err != nil {
		return false
	}
	if s.opt.Format == FASTQ {
		return s.scanFastq()
	}
	return s.scanFasta()
}

func (s *Scanner) emit() {
	s.cur, s.out = s.out, s.cur
	s.count++
}

func (s *Scanner) fail(err error) bool {
	s.err = err
	return false
}

func (s *Scanner) mismatch(format string, args ...interface{}) bool {
	if s.name != "" {
		format = strings.ReplaceAll(s.name, "%", "%%") + ": " + format
	}
	return s.fail(errors.Wrapf(ErrFormatMismatch, format, args...))
}

func (s *Scanner) addName(b []byte) {
	if !s.opt.Names || s.nameEnd {
		return
	}
	for i, c := range b {
		if c == ' ' || c == '\t' {
			s.cur.Name = append(s.cur.Name, b[:i]...)
			s.nameEnd = true
			return
		}
	}
	s.cur.Name = append(s.cur.Name, b...)
}

func (s *Scanner) startRecord(header []byte) {
	s.cur.reset()
	s.nameEnd = false
	s.addName(header)
}

func (s *Scanner) scanFasta() bool {
	for {
		line, isPrefix, err := s.r.ReadLine()
		if err != nil {
			if err != io.EOF {
				return s.fail(ioError("read", s.name, err))
			}
			s.done = true
			s.state = stateIdle
			if s.cur.Length > 0 {
				s.emit()
				return true
			}
			return false
		}
		var lineStart = !s.midLine
		s.midLine = isPrefix

		if lineStart && len(line) > 0 && line[0] == '>' {
			var flush = s.cur.Length > 0
			if flush {
				s.emit()
			}
			s.startRecord(line[1:])
			s.state = stateFastaHeader
			if !isPrefix {
				s.state = stateFastaSequence
			}
			if flush {
				return true
			}
			continue
		}
		if s.state == stateFastaHeader {
			s.addName(line)
			if !isPrefix {
				s.state = stateFastaSequence
			}
			continue
		}
		s.state = stateFastaSequence
		s.countAlpha(line)
	}
}

func (s *Scanner) countAlpha(line []byte) {
	var rec = s.cur
	for _, c := range line {
		switch symbols[c] {
		case symNone:
			continue
		case symA:
			rec.Bases.A++
		case symC:
			rec.Bases.C++
		case symG:
			rec.Bases.G++
		case symT:
			rec.Bases.T++
		default:
			rec.Bases.Other++
		}
		rec.Length++
	}
}

func (s *Scanner) countBases(line []byte) {
	var rec = s.cur
	rec.Length += uint64(len(line))
	for _, c := range line {
		switch symbols[c] {
		case symA:
			rec.Bases.A++
		case symC:
			rec.Bases.C++
		case symG:
			rec.Bases.G++
		case symT:
			rec.Bases.T++
		case symOther:
			rec.Bases.Other++
		}
	}
}

func (s *Scanner) countQuality(line []byte) {
	var rec = s.cur
	s.qualLen += uint64(len(line))
	for _, c := range line {
		rec.ErrProb += s.prob[c]
		if q := s.qual[c]; q >= 30 {
			rec.Q30++
			rec.Q20++
		} else if q >= 20 {
			rec.Q20++
		}
	}
}

func (s *Scanner) scanFastq() bool {
	for {
		line, isPrefix, err := s.r.ReadLine()
		if err != nil {
			if err != io.EOF {
				return s.fail(ioError("read", s.name, err))
			}
			s.done = true
			switch s.state {
			case stateFastqHeader:
				return false
			case stateFastqSequence, stateFastqPlus:
				if s.count == 0 {
					return s.mismatch("first record has no quality line")
				}
				return s.mismatch("record %d truncated", s.count+1)
			default:
				if s.count == 0 {
					return s.mismatch("first record has no quality scores")
				}
				return s.mismatch("record %d truncated before quality", s.count+1)
			}
		}
		var lineStart = !s.midLine
		s.midLine = isPrefix

		switch s.state {
		case stateFastqHeader:
			if lineStart {
				if len(line) == 0 && !isPrefix {
					continue
				}
				if line[0] != '@' {
					return s.mismatch("record %d: expected '@' header, got %q", s.count+1, line[0])
				}
				s.startRecord(line[1:])
			} else {
				s.addName(line)
			}
			if !isPrefix {
				s.state = stateFastqSequence
			}
		case stateFastqSequence:
			s.countBases(line)
			if !isPrefix {
				s.state = stateFastqPlus
			}
		case stateFastqPlus:
			if lineStart && (len(line) == 0 || line[0] != '+') {
				if s.count == 0 {
					return s.mismatch("first record has no quality scores")
				}
				return s.mismatch("record %d: expected '+' separator", s.count+1)
			}
			if !isPrefix {
				s.state = stateFastqQuality
				s.qualLen = 0
			}
		case stateFastqQuality:
			s.countQuality(line)
			if isPrefix {
				continue
			}
			if s.count == 0 && s.qualLen == 0 {
				return s.mismatch("first record has no quality scores")
			}
			if s.qualLen != s.cur.Length {
				return s.mismatch("record %d: quality length %d != sequence length %d",
					s.count+1, s.qualLen, s.cur.Length)
			}
			s.cur.HasQuality = true
			s.state = stateFastqHeader
			s.emit()
			return true
		}
	}
}
