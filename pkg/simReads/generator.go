package simReads

import (
	"bufio"
	"io"
	"math/rand"
	"strconv"

	"SeqStats/pkg/fastx"
)

// Bases is the simulator alphabet. The lowercase and repeated entries
// weight the draw away from a uniform ACGT mix.
const Bases = "ACGTactAC"

// MaxPhred is the highest simulated quality; scores are uniform in [0,MaxPhred].
const MaxPhred = 40

// Generator writes random reads.
type Generator struct {
	Format fastx.Format
	Wrap   int // FASTA line width, 0 for single-line records
	Rand   *rand.Rand

	seq  []byte
	qual []byte
}

func NewGenerator(format fastx.Format, seed int64) *Generator {
	return &Generator{
		Format: format,
		Rand:   rand.New(rand.NewSource(seed)),
	}
}

// Sequence returns n random bases; the slice is reused by the next call.
func (g *Generator) Sequence(n uint64) []byte {
	g.seq = grow(g.seq, n)
	for i := range g.seq {
		g.seq[i] = Bases[g.Rand.Intn(len(Bases))]
	}
	return g.seq
}

// Quality returns n Phred+33 quality bytes; the slice is reused.
func (g *Generator) Quality(n uint64) []byte {
	g.qual = grow(g.qual, n)
	for i := range g.qual {
		g.qual[i] = byte(fastx.DefaultOffset + g.Rand.Intn(MaxPhred+1))
	}
	return g.qual
}

func grow(b []byte, n uint64) []byte {
	if uint64(cap(b)) < n {
		return make([]byte, n)
	}
	return b[:n]
}

// WriteRecord writes read number i (1-based) of the given length.
func (g *Generator) WriteRecord(w *bufio.Writer, i int, length uint64) error {
	var (
		seq  = g.Sequence(length)
		mark = byte('>')
	)
	if g.Format == fastx.FASTQ {
		mark = '@'
	}
	w.WriteByte(mark)
	w.WriteString("Simulated_read_")
	w.WriteString(strconv.Itoa(i))
	w.WriteString(" len=")
	w.WriteString(strconv.FormatUint(length, 10))
	w.WriteByte('\n')

	if g.Format == fastx.FASTQ {
		w.Write(seq)
		w.WriteString("\n+\n")
		w.Write(g.Quality(length))
		_, err := w.WriteString("\n")
		return err
	}
	return writeWrapped(w, seq, g.Wrap)
}

func writeWrapped(w *bufio.Writer, seq []byte, width int) error {
	if width <= 0 || len(seq) <= width {
		w.Write(seq)
		return w.WriteByte('\n')
	}
	for start := 0; start < len(seq); start += width {
		var end = min(start+width, len(seq))
		w.Write(seq[start:end])
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}

// WriteAll writes one record per length. tick, when not nil, is called
// after every record.
func (g *Generator) WriteAll(out io.Writer, lengths []uint64, tick func()) error {
	var w = bufio.NewWriterSize(out, 1<<20)
	for i, l := range lengths {
		if err := g.WriteRecord(w, i+1, l); err != nil {
			return err
		}
		if tick != nil {
			tick()
		}
	}
	return w.Flush()
}
