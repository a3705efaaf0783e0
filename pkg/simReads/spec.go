package simReads

import (
	"bufio"
	"io"
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrSpec marks a malformed COUNT*SIZE token or range.
var ErrSpec = errors.New("invalid read spec")

// ReadSpec asks for Count reads of Size bases.
type ReadSpec struct {
	Count uint64
	Size  uint64
}

func (s ReadSpec) String() string {
	return strconv.FormatUint(s.Count, 10) + "*" + strconv.FormatUint(s.Size, 10)
}

// regexp
var specToken = regexp.MustCompile(`^(\d+)\*(\d+)([KkMmGg]?)$`)

var multiplier = map[string]uint64{
	"":  1,
	"K": 1000,
	"M": 1000000,
	"G": 1000000000,
}

// IsSpec reports whether arg looks like a COUNT*SIZE token.
func IsSpec(arg string) bool {
	return strings.Contains(arg, "*")
}

// ParseSpec parses COUNT*SIZE[KMG]; the suffix is case-insensitive and
// decimal (K=1e3, M=1e6, G=1e9).
func ParseSpec(token string) (ReadSpec, error) {
	var m = specToken.FindStringSubmatch(token)
	if m == nil {
		return ReadSpec{}, errors.Wrapf(ErrSpec, "%q: want COUNT*SIZE[KMG]", token)
	}
	count, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return ReadSpec{}, errors.Wrapf(ErrSpec, "%q: count: %v", token, err)
	}
	size, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil {
		return ReadSpec{}, errors.Wrapf(ErrSpec, "%q: size: %v", token, err)
	}
	var mul = multiplier[strings.ToUpper(m[3])]
	if size > math.MaxUint64/mul {
		return ReadSpec{}, errors.Wrapf(ErrSpec, "%q: size overflows", token)
	}
	size *= mul
	if count == 0 || size == 0 {
		return ReadSpec{}, errors.Wrapf(ErrSpec, "%q: count and size must be positive", token)
	}
	return ReadSpec{Count: count, Size: size}, nil
}

func ParseSpecs(tokens []string) ([]ReadSpec, error) {
	var specs = make([]ReadSpec, 0, len(tokens))
	for _, token := range tokens {
		spec, err := ParseSpec(token)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// Expand flattens specs into one length per read, in spec order.
func Expand(specs []ReadSpec) []uint64 {
	var n uint64
	for _, s := range specs {
		n += s.Count
	}
	var lengths = make([]uint64, 0, n)
	for _, s := range specs {
		for i := uint64(0); i < s.Count; i++ {
			lengths = append(lengths, s.Size)
		}
	}
	return lengths
}

// Shuffle permutes lengths in place (Fisher-Yates).
func Shuffle(lengths []uint64, rng *rand.Rand) {
	rng.Shuffle(len(lengths), func(i, j int) {
		lengths[i], lengths[j] = lengths[j], lengths[i]
	})
}

// ReadSpecTable reads a "length,count" CSV with a header line. Rows that
// do not hold two positive integers are skipped and their 1-based line
// numbers returned.
func ReadSpecTable(r io.Reader) ([]ReadSpec, []int, error) {
	var (
		scanner = bufio.NewScanner(r)
		specs   []ReadSpec
		skipped []int
		lineNum int
	)
	for scanner.Scan() {
		lineNum++
		if lineNum == 1 {
			continue
		}
		var line = strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var fields = strings.Split(line, ",")
		if len(fields) < 2 {
			skipped = append(skipped, lineNum)
			continue
		}
		length, err1 := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
		count, err2 := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 64)
		if err1 != nil || err2 != nil || length <= 0 || count <= 0 {
			skipped = append(skipped, lineNum)
			continue
		}
		specs = append(specs, ReadSpec{Count: uint64(count), Size: uint64(length)})
	}
	return specs, skipped, scanner.Err()
}

// RandomLengths draws a read count uniformly from [minSeqs,maxSeqs] and
// then that many lengths uniformly from [minLen,maxLen].
func RandomLengths(rng *rand.Rand, minSeqs, maxSeqs, minLen, maxLen int) ([]uint64, error) {
	if minSeqs <= 0 || maxSeqs <= 0 || minLen <= 0 || maxLen <= 0 {
		return nil, errors.Wrap(ErrSpec, "all numeric inputs must be positive integers")
	}
	if minSeqs > maxSeqs || minLen > maxLen {
		return nil, errors.Wrap(ErrSpec, "min values must be less than or equal to max values")
	}
	var (
		n       = rng.Intn(maxSeqs-minSeqs+1) + minSeqs
		lengths = make([]uint64, n)
	)
	for i := range lengths {
		lengths[i] = uint64(rng.Intn(maxLen-minLen+1) + minLen)
	}
	return lengths, nil
}
