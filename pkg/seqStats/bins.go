package seqStats

// BinBounds are the inclusive upper bounds of the read-length histogram.
var BinBounds = []uint64{
	10, 100, 1000, 2500, 5000, 10000, 20000, 35000, 50000,
	75000, 100000, 200000, 300000, 500000, 750000, 1000000,
}

// Bin returns the index of the first bound >= length; longer reads fall
// into the last bin.
func Bin(length uint64) int {
	for i, b := range BinBounds {
		if length <= b {
			return i
		}
	}
	return len(BinBounds) - 1
}

// Bins counts lengths per BinBounds entry.
func Bins(lengths []uint64) []uint64 {
	var counts = make([]uint64, len(BinBounds))
	for _, l := range lengths {
		counts[Bin(l)]++
	}
	return counts
}
