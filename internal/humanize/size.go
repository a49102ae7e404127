package humanize

import "github.com/dustin/go-humanize"

// IBytes returns a human-readable representation of a size in bytes (IEC units, e.g. "10.5 MiB").
// Negative values keep their sign.
func IBytes[T integer](size T) string {
	if size < 0 {
		return "-" + humanize.IBytes(uint64(-int64(size)))
	}

	return humanize.IBytes(uint64(size))
}

// IBytesDiff returns a human-readable representation of the difference between two sizes in
// bytes (e.g. "-1.5 MiB" when b is bigger than a).
func IBytesDiff[A, B integer](a A, b B) string {
	return IBytes(int64(a) - int64(b))
}
