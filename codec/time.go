package codec

import (
	"time"

	dyncodec "github.com/reoring/dyncodec"
)

// TimeRFC3339 converts between RFC3339 strings and time.Time. Decoding
// accepts fractional seconds (RFC3339Nano), encoding normalizes to UTC and
// trims trailing zeros.
func TimeRFC3339() Codec[time.Time] {
	return ComapFlatMap(String(),
		func(s string) dyncodec.DataResult[time.Time] {
			t, err := parseRFC3339(s)
			if err != nil {
				return dyncodec.Error[time.Time]("invalid RFC3339 time: " + s)
			}
			return dyncodec.Success(t)
		},
		formatRFC3339Canonical,
	)
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}
