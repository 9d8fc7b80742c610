package prng

import (
	"math"
	"time"
)

// Float seeds must truncate to something that fits in a uint64.
const maxSeedFloat = 1 << 64

func deriveSeed(seed any, now func() time.Time) (uint64, error) {
	switch v := seed.(type) {
	case nil:
		return absInt64(now().Unix()), nil
	case string:
		return uint64(Checksum(v)), nil
	case int:
		return absInt64(int64(v)), nil
	case int8:
		return absInt64(int64(v)), nil
	case int16:
		return absInt64(int64(v)), nil
	case int32:
		return absInt64(int64(v)), nil
	case int64:
		return absInt64(v), nil
	case uint:
		return uint64(v), nil
	case uint8:
		return uint64(v), nil
	case uint16:
		return uint64(v), nil
	case uint32:
		return uint64(v), nil
	case uint64:
		return v, nil
	case float32:
		return floatSeed(float64(v), seed)
	case float64:
		return floatSeed(v, seed)
	}
	return 0, &InvalidSeedError{Value: seed}
}

func absInt64(v int64) uint64 {
	if v < 0 {
		// -(v+1) cannot overflow, even for math.MinInt64.
		return uint64(-(v + 1)) + 1
	}
	return uint64(v)
}

func floatSeed(f float64, orig any) (uint64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &InvalidSeedError{Value: orig}
	}
	f = math.Trunc(math.Abs(f))
	if f >= maxSeedFloat {
		return 0, &InvalidSeedError{Value: orig}
	}
	return uint64(f), nil
}
