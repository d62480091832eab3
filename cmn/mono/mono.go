// Package mono provides monotonic-clock helpers, mirroring aistore's
// cmn/mono package used to time xaction phases without wall-clock skew.
/*
 * Copyright (c) 2026, ghjramos. All rights reserved.
 */
package mono

import "time"

var start = time.Now()

// NanoTime returns nanoseconds elapsed since process start, monotonic.
func NanoTime() int64 {
	return time.Since(start).Nanoseconds()
}

// Since returns the duration elapsed since a NanoTime reading.
func Since(t int64) time.Duration {
	return time.Duration(NanoTime() - t)
}
