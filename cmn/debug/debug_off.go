//go:build !debug

/*
 * Copyright (c) 2026, ghjramos. All rights reserved.
 */
package debug

func init() { enabled = false }
