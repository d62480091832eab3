// Package nlog is a minimal leveled logger in the style of aistore's cmn/nlog:
// a thin wrapper over the standard logger that tags every line with a level
// and writes to stderr, with no external logging dependency.
/*
 * Copyright (c) 2026, ghjramos. All rights reserved.
 */
package nlog

import (
	"log"
	"os"
)

var std = log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds)

func Infof(format string, args ...any)    { std.Printf("I "+format, args...) }
func Infoln(args ...any)                  { std.Println(append([]any{"I"}, args...)...) }
func Warningf(format string, args ...any) { std.Printf("W "+format, args...) }
func Warningln(args ...any)               { std.Println(append([]any{"W"}, args...)...) }
func Errorf(format string, args ...any)   { std.Printf("E "+format, args...) }
func Errorln(args ...any)                 { std.Println(append([]any{"E"}, args...)...) }
