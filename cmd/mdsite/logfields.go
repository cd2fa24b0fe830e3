package main

import (
	"log/slog"
	"time"
)

// Canonical log field names shared by build, serve and doctor.
const (
	KeyPage       = "page"
	KeyOutput     = "output"
	KeyPath       = "path"
	KeyAddr       = "addr"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

func logPage(path string) slog.Attr   { return slog.String(KeyPage, path) }
func logOutput(path string) slog.Attr { return slog.String(KeyOutput, path) }
func logPath(path string) slog.Attr   { return slog.String(KeyPath, path) }
func logAddr(addr string) slog.Attr   { return slog.String(KeyAddr, addr) }
func logCount(n int) slog.Attr        { return slog.Int(KeyCount, n) }

func logDuration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

func logError(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
