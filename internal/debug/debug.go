package debug

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Debug levels
const (
	LevelOff     = 0 // No output
	LevelInfo    = 1 // Important info (drawing loaded, projects saved)
	LevelLive    = 2 // Live info (units added/removed, drags started/ended)
	LevelVerbose = 3 // Verbose (view changes, resolved scales, settings)
	LevelTrace   = 4 // Trace (every drag step and recompute)
)

var (
	level  int
	logger *log.Logger
)

// Init initializes the debug system with a level (0-4), writing to stdout.
// 0 = no output
// 1 = important info
// 2 = live info (interaction events)
// 3 = verbose (view and calculation details)
// 4 = trace (per pointer move)
func Init(debugLevel int) {
	InitWriter(debugLevel, os.Stdout)
}

// InitWriter is Init with an explicit destination
func InitWriter(debugLevel int, w io.Writer) {
	level = debugLevel
	logger = nil
	if level > LevelOff {
		logger = log.New(w, "[throwplan] ", log.LstdFlags|log.Lmicroseconds)
	}
}

// Level returns the current debug level.
func Level() int {
	return level
}

// IsEnabled returns true if debug level is >= the requested level.
func IsEnabled(minLevel int) bool {
	return level >= minLevel
}

// --- Level 1 functions (Info) ---

// Info prints a level 1 message (important info).
func Info(format string, args ...interface{}) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[INFO] "+format, args...)
	}
}

// Drawing prints the size of a newly loaded page (level 1).
func Drawing(source string, page, pages int, width, height int) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[INFO] Drawing %s page %d/%d: %dx%d px", source, page, pages, width, height)
	}
}

// Value prints a named value in formatted form (level 1).
func Value(name string, value interface{}) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[INFO]   %s = %v", name, value)
	}
}

// --- Level 2 functions (Live) ---

// Live prints a level 2 message (live info).
func Live(format string, args ...interface{}) {
	if level >= LevelLive && logger != nil {
		logger.Printf("[LIVE] "+format, args...)
	}
}

// Drag prints the start or end of a drag gesture (level 2).
func Drag(phase, target string, x, y float64) {
	if level >= LevelLive && logger != nil {
		logger.Printf("[LIVE] Drag %s: %s at (%.1f, %.1f)", phase, target, x, y)
	}
}

// --- Level 3 functions (Verbose) ---

// Verbose prints a level 3 message (verbose).
func Verbose(format string, args ...interface{}) {
	if level >= LevelVerbose && logger != nil {
		logger.Printf("[VERBOSE] "+format, args...)
	}
}

// Section prints a section separator (level 3).
func Section(name string) {
	if level >= LevelVerbose && logger != nil {
		logger.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		logger.Printf("  %s", name)
		logger.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	}
}

// PrintStruct prints a struct in formatted form (level 3).
func PrintStruct(name string, v interface{}) {
	if level >= LevelVerbose && logger != nil {
		logger.Printf("[VERBOSE] %s: %+v", name, v)
	}
}

// --- Level 4 functions (Trace) ---

// Trace prints a level 4 message (trace).
func Trace(format string, args ...interface{}) {
	if level >= LevelTrace && logger != nil {
		logger.Printf("[TRACE] "+format, args...)
	}
}

// --- General functions ---

// Error prints a debug error (level 1+).
func Error(err error) {
	if level >= LevelInfo && logger != nil {
		logger.Printf("[ERROR] %v", err)
	}
}

// Fmt is a helper function that returns a formatted string
// only if debug is enabled (to avoid unnecessary allocations).
func Fmt(format string, args ...interface{}) string {
	if level > 0 {
		return fmt.Sprintf(format, args...)
	}
	return ""
}
