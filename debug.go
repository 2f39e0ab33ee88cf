package bough

import (
	"fmt"
	"io"
	"log"
	"os"
)

// logger receives warnings about misuse and aborted operations.
var logger = log.New(os.Stderr, "bough: ", log.LstdFlags)

// debugMode enables delivery tracing and tree-shape warnings.
var debugMode bool

// SetLogger replaces the package logger. A nil logger discards output.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	logger = l
}

// SetDebugMode enables or disables debug mode. When enabled, every delivery
// step is traced to the logger and deep or wide trees are reported.
func SetDebugMode(enabled bool) {
	debugMode = enabled
}

// warnf logs a misuse or an aborted operation. Never fatal.
func warnf(format string, args ...any) {
	logger.Printf("warning: "+format, args...)
}

// tracef logs a delivery step in debug mode.
func tracef(format string, args ...any) {
	if debugMode {
		logger.Printf("trace: "+format, args...)
	}
}

// checkDisposed logs a warning when a disposed item is used in a tree
// operation and reports whether the operation must be skipped.
func checkDisposed(it *Item, op string) bool {
	if it.disposed {
		warnf("%s on disposed item %q is ignored", op, it.Name)
		return true
	}
	return false
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(it *Item) {
	if depth := it.Depth() + 1; depth > debugMaxTreeDepth {
		warnf("tree depth %d exceeds %d (item %q)", depth, debugMaxTreeDepth, it.Name)
	}
}

// debugCheckChildCount warns if an item has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(it *Item) {
	if len(it.children) > debugMaxChildCount {
		warnf("item %q has %d children (threshold %d)", it.Name, len(it.children), debugMaxChildCount)
	}
}

// DumpTree writes the subtree rooted at it, one item per line, in paint order
// with flags that affect delivery.
func DumpTree(w io.Writer, it *Item) {
	dumpTree(w, it, 0)
}

func dumpTree(w io.Writer, it *Item, depth int) {
	_, _ = fmt.Fprintf(w, "%*s%s (%g,%g %gx%g)", depth*2, "", it, it.X, it.Y, it.Width, it.Height)
	if it.z != 0 {
		_, _ = fmt.Fprintf(w, " z=%g", it.z)
	}
	if !it.effectiveVisible {
		_, _ = fmt.Fprint(w, " hidden")
	}
	if !it.effectiveEnabled {
		_, _ = fmt.Fprint(w, " disabled")
	}
	if it.Clip {
		_, _ = fmt.Fprint(w, " clip")
	}
	if it.focusScope {
		_, _ = fmt.Fprint(w, " scope")
	}
	if it.activeFocus {
		_, _ = fmt.Fprint(w, " activefocus")
	} else if it.focus {
		_, _ = fmt.Fprint(w, " focus")
	}
	_, _ = fmt.Fprintln(w)
	for _, c := range it.PaintOrderChildren() {
		dumpTree(w, c, depth+1)
	}
}
