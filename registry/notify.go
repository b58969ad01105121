package registry

import (
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

// Severity of a notify message. Lower is more important.
type Severity int32

const (
	Always Severity = iota
	Fatal
	Warn
	Notice
	Info
	Debug
)

// NotifyLevelEnv overrides the initial notify level.
const NotifyLevelEnv = "GLTFSCENE_NOTIFY_LEVEL"

var (
	notifyLevel   = int32(Notice)
	notifyOut     = log.New(os.Stderr, "", log.LstdFlags)
	discardLogger = log.New(io.Discard, "", 0)
)

func init() {
	if lv, ok := ParseSeverity(os.Getenv(NotifyLevelEnv)); ok {
		SetNotifyLevel(lv)
	}
}

// ParseSeverity accepts level names such as "WARN" or "debug".
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ALWAYS":
		return Always, true
	case "FATAL":
		return Fatal, true
	case "WARN", "WARNING":
		return Warn, true
	case "NOTICE":
		return Notice, true
	case "INFO":
		return Info, true
	case "DEBUG", "DEBUG_INFO":
		return Debug, true
	}
	return Notice, false
}

func SetNotifyLevel(lv Severity) {
	atomic.StoreInt32(&notifyLevel, int32(lv))
}

func NotifyLevel() Severity {
	return Severity(atomic.LoadInt32(&notifyLevel))
}

// SetNotifyOutput redirects notify messages. nil restores stderr.
func SetNotifyOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	notifyOut.SetOutput(w)
}

// IsNotifyEnabled reports whether messages at lv are printed.
func IsNotifyEnabled(lv Severity) bool {
	return lv <= NotifyLevel()
}

// Notify returns the logger for lv. Messages above the current level are discarded.
func Notify(lv Severity) *log.Logger {
	if !IsNotifyEnabled(lv) {
		return discardLogger
	}
	return notifyOut
}
