package tools

import "github.com/golang/glog"

var isEnabled = true

func EnableLogger() {
	isEnabled = true
}

func DisableLogger() {
	isEnabled = false
}

func IsLoggerEnabled() bool {
	return isEnabled
}

// Logs progress messages unless the logger has been disabled with -silent
func LogOutput(val ...interface{}) {
	if isEnabled {
		glog.InfoDepth(1, val...)
	}
}
