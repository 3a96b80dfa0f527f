package internal

import (
	"github.com/sirupsen/logrus"
)

// Logger can be modified by external for testing
var Logger = logrus.New()

// SetLogLevel changes log level by name (case insensitive, e.g. DEBUG or info).
// Unknown name is logged and ignored.
func SetLogLevel(level string) {
	lv, err := logrus.ParseLevel(level)
	if err != nil {
		Logger.WithField("level", level).Warn("Unknown log level, ignored")
		return
	}
	Logger.SetLevel(lv)
}
