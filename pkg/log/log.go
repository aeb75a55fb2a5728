// Package log configures the logrus logger shared by every command.
package log

import (
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

// New returns a logrus entry tagged with the program name and version.
func New(version string) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"version": version,
		"program": "leakreview",
	})
}

// SetLevel sets the log level. An empty level keeps the current one.
func SetLevel(level string, logE *logrus.Entry) {
	if level == "" {
		return
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logerr.WithError(logE, err).WithField("log_level", level).Error("the log level is invalid")
		return
	}
	logE.Logger.SetLevel(lvl)
}

// SetColor forces or disables colored log output.
// It is forced on GitHub Actions, where stderr isn't a terminal but renders ANSI colors.
func SetColor(enabled bool, logE *logrus.Entry) {
	if !enabled {
		return
	}
	logE.Logger.SetFormatter(&logrus.TextFormatter{
		ForceColors: true,
	})
}
