package shmqueue

import "github.com/sirupsen/logrus"

// log is the package-wide structured logger, overridable by SetLogger for
// hosts that want to route shmqueue's diagnostics into their own logrus
// instance rather than the standard one.
var log = logrus.StandardLogger()

// SetLogger replaces the logger used for every channel's diagnostics.
func SetLogger(l *logrus.Logger) {
	log = l
}

func newChannelLogger(name string, scope Scope, dir Direction) *logrus.Entry {
	return log.WithFields(logrus.Fields{
		"channel":   name,
		"scope":     scope.String(),
		"direction": dir.String(),
	})
}
