package parser

import (
	"io/ioutil"

	"github.com/sirupsen/logrus"
)

// log is the package logger. It discards everything until a caller raises the
// level with WithLogger or SetLogLevel; parsing stays silent by default.
var log = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(ioutil.Discard)
	l.SetLevel(logrus.ErrorLevel)
	return l
}()

// SetLogLevel routes parser logging to the standard logrus output at the
// given level. Trace shows every tokenizer state transition and insertion
// mode change.
func SetLogLevel(level logrus.Level) {
	l := logrus.New()
	l.SetLevel(level)
	log = l
}
