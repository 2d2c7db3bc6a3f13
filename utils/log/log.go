package log

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// global accessible logger
var (
	LogV2 *Logger
)

// This init function is only for testing cases, where the entry point is not
// main function. Unit test will fail with nil pointer dereference if we don't
// init here.
func init() {
	initLogger()
}

type Logger struct {
	*logrus.Logger
}

func initLogger() {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	level, err := logrus.ParseLevel(strings.ToLower(os.Getenv("ANKH_LOG_LEVEL")))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	env := os.Getenv("ANKH_ENV")
	if len(env) == 0 {
		env = "unknown"
	}

	LogV2 = &Logger{l}
	LogV2.WithField("env", env).Debug("logger initialized")
}
