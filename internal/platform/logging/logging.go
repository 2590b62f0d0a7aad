package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. Handlers and services attach request
// context via WithFields rather than formatting it into the message.
var Log = logrus.New()

func Init() {
	Log.SetOutput(os.Stdout)
	Log.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)
}
