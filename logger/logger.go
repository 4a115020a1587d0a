package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// L - общий логгер процесса
var L = logrus.New()

// Setup настраивает формат и уровень логирования
func Setup(level string) {
	L.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	L.SetOutput(os.Stdout)

	switch level {
	case "debug":
		L.SetLevel(logrus.DebugLevel)
	case "info":
		L.SetLevel(logrus.InfoLevel)
	case "warn":
		L.SetLevel(logrus.WarnLevel)
	case "error":
		L.SetLevel(logrus.ErrorLevel)
	default:
		L.SetLevel(logrus.InfoLevel)
	}
}
