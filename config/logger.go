package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logg *logrus.Logger

func GetLogger() *logrus.Logger {
	return logg
}

func init() {
	logg = logrus.New()
	logg.SetFormatter(&logrus.JSONFormatter{})
	logg.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logg.SetLevel(level)
}

// LogError attaches the module/function context the dashboard team greps for.
func LogError(moduleName, funcName string, err error, fields logrus.Fields) {
	if fields == nil {
		fields = logrus.Fields{}
	}
	fields["module"] = moduleName
	fields["funcName"] = funcName
	logg.WithFields(fields).Error(err.Error())
}
