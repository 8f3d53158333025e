package logger

import (
	"io"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

type rotateFileHook struct {
	level     logrus.Level
	writer    io.Writer
	formatter logrus.Formatter
}

func newRotateFileHook(level logrus.Level, writer io.Writer) *rotateFileHook {
	return &rotateFileHook{
		level:  level,
		writer: writer,
		formatter: &prefixed.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			DisableColors:   true,
			ForceFormatting: true,
		},
	}
}

func (h *rotateFileHook) Levels() []logrus.Level {
	return logrus.AllLevels[:h.level+1]
}

func (h *rotateFileHook) Fire(entry *logrus.Entry) error {
	b, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.writer.Write(b)
	return err
}
