package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level  string
	Format string // "json" ou "text"
	File   string // vazio = só stdout
}

var (
	mu  sync.RWMutex
	log = logrus.New()
)

// Init configura o logger global. Pode ser chamado de novo (ex.: testes).
func Init(cfg Config) *logrus.Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if cfg.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
		})
	}

	var out io.Writer = os.Stdout
	if cfg.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    100, // MB
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		})
	}
	l.SetOutput(out)

	mu.Lock()
	log = l
	mu.Unlock()
	return l
}

// L devolve o logger global.
func L() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func WithOutreach(id string) *logrus.Entry {
	return L().WithField("outreach_id", id)
}
