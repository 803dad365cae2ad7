package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	Development = "development"
	Testing     = "testing"
	Production  = "production"
)

// Init global zerolog loggerini muhitga qarab sozlash
func Init(environment string) {
	InitWithWriter(environment, os.Stdout)
}

// InitWithWriter loggerni berilgan writer bilan sozlash
func InitWithWriter(environment string, w io.Writer) {
	switch environment {
	case Production:
		log.Logger = zerolog.New(w).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	case Testing:
		log.Logger = zerolog.New(w).With().Timestamp().Logger().Level(zerolog.WarnLevel)
	default:
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Caller().Logger().Level(zerolog.DebugLevel)
	}
}

// Component komponent nomi bilan child logger
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
