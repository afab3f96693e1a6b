package logger

import (
	"context"
	"hotelier/config"
	"hotelier/shared/constant"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}

	log.Logger = log.Output(output)
	log.Trace().Msg("Zerolog initialized.")
}

// Configure applies the configured level and switches to structured JSON lines outside development.
func Configure(config *config.Config) {
	SetLogLevel(config)

	if config.Server.Env == constant.ServerEnvProduction {
		SetOutput(os.Stdout)
	}
}

// SetOutput replaces the console writer with plain JSON lines written to w.
func SetOutput(w io.Writer) {
	log.Logger = zerolog.New(w).With().Timestamp().Str("service", "hotelier").Logger()
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// Ctx returns the global logger enriched with the request id carried by ctx, if any.
func Ctx(ctx context.Context) *zerolog.Logger {
	requestID, _ := ctx.Value(constant.ContextKeyRequestID).(string)
	if requestID == "" {
		return &log.Logger
	}

	l := log.With().Str("request_id", requestID).Logger()

	return &l
}

func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}
