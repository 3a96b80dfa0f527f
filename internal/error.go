package internal

import (
	"sync"
	"time"

	sentry "github.com/getsentry/sentry-go"
)

var (
	sentryEnabled = false
	sentryOnce    sync.Once
)

// InitErrorHandler enables sentry if dsn is given. Only first call takes effect.
func InitErrorHandler(dsn, env string) {
	sentryOnce.Do(func() {
		if dsn == "" {
			return
		}

		err := sentry.Init(sentry.ClientOptions{
			Dsn:         dsn,
			Environment: env,
		})
		if err != nil {
			Logger.WithError(err).Error("sentry.Init")
			return
		}
		sentryEnabled = true
	})
}

// HandleError sends error to sentry if sentry configuration is available
func HandleError(err error) {
	r := Logger.WithError(err)

	if sentryEnabled {
		eventID := sentry.CaptureException(err)
		if eventID != nil {
			r = r.WithField("sentry eventID", *eventID)
		}
	}

	r.Error("Error")
}

// FlushError flushs error to sentry
func FlushError() {
	if sentryEnabled {
		sentry.Flush(2 * time.Second)
	}
}
