// Package bugreport отправляет ошибки программиста в Sentry.
// Без DSN отчёты только пишутся в лог.
package bugreport

import (
	"fmt"
	"time"

	"station-core/pkg/logger"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

const flushTimeout = 5 * time.Second

// Reporter реализует systems.BugReporter.
type Reporter struct {
	enabled bool
	log     *logrus.Entry
}

// Init настраивает Sentry. Пустой dsn даёт репортер, который только логирует.
func Init(dsn, environment, release string) (*Reporter, error) {
	r := &Reporter{log: logger.Log.WithField("component", "bugreport")}
	if dsn == "" {
		return r, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
		Release:     release,
	}); err != nil {
		return nil, fmt.Errorf("sentry init: %w", err)
	}
	r.enabled = true
	return r, nil
}

// Report отправляет ошибку с тегами.
func (r *Reporter) Report(err error, tags map[string]string) {
	if err == nil {
		return
	}
	r.log.WithError(err).WithField("tags", tags).Warn("Bug reported")
	if !r.enabled {
		return
	}

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
	})
	hub.CaptureException(err)
}

// Recover отправляет значение паники. Вызывается из defer после recover().
func (r *Reporter) Recover(panicValue any, tags map[string]string) {
	if panicValue == nil {
		return
	}
	err, ok := panicValue.(error)
	if !ok {
		err = fmt.Errorf("panic: %v", panicValue)
	}
	r.Report(err, tags)
}

// Flush дожидается отправки накопленных отчётов.
func (r *Reporter) Flush() {
	if r.enabled {
		sentry.Flush(flushTimeout)
	}
}
