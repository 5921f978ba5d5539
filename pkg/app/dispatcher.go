package app

import (
	log "github.com/sirupsen/logrus"

	"shopfront/pkg/domain/service"
)

// logDispatcher records domain events in the application log. The demo
// has no message broker; the log is its event sink.
type logDispatcher struct{}

func NewLogDispatcher() service.EventDispatcher {
	return logDispatcher{}
}

func (logDispatcher) Dispatch(event service.Event) error {
	log.WithFields(log.Fields{"event": event.Type(), "payload": event}).Info("domain event")
	return nil
}
