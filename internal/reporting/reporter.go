package reporting

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// logName must contain "err" so automated error classification on the
// receiving side picks the entries up.
const logName = "errors"

const resourceType = "cloud_function"

// ErrorEvent is the structured record forwarded to the diagnostic log.
type ErrorEvent struct {
	Message        string            `json:"message"`
	ServiceContext ServiceContext    `json:"serviceContext"`
	Context        map[string]string `json:"context,omitempty"`
}

type ServiceContext struct {
	Service      string `json:"service"`
	ResourceType string `json:"resourceType"`
}

// Sink is the downstream log stream. A write resolves once the sink has
// acknowledged the entry.
type Sink interface {
	Write(logName string, metadata map[string]string, event ErrorEvent) error
}

// Reporter formats failures into diagnostic events tagged with the
// deployment's service identity and submits them to the sink.
type Reporter interface {
	Report(err error, context map[string]string) error
}

type reporter struct {
	sink    Sink
	service string
}

func NewReporter(sink Sink, service string) Reporter {
	return &reporter{sink: sink, service: service}
}

func (r *reporter) Report(err error, context map[string]string) error {
	event := ErrorEvent{
		Message: fmt.Sprintf("%+v", err),
		ServiceContext: ServiceContext{
			Service:      r.service,
			ResourceType: resourceType,
		},
		Context: context,
	}

	metadata := map[string]string{
		"resource_type": resourceType,
		"function_name": r.service,
	}

	if werr := r.sink.Write(logName, metadata, event); werr != nil {
		return fmt.Errorf("writing error report: %w", werr)
	}

	return nil
}

// LogSink writes diagnostic events as structured logrus entries.
type LogSink struct{}

func (LogSink) Write(logName string, metadata map[string]string, event ErrorEvent) error {
	log.WithFields(log.Fields{
		"log":      logName,
		"service":  event.ServiceContext.Service,
		"resource": event.ServiceContext.ResourceType,
		"metadata": metadata,
		"context":  event.Context,
	}).Error(event.Message)

	return nil
}
