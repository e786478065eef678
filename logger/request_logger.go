package logger

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Logger stores the needed functionality to print a log.
type Logger struct {
	mu       sync.Mutex
	trace    string
	started  time.Time
	severity logging.Severity
	labels   map[string]string
}

func newDefaultLogger() *Logger {
	return &Logger{
		started: time.Now(),
		trace:   getTrace(strings.ReplaceAll(uuid.NewString(), "-", "")),
		labels:  defaultLabels(),
	}
}

// Trace returns the trace stored in logger.
func (l *Logger) Trace() string {
	return l.trace
}

// SetLabel allows to optionally specify key/value labels for log entry.
func (l *Logger) SetLabel(key, value string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.labels[key] = value
}

// SetLabels allows to optionally add additional labels for log entry.
func (l *Logger) SetLabels(labels map[string]string) {
	for key, value := range labels {
		l.SetLabel(key, value)
	}
}

// End writes the summarized request entry, with the highest severity seen.
func (l *Logger) End(ctx *gin.Context) {
	if !cloudLogging || requestLogger == nil {
		return
	}

	l.mu.Lock()
	labels := make(map[string]string, len(l.labels))

	for k, v := range l.labels {
		labels[k] = v
	}

	severity := l.severity
	l.mu.Unlock()

	requestLogger.Log(logging.Entry{
		Trace:    l.trace,
		Severity: severity,
		HTTPRequest: &logging.HTTPRequest{
			Request:      ctx.Request,
			Status:       ctx.Writer.Status(),
			Latency:      time.Since(l.started),
			ResponseSize: int64(ctx.Writer.Size()),
		},
		Labels:   labels,
		Resource: resource,
	})
}

func logReqEntry(s logging.Severity, l *Logger, msg string) {
	l.mu.Lock()
	if s > l.severity {
		l.severity = s
	}
	l.mu.Unlock()

	if cloudLogging && appLogger != nil {
		appLogger.Log(logging.Entry{
			Payload:  msg,
			Severity: s,
			Trace:    l.trace,
			Resource: resource,
		})

		if gin.Mode() == gin.ReleaseMode {
			return
		}
	}

	log.Printf("[%s] %s\n", strings.ToLower(s.String()), msg)
}

func logReq(s logging.Severity, l *Logger, v ...interface{}) {
	logReqEntry(s, l, fmt.Sprint(v...))
}

func logReqf(s logging.Severity, l *Logger, format string, v ...interface{}) {
	logReqEntry(s, l, fmt.Sprintf(format, v...))
}

func (l *Logger) Debug(v ...interface{}) {
	logReq(logging.Debug, l, v...)
}

func (l *Logger) Info(v ...interface{}) {
	logReq(logging.Info, l, v...)
}

func (l *Logger) Print(v ...interface{}) {
	logReq(logging.Info, l, v...)
}

func (l *Logger) Warning(v ...interface{}) {
	logReq(logging.Warning, l, v...)
}

func (l *Logger) Error(v ...interface{}) {
	logReq(logging.Error, l, v...)
}

func (l *Logger) Debugf(format string, v ...interface{}) {
	logReqf(logging.Debug, l, format, v...)
}

func (l *Logger) Infof(format string, v ...interface{}) {
	logReqf(logging.Info, l, format, v...)
}

func (l *Logger) Printf(format string, v ...interface{}) {
	logReqf(logging.Info, l, format, v...)
}

func (l *Logger) Warningf(format string, v ...interface{}) {
	logReqf(logging.Warning, l, format, v...)
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	logReqf(logging.Error, l, format, v...)
}
