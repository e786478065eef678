package logger

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/logging"
	"github.com/gin-gonic/gin"
	"google.golang.org/genproto/googleapis/api/monitoredres"

	"github.com/doitintl/hello/commandcenter/common"
)

const (
	// CtxLoggerKey is how request values or stored/retrieved.
	CtxLoggerKey = "app-logger"

	// requestLogID holds one summarized entry per request.
	requestLogID = "commandcenter_requests"

	// appLogID holds the entries written while serving a request.
	appLogID = "commandcenter_app"

	serviceField   = "service"
	projectIDField = "project_id"
	versionField   = "version"

	traceHeader = "X-Cloud-Trace-Context"

	gcpLogging = "GCP_LOGGING"
)

var (
	requestLogger *logging.Logger
	appLogger     *logging.Logger
	resource      *monitoredres.MonitoredResource
	cloudLogging  bool
)

type Provider func(ctx context.Context) ILogger

// Logging owns the cloud logging client, if one is configured.
type Logging struct {
	client *logging.Client
}

// NewLogging initializes the cloud logging loggers. Cloud logging is enabled
// when GCP_LOGGING is true and a google cloud project is configured, otherwise
// entries are written to the standard logger only.
func NewLogging(ctx context.Context) (*Logging, error) {
	cloudLogging = common.GetEnvBool(gcpLogging, !common.IsLocalhost) && common.ProjectID != ""
	if !cloudLogging {
		return &Logging{}, nil
	}

	client, err := logging.NewClient(ctx, common.ProjectID)
	if err != nil {
		return nil, err
	}

	requestLogger = client.Logger(requestLogID)
	appLogger = client.Logger(appLogID)

	resource = &monitoredres.MonitoredResource{
		Type: "global",
		Labels: map[string]string{
			projectIDField: common.ProjectID,
		},
	}

	return &Logging{client: client}, nil
}

// Logger returns the logger that was stored inside the context.
func (l *Logging) Logger(ctx context.Context) ILogger {
	return FromContext(ctx)
}

// Close flushes pending entries.
func (l *Logging) Close() error {
	if l.client == nil {
		return nil
	}

	return l.client.Close()
}

// NewLogger sets gin.Context with a new logger, with the related google trace id.
func NewLogger(ctx *gin.Context) (*Logger, error) {
	l := newDefaultLogger()

	var h string
	if ctx.Request != nil {
		h = ctx.Request.Header.Get(traceHeader)
	}

	if h != "" {
		if i := strings.IndexByte(h, '/'); i > 0 {
			if t := h[:i]; strings.Count(t, "0") != len(t) {
				l.trace = getTrace(t)
			}
		}
	}

	ctx.Set(CtxLoggerKey, l)

	return l, nil
}

// FromContext returns the logger that was stored in context.
// If there isn't logger stored, returns a new logger.
func FromContext(ctx context.Context) ILogger {
	if ctx != nil {
		if l, ok := ctx.Value(CtxLoggerKey).(*Logger); ok {
			return l
		}
	}

	return newDefaultLogger()
}

func getTrace(id string) string {
	if common.ProjectID == "" {
		return id
	}

	return fmt.Sprintf("projects/%s/traces/%s", common.ProjectID, id)
}

func defaultLabels() map[string]string {
	return map[string]string{
		serviceField: common.ServiceName,
		versionField: common.ServiceVersion,
	}
}
