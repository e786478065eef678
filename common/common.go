package common

import (
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
)

var (
	// ProjectID is the google cloud project used for logging, profiling and secrets.
	// It may be empty when the command center runs outside of google cloud.
	ProjectID string

	// Env is the name of the running environment (production, development).
	Env string

	// Production flag indicating if app is running the production configuration
	Production bool

	// IsLocalhost flag indicating if app is running on localhost
	IsLocalhost bool

	// ServiceName and ServiceVersion identify the deployment in logs and error reports.
	ServiceName    string
	ServiceVersion string

	// CtxKeys are the gin context keys set by the authentication middlewares.
	CtxKeys struct {
		Email     string
		Name      string
		CSRFToken string
	}
)

func init() {
	initEnvVariables()
}

func initEnvVariables() {
	ProjectID = GetEnv("GOOGLE_CLOUD_PROJECT", "")
	IsLocalhost = gin.Mode() != gin.ReleaseMode
	ServiceName = GetEnv("SERVICE_NAME", "commandcenter")
	ServiceVersion = GetEnv("SERVICE_VERSION", "localhost")

	Env = GetEnv("ENVIRONMENT", "development")
	Production = Env == "production"

	CtxKeys.Email = "email"
	CtxKeys.Name = "name"
	CtxKeys.CSRFToken = "csrfToken"
}

// GetEnv returns the value of the environment variable named by the key,
// or the fallback value if the variable is not present.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

// GetEnvBool parses a boolean environment variable, returning the fallback
// value when the variable is absent or malformed.
func GetEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}

	return b
}
