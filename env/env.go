// Evaluates relevant environment variables and provides reasonable defaults for runtime operation
package env

import (
	"os"
	"strings"
)

// Names of the supported environment variables
const (
	FORMAT          = "DIAG2RDFS_FORMAT"
	LEGACY_LABELS   = "DIAG2RDFS_LEGACY_LABELS"
	SQLITE_DSN      = "DIAG2RDFS_SQLITE_DSN"
	HTTP_TIMEOUT_MS = "DIAG2RDFS_HTTP_TIMEOUT_MS"
	HTTP_USER       = "DIAG2RDFS_HTTP_USER"
	HTTP_PASS       = "DIAG2RDFS_HTTP_PASS"
	USER_AGENT      = "DIAG2RDFS_USER_AGENT"
	VERBOSE         = "DIAG2RDFS_VERBOSE"
)

type Env struct {
	// output format: turtle, ntriples or jsonld
	Format,
	// when "true", subclass-of and scope note values are asserted as rdfs:label literals
	LegacyLabels,
	// DSN of the Sqlite database converted vocabularies are stored in; nothing is stored when empty
	SqliteDsn,
	// timeout in milliseconds for retrieving a diagram over http
	HttpTimeoutMs,
	// user and password sent in an Authorization header when retrieving a diagram over http
	HttpUser,
	HttpPassword,
	// User-Agent header sent when retrieving a diagram over http
	UserAgent,
	// when "true", conversion progress is logged
	Verbose string
}

// answers a struct containing supported environment variables
func New() Env {
	return Env{
		Format:        getEnv(FORMAT, "turtle"),
		LegacyLabels:  getEnv(LEGACY_LABELS, "false"),
		SqliteDsn:     getEnv(SQLITE_DSN, ""),
		HttpTimeoutMs: getEnv(HTTP_TIMEOUT_MS, "30000"),
		HttpUser:      getEnv(HTTP_USER, ""),
		HttpPassword:  getEnv(HTTP_PASS, ""),
		UserAgent:     getEnv(USER_AGENT, "diag2rdfs"),
		Verbose:       getEnv(VERBOSE, "false"),
	}
}

func getEnv(varName, defaultValue string) string {
	varName = strings.TrimSpace(varName)
	if strings.HasPrefix(varName, "${") {
		varName = varName[2:]
	}

	if strings.HasSuffix(varName, "}") {
		varName = varName[:len(varName)-1]
	}

	if value, exists := os.LookupEnv(varName); !exists {
		return defaultValue
	} else {
		return value
	}
}
