package logging

import (
	"context"
	"os"
	"strings"

	"github.com/shinyyama/skillswap-backend/internal/reqctx"
	log "github.com/sirupsen/logrus"
)

// Setup configures the global logrus logger. Unknown levels fall back to info.
func Setup(level string) {
	log.SetOutput(os.Stdout)
	log.SetFormatter(&log.JSONFormatter{})
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		log.Warnf("unknown LOG_LEVEL %q, using info", level)
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}

// FromContext returns an entry tagged with the request id and uid carried by ctx.
func FromContext(ctx context.Context) *log.Entry {
	fields := log.Fields{}
	if rid := reqctx.RequestID(ctx); rid != "" {
		fields["request_id"] = rid
	}
	if uid := reqctx.UID(ctx); uid != "" {
		fields["uid"] = uid
	}
	return log.WithFields(fields)
}
