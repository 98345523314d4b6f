package logging

import (
	"context"
	"testing"

	"github.com/shinyyama/skillswap-backend/internal/reqctx"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetup_Level(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	Setup("DEBUG")
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	Setup("nonsense")
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}

func TestFromContext(t *testing.T) {
	ctx := reqctx.WithUID(reqctx.WithRequestID(context.Background(), "rid-9"), "u-9")
	entry := FromContext(ctx)
	assert.Equal(t, "rid-9", entry.Data["request_id"])
	assert.Equal(t, "u-9", entry.Data["uid"])

	assert.Empty(t, FromContext(context.Background()).Data)
}
