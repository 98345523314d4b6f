package reqctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestID(ctx))
	assert.Empty(t, UID(ctx))

	ctx = WithUID(WithRequestID(ctx, "rid-1"), "user-1")
	assert.Equal(t, "rid-1", RequestID(ctx))
	assert.Equal(t, "user-1", UID(ctx))
}
