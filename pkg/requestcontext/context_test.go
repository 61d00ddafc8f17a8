package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCaller(t *testing.T) {
	ctx := context.Background()
	_, ok := CallerOf(ctx)
	assert.False(t, ok)
	assert.Equal(t, "unknown", CallerID(ctx))
	assert.Empty(t, AuthType(ctx))

	ctx = WithCaller(ctx, "partner-a", "api-key")
	c, ok := CallerOf(ctx)
	assert.True(t, ok)
	assert.Equal(t, Caller{ID: "partner-a", AuthType: "api-key"}, c)
	assert.Equal(t, "partner-a", CallerID(ctx))

	t.Run("blank id is anonymous", func(t *testing.T) {
		ctx := WithCaller(context.Background(), "", "api-key")
		_, ok := CallerOf(ctx)
		assert.False(t, ok)
		assert.Equal(t, "unknown", CallerID(ctx))
		assert.Equal(t, "api-key", AuthType(ctx))
	})
}

func TestClientAndRequest(t *testing.T) {
	ctx := WithClientMetadata(context.Background(), "203.0.113.7", "curl/8.4.0")
	ctx = WithRequestID(ctx, "req-42")

	assert.Equal(t, "203.0.113.7", ClientIP(ctx))
	assert.Equal(t, "curl/8.4.0", UserAgent(ctx))
	assert.Equal(t, "req-42", RequestID(ctx))
	assert.Empty(t, RequestID(context.Background()))
}

func TestNow(t *testing.T) {
	pinned := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, pinned, Now(WithTime(context.Background(), pinned)))

	before := time.Now()
	assert.False(t, Now(context.Background()).Before(before))
}
