package publish

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryPublisherRecordsEvents(t *testing.T) {
	t.Parallel()

	pub := NewMemory()

	id1, err := pub.Publish(context.Background(), NewEvent("http://example.com/a", 3))
	require.NoError(t, err)
	require.Equal(t, "memory-1", id1)

	id2, err := pub.Publish(context.Background(), NewEvent("http://example.com/b", 1))
	require.NoError(t, err)
	require.Equal(t, "memory-2", id2)

	events := pub.Events()
	require.Len(t, events, 2)
	require.Equal(t, "http://example.com/a", events[0].URL)
	require.Equal(t, 3, events[0].QuestionCount)
	require.NotEmpty(t, events[0].EventID)
	require.NotEqual(t, events[0].EventID, events[1].EventID)

	events[0].URL = "modified"
	require.Equal(t, "http://example.com/a", pub.Events()[0].URL)
}
