package giantbomb

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	args := m.Called(ctx, rawURL)
	body, _ := args.Get(0).([]byte)
	return body, args.Error(1)
}

func TestClientWithMockFetcher(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, "https://api.test/franchises/?api_key=k&format=json&filter=name:zelda&limit=1").
		Return([]byte(`{"status_code": 1, "results": [{"id": 1, "name": "The Legend of Zelda"}]}`), nil).
		Once()

	c, err := New("k", WithBaseURL("https://api.test/"), WithFetcher(fetcher))
	require.NoError(t, err)

	franchises, err := c.Franchises(context.Background(), ListOptions{
		Limit:  1,
		Filter: map[string]string{"name": "zelda"},
	})
	require.NoError(t, err)
	require.Len(t, franchises, 1)
	assert.Equal(t, "<1: The Legend of Zelda>", franchises[0].String())
	fetcher.AssertExpectations(t)
}

func TestBreakerWrapsMockFetcher(t *testing.T) {
	fetcher := new(MockFetcher)
	upstream := errors.New("dial tcp: connection refused")
	fetcher.On("Fetch", mock.Anything, mock.Anything).Return(nil, upstream)

	cfg := DefaultBreakerConfig("test-mock")
	cfg.MinRequests = 3
	f := NewBreakerFetcher(fetcher, cfg)

	c, err := New("k", WithBaseURL("https://api.test/"), WithFetcher(f))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := c.Genre(context.Background(), ID(1))
		assert.ErrorIs(t, err, upstream)
	}

	_, err = c.Genre(context.Background(), ID(1))
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.ErrorIs(t, err, ErrCircuitOpen)
	fetcher.AssertNumberOfCalls(t, "Fetch", 3)
}
