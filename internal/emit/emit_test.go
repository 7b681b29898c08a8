package emit

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialSocketIO_InvalidURL(t *testing.T) {
	testCases := []struct {
		name string
		url  string
		msg  string
	}{
		{name: "unparseable", url: "://nowhere", msg: "failed to parse URL"},
		{name: "wrong scheme", url: "ftp://localhost:21", msg: `unsupported URL scheme "ftp"`},
		{name: "no scheme", url: "localhost:3000", msg: "unsupported URL scheme"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DialSocketIO(context.Background(), Options{URL: tc.url})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestDialSocketIO_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DialSocketIO(ctx, Options{URL: "http://127.0.0.1:1", Timeout: time.Second})
	assert.Error(t, err)
}

func TestClientOptions(t *testing.T) {
	opts := clientOptions("/socket.io/", Options{})
	assert.Equal(t, "/socket.io/", opts.Path())
	assert.Nil(t, opts.TLSClientConfig())

	insecure := clientOptions("", Options{InsecureSkipVerify: true})
	require.NotNil(t, insecure.TLSClientConfig())
	assert.True(t, insecure.TLSClientConfig().InsecureSkipVerify)
}

func TestPayload_Encoding(t *testing.T) {
	p := &Payload{
		RunID:   "run-1",
		Batch:   3,
		Columns: []string{"x_0", "x_1"},
		Rows:    [][]float64{{1, 2}, {3.5, -4}},
	}

	body, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"run_id":"run-1","batch":3,"columns":["x_0","x_1"],"rows":[[1,2],[3.5,-4]]}`, string(body))

	m := p.asMap()
	assert.Equal(t, "run-1", m["run_id"])
	assert.Equal(t, 3, m["batch"])
	assert.Len(t, m["rows"], 2)
}
