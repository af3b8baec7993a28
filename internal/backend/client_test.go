package backend

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Veraticus/paydesk/internal/common"
	"github.com/Veraticus/paydesk/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// b64Cipher stands in for the platform cipher in tests.
type b64Cipher struct{}

func (b64Cipher) Encrypt(plaintext []byte) (string, error) {
	return base64.StdEncoding.EncodeToString(plaintext), nil
}

func (b64Cipher) Decrypt(ciphertext string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(ciphertext)
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts Options) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(model.Session{BaseURL: srv.URL + "/api/", CurrentUser: "operator1"}, opts)
}

func TestFetchList(t *testing.T) {
	var got map[string]any
	var path string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"status":"OK","records":[{"transactionid":"T1","amount":"1500"},{"transactionid":"T2","amount":20.5},"junk"]}`)
	}, Options{})

	env, err := client.FetchList(context.Background(), Endpoint{Path: "deposit/list.php"}, map[string]any{"datefrom": "2024-01-01"})
	require.NoError(t, err)

	assert.Equal(t, "/api/deposit/list.php", path)
	assert.Equal(t, "operator1", got["user"])
	assert.Equal(t, "2024-01-01", got["datefrom"])
	assert.True(t, env.OK())
	require.Len(t, env.Records, 2)
	assert.Equal(t, "T1", env.Records[0]["transactionid"])
	assert.Equal(t, 20.5, env.Records[1]["amount"])
}

func TestFetchList_ExplicitUserWins(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	}, Options{})

	_, err := client.FetchList(context.Background(), Endpoint{Path: "x.php"}, map[string]any{"user": "other"})
	require.NoError(t, err)
	assert.Equal(t, "other", got["user"])
}

func TestEncryptedEndpoint(t *testing.T) {
	var sent string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		plain, err := base64.StdEncoding.DecodeString(body["data"])
		require.NoError(t, err)
		sent = string(plain)

		inner := `{"status":"ok","message":"done","records":[{"id":"1"}]}`
		reply, _ := json.Marshal(map[string]string{"data": base64.StdEncoding.EncodeToString([]byte(inner))})
		_, _ = w.Write(reply)
	}, Options{Cipher: b64Cipher{}})

	env, err := client.PerformAction(context.Background(), Endpoint{Path: "sms/match.php", Encrypted: true}, map[string]any{"transactionid": "T9"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"transactionid":"T9","user":"operator1"}`, sent)
	assert.True(t, env.OK())
	assert.Equal(t, "done", env.Message)
	assert.Len(t, env.Records, 1)
}

func TestApplicationFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"status":"fail","message":"x"}`)
	}, Options{})

	env, err := client.PerformAction(context.Background(), Endpoint{Path: "a.php"}, nil)
	require.NoError(t, err)
	assert.False(t, env.OK())
	assert.Equal(t, "x", env.Message)
}

func TestTransportFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, `<html>oops`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler, Options{})
			_, err := client.FetchList(context.Background(), Endpoint{Path: "a.php"}, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrTransport))
		})
	}
}

func TestActionsAreNeverRetried(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, Options{RetryMax: 3})
	client.list.RetryWaitMin = time.Millisecond
	client.list.RetryWaitMax = time.Millisecond

	_, err := client.PerformAction(context.Background(), Endpoint{Path: "a.php"}, nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())

	calls.Store(0)
	_, err = client.FetchList(context.Background(), Endpoint{Path: "a.php"}, nil)
	require.Error(t, err)
	assert.Equal(t, int32(4), calls.Load())
}

func TestUnreachableBackend(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(model.Session{BaseURL: srv.URL}, Options{Timeout: time.Second})

	_, err := client.FetchList(context.Background(), Endpoint{Path: "a.php"}, nil)
	assert.True(t, errors.Is(err, common.ErrTransport))
}

func TestParseEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		path    string
		ok      bool
		records int
	}{
		{name: "uppercase ok", body: `{"status":"OK"}`, ok: true},
		{name: "padded ok", body: `{"status":" ok "}`, ok: true},
		{name: "missing status", body: `{"records":[{"a":1}]}`, records: 1},
		{name: "nested records", body: `{"status":"ok","data":{"rows":[{"a":1},{"a":2}]}}`, path: "data.rows", ok: true, records: 2},
		{name: "records not array", body: `{"status":"ok","records":"none"}`, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := ParseEnvelope([]byte(tt.body), tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.ok, env.OK())
			assert.Len(t, env.Records, tt.records)
		})
	}
}
