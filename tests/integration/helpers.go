package integration

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"testing"
	"time"
)

const (
	HttpKey = "defaulthttpkey"
	Host    = "127.0.0.1"
	Port    = 7350
)

// RPCClient calls server-to-server RPCs through Nakama's HTTP key endpoint.
type RPCClient struct {
	BaseURL string
	HttpKey string
	HTTP    *http.Client
}

// NewRPCClient returns a client for the local Nakama server, skipping the
// test when nothing is listening. NAKAMA_HTTP_ADDR overrides host:port.
func NewRPCClient(t *testing.T) *RPCClient {
	t.Helper()
	addr := os.Getenv("NAKAMA_HTTP_ADDR")
	if addr == "" {
		addr = fmt.Sprintf("%s:%d", Host, Port)
	}
	conn, err := net.DialTimeout("tcp", addr, time.Second)
	if err != nil {
		t.Skipf("nakama not reachable at %s: %v", addr, err)
	}
	conn.Close()

	return &RPCClient{
		BaseURL: "http://" + addr,
		HttpKey: HttpKey,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Call posts payload to the RPC and returns the raw response body and HTTP
// status.
func (c *RPCClient) Call(t *testing.T, id, payload string) (string, int) {
	t.Helper()
	u := fmt.Sprintf("%s/v2/rpc/%s?http_key=%s&unwrap", c.BaseURL, url.PathEscape(id), url.QueryEscape(c.HttpKey))
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, u, bytes.NewBufferString(payload))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		t.Fatalf("RPC %s failed: %v", id, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read RPC %s response: %v", id, err)
	}
	return string(body), resp.StatusCode
}
