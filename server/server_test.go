package server

import (
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BeeswaxIO/hexbid/config"
	"github.com/BeeswaxIO/hexbid/metrics"
	metricsconfig "github.com/BeeswaxIO/hexbid/metrics/config"
)

func TestNewAdminServer(t *testing.T) {
	cfg := &config.Configuration{
		Host:      "bidder.local",
		AdminPort: 6060,
		Port:      8999,
	}
	server := newAdminServer(cfg, http.HandlerFunc(handler))
	assert.Equal(t, "bidder.local:6060", server.Addr)
}

func TestNewMainServer(t *testing.T) {
	body := strings.Repeat("bid", 1000)
	testCases := []struct {
		description      string
		enableGzip       bool
		expectedEncoding string
	}{
		{description: "plain", enableGzip: false, expectedEncoding: ""},
		{description: "gzip", enableGzip: true, expectedEncoding: "gzip"},
	}

	for _, test := range testCases {
		cfg := &config.Configuration{
			Host:       "bidder.local",
			Port:       8999,
			EnableGzip: test.enableGzip,
			Server: config.Server{
				ReadTimeoutMs:  250,
				WriteTimeoutMs: 500,
			},
		}
		server := newMainServer(cfg, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(body))
		}))

		assert.Equal(t, "bidder.local:8999", server.Addr, test.description)
		assert.Equal(t, 250*time.Millisecond, server.ReadTimeout, test.description)
		assert.Equal(t, 500*time.Millisecond, server.WriteTimeout, test.description)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		recorder := httptest.NewRecorder()
		server.Handler.ServeHTTP(recorder, req)
		assert.Equal(t, test.expectedEncoding, recorder.Header().Get("Content-Encoding"), test.description)
	}
}

func TestNewPrometheusServer(t *testing.T) {
	cfg := &config.Configuration{
		Host: "bidder.local",
		Metrics: config.Metrics{Prometheus: config.PrometheusMetrics{
			Port:      9100,
			Namespace: "hexbid",
			TimeoutMs: 1000,
		}},
	}
	engine := metricsconfig.NewMetricsEngine(cfg, []string{"FLAT_PRICE_STRATEGY"})

	server := newPrometheusServer(cfg, engine)
	assert.Equal(t, "bidder.local:9100", server.Addr)
	assert.NotNil(t, server.Handler)
}

func TestListenerRecordsConnections(t *testing.T) {
	me := &metrics.MetricsEngineMock{}
	me.On("RecordConnectionAccept", true).Return()
	me.On("RecordConnectionClose", true).Return()

	ln, err := newListener("127.0.0.1:0", config.Server{TCPNoDelay: true, KeepAlive: true, KeepAlivePeriodSeconds: 30}, me)
	require.NoError(t, err)
	defer ln.Close()

	accepted := make(chan net.Conn)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			close(accepted)
			return
		}
		accepted <- conn
	}()

	client, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer client.Close()

	conn, ok := <-accepted
	require.True(t, ok)
	require.NoError(t, conn.Close())

	me.AssertCalled(t, "RecordConnectionAccept", true)
	me.AssertCalled(t, "RecordConnectionClose", true)
}

func TestListenerWithoutMetrics(t *testing.T) {
	ln, err := newListener("127.0.0.1:0", config.Server{}, nil)
	require.NoError(t, err)
	defer ln.Close()

	_, monitored := ln.(*monitorableListener)
	assert.False(t, monitored)
	_, tcp := ln.(*tcpListener)
	assert.True(t, tcp)
}

func TestNewListenerError(t *testing.T) {
	_, err := newListener("not-an-address", config.Server{}, nil)
	assert.Error(t, err)
}

func TestServerShutdown(t *testing.T) {
	server := &http.Server{}
	ln := &mockListener{}

	stopper := make(chan os.Signal)
	done := make(chan struct{})
	go shutdownAfterSignals(server, stopper, done)
	go server.Serve(ln)

	stopper <- os.Interrupt
	<-done

	// If the test didn't hang, then we know server.Shutdown really _did_ return, and shutdownAfterSignals
	// passed the message along as expected.
}

func TestWait(t *testing.T) {
	inbound := make(chan os.Signal)
	chan1 := make(chan os.Signal)
	chan2 := make(chan os.Signal)
	chan3 := make(chan os.Signal)
	done := make(chan struct{})

	go forwardSignal(t, done, chan1)
	go forwardSignal(t, done, chan2)
	go forwardSignal(t, done, chan3)

	go func(chan os.Signal) {
		inbound <- os.Interrupt
	}(inbound)

	wait(inbound, done, chan1, chan2, chan3)
	// If this doesn't hang, then wait() is sending and receiving messages as expected.
}

func handler(w http.ResponseWriter, req *http.Request) {
}

// forwardSignal is basically a working mock for shutdownAfterSignals().
// It is used to test wait() effectively
func forwardSignal(t *testing.T, outbound chan<- struct{}, inbound <-chan os.Signal) {
	var s struct{}
	sig := <-inbound
	if sig != os.Interrupt {
		t.Errorf("Unexpected signal: %s\n", sig.String())
	}
	outbound <- s
}

type mockListener struct{}

func (l *mockListener) Accept() (net.Conn, error) {
	return nil, http.ErrServerClosed
}

func (l *mockListener) Close() error {
	return nil
}

func (l *mockListener) Addr() net.Addr {
	return &net.TCPAddr{}
}
