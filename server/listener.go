package server

import (
	"net"
	"time"

	"github.com/golang/glog"

	"github.com/BeeswaxIO/hexbid/config"
	"github.com/BeeswaxIO/hexbid/metrics"
)

// tcpListener applies the configured socket options to every accepted connection.
type tcpListener struct {
	*net.TCPListener
	noDelay         bool
	keepAlive       bool
	keepAlivePeriod time.Duration
}

func newTCPListener(ln *net.TCPListener, cfg config.Server) *tcpListener {
	return &tcpListener{
		TCPListener:     ln,
		noDelay:         cfg.TCPNoDelay,
		keepAlive:       cfg.KeepAlive,
		keepAlivePeriod: time.Duration(cfg.KeepAlivePeriodSeconds) * time.Second,
	}
}

func (ln *tcpListener) Accept() (net.Conn, error) {
	tc, err := ln.AcceptTCP()
	if err != nil {
		return nil, err
	}

	if err := tc.SetNoDelay(ln.noDelay); err != nil {
		glog.Warningf("Failed to set TCP_NODELAY on %s: %v", tc.RemoteAddr(), err)
	}
	if err := tc.SetKeepAlive(ln.keepAlive); err != nil {
		glog.Warningf("Failed to set keep-alive on %s: %v", tc.RemoteAddr(), err)
	}
	if ln.keepAlive && ln.keepAlivePeriod > 0 {
		tc.SetKeepAlivePeriod(ln.keepAlivePeriod)
	}
	return tc, nil
}

type monitorableConnection struct {
	net.Conn
	metrics metrics.MetricsEngine
}

type monitorableListener struct {
	net.Listener
	metrics metrics.MetricsEngine
}

func (c *monitorableConnection) Close() error {
	err := c.Conn.Close()
	c.metrics.RecordConnectionClose(err == nil)
	return err
}

func (ln *monitorableListener) Accept() (net.Conn, error) {
	conn, err := ln.Listener.Accept()
	if err != nil {
		ln.metrics.RecordConnectionAccept(false)
		return nil, err
	}

	ln.metrics.RecordConnectionAccept(true)
	return &monitorableConnection{
		Conn:    conn,
		metrics: ln.metrics,
	}, nil
}
