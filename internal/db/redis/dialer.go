package redis

import (
	"net"
	"time"
)

const defaultDialTimeout = 5 * time.Second

func dialer(timeout time.Duration) net.Dialer {
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	return net.Dialer{Timeout: timeout, KeepAlive: time.Minute}
}
