package printer

import (
	"fmt"
	"net"
	"time"
)

// NetworkPrinter writes pre-rendered text payloads to a network receipt
// printer. The connection is opened per print; the finalizer only queries
// whether a printer is configured at all.
type NetworkPrinter struct {
	addr    string
	timeout time.Duration
}

func New(addr string) *NetworkPrinter {
	return &NetworkPrinter{addr: addr, timeout: 3 * time.Second}
}

func (p *NetworkPrinter) Connected() bool {
	return p.addr != ""
}

func (p *NetworkPrinter) Print(payload string) error {
	conn, err := net.DialTimeout("tcp", p.addr, p.timeout)
	if err != nil {
		return fmt.Errorf("printer dial failed: %w", err)
	}
	defer conn.Close()

	conn.SetWriteDeadline(time.Now().Add(p.timeout))
	if _, err := conn.Write([]byte(payload + "\n\n\n")); err != nil {
		return fmt.Errorf("printer write failed: %w", err)
	}
	return nil
}
