// Package transport wraps the handful of TCP primitives the session
// protocol needs. Every call is a single best-effort OS operation meant
// to be driven from a once-per-frame poll loop: nothing here blocks the
// frame, nothing retries, and every failure comes back as a sentinel
// value instead of an error the caller would have to unwrap mid-tick.
//
// Readiness checks go through a zero-timeout select(2) on the raw fd and
// reads through non-blocking recv(2), so a poll that finds nothing costs
// one syscall and consumes nothing. POSIX only, like the game itself.
package transport

import (
	"net"
	"strconv"
	"syscall"

	log "github.com/sirupsen/logrus"
)

// selectReadable runs a zero-timeout select on one fd. An FdSet only
// covers fds below FD_SETSIZE; anything above reads as not ready.
func selectReadable(fd int) bool {
	var rfds syscall.FdSet
	if fd < 0 || fd/64 >= len(rfds.Bits) {
		log.Warnf("transport: fd %d outside select range", fd)
		return false
	}
	rfds.Bits[fd/64] |= int64(1) << (uint(fd) % 64)
	tv := syscall.Timeval{}
	n, err := syscall.Select(fd+1, &rfds, nil, nil, &tv)
	return err == nil && n > 0
}

// Listener owns a listening socket. The zero value is the invalid handle.
type Listener struct {
	ln net.Listener
}

// Valid reports whether the listener holds a live socket.
func (l Listener) Valid() bool {
	return l.ln != nil
}

// Addr returns the bound address, nil for the invalid handle. A port of
// 0 in Listen comes back here with the kernel's pick filled in.
func (l Listener) Addr() net.Addr {
	if l.ln == nil {
		return nil
	}
	return l.ln.Addr()
}

// Listen binds all interfaces on the given port and starts listening.
// Address reuse is already the default for TCP listeners on POSIX, so a
// restarted host grabs its old port back without waiting out TIME_WAIT.
// The protocol admits exactly one peer; pending-queue depth is left to
// the OS.
func Listen(port int) Listener {
	ln, err := net.Listen("tcp4", net.JoinHostPort("", strconv.Itoa(port)))
	if err != nil {
		log.Errorf("transport: listen on %d: %v", port, err)
		return Listener{}
	}
	log.Infof("transport: listening on %s", ln.Addr())
	return Listener{ln: ln}
}

// PollAccept accepts a pending connection if one is queued right now and
// returns the invalid Conn otherwise. It never waits: the accept only
// happens after a zero-timeout readiness check on the listening fd.
func (l Listener) PollAccept() Conn {
	if l.ln == nil {
		return Conn{}
	}
	tl, ok := l.ln.(*net.TCPListener)
	if !ok {
		return Conn{}
	}
	raw, err := tl.SyscallConn()
	if err != nil {
		log.Warnf("transport: raw listener: %v", err)
		return Conn{}
	}
	pending := false
	if cerr := raw.Control(func(fd uintptr) {
		pending = selectReadable(int(fd))
	}); cerr != nil {
		log.Warnf("transport: poll listener: %v", cerr)
		return Conn{}
	}
	if !pending {
		return Conn{}
	}
	c, err := tl.Accept()
	if err != nil {
		log.Warnf("transport: accept: %v", err)
		return Conn{}
	}
	log.Infof("transport: accepted peer %s", c.RemoteAddr())
	return Conn{c: c}
}

// Close shuts the listening socket down. Safe on an invalid handle and
// safe to call twice.
func (l *Listener) Close() {
	if l.ln == nil {
		return
	}
	if err := l.ln.Close(); err != nil {
		log.Warnf("transport: close listener: %v", err)
	}
	l.ln = nil
}

// Conn owns one connected stream socket. The zero value is the invalid
// handle.
type Conn struct {
	c net.Conn
}

// Valid reports whether the connection holds a live socket.
func (c Conn) Valid() bool {
	return c.c != nil
}

// Dial connects to a numeric IPv4 address. A malformed address or a
// refused connection both come back as the invalid Conn.
func Dial(addr string, port int) Conn {
	ip := net.ParseIP(addr)
	if ip == nil || ip.To4() == nil {
		log.Errorf("transport: not a numeric IPv4 address: %q", addr)
		return Conn{}
	}
	c, err := net.Dial("tcp4", net.JoinHostPort(addr, strconv.Itoa(port)))
	if err != nil {
		log.Errorf("transport: connect %s:%d: %v", addr, port, err)
		return Conn{}
	}
	log.Infof("transport: connected to %s", c.RemoteAddr())
	return Conn{c: c}
}

func (c Conn) rawConn() syscall.RawConn {
	sc, ok := c.c.(syscall.Conn)
	if !ok {
		return nil
	}
	raw, err := sc.SyscallConn()
	if err != nil {
		log.Warnf("transport: raw conn: %v", err)
		return nil
	}
	return raw
}

// Send writes the payload in a single call. Short writes against a
// healthy TCP socket do not happen at these message sizes; anything else
// is reported as failure and left to the caller's degraded mode.
func (c Conn) Send(data []byte) bool {
	if c.c == nil {
		return false
	}
	if _, err := c.c.Write(data); err != nil {
		log.Warnf("transport: send: %v", err)
		return false
	}
	return true
}

// Poll reports whether a receive right now would find bytes (or an EOF)
// waiting. It checks without consuming, so the protocol code can keep
// its readiness check separate from the read itself.
func (c Conn) Poll() bool {
	if c.c == nil {
		return false
	}
	raw := c.rawConn()
	if raw == nil {
		return false
	}
	readable := false
	if err := raw.Control(func(fd uintptr) {
		readable = selectReadable(int(fd))
	}); err != nil {
		log.Warnf("transport: poll: %v", err)
		return false
	}
	return readable
}

// Receive reads whatever is available right now into buf. Returns the
// byte count on data, 0 when the peer has shut down, and -1 when nothing
// is available or the socket errored. One OS read is one message as far
// as this transport is concerned; there is no framing.
func (c Conn) Receive(buf []byte) int {
	if c.c == nil {
		return -1
	}
	raw := c.rawConn()
	if raw == nil {
		return -1
	}
	result := -1
	if err := raw.Control(func(fd uintptr) {
		n, rerr := syscall.Read(int(fd), buf)
		switch {
		case rerr == syscall.EAGAIN || rerr == syscall.EWOULDBLOCK:
			result = -1
		case rerr != nil:
			log.Warnf("transport: receive: %v", rerr)
			result = -1
		default:
			// recv of 0 on a stream socket is the peer's shutdown.
			result = n
		}
	}); err != nil {
		log.Warnf("transport: receive control: %v", err)
		return -1
	}
	return result
}

// Close shuts the connection down. Safe on an invalid handle and safe to
// call twice.
func (c *Conn) Close() {
	if c.c == nil {
		return
	}
	if err := c.c.Close(); err != nil {
		log.Warnf("transport: close conn: %v", err)
	}
	c.c = nil
}
