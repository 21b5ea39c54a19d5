// Package session runs the cross-process unlock handshake. A HOST
// listens and, the first time it touches its own goal, pushes one unlock
// message to its CLIENT; the CLIENT starts movement-locked and polls for
// that message each tick. There is no further exchange after the unlock.
package session

import (
	"net"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/gatemaze/transport"
)

// Role says which side of the handshake this process plays.
type Role int

const (
	RoleHost Role = iota + 1
	RoleClient
)

func (r Role) Name() string {
	switch r {
	case RoleHost:
		return "HOST"
	case RoleClient:
		return "CLIENT"
	default:
		return "N/A"
	}
}

// recvBufSize bounds a single protocol read. The unlock message is a few
// dozen bytes; anything bigger is peer noise.
const recvBufSize = 256

// Session is one side of the protocol. All fields are ticked from the
// game loop; nothing in here is shared across goroutines.
type Session struct {
	ID   uuid.UUID
	Role Role

	listener transport.Listener
	peer     transport.Conn

	hostAddr string
	port     int

	// MovementLocked gates the client until the unlock lands. A host is
	// never locked.
	MovementLocked bool

	// GoalReached guards the proximity trigger so it fires at most once.
	GoalReached bool

	// PeerTint is the color carried by the received unlock message.
	PeerTint Tint

	recv [recvBufSize]byte
}

// NewHost binds the listening socket. A bind failure leaves a degraded
// session that simply never finds a client; the host itself still plays.
func NewHost(port int) *Session {
	s := &Session{
		ID:       uuid.New(),
		Role:     RoleHost,
		port:     port,
		listener: transport.Listen(port),
	}
	if !s.listener.Valid() {
		log.Warnf("session %s: host up without a listener, playing solo", s.ID)
	}
	return s
}

// NewClient dials the host once and starts locked. A failed connect
// leaves the session locked and disconnected until Retry.
func NewClient(hostAddr string, port int) *Session {
	s := &Session{
		ID:             uuid.New(),
		Role:           RoleClient,
		hostAddr:       hostAddr,
		port:           port,
		MovementLocked: true,
	}
	s.peer = transport.Dial(hostAddr, port)
	if !s.peer.Valid() {
		log.Warnf("session %s: no connection to host, movement stays locked", s.ID)
	}
	return s
}

// Port returns the port actually in use: hosts asked for port 0 get the
// kernel's pick, everyone else the configured one.
func (s *Session) Port() int {
	if s.listener.Valid() {
		if a, ok := s.listener.Addr().(*net.TCPAddr); ok {
			return a.Port
		}
	}
	return s.port
}

// Connected reports whether a peer connection is currently held.
func (s *Session) Connected() bool {
	return s.peer.Valid()
}

// Retry re-dials the host on a disconnected client. No-op for hosts and
// already-connected clients.
func (s *Session) Retry() {
	if s.Role != RoleClient || s.peer.Valid() {
		return
	}
	log.Infof("session %s: retrying host %s:%d", s.ID, s.hostAddr, s.port)
	s.peer = transport.Dial(s.hostAddr, s.port)
}

// Tick advances the protocol by one frame. nearGoal is the proximity
// signal from the game loop; tint is this side's current color, sent
// along when a host unlocks its client.
func (s *Session) Tick(nearGoal bool, tint Tint) {
	switch s.Role {
	case RoleHost:
		s.tickHost(nearGoal, tint)
	case RoleClient:
		s.tickClient(nearGoal)
	}
}

func (s *Session) tickHost(nearGoal bool, tint Tint) {
	// One client per session: stop polling the listener once accepted.
	if !s.peer.Valid() && s.listener.Valid() {
		if c := s.listener.PollAccept(); c.Valid() {
			s.peer = c
			log.Infof("session %s: client connected", s.ID)
		}
	}

	if nearGoal && !s.GoalReached {
		if s.peer.Valid() {
			if s.peer.Send(FormatUnlock(tint)) {
				log.Infof("session %s: unlock sent", s.ID)
			}
		} else {
			log.Infof("session %s: goal reached with no client to unlock", s.ID)
		}
		// Set regardless of whether anyone was listening, so the
		// trigger never fires twice.
		s.GoalReached = true
	}
}

func (s *Session) tickClient(nearGoal bool) {
	if s.MovementLocked && s.peer.Valid() && s.peer.Poll() {
		n := s.peer.Receive(s.recv[:])
		// 0 means the peer shut down; treated as nothing-this-tick, the
		// session has no separate disconnected state to move to.
		if n > 0 {
			if t, ok := ParseUnlock(s.recv[:n]); ok {
				s.MovementLocked = false
				s.PeerTint = t
				log.Infof("session %s: unlocked, tint %.3f %.3f %.3f", s.ID, t.R, t.G, t.B)
			}
		}
	}

	if !s.MovementLocked && nearGoal && !s.GoalReached {
		s.GoalReached = true
		log.Infof("session %s: goal reached", s.ID)
	}
}

// Close tears both sockets down. Idempotent.
func (s *Session) Close() {
	s.peer.Close()
	s.listener.Close()
}
