package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"sync"
	"time"
)

// ErrAlreadyRunning indicates another instance holds the lock for the same
// scope. That instance has been asked to come to the front.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	lockMinPort = 41000
	lockMaxPort = 48999

	activateRequest = "activate"
	activateReply   = "ok"
	handshakeWait   = 500 * time.Millisecond
)

// Lock is held by the running instance for one app and scope, typically the
// settings file in use. Launches with a different scope run side by side.
type Lock struct {
	listener net.Listener
	once     sync.Once
	closed   chan struct{}
}

// AcquireLock takes the lock for appName and scope. When a live instance
// already holds it, that instance is activated and ErrAlreadyRunning is
// returned. Any other listener on the port yields a plain error.
func AcquireLock(appName, scope string) (*Lock, error) {
	address := fmt.Sprintf("127.0.0.1:%d", lockPort(appName, scope))
	listener, err := net.Listen("tcp", address)
	if err == nil {
		return &Lock{listener: listener, closed: make(chan struct{})}, nil
	}
	if activateErr := activate(address); activateErr != nil {
		return nil, fmt.Errorf("acquire instance lock %s: %w", address, err)
	}
	return nil, fmt.Errorf("%w on %s", ErrAlreadyRunning, address)
}

// Serve answers activation requests from later launches until Release.
// onActivate runs on the serving goroutine.
func (lock *Lock) Serve(onActivate func()) {
	if lock == nil || lock.listener == nil {
		return
	}
	for {
		conn, err := lock.listener.Accept()
		if err != nil {
			select {
			case <-lock.closed:
				return
			default:
			}
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			return
		}
		if lock.answer(conn) && onActivate != nil {
			onActivate()
		}
	}
}

// Release frees the lock. It is safe on a nil lock and safe to repeat.
func (lock *Lock) Release() error {
	if lock == nil || lock.listener == nil {
		return nil
	}
	var err error
	lock.once.Do(func() {
		close(lock.closed)
		err = lock.listener.Close()
	})
	return err
}

// Address returns the bound loopback address.
func (lock *Lock) Address() string {
	if lock == nil || lock.listener == nil {
		return ""
	}
	return lock.listener.Addr().String()
}

func (lock *Lock) answer(conn net.Conn) bool {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(handshakeWait))

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil || strings.TrimSpace(line) != activateRequest {
		return false
	}
	_, err = fmt.Fprintln(conn, activateReply)
	return err == nil
}

// activate asks the instance on address to come to the front. It fails
// unless the peer answers the handshake.
func activate(address string) error {
	conn, err := net.DialTimeout("tcp", address, handshakeWait)
	if err != nil {
		return err
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(handshakeWait))

	if _, err := fmt.Fprintln(conn, activateRequest); err != nil {
		return err
	}
	reply, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return err
	}
	if strings.TrimSpace(reply) != activateReply {
		return fmt.Errorf("unexpected handshake reply %q", strings.TrimSpace(reply))
	}
	return nil
}

func lockPort(appName, scope string) int {
	hash := fnv.New64a()
	_, _ = hash.Write([]byte(strings.ToLower(appName)))
	_, _ = hash.Write([]byte{0})
	_, _ = hash.Write([]byte(scope))
	span := uint64(lockMaxPort - lockMinPort + 1)
	return lockMinPort + int(hash.Sum64()%span)
}
