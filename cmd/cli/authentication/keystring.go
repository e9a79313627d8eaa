package authentication

// keystring.go keeps one session per API base URL in the OS keyring, so
// switching --api between servers does not send a token to the wrong one.
import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zalando/go-keyring"
)

const serviceName = "yamdbctl"

// ErrNoSession is returned when no token is stored for the server.
var ErrNoSession = errors.New("no stored session")

type Session struct {
	Server   string    `json:"server"`
	Username string    `json:"username"`
	Token    string    `json:"token"`
	IssuedAt time.Time `json:"issued_at"`
}

func sessionKey(server string) string {
	return "session:" + strings.TrimRight(server, "/")
}

func SaveSession(s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := keyring.Set(serviceName, sessionKey(s.Server), string(data)); err != nil {
		return fmt.Errorf("keyring set: %w", err)
	}
	return nil
}

func LoadSession(server string) (*Session, error) {
	value, err := keyring.Get(serviceName, sessionKey(server))
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("keyring get: %w", err)
	}

	var s Session
	if err := json.Unmarshal([]byte(value), &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.Token == "" {
		return nil, ErrNoSession
	}
	return &s, nil
}

// ClearSession is a no-op when nothing is stored.
func ClearSession(server string) error {
	err := keyring.Delete(serviceName, sessionKey(server))
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keyring delete: %w", err)
	}
	return nil
}
