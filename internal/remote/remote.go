// Package remote runs commands on appliances over ssh, for setup and
// assertions that have no UI surface (log greps, service restarts).
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/conwalk/conwalk/internal/conf"
)

const DefaultPort = 22

// Config holds the connection parameters for one appliance.
type Config struct {
	Hostname string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

// ConfigFromEnv builds a Config from the env config's named credentials.
func ConfigFromEnv(loader *conf.Loader, hostname string) (Config, error) {
	creds, err := loader.Load("credentials")
	if err != nil {
		return Config{}, err
	}
	entry, ok := creds["ssh"].(map[string]any)
	if !ok {
		return Config{}, fmt.Errorf("no ssh credential in credentials config")
	}
	username, _ := entry["username"].(string)
	password, _ := entry["password"].(string)
	return Config{
		Hostname: hostname,
		Username: username,
		Password: password,
	}, nil
}

// Result is a finished command's output and exit status.
type Result struct {
	ExitStatus int
	Stdout     string
	Stderr     string
}

// Client runs commands on one appliance. Each call opens a fresh session
// on a shared connection, so a Client is safe for sequential reuse.
type Client struct {
	cfg  Config
	conn *ssh.Client
}

// clientConfig expands a Config into the ssh client configuration used to
// dial. Appliances present self-signed host keys, so verification is off.
func clientConfig(cfg Config) *ssh.ClientConfig {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &ssh.ClientConfig{
		User: cfg.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(cfg.Password),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
	}
}

func address(cfg Config) string {
	port := cfg.Port
	if port == 0 {
		port = DefaultPort
	}
	return net.JoinHostPort(cfg.Hostname, fmt.Sprint(port))
}

// Connect dials the appliance.
func Connect(cfg Config) (*Client, error) {
	conn, err := ssh.Dial("tcp", address(cfg), clientConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", address(cfg), err)
	}
	return &Client{cfg: cfg, conn: conn}, nil
}

func (c *Client) Close() error { return c.conn.Close() }

// Run executes the command and captures its output. A non-zero exit is not
// an error; callers inspect Result.ExitStatus.
func (c *Client) Run(ctx context.Context, command string) (*Result, error) {
	session, err := c.conn.NewSession()
	if err != nil {
		return nil, fmt.Errorf("opening session: %w", err)
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	done := make(chan error, 1)
	go func() { done <- session.Run(command) }()

	select {
	case <-ctx.Done():
		session.Close()
		return nil, ctx.Err()
	case err := <-done:
		result := &Result{Stdout: stdout.String(), Stderr: stderr.String()}
		if err != nil {
			var exitErr *ssh.ExitError
			if !errors.As(err, &exitErr) {
				return nil, err
			}
			result.ExitStatus = exitErr.ExitStatus()
		}
		return result, nil
	}
}

// PutFile writes content to the remote path by streaming it through cat,
// avoiding an sftp dependency on the appliance side.
func (c *Client) PutFile(ctx context.Context, path string, content []byte) error {
	session, err := c.conn.NewSession()
	if err != nil {
		return fmt.Errorf("opening session: %w", err)
	}
	defer session.Close()

	session.Stdin = bytes.NewReader(content)

	done := make(chan error, 1)
	go func() { done <- session.Run(fmt.Sprintf("cat > %q", path)) }()

	select {
	case <-ctx.Done():
		session.Close()
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		return nil
	}
}
