package ssh

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
)

// Config represents SSH connection configuration for the cluster head node
type Config struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	User           string        `yaml:"user"`
	KeyPath        string        `yaml:"key_path"`
	Password       string        `yaml:"password,omitempty"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	CommandTimeout time.Duration `yaml:"command_timeout"`
}

// Client wraps an SSH connection used to read experiment results
type Client struct {
	config *Config
	client *ssh.Client
}

// Result represents the result of a remote command execution
type Result struct {
	Stdout   []byte `json:"-"`
	Stderr   string `json:"stderr,omitempty"`
	ExitCode int    `json:"exit_code"`
}

// NewClient creates a new SSH client
func NewClient(config *Config) *Client {
	if config.Port == 0 {
		config.Port = 22
	}
	if config.ConnectTimeout == 0 {
		config.ConnectTimeout = 30 * time.Second
	}
	if config.CommandTimeout == 0 {
		config.CommandTimeout = 300 * time.Second
	}

	return &Client{
		config: config,
	}
}

// Connect establishes an SSH connection
func (c *Client) Connect(ctx context.Context) error {
	if c.client != nil {
		return nil
	}

	var authMethods []ssh.AuthMethod

	if c.config.KeyPath != "" {
		key, err := loadPrivateKey(c.config.KeyPath)
		if err != nil {
			return fmt.Errorf("failed to load private key: %w", err)
		}
		authMethods = append(authMethods, ssh.PublicKeys(key))
	}

	if c.config.Password != "" {
		authMethods = append(authMethods, ssh.Password(c.config.Password))
	}

	if len(authMethods) == 0 {
		return fmt.Errorf("no authentication method provided")
	}

	sshConfig := &ssh.ClientConfig{
		User:            c.config.User,
		Auth:            authMethods,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // TODO: verify against ~/.ssh/known_hosts with knownhosts.New
		Timeout:         c.config.ConnectTimeout,
	}

	address := net.JoinHostPort(c.config.Host, fmt.Sprint(c.config.Port))
	conn, err := dialContext(ctx, address, sshConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}

	c.client = conn
	return nil
}

// Run executes a command and returns its stdout untouched. A non-zero exit
// status is returned as an error carrying stderr.
func (c *Client) Run(ctx context.Context, command string) (*Result, error) {
	if c.client == nil {
		return nil, fmt.Errorf("not connected")
	}

	session, err := c.client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	cmdCtx, cancel := context.WithTimeout(ctx, c.config.CommandTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- session.Run(command)
	}()

	select {
	case err := <-done:
		result := &Result{Stdout: stdout.Bytes(), Stderr: stderr.String()}
		if err != nil {
			if exitErr, ok := err.(*ssh.ExitError); ok {
				result.ExitCode = exitErr.ExitStatus()
			}
			return result, fmt.Errorf("command %q failed: %w: %s", command, err, strings.TrimSpace(result.Stderr))
		}
		return result, nil
	case <-cmdCtx.Done():
		session.Close()
		return nil, fmt.Errorf("command timed out: %w", cmdCtx.Err())
	}
}

// Execute runs a command and returns its output as text
func (c *Client) Execute(ctx context.Context, command string) (string, error) {
	result, err := c.Run(ctx, command)
	if err != nil {
		return "", err
	}
	return string(result.Stdout), nil
}

// ReadFile returns the content of a remote file
func (c *Client) ReadFile(ctx context.Context, path string) ([]byte, error) {
	result, err := c.Run(ctx, "cat "+Quote(path))
	if err != nil {
		return nil, err
	}
	return result.Stdout, nil
}

// Config returns the SSH configuration
func (c *Client) Config() *Config {
	return c.config
}

// Close closes the SSH connection
func (c *Client) Close() error {
	if c.client != nil {
		err := c.client.Close()
		c.client = nil
		return err
	}
	return nil
}

// IsConnected returns true if the client is connected
func (c *Client) IsConnected() bool {
	return c.client != nil
}

// Quote wraps s in single quotes for a POSIX shell
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func loadPrivateKey(keyPath string) (ssh.Signer, error) {
	if strings.HasPrefix(keyPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		keyPath = filepath.Join(home, keyPath[1:])
	}

	keyData, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, err
	}

	return ssh.ParsePrivateKey(keyData)
}

func dialContext(ctx context.Context, address string, config *ssh.ClientConfig) (*ssh.Client, error) {
	dialer := &net.Dialer{
		Timeout: config.Timeout,
	}

	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, err
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, address, config)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return ssh.NewClient(sshConn, chans, reqs), nil
}
