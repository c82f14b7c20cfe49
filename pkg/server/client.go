package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync/atomic"

	"github.com/vmihailenco/msgpack/v5"
)

// reply is any message the server writes: status, result or error.
type reply struct {
	ID        string             `msgpack:"id"`
	Op        string             `msgpack:"op"`
	Result    msgpack.RawMessage `msgpack:"r"`
	TimeTaken int64              `msgpack:"t"`
	Error     string             `msgpack:"e"`
	Code      int                `msgpack:"c"`
	Status    string             `msgpack:"status"`
}

// Client talks to a Server over a pair of streams. Calls are sequential.
type Client struct {
	encoder *msgpack.Encoder
	writer  *bufio.Writer
	decoder *msgpack.Decoder
	closer  io.Closer
	cmd     *exec.Cmd
	seq     atomic.Int64
}

// NewClient wraps the streams of a running server. The ready message is consumed
// by the first call to Ready.
func NewClient(r io.Reader, w io.Writer) *Client {
	bw := bufio.NewWriter(w)
	c := &Client{
		encoder: msgpack.NewEncoder(bw),
		writer:  bw,
		decoder: msgpack.NewDecoder(r),
	}
	if closer, ok := w.(io.Closer); ok {
		c.closer = closer
	}
	return c
}

// Spawn starts a teny binary in serve mode and waits for it to be ready.
func Spawn(binary string, args ...string) (*Client, error) {
	cmd := exec.Command(binary, args...)
	cmd.Stderr = os.Stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", binary, err)
	}
	c := NewClient(stdout, stdin)
	c.cmd = cmd
	if err := c.Ready(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// Ready reads the server's ready message.
func (c *Client) Ready() error {
	var r reply
	if err := c.decoder.Decode(&r); err != nil {
		return fmt.Errorf("read ready: %w", err)
	}
	if r.Status != "ready" {
		return fmt.Errorf("unexpected first message: %+v", r)
	}
	return nil
}

// Call sends req and decodes the result into out, which may be nil. A server
// error comes back as *RequestError.
func (c *Client) Call(req Request, out any) error {
	if req.ID == "" {
		req.ID = fmt.Sprintf("req_%03d", c.seq.Add(1))
	}
	if err := c.encoder.Encode(req); err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	if err := c.writer.Flush(); err != nil {
		return fmt.Errorf("send request: %w", err)
	}

	var r reply
	if err := c.decoder.Decode(&r); err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if r.Error != "" {
		return &RequestError{Message: r.Error, Code: r.Code}
	}
	if r.ID != req.ID {
		return fmt.Errorf("response id %q does not match request %q", r.ID, req.ID)
	}
	if out == nil || len(r.Result) == 0 {
		return nil
	}
	return msgpack.Unmarshal(r.Result, out)
}

// Close ends the input stream and waits for a spawned server to exit.
func (c *Client) Close() error {
	var errs []error
	if c.closer != nil {
		errs = append(errs, c.closer.Close())
	}
	if c.cmd != nil {
		errs = append(errs, c.cmd.Wait())
	}
	return errors.Join(errs...)
}
