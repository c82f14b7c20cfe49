package server

import (
	"bufio"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles msgpack IPC over a reader and writer, stdin and stdout by default.
type Server struct {
	handler *Handler
	decoder *msgpack.Decoder
	writer  *bufio.Writer
	encoder *msgpack.Encoder
	mu      sync.Mutex
}

// NewServer creates a server using stdin/stdout for IPC
func NewServer(h *Handler) *Server {
	return NewServerWithIO(h, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server over the given streams.
func NewServerWithIO(h *Handler, r io.Reader, w io.Writer) *Server {
	bw := bufio.NewWriter(w)
	return &Server{
		handler: h,
		decoder: msgpack.NewDecoder(bufio.NewReader(r)),
		writer:  bw,
		encoder: msgpack.NewEncoder(bw),
	}
}

// Handler returns the op handler, used to swap checkers on reload.
func (s *Server) Handler() *Handler {
	return s.handler
}

// Start signals readiness then serves requests until the input is closed.
func (s *Server) Start() error {
	log.Debug("Starting Server.")
	s.sendResponse(StatusResponse{Status: "ready"})

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("Input closed, stopping server.")
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			s.sendError("", "Invalid msgpack request", 400)
			return err
		}
		s.handleRequest(req)
	}
}

func (s *Server) handleRequest(req Request) {
	start := time.Now()
	result, err := s.handler.Handle(req)
	if err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			log.Debugf("Request %s rejected: %s", req.ID, reqErr.Message)
			s.sendError(req.ID, reqErr.Message, reqErr.Code)
			return
		}
		log.Errorf("Request %s (%s) failed: %v", req.ID, req.Op, err)
		s.sendError(req.ID, "Internal server error", 500)
		return
	}
	s.sendResponse(Response{
		ID:        req.ID,
		Op:        req.Op,
		Result:    result,
		TimeTaken: time.Since(start).Microseconds(),
	})
}

// sendResponse encodes one message and flushes it so clients never wait on a partial buffer.
func (s *Server) sendResponse(response any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		log.Errorf("Writing response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ErrorResponse{ID: id, Error: message, Code: code})
}
