package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/jsfr/zellij-fingers/internal/logger"
	"github.com/jsfr/zellij-fingers/internal/session"
	"github.com/jsfr/zellij-fingers/pkg/render"
)

const (
	CodeBadRequest = 400
	CodeNotFound   = 404
	CodeInternal   = 500
)

// SelectHandler receives the text of a finished key session.
type SelectHandler func(ctx context.Context, text string) error

// Server handles the IPC for one hinted screen
type Server struct {
	session  *session.Session
	decoder  *msgpack.Decoder
	encoder  *msgpack.Encoder
	onSelect SelectHandler
	requests int
	log      *log.Logger
}

// NewServer creates a server over r and w. The session must already be started.
func NewServer(sess *session.Session, r io.Reader, w io.Writer) *Server {
	return &Server{
		session: sess,
		decoder: msgpack.NewDecoder(r),
		encoder: msgpack.NewEncoder(w),
		log:     logger.New("server"),
	}
}

// OnSelect sets the handler run when a key finishes the session with text.
func (s *Server) OnSelect(fn SelectHandler) {
	s.onSelect = fn
}

// Start serves requests until EOF or until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	s.log.Debug("Starting Server.")

	if err := s.encoder.Encode(ReadyResponse{Status: "ready"}); err != nil {
		return fmt.Errorf("failed to send ready message: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, err := s.decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debugf("Input closed after %d requests", s.requests)
				return nil
			}
			s.log.Errorf("Reading request: %v", err)
			return err
		}
		s.requests++

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.log.Errorf("Unmarshaling request: %v", err)
			s.sendError("", "Invalid msgpack request", CodeBadRequest)
			continue
		}
		s.handleRequest(ctx, req)
	}
}

func (s *Server) handleRequest(ctx context.Context, req Request) {
	switch req.Action {
	case "render":
		s.handleRender(req)
	case "resolve":
		s.handleResolve(req)
	case "key":
		s.handleKey(ctx, req)
	case "info":
		s.handleInfo(req)
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown action: %q", req.Action), CodeBadRequest)
	}
}

func (s *Server) handleRender(req Request) {
	h := s.session.Hinter()
	if h == nil {
		s.sendError(req.ID, "No screen loaded", CodeNotFound)
		return
	}

	start := time.Now()
	frame := render.Frame(h, req.Typed, req.Selected, rowsOf(req, len(h.Lines())), req.Cols)
	s.sendResponse(RenderResponse{
		ID:        req.ID,
		Frame:     frame,
		Targets:   len(h.Candidates(req.Typed)),
		TimeTaken: time.Since(start).Microseconds(),
	})
}

func (s *Server) handleResolve(req Request) {
	h := s.session.Hinter()
	if h == nil {
		s.sendError(req.ID, "No screen loaded", CodeNotFound)
		return
	}
	if req.Hint == "" {
		s.sendError(req.ID, "Missing 'h' parameter", CodeBadRequest)
		return
	}

	start := time.Now()
	target, ok := h.Lookup(req.Hint)
	s.sendResponse(ResolveResponse{
		ID:        req.ID,
		Found:     ok,
		Hint:      target.Hint,
		Text:      target.Text,
		TimeTaken: time.Since(start).Microseconds(),
	})
}

func (s *Server) handleKey(ctx context.Context, req Request) {
	if req.Key == "" {
		s.sendError(req.ID, "Missing 'k' parameter", CodeBadRequest)
		return
	}
	if s.session.Phase() != session.Hinting {
		s.sendError(req.ID, "Session is "+s.session.Phase().String(), CodeBadRequest)
		return
	}

	start := time.Now()
	outcome := s.session.HandleKey(req.Key)

	if outcome.Done && outcome.Text != "" && s.onSelect != nil {
		if err := s.onSelect(ctx, outcome.Text); err != nil {
			s.log.Errorf("Running action: %v", err)
			s.sendError(req.ID, err.Error(), CodeInternal)
			return
		}
	}

	resp := KeyResponse{
		ID:        req.ID,
		Done:      outcome.Done,
		Text:      outcome.Text,
		Input:     s.session.Input(),
		Multi:     s.session.Multi(),
		Selected:  s.session.Selected(),
		Remaining: s.session.Remaining(),
	}
	if !outcome.Done {
		h := s.session.Hinter()
		resp.Frame = s.session.Frame(rowsOf(req, len(h.Lines())), req.Cols)
	}
	resp.TimeTaken = time.Since(start).Microseconds()
	s.sendResponse(resp)
}

func (s *Server) handleInfo(req Request) {
	resp := InfoResponse{
		ID:    req.ID,
		Phase: s.session.Phase().String(),
	}
	if h := s.session.Hinter(); h != nil {
		resp.Lines = len(h.Lines())
		resp.Width = h.Width()
		resp.Hints = h.HintCount()
		resp.Targets = h.Targets()
		resp.State = h.State().String()
	}
	s.sendResponse(resp)
}

// rowsOf returns the requested row count, all lines when unset.
func rowsOf(req Request, lines int) int {
	if req.Rows <= 0 {
		return lines
	}
	return req.Rows
}

func (s *Server) sendResponse(response any) {
	if err := s.encoder.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ErrorResponse{
		ID:    id,
		Error: message,
		Code:  code,
	})
}
