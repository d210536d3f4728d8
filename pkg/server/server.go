package server

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/inspectd/faultserve/internal/logger"
	"github.com/inspectd/faultserve/internal/utils"
	"github.com/inspectd/faultserve/pkg/suggest"
)

// maxQueryLength rejects runaway inputs before they reach the engine.
const maxQueryLength = 120

// Server handles the IPC for fault phrase suggestions.
type Server struct {
	engine  *suggest.Engine
	decoder *msgpack.Decoder
	encoder *msgpack.Encoder
	log     *log.Logger
}

// NewServer creates a suggestion server using stdin/stdout for IPC.
func NewServer(engine *suggest.Engine) *Server {
	return &Server{
		engine:  engine,
		decoder: msgpack.NewDecoder(os.Stdin),
		encoder: msgpack.NewEncoder(os.Stdout),
		log:     logger.New("ipc"),
	}
}

// NewServerWithStreams creates a server over explicit streams. Test hook.
func NewServerWithStreams(engine *suggest.Engine, r io.Reader, w io.Writer) *Server {
	return &Server{
		engine:  engine,
		decoder: msgpack.NewDecoder(r),
		encoder: msgpack.NewEncoder(w),
		log:     logger.New("ipc"),
	}
}

// Start begins listening for IPC requests. Returns nil on clean EOF.
func (s *Server) Start() error {
	s.log.Debug("Starting server.")
	s.send(HealthResponse{Status: "ready"})

	for {
		var request Request
		if err := s.decoder.Decode(&request); err != nil {
			if err == io.EOF {
				return nil
			}
			s.log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches one decoded request by op.
func (s *Server) handleRequest(request Request) {
	switch request.Op {
	case "suggest":
		s.handleSuggest(request)
	case "learn":
		s.handleLearn(request)
	case "sections":
		s.send(SectionsResponse{ID: request.ID, Sections: s.engine.Sections()})
	case "health":
		s.send(HealthResponse{ID: request.ID, Status: "ok", Stats: s.engine.Stats()})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown op: %s", request.Op), 400)
	}
}

// handleSuggest validates the request, asks the engine for suggestions and
// replies with position ranks. Empty results are a normal response, not an
// error.
func (s *Server) handleSuggest(request Request) {
	if len(request.Query) > maxQueryLength {
		s.sendError(request.ID, fmt.Sprintf("Query exceeds maximum length of %d characters", maxQueryLength), 400)
		return
	}

	start := time.Now()
	results := s.engine.GetSuggestions(request.Section, request.Query, request.Limit)
	elapsed := time.Since(start)

	ranks := utils.CreateRankList(len(results))
	suggestions := make([]Suggestion, len(results))
	for i, text := range results {
		suggestions[i] = Suggestion{Text: text, Rank: ranks[i]}
	}

	s.send(SuggestResponse{
		ID:          request.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   elapsed.Milliseconds(),
	})
}

// handleLearn records a confirmed phrase. The structured outcome is passed
// through verbatim; reason strings are diagnostics only.
func (s *Server) handleLearn(request Request) {
	result := s.engine.Learn(request.Section, request.Text)
	s.send(LearnResponse{
		ID:      request.ID,
		Learned: result.Learned,
		Reason:  result.Reason,
	})
}

// send encodes a response onto the output stream.
func (s *Server) send(response interface{}) {
	if err := s.encoder.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
