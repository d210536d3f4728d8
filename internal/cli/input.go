// Package cli handles cmd line input and suggestions for DBG and testing various features
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/inspectd/faultserve/internal/logger"
	"github.com/inspectd/faultserve/internal/utils"
	"github.com/inspectd/faultserve/pkg/suggest"
)

// InputHandler processes user input from stdin, providing suggestions for
// the active section. Lines starting with ':' are commands; everything else
// is treated as a query.
type InputHandler struct {
	engine       *suggest.Engine
	section      string
	suggestLimit int
	requestCount int
	noFilter     bool
	log          *log.Logger
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(engine *suggest.Engine, section string, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		engine:       engine,
		section:      section,
		suggestLimit: limit,
		noFilter:     noFilter,
		// result lines double as user output; no timestamps
		log: logger.NewWithConfig("", log.GetLevel(), false, false, log.TextFormatter),
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes the trimmed input to handleInput() for processing.
// Loop terminates if an error occurs while reading from stdin
func (h *InputHandler) Start() error {
	h.log.Print("FaultServe CLI")
	reader := bufio.NewReader(os.Stdin)
	h.log.Printf("active section: %s", h.section)
	h.log.Print("type a query and press Enter; :learn <text>, :section <key>, :sections, :stats (Ctrl+C to exit):")

	for {
		h.log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			h.handleCommand(line)
			continue
		}
		h.handleQuery(line)
	}
}

// handleCommand processes a ':' command line.
func (h *InputHandler) handleCommand(line string) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case ":learn":
		result := h.engine.Learn(h.section, arg)
		if result.Learned {
			h.log.Printf("learned: %q", arg)
		} else {
			h.log.Warnf("not learned (%s): %q", result.Reason, arg)
		}
	case ":section":
		resolved := h.engine.ResolveSectionKey(arg)
		if resolved == "" {
			h.log.Errorf("Unresolvable section: %q", arg)
			return
		}
		h.section = resolved
		h.log.Printf("active section: %s", resolved)
	case ":sections":
		for _, key := range h.engine.Sections() {
			h.log.Print(key)
		}
	case ":stats":
		for k, v := range h.engine.Stats() {
			h.log.Printf("%-18s %s", k, utils.FormatWithCommas(v))
		}
	default:
		h.log.Errorf("Unknown command: %s", cmd)
	}
}

// handleQuery processes a single query to generate suggestions.
// Results are formatted and printed to the log with timing.
func (h *InputHandler) handleQuery(query string) {
	h.requestCount++

	// input filtering by default (unless --no-filter flag is used)
	if !h.noFilter {
		if !utils.IsValidInput(query) {
			h.log.Infof("No results found for query: '%s'", query)
			return
		}
	} else {
		h.log.Debug("Input filtering disabled")
	}

	start := time.Now()
	h.log.Debug("Processing request for", "query", query)

	results := h.engine.GetSuggestions(h.section, query, h.suggestLimit)

	elapsed := time.Since(start)
	h.log.Debugf("Took [ %v ] for query '%s'", elapsed, query)

	if len(results) == 0 {
		h.log.Warnf("No suggestions found for query: '%s'", query)
		return
	}

	h.log.Printf("Found %d suggestions for query '%s':", len(results), query)
	for i, text := range results {
		clText := fmt.Sprintf("\033[38;5;75m%s\033[0m", text)
		h.log.Printf("%2d. %s", i+1, clText)
	}
}
