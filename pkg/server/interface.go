/*
Package server implements msgpack IPC for the fault suggestion engine.

The server provides a minimal request/response interface over stdin/stdout
using binary msgpack encoding, so inspection front-ends can embed the engine
as a child process without linking Go code.

# IPC

Each message carries an ID and an op. Suggestion requests look like:

	{"id": "req_001", "op": "suggest", "sec": "tyres", "q": "wor", "l": 12}

The server responds with ranked display strings:

	{"id": "req_001", "s": [{"t": "Tyre worn below legal limit", "r": 1}], "c": 1, "t": 0}

Learning a confirmed phrase:

	{"id": "lrn_001", "op": "learn", "sec": "tyres", "text": "NSF tyre worn"}
	{"id": "lrn_001", "learned": true, "reason": "added"}

The "sections" op lists canonical section keys, and "health" returns engine
counters. Malformed ops receive an error response with a code; the engine
itself never surfaces errors for empty or unresolvable queries, only empty
suggestion lists.
*/
package server

// Request is the single envelope for every op.
type Request struct {
	ID      string `msgpack:"id"`
	Op      string `msgpack:"op"`
	Section string `msgpack:"sec,omitempty"`
	Query   string `msgpack:"q,omitempty"`
	Text    string `msgpack:"text,omitempty"`
	Limit   int    `msgpack:"l,omitempty"`
}

// Suggestion - one ranked display string.
type Suggestion struct {
	Text string `msgpack:"t"`
	Rank uint16 `msgpack:"r"`
}

// SuggestResponse - suggestion list response.
type SuggestResponse struct {
	ID          string       `msgpack:"id"`
	Suggestions []Suggestion `msgpack:"s"`
	Count       int          `msgpack:"c"`
	TimeTaken   int64        `msgpack:"t"`
}

// LearnResponse - learn outcome response.
type LearnResponse struct {
	ID      string `msgpack:"id"`
	Learned bool   `msgpack:"learned"`
	Reason  string `msgpack:"reason"`
}

// SectionsResponse - canonical section key listing.
type SectionsResponse struct {
	ID       string   `msgpack:"id"`
	Sections []string `msgpack:"sections"`
}

// HealthResponse - engine status and counters.
type HealthResponse struct {
	ID     string         `msgpack:"id"`
	Status string         `msgpack:"status"`
	Stats  map[string]int `msgpack:"stats,omitempty"`
}

// ErrorResponse holds basic error information for malformed requests.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
