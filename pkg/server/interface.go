/*
Package server implements msgpack IPC for hosts that drive the hint overlay.

The server reads a stream of msgpack requests from stdin and writes one response
per request to stdout. Before the first request it writes a ready message:

	{"status": "ready"}

Every request carries an ID echoed in its response and an action:

	{"id": "r1", "a": "render", "t": "a", "s": ["sd"], "r": 24, "c": 80}
	{"id": "r2", "a": "resolve", "h": "sd"}
	{"id": "r3", "a": "key", "k": "tab"}
	{"id": "r4", "a": "info"}

render draws the screen for the given typed prefix and selected hints without
touching session state. key feeds the session state machine and returns the
frame for the new state. resolve looks a full hint up. info reports sizes.

Timings are in microseconds. Failed requests get an ErrorResponse.
*/
package server

// Request is the single request shape; fields are used per action.
type Request struct {
	ID       string   `msgpack:"id"`
	Action   string   `msgpack:"a"`
	Typed    string   `msgpack:"t,omitempty"`
	Selected []string `msgpack:"s,omitempty"`
	Rows     int      `msgpack:"r,omitempty"`
	Cols     int      `msgpack:"c,omitempty"`
	Hint     string   `msgpack:"h,omitempty"`
	Key      string   `msgpack:"k,omitempty"`
}

// RenderResponse carries one frame.
type RenderResponse struct {
	ID        string `msgpack:"id"`
	Frame     string `msgpack:"f"`
	Targets   int    `msgpack:"n"`
	TimeTaken int64  `msgpack:"t"`
}

// ResolveResponse answers a hint lookup.
type ResolveResponse struct {
	ID        string `msgpack:"id"`
	Found     bool   `msgpack:"ok"`
	Hint      string `msgpack:"h,omitempty"`
	Text      string `msgpack:"x,omitempty"`
	TimeTaken int64  `msgpack:"t"`
}

// KeyResponse reports the session after a key press.
type KeyResponse struct {
	ID        string   `msgpack:"id"`
	Done      bool     `msgpack:"d"`
	Text      string   `msgpack:"x,omitempty"`
	Input     string   `msgpack:"i"`
	Multi     bool     `msgpack:"m"`
	Selected  []string `msgpack:"s,omitempty"`
	Remaining int      `msgpack:"n"`
	Frame     string   `msgpack:"f,omitempty"`
	TimeTaken int64    `msgpack:"t"`
}

// InfoResponse describes the loaded screen.
type InfoResponse struct {
	ID      string `msgpack:"id"`
	Lines   int    `msgpack:"lc"`
	Width   int    `msgpack:"w"`
	Hints   int    `msgpack:"hc"`
	Targets int    `msgpack:"n"`
	State   string `msgpack:"st"`
	Phase   string `msgpack:"p"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

// ReadyResponse is sent once before any request is read.
type ReadyResponse struct {
	Status string `msgpack:"status"`
}
