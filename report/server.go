// Package report turns a run database into a small web server so that
// recorded check outcomes can be inspected from a browser or scripted
// against.
package report

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/browser"

	"github.com/conformlab/constcheck/recording"
)

// A Server exposes recorded check runs over HTTP.
type Server struct {
	store      *recording.RunStore
	portNumber int
	listener   net.Listener
}

// NewServer creates a new server over the given run store.
func NewServer(store *recording.RunStore) *Server {
	return &Server{store: store}
}

// WithPortNumber sets the port number of the server.
func (s *Server) WithPortNumber(portNumber int) *Server {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the report server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	s.portNumber = portNumber

	return s
}

// StartServer starts the server with a custom port if wanted.
func (s *Server) StartServer() {
	r := s.router()

	actualPort := ":0"
	if s.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(s.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	s.listener = listener

	fmt.Fprintf(
		os.Stderr,
		"Serving check results on http://localhost:%d\n",
		listener.Addr().(*net.TCPAddr).Port)

	go func() {
		err = http.Serve(listener, r)
		dieOnErr(err)
	}()
}

// OpenInBrowser opens the run listing in the default browser. The server
// must have been started.
func (s *Server) OpenInBrowser() {
	url := fmt.Sprintf("http://localhost:%d/api/runs",
		s.listener.Addr().(*net.TCPAddr).Port)

	err := browser.OpenURL(url)
	dieOnErr(err)
}

func (s *Server) router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/runs", s.listRuns)
	r.HandleFunc("/api/summary", s.summary)

	return r
}

func (s *Server) listRuns(w http.ResponseWriter, _ *http.Request) {
	runs := s.store.ListRuns()
	if runs == nil {
		runs = []recording.RunRecord{}
	}

	rsp, err := json.Marshal(runs)
	dieOnErr(err)

	_, err = w.Write(rsp)
	dieOnErr(err)
}

func (s *Server) summary(w http.ResponseWriter, _ *http.Request) {
	var total, passed, violated int
	for _, r := range s.store.ListRuns() {
		total++
		if r.Status == recording.StatusPass {
			passed++
		} else {
			violated++
		}
	}

	fmt.Fprintf(w, "{\"total\":%d,\"passed\":%d,\"violated\":%d}",
		total, passed, violated)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
