package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/ritzau/lockgraph/pkg/check"
	"github.com/ritzau/lockgraph/pkg/cycles"
	"github.com/ritzau/lockgraph/pkg/logging"
	"github.com/ritzau/lockgraph/pkg/model"
	"github.com/ritzau/lockgraph/pkg/pubsub"
	"github.com/ritzau/lockgraph/pkg/tree"
)

// TreeNode is the JSON shape of a dependency tree node.
type TreeNode struct {
	Name        string     `json:"name"`
	Version     string     `json:"version,omitempty"`
	Dist        string     `json:"dist,omitempty"`
	Placeholder bool       `json:"placeholder,omitempty"`
	Children    []TreeNode `json:"children,omitempty"`
}

// CheckReport is the JSON shape of a reconciliation result.
type CheckReport struct {
	OK          bool                `json:"ok"`
	Unsatisfied []model.Requirement `json:"unsatisfied"`
	Superfluous []TreeNode          `json:"superfluous,omitempty"`
}

// Server serves the reconciliation state as a JSON API with SSE updates.
type Server struct {
	router    *mux.Router
	publisher pubsub.Publisher

	mu        sync.RWMutex
	modules   *model.LockGraph
	declared  []model.Requirement
	installed map[string]bool
}

// NewServer creates a new web server with an empty lock graph.
func NewServer() *Server {
	s := &Server{
		router:    mux.NewRouter(),
		publisher: pubsub.NewSSEPublisher(),
		modules:   model.NewLockGraph(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(logging.RequestIDMiddleware)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/tree", s.handleTree).Methods("GET")
	api.HandleFunc("/check", s.handleCheck).Methods("GET")
	api.HandleFunc("/modules", s.handleModules).Methods("GET")
	api.HandleFunc("/cycles", s.handleCycles).Methods("GET")

	s.router.HandleFunc("/events", s.handleEvents).Methods("GET")
}

// SetState replaces the reconciliation inputs and notifies subscribers.
func (s *Server) SetState(modules *model.LockGraph, declared []model.Requirement, installed map[string]bool) {
	s.mu.Lock()
	if modules == nil {
		modules = model.NewLockGraph()
	}
	s.modules = modules
	s.declared = declared
	s.installed = installed
	s.mu.Unlock()

	if err := s.publisher.Publish(pubsub.TopicLock, "updated", pubsub.LockStatus{
		Modules: len(modules.Modules),
	}); err != nil {
		logging.Warn("publishing lock update", "error", err)
	}

	result := check.Check(modules, declared, installed)
	superfluous := 0
	if result.Superfluous != nil {
		superfluous = len(tree.Flatten(result.Superfluous, true))
	}
	if err := s.publisher.Publish(pubsub.TopicCheck, "updated", pubsub.CheckStatus{
		Unsatisfied: len(result.Unsatisfied),
		Superfluous: superfluous,
		OK:          result.OK(),
	}); err != nil {
		logging.Warn("publishing check update", "error", err)
	}
}

// PublishLockError tells subscribers the lock failed to reload.
func (s *Server) PublishLockError(err error) {
	if perr := s.publisher.Publish(pubsub.TopicLock, "error", pubsub.LockStatus{
		Error: err.Error(),
	}); perr != nil {
		logging.Warn("publishing lock error", "error", perr)
	}
}

// Router exposes the handler for tests and embedding.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server on the given port, blocking until it fails.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	logging.Info("web API listening", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	t := tree.Build(s.modules, nil)
	s.mu.RUnlock()

	nodes := convertChildren(t.Root)
	if nodes == nil {
		nodes = []TreeNode{}
	}
	writeJSON(w, nodes)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	result := check.Check(s.modules, s.declared, s.installed)
	s.mu.RUnlock()

	report := CheckReport{
		OK:          result.OK(),
		Unsatisfied: result.Unsatisfied,
	}
	if report.Unsatisfied == nil {
		report.Unsatisfied = []model.Requirement{}
	}
	if result.Superfluous != nil {
		report.Superfluous = convertChildren(result.Superfluous.Root)
	}
	writeJSON(w, report)
}

func (s *Server) handleModules(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type moduleInfo struct {
		Name    string `json:"name"`
		Version string `json:"version,omitempty"`
		Dist    string `json:"dist,omitempty"`
	}

	out := make([]moduleInfo, 0, len(s.modules.Modules))
	for _, name := range s.modules.ModuleNames() {
		rec := s.modules.Lookup(name)
		out = append(out, moduleInfo{Name: rec.Name, Version: rec.Version, Dist: rec.Dist})
	}
	writeJSON(w, out)
}

func (s *Server) handleCycles(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	found := cycles.FindModuleCycles(s.modules)
	s.mu.RUnlock()

	if found == nil {
		found = []cycles.ModuleCycle{}
	}
	writeJSON(w, found)
}

// handleEvents streams lock and check updates as Server-Sent Events.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	topic := r.URL.Query().Get("topic")
	if topic == "" {
		topic = pubsub.TopicCheck
	}

	sub, err := s.publisher.Subscribe(r.Context(), topic)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	defer func() { _ = sub.Close() }()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			if err := pubsub.WriteSSE(w, event); err != nil {
				logging.Debug("SSE client gone", "error", err)
				return
			}
			flusher.Flush()
		}
	}
}

func convertNode(n *tree.Node) TreeNode {
	out := TreeNode{
		Name:        n.Record.Name,
		Version:     n.Record.Version,
		Dist:        n.Record.Dist,
		Placeholder: n.Placeholder,
	}
	out.Children = convertChildren(n)
	return out
}

func convertChildren(n *tree.Node) []TreeNode {
	if len(n.Children) == 0 {
		return nil
	}
	out := make([]TreeNode, 0, len(n.Children))
	for _, child := range n.Children {
		out = append(out, convertNode(child))
	}
	return out
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("encoding response", "error", err)
	}
}
