package chtl

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
)

// wsUpgrader upgrades livereload requests to WebSocket.
var wsUpgrader = websocket.Upgrader{}

// reloadSnippet is injected into served documents to reconnect on
// recompiles.
const reloadSnippet = `<script>
(function() {
var ws = new WebSocket("ws://" + location.host + "/.livereload");
ws.onmessage = function() { location.reload(); };
})();
</script>
`

// DevServer serves the compiled document over HTTP, watches the source file
// and pushes a reload event to connected browsers on every successful
// recompile. It is a development aid; production output goes through
// Compiler.CompileToFile.
type DevServer struct {
	// Source is the CHTL file to compile and serve.
	Source string

	// Compiler performs the compilations. A zero compiler is used when nil.
	Compiler *Compiler

	// Logger configures logging for internal events.
	Logger *slog.Logger

	mu      sync.Mutex
	html    string
	clients map[*websocket.Conn]struct{}

	init   sync.Once
	logger *slog.Logger
}

func (s *DevServer) setup() {
	s.init.Do(func() {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		if s.Logger != nil {
			s.logger = s.Logger
		}
		if s.Compiler == nil {
			s.Compiler = &Compiler{}
		}
		s.clients = make(map[*websocket.Conn]struct{})
	})
}

// ListenAndServe compiles once, starts the file watcher and serves on addr
// until the listener fails.
func (s *DevServer) ListenAndServe(addr string) error {
	s.setup()

	if err := s.recompile(); err != nil {
		s.logger.Error("Initial compile", "error", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(s.Source)); err != nil {
		return fmt.Errorf("watch %s: %w", s.Source, err)
	}

	go s.watchLoop(watcher)

	mux := http.NewServeMux()
	mux.HandleFunc("/.livereload", s.handleLivereload)
	mux.HandleFunc("/", s.handlePage)

	s.logger.Info("Serving", "addr", addr, "source", s.Source)
	return http.ListenAndServe(addr, mux)
}

func (s *DevServer) watchLoop(watcher *fsnotify.Watcher) {
	target := filepath.Clean(s.Source)
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := s.recompile(); err != nil {
				s.logger.Error("Recompile", "error", err)
				continue
			}
			s.notifyClients()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Error("Watcher", "error", err)
		}
	}
}

func (s *DevServer) recompile() error {
	src, err := os.ReadFile(s.Source)
	if err != nil {
		return err
	}
	html, diags, err := s.Compiler.Compile(s.Source, string(src))
	if err != nil {
		PrintDiagnostics(os.Stderr, diags)
		return err
	}
	s.mu.Lock()
	s.html = html
	s.mu.Unlock()
	s.logger.Info("Compiled", "source", s.Source)
	return nil
}

func (s *DevServer) notifyClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, []byte("reload")); err != nil {
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

func (s *DevServer) handlePage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	html := s.html
	s.mu.Unlock()

	if html == "" {
		http.Error(w, "compilation failed, check the server log", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, injectReload(html))
}

func (s *DevServer) handleLivereload(w http.ResponseWriter, r *http.Request) {
	if !websocket.IsWebSocketUpgrade(r) {
		http.Error(w, "websocket required", http.StatusBadRequest)
		return
	}
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Upgrade livereload", "error", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()

	// drain until the client goes away
	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// injectReload splices the livereload snippet before </body>, or appends it.
func injectReload(html string) string {
	if i := indexTagFold(html, "</body>"); i >= 0 {
		return html[:i] + reloadSnippet + html[i:]
	}
	return html + reloadSnippet
}
