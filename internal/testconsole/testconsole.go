// Package testconsole is a miniature stand-in for the product console:
// an http server rendering just enough of its markup (quadicon listings,
// toolbars, flash banners) for framework tests to run against without an
// appliance. It mirrors the real console's routes and error texts.
package testconsole

import (
	"fmt"
	"html/template"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/conwalk/conwalk/internal/logr"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Title}}</title></head>
<body>
{{if .Flash}}<div class="{{.FlashClass}}">{{.Flash}}</div>{{end}}
<div id="toolbar">
  <button title="Configuration">Configuration</button>
  <a title="Add a New Host" href="/host/new">Add a New Host</a>
</div>
<div id="content">
{{range .Hosts}}<div id="item-host-{{.}}"><a href="/host/{{.}}">{{.}}</a></div>
{{end}}
{{if .ShowForm}}
<form method="POST" action="/host/create">
  <input id="name" name="name">
  <input id="hostname" name="hostname">
  <input id="ipaddress" name="ipaddress">
  <input id="default_userid" name="default_userid">
  <input id="default_password" name="default_password" type="password">
  <button id="add_submit" type="submit">Add</button>
  <button id="cancel_button" type="button">Cancel</button>
</form>
{{end}}
</div>
</body>
</html>`))

type pageData struct {
	Title      string
	Flash      string
	FlashClass string
	Hosts      []string
	ShowForm   bool
}

// Server is the stub console. Hosts live in memory; state resets with the
// server.
type Server struct {
	logger logr.Logger
	router *mux.Router

	mu    sync.Mutex
	hosts map[string]bool
	flash struct {
		text  string
		class string
	}
}

func New(logger logr.Logger) *Server {
	s := &Server{
		logger: logger,
		hosts:  make(map[string]bool),
	}
	r := mux.NewRouter()
	r.HandleFunc("/", s.dashboard).Methods("GET")
	r.HandleFunc("/host/show_list", s.listHosts).Methods("GET")
	r.HandleFunc("/host/new", s.newHost).Methods("GET")
	r.HandleFunc("/host/create", s.createHost).Methods("POST")
	r.HandleFunc("/host/{name}/delete", s.deleteHost).Methods("POST")
	s.router = r
	return s
}

// Router exposes the handler for httptest servers.
func (s *Server) Router() http.Handler { return s.router }

// AddHost seeds a host, e.g. to provoke a duplicate-name failure.
func (s *Server) AddHost(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hosts[name] = true
}

// HasHost reports whether a host exists.
func (s *Server) HasHost(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hosts[name]
}

func (s *Server) render(w http.ResponseWriter, data pageData) {
	s.mu.Lock()
	data.Flash, data.FlashClass = s.flash.text, s.flash.class
	s.flash.text, s.flash.class = "", ""
	s.mu.Unlock()

	if err := pageTmpl.Execute(w, data); err != nil {
		s.logger.Error(err, "rendering page")
	}
}

func (s *Server) setFlash(text, class string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flash.text, s.flash.class = text, class
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	s.render(w, pageData{Title: "Dashboard"})
}

func (s *Server) listHosts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	names := make([]string, 0, len(s.hosts))
	for name := range s.hosts {
		names = append(names, name)
	}
	s.mu.Unlock()
	s.render(w, pageData{Title: "Hosts", Hosts: names})
}

func (s *Server) newHost(w http.ResponseWriter, r *http.Request) {
	s.render(w, pageData{Title: "Add Host", ShowForm: true})
}

func (s *Server) createHost(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	if name == "" {
		s.setFlash("Name can't be blank", "flash-error")
		http.Redirect(w, r, "/host/new", http.StatusSeeOther)
		return
	}

	s.mu.Lock()
	duplicate := s.hosts[name]
	if !duplicate {
		s.hosts[name] = true
	}
	s.mu.Unlock()

	if duplicate {
		s.setFlash("Name has already been taken", "flash-error")
		http.Redirect(w, r, "/host/new", http.StatusSeeOther)
		return
	}
	s.logger.Info("host added", "name", name)
	s.setFlash(fmt.Sprintf("Host %q was added", name), "flash-success")
	http.Redirect(w, r, "/host/show_list", http.StatusSeeOther)
}

func (s *Server) deleteHost(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	s.mu.Lock()
	_, ok := s.hosts[name]
	delete(s.hosts, name)
	s.mu.Unlock()

	if !ok {
		s.setFlash(fmt.Sprintf("Host %q not found", name), "flash-error")
	} else {
		s.setFlash(fmt.Sprintf("Host %q was removed", name), "flash-success")
	}
	http.Redirect(w, r, "/host/show_list", http.StatusSeeOther)
}
