// Package remotetest is an in-memory stand-in for the hosted Content, Feedback and Upload stores.
// It speaks the same JSON shapes and counts every request per route, so tests can assert that
// validation failures never reach the network.
package remotetest

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"sporthall/internal/domain/content"
	"sporthall/internal/domain/feedback"
	"sporthall/internal/domain/gallery"
)

// Route paths served by the fake.
const (
	RouteContent  = "/content"
	RouteFeedback = "/feedback"
	RouteSubmit   = "/send"
	RouteDocument = "/docs"
	RouteImage    = "/photo"
)

// naiveISO mirrors the zone-less timestamps the real feedback store emits.
const naiveISO = "2006-01-02T15:04:05.000000"

type failure struct {
	status  int
	message string
}

type hold struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

// Server is a fake of all three hosted stores.
type Server struct {
	srv *httptest.Server

	mu        sync.Mutex
	content   content.Content
	photos    []gallery.Photo
	nextPhoto int
	messages  []feedback.Message
	nextMsg   int64
	documents map[string][]byte
	images    []string
	calls     map[string]int
	failures  map[string]failure
	holds     map[string]*hold
	now       func() time.Time
}

// New starts a fake seeded with content.Defaults and closes it when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		content:   content.Defaults(),
		nextPhoto: 1,
		nextMsg:   1,
		documents: make(map[string][]byte),
		calls:     make(map[string]int),
		failures:  make(map[string]failure),
		holds:     make(map[string]*hold),
		now:       time.Now,
	}
	mux := http.NewServeMux()
	mux.HandleFunc(RouteContent, s.handleContent)
	mux.HandleFunc(RouteFeedback, s.handleFeedback)
	mux.HandleFunc(RouteSubmit, s.handleSubmit)
	mux.HandleFunc(RouteDocument, s.handleDocument)
	mux.HandleFunc(RouteImage, s.handleImage)
	s.srv = httptest.NewServer(s.count(mux))
	t.Cleanup(s.srv.Close)
	return s
}

// Client returns an HTTP client for the fake.
func (s *Server) Client() *http.Client { return s.srv.Client() }

func (s *Server) ContentURL() string  { return s.srv.URL + RouteContent }
func (s *Server) FeedbackURL() string { return s.srv.URL + RouteFeedback }
func (s *Server) SubmitURL() string   { return s.srv.URL + RouteSubmit }
func (s *Server) DocumentURL() string { return s.srv.URL + RouteDocument }
func (s *Server) ImageURL() string    { return s.srv.URL + RouteImage }

// Calls returns how many requests hit route.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// TotalCalls returns the number of requests across all routes.
func (s *Server) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

// Fail makes every request to route answer status with {"error": message} until Recover.
// An empty message produces a body without an error field.
func (s *Server) Fail(route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, message: message}
}

// Recover clears a failure set by Fail.
func (s *Server) Recover(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

// Hold parks the response to the next GET on route until release is called.
// The body is produced before entered closes, so it reflects the store at that moment.
// release is safe to call more than once.
func (s *Server) Hold(route string) (entered <-chan struct{}, release func()) {
	h := &hold{entered: make(chan struct{}), release: make(chan struct{})}
	s.mu.Lock()
	s.holds[route] = h
	s.mu.Unlock()
	return h.entered, func() { h.once.Do(func() { close(h.release) }) }
}

// Content returns a copy of the stored contacts and sports.
func (s *Server) Content() content.Content {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content.Clone()
}

// SetContent replaces the stored contacts and sports.
func (s *Server) SetContent(c content.Content) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content = c.Clone()
}

// Photos returns a copy of the stored gallery.
func (s *Server) Photos() []gallery.Photo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]gallery.Photo(nil), s.photos...)
}

// Messages returns a copy of every stored feedback message.
func (s *Server) Messages() []feedback.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]feedback.Message(nil), s.messages...)
}

// AddMessage stores a message directly and returns its id.
func (s *Server) AddMessage(m feedback.Message) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = s.nextMsg
	s.nextMsg++
	if m.CreatedAt.IsZero() {
		m.CreatedAt = s.now().UTC()
	}
	s.messages = append(s.messages, m)
	return m.ID
}

// Document returns the stored PDF for a document type.
func (s *Server) Document(docType string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.documents[docType]
	return b, ok
}

// Images returns the data URLs posted to the image endpoint.
func (s *Server) Images() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.images...)
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := path.Clean(r.URL.Path)
		s.mu.Lock()
		s.calls[route]++
		f, failing := s.failures[route]
		h := s.holds[route]
		if h != nil && r.Method == http.MethodGet {
			delete(s.holds, route)
		} else {
			h = nil
		}
		s.mu.Unlock()
		if failing {
			body := map[string]string{}
			if f.message != "" {
				body["error"] = f.message
			}
			writeJSON(w, f.status, body)
			return
		}
		if h == nil {
			next.ServeHTTP(w, r)
			return
		}
		rec := httptest.NewRecorder()
		next.ServeHTTP(rec, r)
		close(h.entered)
		<-h.release
		for k, v := range rec.Header() {
			w.Header()[k] = v
		}
		w.WriteHeader(rec.Code)
		_, _ = w.Write(rec.Body.Bytes())
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type typedBody struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type photoBody struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		if r.URL.Query().Get("type") == typeGallery {
			out := make([]photoBody, 0, len(s.photos))
			for _, p := range s.photos {
				out = append(out, photoBody{ID: p.ID, URL: p.URL, Title: p.Title, Description: p.Description})
			}
			writeJSON(w, http.StatusOK, out)
			return
		}
		writeJSON(w, http.StatusOK, s.content)

	case http.MethodPost:
		var body typedBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Type != typeGallery {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		var p photoBody
		if err := json.Unmarshal(body.Data, &p); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		p.ID = strconv.Itoa(s.nextPhoto)
		s.nextPhoto++
		s.photos = append([]gallery.Photo{{ID: p.ID, URL: p.URL, Title: p.Title, Description: p.Description}}, s.photos...)
		writeJSON(w, http.StatusCreated, map[string]any{
			"success": true, "id": p.ID, "url": p.URL, "title": p.Title, "description": p.Description,
		})

	case http.MethodPut:
		var body typedBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		switch body.Type {
		case typeContacts:
			var c content.Contact
			if err := json.Unmarshal(body.Data, &c); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			s.content.Contacts = c
		case typeSports:
			var sports []content.Sport
			if err := json.Unmarshal(body.Data, &sports); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			s.content.Sports = sports
		case typeGallery:
			var p photoBody
			if err := json.Unmarshal(body.Data, &p); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			for i := range s.photos {
				if s.photos[i].ID == p.ID {
					s.photos[i] = gallery.Photo{ID: p.ID, URL: p.URL, Title: p.Title, Description: p.Description}
				}
			}
		default:
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})

	case http.MethodDelete:
		q := r.URL.Query()
		if q.Get("type") != typeGallery {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		id := q.Get("id")
		kept := s.photos[:0]
		for _, p := range s.photos {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		s.photos = kept
		writeJSON(w, http.StatusOK, map[string]any{"success": true})

	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

const (
	typeContacts = "contacts"
	typeSports   = "sports"
	typeGallery  = "gallery"
)

type messageBody struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Message    string  `json:"message"`
	CreatedAt  *string `json:"created_at"`
	IsRead     bool    `json:"is_read"`
	IsArchived bool    `json:"is_archived"`
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		archived := strings.EqualFold(r.URL.Query().Get("archived"), "true")
		list := []messageBody{}
		var unread, archivedCount int
		// Newest first, as the real store orders by created_at DESC.
		for i := len(s.messages) - 1; i >= 0; i-- {
			m := s.messages[i]
			if !m.IsRead {
				unread++
			}
			if m.IsArchived {
				archivedCount++
			}
			if m.IsArchived != archived {
				continue
			}
			ts := m.CreatedAt.UTC().Format(naiveISO)
			list = append(list, messageBody{
				ID: m.ID, Name: m.Name, Email: m.Email, Message: m.Message,
				CreatedAt: &ts, IsRead: m.IsRead, IsArchived: m.IsArchived,
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"feedback":       list,
			"total_count":    len(s.messages),
			"unread_count":   unread,
			"archived_count": archivedCount,
		})

	case http.MethodPut:
		id, ok := s.messageIndex(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "Feedback ID required")
			return
		}
		var body struct {
			Action string `json:"action"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Action == "" {
			body.Action = string(feedback.ActionMarkRead)
		}
		if id >= 0 {
			switch feedback.Action(body.Action) {
			case feedback.ActionMarkRead:
				s.messages[id].IsRead = true
			case feedback.ActionArchive:
				s.messages[id].IsArchived = true
			case feedback.ActionUnarchive:
				s.messages[id].IsArchived = false
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Success"})

	case http.MethodDelete:
		id, ok := s.messageIndex(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "Feedback ID required")
			return
		}
		if id >= 0 {
			s.messages = append(s.messages[:id], s.messages[id+1:]...)
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted"})

	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// messageIndex resolves ?id= to a slice index, -1 when no message matches.
// ok is false when the id parameter is absent or not a number.
// PRE: s.mu is held
func (s *Server) messageIndex(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	for i, m := range s.messages {
		if m.ID == id {
			return i, true
		}
	}
	return -1, true
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var body feedback.Submission
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if body.Name == "" || body.Email == "" {
		writeError(w, http.StatusBadRequest, "Name and email are required")
		return
	}
	s.AddMessage(feedback.Message{Name: body.Name, Email: body.Email, Message: body.Message})
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Email sent successfully"})
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		data, ok := s.Document(r.URL.Query().Get("type"))
		if !ok {
			writeError(w, http.StatusNotFound, "Document not found")
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(data)

	case http.MethodPost:
		var body struct {
			DocType  string `json:"docType"`
			FileData string `json:"fileData"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.DocType == "" {
			writeError(w, http.StatusBadRequest, "docType and fileData are required")
			return
		}
		data, err := base64.StdEncoding.DecodeString(body.FileData)
		if err != nil {
			writeError(w, http.StatusBadRequest, "fileData is not base64")
			return
		}
		s.mu.Lock()
		s.documents[body.DocType] = data
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"message": "Document uploaded"})

	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var body struct {
		File     string `json:"file"`
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.File == "" {
		writeError(w, http.StatusBadRequest, "No file data provided")
		return
	}
	ext := "jpg"
	if i := strings.LastIndexByte(body.Filename, '.'); i >= 0 && i < len(body.Filename)-1 {
		ext = body.Filename[i+1:]
	}
	name := uuid.NewString() + "." + ext

	s.mu.Lock()
	s.images = append(s.images, body.File)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{
		"url":      "https://cdn.test/" + name,
		"filename": name,
	})
}
