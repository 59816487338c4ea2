package todoserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Todo mirrors the jsonplaceholder todo resource.
type Todo struct {
	ID        int    `json:"id" yaml:"id"`
	UserID    int    `json:"userId" yaml:"userId"`
	Title     string `json:"title" yaml:"title"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// DefaultCount is the number of todos seeded by New.
const DefaultCount = 200

// Seed returns n todos. Todo 1 matches jsonplaceholder's first entry.
func Seed(n int) []Todo {
	todos := make([]Todo, n)
	for i := range todos {
		id := i + 1
		todos[i] = Todo{
			ID:        id,
			UserID:    i/20 + 1,
			Title:     fmt.Sprintf("todo %d", id),
			Completed: id%3 == 0,
		}
	}
	if n > 0 {
		todos[0].Title = "delectus aut autem"
	}
	return todos
}

// Option configures a Server.
type Option func(*Server)

// WithTodos replaces the seeded todos.
func WithTodos(todos []Todo) Option {
	return func(s *Server) { s.seed = slices.Clone(todos) }
}

// Server is an in-memory todo API served over httptest. It implements
// testutil.TestComponent.
type Server struct {
	mu     sync.RWMutex
	seed   []Todo
	todos  map[int]Todo
	nextID int
	engine *gin.Engine
	srv    *httptest.Server
}

// New creates a stopped server seeded with DefaultCount todos.
func New(opts ...Option) *Server {
	s := &Server{seed: Seed(DefaultCount)}
	for _, opt := range opts {
		opt(s)
	}
	s.restore()

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.GET("/todos", s.list)
	engine.GET("/todos/:id", s.get)
	engine.POST("/todos", s.create)
	engine.PUT("/todos/:id", s.update)
	engine.DELETE("/todos/:id", s.remove)
	engine.GET("/delay/:ms", s.delay)
	s.engine = engine
	return s
}

// Name returns the component name.
func (s *Server) Name() string { return "todoserver" }

// Start serves the API on a loopback listener.
func (s *Server) Start(_ context.Context) error {
	if s.srv != nil {
		return fmt.Errorf("todoserver: already started")
	}
	s.srv = httptest.NewServer(s.engine)
	return nil
}

// Stop shuts the listener down.
func (s *Server) Stop(_ context.Context) error {
	if s.srv != nil {
		s.srv.Close()
		s.srv = nil
	}
	return nil
}

// Reset discards writes and restores the seed.
func (s *Server) Reset(_ context.Context) error {
	s.restore()
	return nil
}

// URL returns the base URL of a started server.
func (s *Server) URL() string {
	if s.srv == nil {
		return ""
	}
	return s.srv.URL
}

// Handler exposes the routes for in-process use.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) restore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos = make(map[int]Todo, len(s.seed))
	s.nextID = 1
	for _, t := range s.seed {
		s.todos[t.ID] = t
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
}

// respond writes YAML when the client asks for it, JSON otherwise.
func respond(c *gin.Context, status int, v any) {
	if strings.Contains(c.GetHeader("Accept"), "yaml") {
		c.YAML(status, v)
		return
	}
	c.JSON(status, v)
}

func bind(c *gin.Context, v any) error {
	if strings.Contains(c.ContentType(), "yaml") {
		return c.ShouldBindYAML(v)
	}
	return c.ShouldBindJSON(v)
}

func (s *Server) list(c *gin.Context) {
	s.mu.RLock()
	out := make([]Todo, 0, len(s.todos))
	for _, t := range s.todos {
		out = append(out, t)
	}
	s.mu.RUnlock()
	slices.SortFunc(out, func(a, b Todo) int { return a.ID - b.ID })

	if raw := c.Query("userId"); raw != "" {
		userID, _ := strconv.Atoi(raw)
		out = slices.DeleteFunc(out, func(t Todo) bool { return t.UserID != userID })
	}
	respond(c, http.StatusOK, out)
}

func (s *Server) get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respond(c, http.StatusNotFound, gin.H{})
		return
	}
	s.mu.RLock()
	t, ok := s.todos[id]
	s.mu.RUnlock()
	if !ok {
		respond(c, http.StatusNotFound, gin.H{})
		return
	}
	respond(c, http.StatusOK, t)
}

// create assigns the next free id and answers 201.
func (s *Server) create(c *gin.Context) {
	var t Todo
	if err := bind(c, &t); err != nil {
		respond(c, http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.mu.Lock()
	t.ID = s.nextID
	s.nextID++
	s.todos[t.ID] = t
	s.mu.Unlock()
	respond(c, http.StatusCreated, t)
}

// update replaces the todo and echoes it back with the path id.
func (s *Server) update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respond(c, http.StatusNotFound, gin.H{})
		return
	}
	var t Todo
	if err := bind(c, &t); err != nil {
		respond(c, http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t.ID = id
	s.mu.Lock()
	s.todos[id] = t
	s.mu.Unlock()
	respond(c, http.StatusOK, t)
}

// remove deletes the todo and answers with an empty object, found or not.
func (s *Server) remove(c *gin.Context) {
	if id, err := strconv.Atoi(c.Param("id")); err == nil {
		s.mu.Lock()
		delete(s.todos, id)
		s.mu.Unlock()
	}
	respond(c, http.StatusOK, gin.H{})
}

// delay answers after the given number of milliseconds, or when the client goes away.
func (s *Server) delay(c *gin.Context) {
	ms, _ := strconv.Atoi(c.Param("ms"))
	select {
	case <-time.After(time.Duration(ms) * time.Millisecond):
		respond(c, http.StatusOK, gin.H{"delayed_ms": ms})
	case <-c.Request.Context().Done():
	}
}
