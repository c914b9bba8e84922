// Package server exposes the comparison engine over HTTP. One session is
// kept per RFQ so view preferences load once and persist through the
// debounced saver for as long as the process runs.
package server

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Burtinsaw/PROC-sub000/internal/session"
	"github.com/Burtinsaw/PROC-sub000/internal/storage"
)

// Server holds the stores and live comparison sessions.
type Server struct {
	rfqs         storage.RFQStore
	quotes       storage.QuoteStore
	prefs        storage.PreferenceStore
	baseCurrency string
	debounce     time.Duration
	logger       *log.Logger

	mu       sync.Mutex
	sessions map[string]*session.Session
}

// Options configures a Server.
type Options struct {
	RFQStore        storage.RFQStore
	QuoteStore      storage.QuoteStore
	PreferenceStore storage.PreferenceStore
	BaseCurrency    string
	PrefsDebounce   time.Duration
	Logger          *log.Logger
}

// New creates a Server.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.Writer(), "[server] ", log.LstdFlags)
	}
	baseCurrency := opts.BaseCurrency
	if baseCurrency == "" {
		baseCurrency = "TRY"
	}
	return &Server{
		rfqs:         opts.RFQStore,
		quotes:       opts.QuoteStore,
		prefs:        opts.PreferenceStore,
		baseCurrency: baseCurrency,
		debounce:     opts.PrefsDebounce,
		logger:       logger,
		sessions:     make(map[string]*session.Session),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router(corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(corsOrigins) == 1 && corsOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = corsOrigins
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsCfg))

	r.GET("/health", s.handleHealth)

	api := r.Group("/api")
	{
		api.POST("/rfqs", s.handleCreateRFQ)
		api.GET("/rfqs/:id", s.handleGetRFQ)
		api.POST("/rfqs/:id/quotes", s.handleSubmitQuotes)
		api.GET("/rfqs/:id/comparison", s.handleComparison)
		api.PUT("/rfqs/:id/preferences", s.handleUpdatePreferences)
		api.POST("/rfqs/:id/award", s.handleCommitAward)
		api.GET("/rfqs/:id/export", s.handleExport)
	}

	return r
}

// Close flushes and releases every live session.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		sess.Close()
		delete(s.sessions, id)
	}
}

// getSession returns the live session for an RFQ, creating it on first use.
func (s *Server) getSession(ctx context.Context, rfqID string) (*session.Session, error) {
	s.mu.Lock()
	if sess, ok := s.sessions[rfqID]; ok {
		s.mu.Unlock()
		return sess, nil
	}
	s.mu.Unlock()

	rfq, err := s.rfqs.GetByID(ctx, rfqID)
	if err != nil {
		return nil, err
	}
	quotes, err := s.quotes.GetByRFQ(ctx, rfqID)
	if err != nil {
		return nil, fmt.Errorf("load quotes for rfq %s: %w", rfqID, err)
	}

	sess := session.New(ctx, rfq, dereferenceQuotes(quotes), s.prefs, s.debounce, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[rfqID]; ok {
		// Lost the race; keep the first session.
		sess.Close()
		return existing, nil
	}
	s.sessions[rfqID] = sess
	return sess, nil
}

// refreshSession pushes the latest stored quotes into a live session, if any.
func (s *Server) refreshSession(ctx context.Context, rfqID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[rfqID]
	s.mu.Unlock()
	if !ok {
		return nil
	}

	quotes, err := s.quotes.GetByRFQ(ctx, rfqID)
	if err != nil {
		return fmt.Errorf("refresh quotes for rfq %s: %w", rfqID, err)
	}
	sess.SetQuotes(dereferenceQuotes(quotes))
	return nil
}
