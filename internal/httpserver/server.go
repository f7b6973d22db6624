package httpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/loglens/loglens/internal/analyze"
	"github.com/loglens/loglens/internal/model"
	"github.com/loglens/loglens/internal/snapshot"
)

// RecordSource is the narrow snapshot contract required by the HTTP API.
type RecordSource interface {
	Current() *snapshot.Snapshot
	Refresh() int
}

// Server serves the dashboard page and the JSON API over the current
// record snapshot.
type Server struct {
	addr         string
	source       RecordSource
	topAddresses int
	server       *http.Server
	listener     net.Listener
	ctx          context.Context
	cancel       context.CancelFunc
	startTime    time.Time
}

// NewServer creates a new dashboard server.
func NewServer(addr string, source RecordSource, topAddresses int) *Server {
	if addr == "" {
		addr = fmt.Sprintf("0.0.0.0:%d", model.DefaultHTTPPort)
	}
	if topAddresses <= 0 {
		topAddresses = model.DefaultTopAddresses
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:         addr,
		source:       source,
		topAddresses: topAddresses,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	s.registerRoutes(r)

	s.server = &http.Server{
		Handler:           r,
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.listener = listener
	s.startTime = time.Now()

	go s.server.Serve(listener)
	return nil
}

// Addr returns the active listen address.
// Before Start, it returns the configured address.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) registerRoutes(r *gin.Engine) {
	r.GET("/", s.handleDashboard)
	r.GET("/api/charts", s.handleCharts)
	r.GET("/api/logs", s.handleSummary)
	r.GET("/api/refresh", s.handleRefresh)
	r.GET("/api/health", s.handleHealth)
}

// criteriaFromQuery pulls the optional filter predicates out of the request.
// An out-of-range or non-numeric hour means no hour constraint.
func criteriaFromQuery(c *gin.Context) model.FilterCriteria {
	criteria := model.FilterCriteria{
		Date:    c.Query("date"),
		Address: c.Query("ip"),
		Family:  c.Query("browser"),
	}
	if raw := c.Query("hour"); raw != "" {
		if hour, err := strconv.Atoi(raw); err == nil && hour >= 0 && hour <= 23 {
			criteria.Hour = &hour
		}
	}
	return criteria
}

// chartData computes the three aggregate views for the current snapshot under
// the request's filters and granularity.
func (s *Server) chartData(c *gin.Context) (model.Granularity, model.TrafficSeries, model.FrequencyTable, model.CategoryDistribution) {
	criteria := criteriaFromQuery(c)
	requested := model.ParseGranularity(c.DefaultQuery("granularity", string(model.GranularityHourly)))
	granularity := analyze.EffectiveGranularity(requested, criteria)

	snap := s.source.Current()
	filtered := analyze.New(snap.Records).ApplyFilters(criteria)
	view := analyze.New(filtered)

	return granularity,
		view.TrafficOverTime(granularity),
		view.AddressFrequency(s.topAddresses),
		view.SoftwareDistribution()
}

func (s *Server) handleCharts(c *gin.Context) {
	granularity, traffic, addresses, software := s.chartData(c)
	c.JSON(http.StatusOK, gin.H{
		"granularity": granularity,
		"traffic":     traffic,
		"addresses":   addresses,
		"software":    software,
	})
}

func (s *Server) handleSummary(c *gin.Context) {
	snap := s.source.Current()
	c.JSON(http.StatusOK, analyze.New(snap.Records).Summarize())
}

func (s *Server) handleRefresh(c *gin.Context) {
	n := s.source.Refresh()
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Reloaded %d log entries", n),
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	snap := s.source.Current()
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"uptime":       time.Since(s.startTime).String(),
		"record_count": len(snap.Records),
		"loaded_at":    snap.LoadedAt,
	})
}
