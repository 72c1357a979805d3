package stubserver

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/storyreel/storyreel/internal/domain"
	"github.com/storyreel/storyreel/pkg/logger"
)

// Server is an in-memory reference backend for the three stories endpoints.
// It exists for the demo mode and for exercising the HTTP provider in tests;
// it is not a production storage layer.
type Server struct {
	engine *gin.Engine
	logger logger.Logger

	mu      sync.Mutex
	units   []domain.FeedUnit
	stories map[string][]domain.Story
}

func New(log logger.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine: gin.New(),
		logger: log,
	}
	s.units, s.stories = seed()

	s.engine.GET("/stories/feed", s.listFeed)
	s.engine.GET("/stories/:type/:id", s.listUnitStories)
	s.engine.POST("/stories/:storyId/view", s.markViewed)

	return s
}

// Handler exposes the routes for an http.Server or httptest.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) listFeed(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	units := make([]domain.FeedUnit, len(s.units))
	copy(units, s.units)
	c.JSON(http.StatusOK, units)
}

func (s *Server) listUnitStories(c *gin.Context) {
	unitType := c.Param("type")
	if unitType != string(domain.UnitTypeUser) && unitType != string(domain.UnitTypeSection) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown unit type"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// An unknown or emptied unit yields an empty list: valid, not an error.
	stories := s.stories[c.Param("id")]
	out := make([]domain.Story, len(stories))
	copy(out, stories)
	c.JSON(http.StatusOK, out)
}

func (s *Server) markViewed(c *gin.Context) {
	storyID := c.Param("storyId")

	s.mu.Lock()
	defer s.mu.Unlock()

	for unitID, stories := range s.stories {
		for i := range stories {
			if stories[i].ID != storyID {
				continue
			}
			stories[i].IsViewed = true
			s.recomputeAllViewed(unitID)
			c.Status(http.StatusNoContent)
			return
		}
	}

	// Idempotent surface: marking an unknown story is still a no-op success.
	c.Status(http.StatusNoContent)
}

func (s *Server) recomputeAllViewed(unitID string) {
	allViewed := true
	for _, st := range s.stories[unitID] {
		if !st.IsViewed {
			allViewed = false
			break
		}
	}
	for i := range s.units {
		if s.units[i].ID == unitID {
			s.units[i].AllViewed = allViewed
			return
		}
	}
}
