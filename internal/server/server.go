package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"seektam-backend/internal/catalog"
	"seektam-backend/internal/components/assert"
	"seektam-backend/internal/components/telemetry"

	"github.com/gin-gonic/gin"
)

const (
	report_server_request = "server.request"
	report_server_query   = "server.query"
)

// Catalog is the read side of catalog.Store.
type Catalog interface {
	Foods(ctx context.Context, params catalog.ListFoodsParams) ([]catalog.Food, error)
	Food(ctx context.Context, name string) (catalog.Food, error)
	Aliment(ctx context.Context, name string) (catalog.Aliment, error)
	Search(ctx context.Context, query string, limit int) ([]catalog.SearchResult, error)
	Stats(ctx context.Context) (catalog.Stats, error)
}

type Server struct {
	catalog Catalog
	tel     telemetry.API
}

func New(c Catalog, tel telemetry.API) Server {
	assert.NotNil(c)
	assert.NotNil(tel)
	return Server{
		catalog: c,
		tel:     telemetry.NewScopedAPI("server", tel),
	}
}

// Router exposes the catalog as a read only json api.
func (s Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.logRequest)

	router.GET("/healthz", s.healthz)

	api := router.Group("/api")
	{
		api.GET("/foods", s.listFoods)
		api.GET("/foods/:name", s.getFood)
		api.GET("/aliments/:name", s.getAliment)
		api.GET("/search", s.search)
	}

	return router
}

func (s Server) logRequest(c *gin.Context) {
	start := time.Now()
	c.Next()
	s.tel.ReportDebug(
		report_server_request,
		c.Request.Method,
		c.Request.URL.Path,
		c.Writer.Status(),
		time.Since(start).String(),
	)
}

// fail writes the error response matching err.
func (s Server) fail(c *gin.Context, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	s.tel.ReportBroken(report_server_query, err, c.Request.URL.String())
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func (s Server) healthz(c *gin.Context) {
	stats, err := s.catalog.Stats(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "stats": stats})
}

type listFoodsQuery struct {
	CategoryBig   string `form:"category_big"`
	CategorySmall string `form:"category_small"`
	Limit         int    `form:"limit,default=100" binding:"min=0,max=1000"`
	Offset        int    `form:"offset" binding:"min=0"`
}

func (s Server) listFoods(c *gin.Context) {
	var query listFoodsQuery
	err := c.ShouldBindQuery(&query)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	foods, err := s.catalog.Foods(c.Request.Context(), catalog.ListFoodsParams{
		CategoryBig:   query.CategoryBig,
		CategorySmall: query.CategorySmall,
		Limit:         query.Limit,
		Offset:        query.Offset,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	if foods == nil {
		foods = []catalog.Food{}
	}
	c.JSON(http.StatusOK, foods)
}

func (s Server) getFood(c *gin.Context) {
	food, err := s.catalog.Food(c.Request.Context(), c.Param("name"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

func (s Server) getAliment(c *gin.Context) {
	aliment, err := s.catalog.Aliment(c.Request.Context(), c.Param("name"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, aliment)
}

type searchQuery struct {
	Q     string `form:"q" binding:"required"`
	Limit int    `form:"limit,default=10" binding:"min=1,max=100"`
}

func (s Server) search(c *gin.Context) {
	var query searchQuery
	err := c.ShouldBindQuery(&query)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := s.catalog.Search(c.Request.Context(), query.Q, query.Limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	if results == nil {
		results = []catalog.SearchResult{}
	}
	c.JSON(http.StatusOK, results)
}
