package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/agenthands/protgraph/internal/core"
	"github.com/agenthands/protgraph/internal/core/extraction"
	"github.com/agenthands/protgraph/internal/source"
	"github.com/agenthands/protgraph/internal/uniprot"
)

const defaultMaxBodyBytes = 64 << 20

type Ingester interface {
	Ingest(ctx context.Context, doc *uniprot.Document) (*core.RunResult, error)
	Summary(ctx context.Context, accession string) (map[string]int64, error)
}

type DocumentLoader interface {
	Load(ctx context.Context, ref string) (*uniprot.Document, error)
}

type Server struct {
	Ingester     Ingester
	Loader       DocumentLoader
	Logger       *zap.Logger
	Gatherer     prometheus.Gatherer
	MaxBodyBytes int64
}

func NewServer(ing Ingester, loader DocumentLoader, logger *zap.Logger, gatherer prometheus.Gatherer) *Server {
	return &Server{
		Ingester:     ing,
		Loader:       loader,
		Logger:       logger,
		Gatherer:     gatherer,
		MaxBodyBytes: defaultMaxBodyBytes,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", s.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{})))
	r.POST("/ingest", s.Ingest)
	r.POST("/extract", s.Extract)
	r.GET("/proteins/:accession", s.GetProtein)

	return r
}

// IngestRequest names a document to fetch. A request whose body is the
// document itself (XML, or JSON with a "uniprot" root) is accepted too.
type IngestRequest struct {
	Source string `json:"source"`
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) Ingest(c *gin.Context) {
	doc, err := s.readDocument(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	result, err := s.Ingester.Ingest(c.Request.Context(), doc)
	if err != nil {
		appErr := MapError(err)
		s.Logger.Error("Ingestion failed", zap.Error(err))
		resp := gin.H{"error": appErr.Message, "detail": err.Error()}
		if result != nil {
			resp["run_id"] = result.RunID
			resp["written"] = result.Written
		}
		c.JSON(appErr.Code, resp)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Extract runs extraction only and returns the records that an ingestion
// would write.
func (s *Server) Extract(c *gin.Context) {
	doc, err := s.readDocument(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	ex, err := extraction.ExtractAll(doc)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, ex)
}

func (s *Server) GetProtein(c *gin.Context) {
	accession := c.Param("accession")
	counts, err := s.Ingester.Summary(c.Request.Context(), accession)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": accession, "relationships": counts})
}

func (s *Server) readDocument(c *gin.Context) (*uniprot.Document, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, s.MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if int64(len(body)) > s.MaxBodyBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, s.MaxBodyBytes)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrInvalidRequest)
	}

	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req IngestRequest
		if err := json.Unmarshal(body, &req); err == nil && req.Source != "" {
			return s.Loader.Load(c.Request.Context(), req.Source)
		}
	}

	return source.Decode(body)
}

func (s *Server) fail(c *gin.Context, err error) {
	appErr := MapError(err)
	if appErr.Code >= http.StatusInternalServerError {
		s.Logger.Error(appErr.Message, zap.String("path", c.FullPath()), zap.Error(err))
	} else {
		s.Logger.Warn(appErr.Message, zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(appErr.Code, gin.H{"error": appErr.Message, "detail": err.Error()})
}
