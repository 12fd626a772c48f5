// Package server exposes the content store, page search and the particle
// engine over HTTP.
package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"starfield/internal/content"
	"starfield/internal/core"
	"starfield/internal/field"
	"starfield/internal/site"
)

const (
	// MaxCount caps particle counts requested over HTTP.
	MaxCount = 5000
	// MaxStreamFrames caps the frames of one stream.
	MaxStreamFrames = 600

	defaultStreamFrames = 300
	streamDT            = 1.0 / 60
)

// Server wires the HTTP routes to their collaborators.
type Server struct {
	store  *content.Store
	params field.Params
	cfg    Config
}

// New returns a server over store using params for every engine it runs.
func New(cfg Config, store *content.Store, params field.Params) *Server {
	return &Server{store: store, params: params, cfg: cfg}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	api := r.Group("/api")
	api.GET("/content", s.listContent)
	api.GET("/content/:type/:slug", s.getContent)
	api.GET("/search", s.search)
	api.GET("/formation", s.formation)
	api.GET("/field/params", s.fieldParams)
	api.GET("/field/stream", s.stream)
	return r
}

func (s *Server) listContent(c *gin.Context) {
	typ := c.Query("type")
	if typ == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type parameter is required"})
		return
	}
	items, err := s.store.ListByType(typ)
	switch {
	case errors.Is(err, content.ErrUnknownType):
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown content type"})
		return
	case err != nil:
		log.Printf("Error listing %s: %v", typ, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch content"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) getContent(c *gin.Context) {
	item, err := s.store.Get(c.Param("type"), c.Param("slug"))
	switch {
	case errors.Is(err, content.ErrUnknownType), errors.Is(err, content.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	case err != nil:
		log.Printf("Error loading %s/%s: %v", c.Param("type"), c.Param("slug"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch content"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) search(c *gin.Context) {
	limit, ok := intQuery(c, "limit", 0)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, site.Search(c.Query("q"), limit))
}

type formationResponse struct {
	Scene     string       `json:"scene"`
	Count     int          `json:"count"`
	Positions []float32    `json:"positions"`
	Colors    []float32    `json:"colors"`
	Groups    []core.Group `json:"groups"`
}

func (s *Server) formation(c *gin.Context) {
	width, ok := intQuery(c, "width", 1920)
	if !ok {
		return
	}
	height, ok := intQuery(c, "height", 1080)
	if !ok {
		return
	}
	dev := core.Device{Width: width, Cores: s.cfg.Cores}
	count, ok := intQuery(c, "count", dev.ParticleCount())
	if !ok {
		return
	}
	seed, ok := intQuery(c, "seed", int(s.params.Seed))
	if !ok {
		return
	}
	f := core.Generate(core.Request{
		Scene:    c.DefaultQuery("scene", core.SceneHome),
		Count:    min(max(count, 0), MaxCount),
		Viewport: core.Viewport{W: width, H: height},
		Seed:     int64(seed),
		Lensing:  c.Query("lensing") == "true" || s.params.Lensing,
	})
	groups := f.Layout.Groups
	if groups == nil {
		groups = []core.Group{}
	}
	c.JSON(http.StatusOK, formationResponse{
		Scene:     f.Name,
		Count:     f.Count(),
		Positions: f.Positions,
		Colors:    f.Colors,
		Groups:    groups,
	})
}

func (s *Server) fieldParams(c *gin.Context) {
	c.JSON(http.StatusOK, s.params.Parameters())
}

type streamFrame struct {
	Frame     int       `json:"frame"`
	Phase     string    `json:"phase"`
	Positions []float32 `json:"positions"`
	Colors    []float32 `json:"colors"`
}

// stream runs a private engine from one scene to another and sends every
// frame as a server-sent event.
func (s *Server) stream(c *gin.Context) {
	frames, ok := intQuery(c, "frames", defaultStreamFrames)
	if !ok {
		return
	}
	count, ok := intQuery(c, "count", core.Device{Width: 1920, Cores: s.cfg.Cores}.ParticleCount())
	if !ok {
		return
	}
	frames = min(max(frames, 1), MaxStreamFrames)
	from := c.DefaultQuery("from", core.SceneHome)
	to := c.DefaultQuery("to", core.SceneProjects)

	params := s.params
	params.Count = min(max(count, 1), MaxCount)
	vp := core.Viewport{W: 1920, H: 1080}
	e := field.New(core.Device{Width: vp.W, Cores: s.cfg.Cores}, vp, params)
	defer e.Close()
	e.Start(from)
	e.SetScene(to)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	ctx := c.Request.Context()
	for n := 1; n <= frames; n++ {
		select {
		case <-ctx.Done():
			return
		default:
		}
		res := e.Frame(streamDT)
		attrs := e.Attrs()
		c.SSEvent("frame", streamFrame{
			Frame:     n,
			Phase:     res.Phase.String(),
			Positions: attrs.Positions,
			Colors:    attrs.Colors,
		})
		if res.Settled {
			c.SSEvent("settled", gin.H{"scene": e.Scene(), "frame": n, "cutoff": res.CutOff})
		}
		c.Writer.Flush()
	}
	c.SSEvent("done", gin.H{"frames": frames})
	c.Writer.Flush()
}

func intQuery(c *gin.Context, key string, def int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + key})
		return 0, false
	}
	return v, true
}
