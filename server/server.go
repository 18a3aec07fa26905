// Package server exposes process documents and their resolved graphs over
// HTTP for editor front ends.
package server

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/meikuraledutech/procgraph"
	"github.com/meikuraledutech/procgraph/internal/logging"
	"go.uber.org/zap"
)

// Server holds the handlers' dependencies. It keeps no graph between
// requests: every request loads, resolves and, for edits, saves.
type Server struct {
	store   procgraph.Store
	log     *zap.Logger
	metrics *Metrics
}

// New builds the fiber app.
func New(store procgraph.Store, log *zap.Logger, metrics *Metrics) *fiber.App {
	s := &Server{store: store, log: log, metrics: metrics}

	app := fiber.New(fiber.Config{UnescapePath: true})

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// ── Documents ─────────────────────────────────────────────────────
	app.Get("/documents", s.listDocuments)
	app.Post("/documents", s.createDocument)
	app.Get("/documents/:key", s.getDocument)
	app.Put("/documents/:key", s.putDocument)
	app.Delete("/documents/:key", s.deleteDocument)

	// ── Graph ─────────────────────────────────────────────────────────
	app.Get("/documents/:key/graph", s.getGraph)
	app.Get("/documents/:key/mermaid", s.getMermaid)
	app.Get("/documents/:key/lint", s.getLint)
	app.Put("/documents/:key/nodes/:id/position", s.putPosition)
	app.Put("/documents/:key/nodes/:id/label", s.putLabel)

	return app
}

func (s *Server) listDocuments(c fiber.Ctx) error {
	keys, err := s.store.ListDocuments(c.Context())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(keys)
}

func (s *Server) createDocument(c fiber.Ctx) error {
	doc, err := procgraph.DecodeBytes(c.Body())
	if err != nil {
		return s.fail(c, err)
	}
	key := uuid.NewString()
	if err := s.store.SaveDocument(c.Context(), key, doc); err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"key": key})
}

func (s *Server) getDocument(c fiber.Ctx) error {
	doc, err := s.store.GetDocument(c.Context(), c.Params("key"))
	if err != nil {
		return s.fail(c, err)
	}
	body, err := procgraph.EncodeBytes(doc)
	if err != nil {
		return s.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(body)
}

func (s *Server) putDocument(c fiber.Ctx) error {
	doc, err := procgraph.DecodeBytes(c.Body())
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.store.SaveDocument(c.Context(), c.Params("key"), doc); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) deleteDocument(c fiber.Ctx) error {
	if err := s.store.DeleteDocument(c.Context(), c.Params("key")); err != nil {
		return s.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) getGraph(c fiber.Ctx) error {
	g, err := s.graph(c.Context(), c.Params("key"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(g)
}

func (s *Server) getMermaid(c fiber.Ctx) error {
	g, err := s.graph(c.Context(), c.Params("key"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.SendString(g.Mermaid())
}

func (s *Server) getLint(c fiber.Ctx) error {
	doc, err := s.store.GetDocument(c.Context(), c.Params("key"))
	if err != nil {
		return s.fail(c, err)
	}
	findings := procgraph.Lint(doc)
	if findings == nil {
		findings = []procgraph.Finding{}
	}
	return c.JSON(findings)
}

type positionRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type labelRequest struct {
	Name string `json:"name"`
}

func (s *Server) putPosition(c fiber.Ctx) error {
	var req positionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	return s.edit(c, "position", func(g *procgraph.Graph) (*procgraph.Graph, error) {
		return procgraph.ApplyPositionEdit(g, c.Params("id"), req.X, req.Y)
	})
}

func (s *Server) putLabel(c fiber.Ctx) error {
	var req labelRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	return s.edit(c, "label", func(g *procgraph.Graph) (*procgraph.Graph, error) {
		return procgraph.ApplyLabelEdit(g, c.Params("id"), req.Name)
	})
}

// edit applies fn to the stored document's graph and saves the result.
func (s *Server) edit(c fiber.Ctx, kind string, fn func(*procgraph.Graph) (*procgraph.Graph, error)) error {
	key := c.Params("key")
	g, err := s.graph(c.Context(), key)
	if err != nil {
		return s.fail(c, err)
	}
	next, err := fn(g)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.store.SaveDocument(c.Context(), key, procgraph.ToDocument(next)); err != nil {
		return s.fail(c, err)
	}
	s.metrics.observeEdit(kind)
	return c.JSON(next)
}

func (s *Server) graph(ctx context.Context, key string) (*procgraph.Graph, error) {
	doc, err := s.store.GetDocument(ctx, key)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	g, res := procgraph.BuildResolution(doc)
	s.metrics.observeResolution(time.Since(start).Seconds(), res)
	logging.Skipped(s.log, doc.ProcessID, res.Skipped)
	return g, nil
}

// fail maps store and engine errors to HTTP statuses.
func (s *Server) fail(c fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, procgraph.ErrDocumentNotFound), errors.Is(err, procgraph.ErrNodeNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, procgraph.ErrInvalidKey):
		status = fiber.StatusBadRequest
	case procgraph.IsKind(err, procgraph.ParseError):
		status = fiber.StatusUnprocessableEntity
	default:
		s.log.Error("request failed", zap.String("path", c.Path()), logging.Err(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
