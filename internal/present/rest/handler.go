package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/regulaworks/vendorcomply"
	"github.com/regulaworks/vendorcomply/internal/config"
	"github.com/regulaworks/vendorcomply/internal/domain"
	"github.com/regulaworks/vendorcomply/internal/present/rest/presenter"
	"github.com/regulaworks/vendorcomply/internal/usecase"
)

// RealtimeSource feeds subscription-scoped events to a websocket
// session.
type RealtimeSource interface {
	Realtime(ctx context.Context, input <-chan []string, output chan<- vendorcomply.Event)
}

type Handler struct {
	config       config.Portal
	submission   *usecase.SubmissionUsecase
	document     *usecase.DocumentUsecase
	resubmission *usecase.ResubmissionUsecase
	notify       RealtimeSource
}

func NewHandler(
	config config.Portal,
	submission *usecase.SubmissionUsecase,
	document *usecase.DocumentUsecase,
	resubmission *usecase.ResubmissionUsecase,
	notify RealtimeSource,
) *Handler {
	return &Handler{
		config:       config,
		submission:   submission,
		document:     document,
		resubmission: resubmission,
		notify:       notify,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/submissions", h.handleCreateSubmission)
	e.GET("/api/v1/submissions", h.handleListSubmissions)
	e.GET("/api/v1/submissions/:id", h.handleGetSubmission)
	e.DELETE("/api/v1/submissions/:id", h.handleDeleteSubmission)
	e.POST("/api/v1/submissions/:id/submit", h.handleSubmitForReview)
	e.POST("/api/v1/submissions/:id/finalize", h.handleFinalize)
	e.POST("/api/v1/submissions/:id/documents", h.handleUploadDocument)
	e.POST("/api/v1/submissions/:id/documents/:docID/decision", h.handleDecideDocument)
	e.POST("/api/v1/submissions/:id/documents/:docID/resubmit", h.handleResubmitDocument)
	e.DELETE("/api/v1/submissions/:id/documents/:docID", h.handleDeleteDocument)
	e.GET("/api/v1/documents/:id", h.handleGetDocument)
	e.POST("/api/v1/documents/:id/resubmit", h.handleResubmitByDocument)
	e.GET("/realtime", h.handleRealtime)
}

func actorID(c echo.Context) string {
	id, _ := c.Request().Context().Value(domain.ActorIdCtxKey).(string)
	return id
}

type createSubmissionRequest struct {
	VendorID   string                          `json:"vendorId"`
	Period     vendorcomply.Period             `json:"period"`
	Consultant vendorcomply.ConsultantSnapshot `json:"consultant"`
}

func (h *Handler) handleCreateSubmission(c echo.Context) error {
	ctx := c.Request().Context()

	var req createSubmissionRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	sub, err := h.submission.Create(ctx, req.VendorID, req.Period, req.Consultant)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, sub)
}

func (h *Handler) handleListSubmissions(c echo.Context) error {
	ctx := c.Request().Context()

	vendorID := c.QueryParam("vendor")
	if vendorID == "" {
		return presenter.BadRequestMessage(c, "vendor parameter is required")
	}

	subs, err := h.submission.List(ctx, vendorID)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, subs)
}

func (h *Handler) handleGetSubmission(c echo.Context) error {
	ctx := c.Request().Context()

	sub, err := h.submission.Get(ctx, c.Param("id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, sub)
}

func (h *Handler) handleDeleteSubmission(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.submission.DeleteDraft(ctx, c.Param("id"), actorID(c)); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleSubmitForReview(c echo.Context) error {
	ctx := c.Request().Context()

	sub, err := h.submission.SubmitForReview(ctx, c.Param("id"), actorID(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, sub)
}

type finalizeRequest struct {
	Decision string `json:"decision"`
	Remarks  string `json:"remarks"`
}

func (h *Handler) handleFinalize(c echo.Context) error {
	ctx := c.Request().Context()

	var req finalizeRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	sub, err := h.submission.Finalize(ctx, c.Param("id"), domain.FinalDecision(req.Decision), req.Remarks, actorID(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, sub)
}

type uploadDocumentRequest struct {
	Type        string `json:"type"`
	DisplayName string `json:"displayName"`
	ArtifactRef string `json:"artifactRef"`
	Mandatory   bool   `json:"mandatory"`
}

func (h *Handler) handleUploadDocument(c echo.Context) error {
	ctx := c.Request().Context()

	var req uploadDocumentRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	doc, err := h.document.Upload(ctx, c.Param("id"), domain.DocumentType(req.Type), req.DisplayName, req.ArtifactRef, req.Mandatory, actorID(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Created(c, doc)
}

type decisionRequest struct {
	Decision string `json:"decision"`
	Remarks  string `json:"remarks"`
}

func (h *Handler) handleDecideDocument(c echo.Context) error {
	ctx := c.Request().Context()

	var req decisionRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	doc, err := h.document.Decide(ctx, c.Param("id"), c.Param("docID"), domain.ReviewDecision(req.Decision), req.Remarks, actorID(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, doc)
}

type resubmitRequest struct {
	ArtifactRef  string `json:"artifactRef"`
	DocumentType string `json:"documentType,omitempty"`
}

func (h *Handler) handleResubmitDocument(c echo.Context) error {
	ctx := c.Request().Context()

	var req resubmitRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	doc, err := h.resubmission.Resubmit(ctx, usecase.ResubmitInput{
		SubmissionID: c.Param("id"),
		DocumentID:   c.Param("docID"),
		DocumentType: domain.DocumentType(req.DocumentType),
		ArtifactRef:  req.ArtifactRef,
		ActorID:      actorID(c),
	})
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, doc)
}

// handleResubmitByDocument serves legacy callers that only hold a
// document id; the reconciler resolves the owning submission.
func (h *Handler) handleResubmitByDocument(c echo.Context) error {
	ctx := c.Request().Context()

	var req resubmitRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	doc, err := h.resubmission.ResubmitByDocumentID(ctx, c.Param("id"), req.ArtifactRef, actorID(c))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, doc)
}

func (h *Handler) handleDeleteDocument(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.document.Delete(ctx, c.Param("id"), c.Param("docID"), actorID(c)); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleGetDocument(c echo.Context) error {
	ctx := c.Request().Context()

	doc, err := h.document.Get(ctx, c.Param("id"))
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.OK(c, doc)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type realtimeRequest struct {
	Type       string   `json:"type"`
	Recipients []string `json:"recipients"`
}

func (h *Handler) handleRealtime(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer func() {
		ws.Close()
	}()

	ctx := c.Request().Context()

	input := make(chan []string)
	defer close(input)
	output := make(chan vendorcomply.Event)

	go h.notify.Realtime(ctx, input, output)

	// buffered so the reader never blocks on this send when the write
	// loop has already returned
	quit := make(chan struct{}, 1)

	go func() {
		for {
			var req realtimeRequest
			err := ws.ReadJSON(&req)
			if err != nil {

				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.ErrorContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}

				quit <- struct{}{}
				break
			}

			switch req.Type {
			case "listen":
				input <- req.Recipients
			case "h": // heartbeat
				// do nothing
			default:
				slog.InfoContext(
					ctx, "Unknown request type",
					slog.String("type", req.Type),
					slog.String("module", "socket"),
				)
			}
		}
	}()

	for {
		select {
		case <-quit:
			return nil
		case event := <-output:
			err := ws.WriteJSON(event)
			if err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		case <-time.After(60 * time.Second):
			// idle keepalive
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return nil
			}
		}
	}
}
