package controller

import (
	"context"
	"encoding/json"
	"strconv"

	"code-playground-be/internal/dto"
	"code-playground-be/internal/pkg/logger"
	"code-playground-be/internal/pkg/serverutils"
	"code-playground-be/internal/service"
	internalWS "code-playground-be/internal/websocket"
	"code-playground-be/pkg/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type IEditorController interface {
	RegisterRoutes(r fiber.Router)
	ServeWs(ctx *fiber.Ctx) error
	Preview(ctx *fiber.Ctx) error
}

type editorController struct {
	editorService service.IEditorService
	hub           *internalWS.Hub
	sessions      *session.Registry
	logger        logger.ILogger
}

func NewEditorController(editorService service.IEditorService, hub *internalWS.Hub, sessions *session.Registry, log logger.ILogger) IEditorController {
	return &editorController{
		editorService: editorService,
		hub:           hub,
		sessions:      sessions,
		logger:        log,
	}
}

func (c *editorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/editor/v1")
	h.Get("/ws", c.ServeWs)
	// The preview is fetched by the sandboxed iframe, which cannot carry
	// an Authorization header; session ids are unguessable uuids.
	h.Get("/:session_id/preview", c.Preview)
}

// frameGate pushes redirect frames down one websocket connection when
// the session drops to unauthenticated.
type frameGate struct {
	send chan<- []byte
}

func (g *frameGate) Redirect(path string, replace bool) {
	data, err := json.Marshal(dto.RedirectFrame{
		Type:    "redirect",
		Path:    path,
		Replace: replace,
	})
	if err != nil {
		return
	}
	select {
	case g.send <- data:
	default:
	}
}

// ServeWs authenticates the handshake, opens an editor session and
// speaks the edit/save frame protocol until the peer goes away.
func (c *editorController) ServeWs(ctx *fiber.Ctx) error {
	tokenStr := ctx.Query("token")
	if tokenStr == "" {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	userIDStr, err := serverutils.ParseUserID(tokenStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID format in token"})
	}

	if websocket.IsWebSocketUpgrade(ctx) {
		return websocket.New(func(conn *websocket.Conn) {
			c.serveEditor(conn, userID)
		})(ctx)
	}
	return fiber.ErrUpgradeRequired
}

func (c *editorController) serveEditor(conn *websocket.Conn, userID uuid.UUID) {
	editorSession := c.editorService.Open(userID)

	// One tracker per connection, created once the client is wired so
	// redirect frames have somewhere to go.
	var tracker *session.Tracker

	handle := func(client *internalWS.Client, data []byte) {
		if tracker == nil {
			tracker = session.NewTracker(&frameGate{send: client.Send})
			tracker.Apply(&session.Identity{UserID: userID})
			c.sessions.Attach(userID, tracker)
		}

		var frame dto.EditorFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			c.logger.Warn("Editor", "Dropping malformed frame", map[string]interface{}{
				"user_id": client.UserID,
				"error":   err.Error(),
			})
			return
		}

		switch frame.Type {
		case "edit":
			preview, err := c.editorService.UpdateBuffer(editorSession.ID, frame.Pane, frame.Content)
			if err != nil {
				// Session expired from the cache mid-connection: this
				// client is no longer operating an authenticated editor.
				tracker.Apply(nil)
				return
			}
			if out, err := json.Marshal(preview); err == nil {
				// Drop the frame if the write side has stalled; the next
				// edit produces a fresher preview anyway.
				select {
				case client.Send <- out:
				default:
				}
			}

		case "save":
			// Saves run off the read loop so a slow store never blocks
			// further edits.
			go func() {
				_, _ = c.editorService.Save(context.Background(), editorSession.ID)
			}()

		default:
			c.logger.Warn("Editor", "Unknown frame type", map[string]interface{}{
				"type": frame.Type,
			})
		}
	}

	onClose := func(client *internalWS.Client) {
		c.editorService.Close(editorSession.ID)
		if tracker != nil {
			c.sessions.Detach(userID, tracker)
			tracker.Close()
		}
	}

	internalWS.ServeWs(c.hub, conn, userID, handle, onClose)
}

// Preview serves the last composed document for a session. The response
// is fenced off with a sandboxing CSP so embedded script runs isolated
// from the host application; the server itself never evaluates the
// document.
func (c *editorController) Preview(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")

	editorSession, ok := c.editorService.Get(sessionID)
	if !ok {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Editor session not found"))
	}

	doc, rev := editorSession.Renderer.Current()

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	ctx.Set(fiber.HeaderContentSecurityPolicy, "sandbox allow-scripts")
	ctx.Set("X-Preview-Revision", strconv.FormatUint(rev, 10))
	return ctx.SendString(doc)
}
