package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"code-playground-be/internal/dto"
	"code-playground-be/internal/pkg/logger"
	"code-playground-be/internal/repository/memory"
	"code-playground-be/pkg/composer"
	"code-playground-be/pkg/notice"
	"code-playground-be/pkg/store"

	"github.com/google/uuid"
)

const (
	saveConfirmMessage = "Project Saved.."
	saveFailedMessage  = "Could not save project, please try again"
)

type IEditorService interface {
	// Open starts a fresh editor session with empty buffers and the
	// default title.
	Open(userID uuid.UUID) *store.EditorSession
	Get(sessionID string) (*store.EditorSession, bool)

	// UpdateBuffer applies one pane edit, recomposes and returns the
	// preview frame for the new document.
	UpdateBuffer(sessionID, pane, content string) (*dto.PreviewFrame, error)

	// Save snapshots the session's current sources. The outcome is
	// surfaced as a transient notice pushed to the owner's devices;
	// the returned response is nil when the save failed.
	Save(ctx context.Context, sessionID string) (*dto.SaveProjectResponse, error)

	Close(sessionID string)
}

type editorService struct {
	sessions       *memory.EditorSessionRepository
	projectService IProjectService
	sender         FrameSender
	logger         logger.ILogger

	mu     sync.Mutex
	boards map[string]*notice.Board
}

func NewEditorService(
	sessions *memory.EditorSessionRepository,
	projectService IProjectService,
	sender FrameSender,
	log logger.ILogger,
) IEditorService {
	return &editorService{
		sessions:       sessions,
		projectService: projectService,
		sender:         sender,
		logger:         log,
		boards:         make(map[string]*notice.Board),
	}
}

func (s *editorService) Open(userID uuid.UUID) *store.EditorSession {
	session := store.NewEditorSession(userID)
	s.sessions.Save(session)

	board := notice.NewBoard(func(n *notice.Notice) {
		s.pushNotice(userID, n)
	})

	s.mu.Lock()
	s.boards[session.ID] = board
	s.mu.Unlock()

	s.logger.Info("Editor", "Session opened", map[string]interface{}{
		"session_id": session.ID,
		"user_id":    userID,
	})
	return session
}

func (s *editorService) Get(sessionID string) (*store.EditorSession, bool) {
	return s.sessions.Get(sessionID)
}

func (s *editorService) UpdateBuffer(sessionID, pane, content string) (*dto.PreviewFrame, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("editor session not found")
	}

	switch pane {
	case "html", "css", "js", "title":
	default:
		return nil, fmt.Errorf("unknown pane: %s", pane)
	}

	buffers := session.Edit(func(b *composer.SourceBuffers) {
		switch pane {
		case "html":
			b.Markup = content
		case "css":
			b.Style = content
		case "js":
			b.Script = content
		case "title":
			if content == "" {
				content = composer.DefaultTitle
			}
			b.Title = content
		}
	})

	doc := composer.Compose(buffers)
	rev := session.NextRevision()
	session.Renderer.Render(doc, rev)
	s.sessions.Save(session)

	return &dto.PreviewFrame{
		Type:     "preview",
		Output:   doc,
		Revision: rev,
	}, nil
}

func (s *editorService) Save(ctx context.Context, sessionID string) (*dto.SaveProjectResponse, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("editor session not found")
	}

	// The snapshot is taken up front; edits racing the store write
	// change the live buffers, not what this save persists.
	buffers := session.Snapshot()
	req := &dto.SaveProjectRequest{
		Title:  buffers.Title,
		Markup: buffers.Markup,
		Style:  buffers.Style,
		Script: buffers.Script,
	}

	res, err := s.projectService.Save(ctx, session.UserID, req)
	board := s.board(sessionID)

	if err != nil {
		s.logger.Error("Editor", "Save failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		if board != nil {
			board.Raise(notice.StatusError, saveFailedMessage, notice.AuthErrorWindow)
		}
		return nil, err
	}

	if board != nil {
		board.Raise(notice.StatusSuccess, saveConfirmMessage, notice.SaveConfirmWindow)
	}
	return res, nil
}

func (s *editorService) Close(sessionID string) {
	s.mu.Lock()
	board := s.boards[sessionID]
	delete(s.boards, sessionID)
	s.mu.Unlock()

	if board != nil {
		board.Close()
	}
	s.sessions.Delete(sessionID)
}

func (s *editorService) board(sessionID string) *notice.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boards[sessionID]
}

func (s *editorService) pushNotice(userID uuid.UUID, n *notice.Notice) {
	if s.sender == nil {
		return
	}

	frame := dto.NoticeFrame{Type: "notice"}
	if n != nil {
		frame.Status = n.Status
		frame.Message = n.Message
		frame.DurationMs = time.Until(n.Until).Milliseconds()
	}

	data, err := json.Marshal(frame)
	if err != nil {
		return
	}
	s.sender.Send(userID, data)
}
