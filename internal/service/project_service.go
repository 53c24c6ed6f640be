package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"code-playground-be/internal/dto"
	"code-playground-be/internal/entity"
	"code-playground-be/internal/repository/specification"
	"code-playground-be/internal/repository/unitofwork"
	"code-playground-be/pkg/composer"
	"code-playground-be/pkg/events"
	"code-playground-be/pkg/idgen"
	pktNats "code-playground-be/pkg/nats"

	"github.com/google/uuid"
)

type IProjectService interface {
	Save(ctx context.Context, userId uuid.UUID, req *dto.SaveProjectRequest) (*dto.SaveProjectResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]*dto.ProjectResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id string) (*dto.ProjectResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id string) error
}

type projectService struct {
	uowFactory       unitofwork.RepositoryFactory
	ids              *idgen.Generator
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
}

func NewProjectService(
	uowFactory unitofwork.RepositoryFactory,
	ids *idgen.Generator,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
) IProjectService {
	return &projectService{
		uowFactory:       uowFactory,
		ids:              ids,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

// Save persists a new immutable snapshot of the submitted sources. The
// composite output is rebuilt here from the sources rather than trusted
// from the client, so the stored output always matches the stored
// sources. Every call creates a new row under a fresh id.
func (s *projectService) Save(ctx context.Context, userId uuid.UUID, req *dto.SaveProjectRequest) (*dto.SaveProjectResponse, error) {
	buffers := composer.SourceBuffers{
		Markup: req.Markup,
		Style:  req.Style,
		Script: req.Script,
		Title:  req.Title,
	}
	if buffers.Title == "" {
		buffers.Title = composer.DefaultTitle
	}

	project := &entity.Project{
		Id:        s.ids.Next(),
		Title:     buffers.Title,
		Markup:    buffers.Markup,
		Style:     buffers.Style,
		Script:    buffers.Script,
		Output:    composer.Compose(buffers),
		UserId:    userId,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ProjectRepository().Create(ctx, project); err != nil {
		return nil, err
	}

	// Internal fanout: other devices of this user learn about the save.
	if s.publisherService != nil {
		msgPayload := dto.SavedFrame{
			Type:      "project_saved",
			ProjectId: project.Id,
			Title:     project.Title,
		}
		msgJson, err := json.Marshal(struct {
			dto.SavedFrame
			UserId uuid.UUID `json:"user_id"`
		}{msgPayload, userId})
		if err != nil {
			return nil, err
		}
		if err := s.publisherService.Publish(ctx, msgJson); err != nil {
			fmt.Printf("[WARN] Failed to publish project-saved message: %v\n", err)
		}
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.ProjectSaved(project.Id, userId, project.Title)); err != nil {
			fmt.Printf("[WARN] Failed to publish PROJECT_SAVED event: %v\n", err)
		}
	}

	return &dto.SaveProjectResponse{
		Id:      project.Id,
		SavedAt: project.CreatedAt,
	}, nil
}

func (s *projectService) List(ctx context.Context, userId uuid.UUID) ([]*dto.ProjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	projects, err := uow.ProjectRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ProjectResponse, len(projects))
	for i, p := range projects {
		res[i] = toProjectResponse(p)
	}
	return res, nil
}

func (s *projectService) Show(ctx context.Context, userId uuid.UUID, id string) (*dto.ProjectResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	project, err := uow.ProjectRepository().FindOne(ctx,
		specification.ByProjectID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil // Not found
	}
	return toProjectResponse(project), nil
}

func (s *projectService) Delete(ctx context.Context, userId uuid.UUID, id string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	project, err := uow.ProjectRepository().FindOne(ctx,
		specification.ByProjectID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if project == nil {
		return fmt.Errorf("project not found")
	}
	return uow.ProjectRepository().Delete(ctx, id)
}

func toProjectResponse(p *entity.Project) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		Id:        p.Id,
		Title:     p.Title,
		Markup:    p.Markup,
		Style:     p.Style,
		Script:    p.Script,
		Output:    p.Output,
		UserId:    p.UserId,
		CreatedAt: p.CreatedAt,
	}
}
