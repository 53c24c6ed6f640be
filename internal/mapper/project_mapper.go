package mapper

import (
	"code-playground-be/internal/entity"
	"code-playground-be/internal/model"
)

type ProjectMapper struct{}

func NewProjectMapper() *ProjectMapper {
	return &ProjectMapper{}
}

func (m *ProjectMapper) ToEntity(p *model.Project) *entity.Project {
	if p == nil {
		return nil
	}

	return &entity.Project{
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

func (m *ProjectMapper) ToModel(p *entity.Project) *model.Project {
	if p == nil {
		return nil
	}

	return &model.Project{
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

func (m *ProjectMapper) ToEntities(projects []*model.Project) []*entity.Project {
	entities := make([]*entity.Project, len(projects))
	for i, p := range projects {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
