package service

import (
	"context"
	"testing"
	"time"

	"code-playground-be/internal/dto"
	"code-playground-be/pkg/composer"
	"code-playground-be/pkg/idgen"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveCreatesDistinctSnapshots(t *testing.T) {
	repo := newFakeProjectRepo()
	factory := newFakeFactory(newFakeUserRepo(), repo)

	// Freeze the clock so both saves land in the same millisecond.
	frozen := time.Now()
	svc := NewProjectService(factory, idgen.NewWithClock(func() time.Time { return frozen }), nil, nil)

	userId := uuid.New()
	req := &dto.SaveProjectRequest{
		Title:  "My Pen",
		Markup: "<h1>hi</h1>",
		Style:  "h1 { color: red; }",
		Script: "console.log(1)",
	}

	first, err := svc.Save(context.Background(), userId, req)
	require.NoError(t, err)
	second, err := svc.Save(context.Background(), userId, req)
	require.NoError(t, err)

	// Same sources, two snapshots: ids differ, content is identical.
	assert.NotEqual(t, first.Id, second.Id)
	assert.Less(t, first.Id, second.Id)

	snaps := repo.snapshots()
	require.Len(t, snaps, 2)
	assert.Equal(t, snaps[0].Markup, snaps[1].Markup)
	assert.Equal(t, snaps[0].Style, snaps[1].Style)
	assert.Equal(t, snaps[0].Script, snaps[1].Script)
	assert.Equal(t, snaps[0].Output, snaps[1].Output)
	assert.Equal(t, snaps[0].Title, snaps[1].Title)
}

func TestSaveRebuildsOutputFromSources(t *testing.T) {
	repo := newFakeProjectRepo()
	factory := newFakeFactory(newFakeUserRepo(), repo)
	svc := NewProjectService(factory, idgen.New(), nil, nil)

	req := &dto.SaveProjectRequest{
		Markup: "<p>body</p>",
		Style:  "p { margin: 0; }",
		Script: "alert('x')",
		Title:  "Styled",
	}

	_, err := svc.Save(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	snaps := repo.snapshots()
	require.Len(t, snaps, 1)

	want := composer.Compose(composer.SourceBuffers{
		Markup: req.Markup,
		Style:  req.Style,
		Script: req.Script,
		Title:  req.Title,
	})
	assert.Equal(t, want, snaps[0].Output)
}

func TestSaveEmptyProjectStoresTemplatedOutput(t *testing.T) {
	repo := newFakeProjectRepo()
	factory := newFakeFactory(newFakeUserRepo(), repo)
	svc := NewProjectService(factory, idgen.New(), nil, nil)

	_, err := svc.Save(context.Background(), uuid.New(), &dto.SaveProjectRequest{})
	require.NoError(t, err)

	snaps := repo.snapshots()
	require.Len(t, snaps, 1)

	// Empty sources still produce the full document skeleton, and the
	// title falls back to the default.
	assert.Equal(t, composer.DefaultTitle, snaps[0].Title)
	assert.Empty(t, snaps[0].Markup)
	assert.Empty(t, snaps[0].Style)
	assert.Empty(t, snaps[0].Script)
	assert.Equal(t, composer.Compose(composer.NewSourceBuffers()), snaps[0].Output)

	regions, ok := composer.ExtractRegions(snaps[0].Output)
	require.True(t, ok)
	assert.Empty(t, regions.Markup)
	assert.Empty(t, regions.Style)
	assert.Empty(t, regions.Script)
}

func TestShowScopesToOwner(t *testing.T) {
	repo := newFakeProjectRepo()
	factory := newFakeFactory(newFakeUserRepo(), repo)
	svc := NewProjectService(factory, idgen.New(), nil, nil)

	owner := uuid.New()
	res, err := svc.Save(context.Background(), owner, &dto.SaveProjectRequest{Title: "Mine"})
	require.NoError(t, err)

	got, err := svc.Show(context.Background(), owner, res.Id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Mine", got.Title)

	missing, err := svc.Show(context.Background(), owner, "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
