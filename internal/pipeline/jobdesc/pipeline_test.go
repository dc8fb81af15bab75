package jobdesc

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumerank/constants"
	"resumerank/internal/common"
	"resumerank/internal/entity"
	"resumerank/internal/extract"
	"resumerank/internal/llm"
)

type fakeJobReqRepo struct {
	rows map[uuid.UUID]*entity.JobRequirement
}

func newFakeJobReqRepo(rows ...*entity.JobRequirement) *fakeJobReqRepo {
	r := &fakeJobReqRepo{rows: make(map[uuid.UUID]*entity.JobRequirement)}
	for _, jr := range rows {
		r.rows[jr.ID] = jr
	}
	return r
}

func (r *fakeJobReqRepo) Create(_ context.Context, jr *entity.JobRequirement) error {
	if jr.ID == uuid.Nil {
		jr.ID = uuid.New()
	}
	r.rows[jr.ID] = jr
	return nil
}

func (r *fakeJobReqRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.JobRequirement, error) {
	jr, ok := r.rows[id]
	if !ok {
		return nil, common.NewAppError("JOB_REQUIREMENT_NOT_FOUND", id.String(), common.ErrNotFound)
	}
	cp := *jr
	return &cp, nil
}

func (r *fakeJobReqRepo) MarkProcessing(_ context.Context, id uuid.UUID, taskID string) error {
	jr := r.rows[id]
	jr.Status = constants.JDStatusProcessing
	jr.ProcessingTaskID = &taskID
	return nil
}

func (r *fakeJobReqRepo) MarkProcessed(_ context.Context, id uuid.UUID, title, descriptionText string) error {
	jr := r.rows[id]
	jr.Status = constants.JDStatusProcessed
	jr.Title = &title
	jr.DescriptionText = &descriptionText
	return nil
}

func (r *fakeJobReqRepo) MarkFailed(_ context.Context, id uuid.UUID, detail string) error {
	jr := r.rows[id]
	jr.Status = constants.JDStatusFailed
	jr.ErrorDetail = &detail
	return nil
}

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(_ context.Context, _ string) (extract.TextExtractionResult, error) {
	if f.err != nil {
		return extract.TextExtractionResult{}, f.err
	}
	return extract.TextExtractionResult{Text: f.text, Pages: 2, Method: "pdf-text"}, nil
}

type fakeTitler struct {
	title string
	err   error
}

func (f *fakeTitler) ExtractJobTitle(_ context.Context, _ string) (string, error) {
	return f.title, f.err
}

func (f *fakeTitler) AnalyzeResume(_ context.Context, _ llm.AnalyzeRequest) (*llm.Analysis, error) {
	return nil, errors.New("not used")
}

const jdText = "We are looking for a senior backend engineer to build our ranking systems."

func newUploadedJobReq() *entity.JobRequirement {
	return &entity.JobRequirement{
		ID:      uuid.New(),
		UserID:  uuid.New(),
		PDFPath: "/uploads/jd.pdf",
		Status:  constants.JDStatusUploaded,
	}
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("processed", func(t *testing.T) {
		jr := newUploadedJobReq()
		repo := newFakeJobReqRepo(jr)
		p := NewPipeline(nil, repo, &fakeExtractor{text: jdText}, &fakeTitler{title: "Backend Engineer"})

		require.NoError(t, p.Run(ctx, jr.ID, "task-1"))

		got := repo.rows[jr.ID]
		assert.Equal(t, constants.JDStatusProcessed, got.Status)
		require.NotNil(t, got.Title)
		assert.Equal(t, "Backend Engineer", *got.Title)
		require.NotNil(t, got.DescriptionText)
		assert.Equal(t, jdText, *got.DescriptionText)
		require.NotNil(t, got.ProcessingTaskID)
		assert.Equal(t, "task-1", *got.ProcessingTaskID)
	})

	t.Run("title fault falls back to placeholder", func(t *testing.T) {
		jr := newUploadedJobReq()
		repo := newFakeJobReqRepo(jr)
		p := NewPipeline(nil, repo, &fakeExtractor{text: jdText}, &fakeTitler{err: errors.New("llm status 500")})

		require.NoError(t, p.Run(ctx, jr.ID, "task-1"))

		got := repo.rows[jr.ID]
		assert.Equal(t, constants.JDStatusProcessed, got.Status)
		require.NotNil(t, got.Title)
		assert.Equal(t, llm.PlaceholderJobTitle, *got.Title)
	})

	t.Run("empty title falls back to placeholder", func(t *testing.T) {
		jr := newUploadedJobReq()
		repo := newFakeJobReqRepo(jr)
		p := NewPipeline(nil, repo, &fakeExtractor{text: jdText}, &fakeTitler{title: ""})

		require.NoError(t, p.Run(ctx, jr.ID, "task-1"))
		assert.Equal(t, llm.PlaceholderJobTitle, *repo.rows[jr.ID].Title)
	})

	t.Run("extraction fault fails the record", func(t *testing.T) {
		jr := newUploadedJobReq()
		repo := newFakeJobReqRepo(jr)
		p := NewPipeline(nil, repo, &fakeExtractor{err: errors.New("parse pdf: broken")}, &fakeTitler{})

		err := p.Run(ctx, jr.ID, "task-1")
		assert.Error(t, err)

		got := repo.rows[jr.ID]
		assert.Equal(t, constants.JDStatusFailed, got.Status)
		require.NotNil(t, got.ErrorDetail)
		assert.Contains(t, *got.ErrorDetail, "broken")
		assert.Nil(t, got.DescriptionText)
	})

	t.Run("empty text fails the record", func(t *testing.T) {
		jr := newUploadedJobReq()
		repo := newFakeJobReqRepo(jr)
		p := NewPipeline(nil, repo, &fakeExtractor{text: ""}, &fakeTitler{})

		err := p.Run(ctx, jr.ID, "task-1")
		assert.Error(t, err)
		assert.Equal(t, constants.JDStatusFailed, repo.rows[jr.ID].Status)
	})

	t.Run("unknown record", func(t *testing.T) {
		repo := newFakeJobReqRepo()
		p := NewPipeline(nil, repo, &fakeExtractor{text: jdText}, &fakeTitler{})

		err := p.Run(ctx, uuid.New(), "task-1")
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}
