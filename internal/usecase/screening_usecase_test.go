package usecase

import (
	"context"
	"testing"

	"hireflow/internal/infrastructure/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreening_Screen(t *testing.T) {
	st := newMemStore()
	files := newMemFiles()
	c := newMemCache()
	uc := NewScreeningUsecase(st.resumes, files, c, 1, 2, nil)

	res, err := uc.Screen(context.Background(), ScreenInput{
		JobDescription: "  Golang backend engineer, PostgreSQL and Redis  ",
		Files: []ResumeFile{
			{Filename: "chef.txt", Data: []byte("Chef cooking pasta and desserts")},
			{Filename: "ada_cv.txt", Data: []byte("Golang backend engineer with PostgreSQL and Redis")},
			{Filename: "photo.png", Data: []byte{0x89, 0x50}},
			{Filename: "blank.txt", Data: []byte("   \n ")},
		},
	})
	require.NoError(t, err)

	require.Len(t, res.Resumes, 2)
	assert.Equal(t, "ada_cv.txt", res.Resumes[0].Filename)
	assert.Equal(t, 1, res.Resumes[0].Rank)
	assert.True(t, res.Resumes[0].Shortlisted)
	assert.False(t, res.Resumes[1].Shortlisted)
	assert.Greater(t, res.Resumes[0].MatchPercent, res.Resumes[1].MatchPercent)
	assert.Equal(t, []string{"photo.png", "blank.txt"}, res.Skipped)
	assert.Equal(t, "Golang backend engineer, PostgreSQL and Redis", res.JobDescription)

	assert.Len(t, st.resumes.items, 2)
	assert.Len(t, files.objects, 2)
	assert.NotEmpty(t, res.Resumes[0].StorageKey)

	var jd string
	ok, err := c.GetJSON(context.Background(), cache.JobDescriptionKey("ada_cv.txt"), &jd)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, res.JobDescription, jd)
	assert.Equal(t, jobDescriptionTTL, c.ttls[cache.JobDescriptionKey("ada_cv.txt")])
	assert.Positive(t, jobDescriptionTTL)
}

func TestScreening_Screen_SameSafeNameKeepsBothFiles(t *testing.T) {
	st := newMemStore()
	files := newMemFiles()
	uc := NewScreeningUsecase(st.resumes, files, nil, 2, 2, nil)

	res, err := uc.Screen(context.Background(), ScreenInput{
		JobDescription: "golang postgres",
		Files: []ResumeFile{
			{Filename: "a b.txt", Data: []byte("golang engineer")},
			{Filename: "a_b.txt", Data: []byte("postgres administrator")},
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Resumes, 2)
	assert.Len(t, files.objects, 2)
	assert.NotEqual(t, res.Resumes[0].StorageKey, res.Resumes[1].StorageKey)
}

func TestScreening_Screen_Errors(t *testing.T) {
	st := newMemStore()
	uc := NewScreeningUsecase(st.resumes, newMemFiles(), nil, 3, 1, nil)

	_, err := uc.Screen(context.Background(), ScreenInput{JobDescription: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Screen(context.Background(), ScreenInput{
		JobDescription: "golang",
		Files:          []ResumeFile{{Filename: "x.exe", Data: []byte("MZ")}},
	})
	assert.ErrorIs(t, err, ErrNoResumes)

	broken := newMemFiles()
	broken.putErr = errBoom
	_, err = NewScreeningUsecase(st.resumes, broken, nil, 3, 1, nil).Screen(context.Background(), ScreenInput{
		JobDescription: "golang",
		Files:          []ResumeFile{{Filename: "a.txt", Data: []byte("golang")}},
	})
	assert.ErrorIs(t, err, ErrNoResumes)

	st.resumes.saveErr = errBoom
	_, err = uc.Screen(context.Background(), ScreenInput{
		JobDescription: "golang",
		Files:          []ResumeFile{{Filename: "a.txt", Data: []byte("golang")}},
	})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestScreening_BatchAndExport(t *testing.T) {
	st := newMemStore()
	uc := NewScreeningUsecase(st.resumes, newMemFiles(), nil, 3, 1, nil)

	res, err := uc.Screen(context.Background(), ScreenInput{
		JobDescription: "golang developer",
		Files:          []ResumeFile{{Filename: "a.txt", Data: []byte("golang developer")}},
	})
	require.NoError(t, err)

	got, err := uc.Batch(context.Background(), res.BatchID)
	require.NoError(t, err)
	assert.Equal(t, "golang developer", got.JobDescription)
	require.Len(t, got.Resumes, 1)

	b, err := uc.Export(context.Background(), res.BatchID)
	require.NoError(t, err)
	assert.Equal(t, []byte("PK"), b[:2])

	_, err = uc.Batch(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
