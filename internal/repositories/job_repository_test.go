package repositories_test

import (
	"testing"

	"triveni_backend/internal/models"
	"triveni_backend/internal/query"
	"triveni_backend/internal/repositories"
	"triveni_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobList_ActiveSecondPage(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewJobRepository()

	for i := 0; i < 12; i++ {
		testutil.CreateJob(t, db)
	}
	for i := 0; i < 3; i++ {
		testutil.CreateJob(t, db, func(j *models.Job) { j.Status = models.JobStatusDraft })
	}

	q := repositories.JobSchema.Build(query.Params{
		Filters: map[string]string{"status": "active"},
		Page:    2,
		Limit:   5,
	})
	jobs, total, err := repo.List(db, q)
	require.NoError(t, err)

	assert.Equal(t, int64(12), total)
	assert.Len(t, jobs, 5)
	for _, j := range jobs {
		assert.Equal(t, models.JobStatusActive, j.Status)
	}

	p := query.ForQuery(q, total)
	assert.Equal(t, 3, p.Pages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)
}

func TestJobList_UnknownStatusYieldsEmptyPage(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewJobRepository()
	testutil.CreateJob(t, db)

	q := repositories.JobSchema.Build(query.Params{Filters: map[string]string{"status": "bogus"}})
	jobs, total, err := repo.List(db, q)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, jobs)
}

func TestJobFindByID_InvalidIDIsNotFound(t *testing.T) {
	db := testutil.NewDB(t)
	_, err := repositories.NewJobRepository().FindByID(db, "not-a-uuid")
	assert.ErrorIs(t, err, repositories.ErrJobNotFound)
}

func TestReconcileApplicationCounts_OnlyRaises(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewJobRepository()

	lagging := testutil.CreateJob(t, db)
	testutil.CreateApplication(t, db, lagging)
	testutil.CreateApplication(t, db, lagging)

	ahead := testutil.CreateJob(t, db)
	testutil.CreateApplication(t, db, ahead)
	require.NoError(t, db.Model(ahead).UpdateColumn("applications", 7).Error)

	fixed, err := repo.ReconcileApplicationCounts(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), fixed)

	reloaded, err := repo.FindByID(db, lagging.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Applications)

	reloaded, err = repo.FindByID(db, ahead.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, reloaded.Applications, "удаленные отклики остаются в счетчике")
}

func TestJobStatsByStatus(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewJobRepository()

	active := testutil.CreateJob(t, db)
	testutil.CreateJob(t, db, func(j *models.Job) { j.Status = models.JobStatusClosed })
	require.NoError(t, repo.IncrementApplications(db, active.ID))
	require.NoError(t, repo.IncrementApplications(db, active.ID))

	stats, err := repo.StatsByStatus(db)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "active", stats[0].Status)
	assert.Equal(t, int64(2), stats[0].TotalApplications)
	assert.Equal(t, "closed", stats[1].Status)
}
