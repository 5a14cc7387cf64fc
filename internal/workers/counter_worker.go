package workers

import (
	"context"
	"fmt"

	"triveni_backend/internal/logger"
	"triveni_backend/internal/metrics"
	"triveni_backend/internal/repositories"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const counterWorkerName = "counter_worker"

// ReconcileResult - сколько строк исправлено за проход.
type ReconcileResult struct {
	JobApplications int64
	BlogComments    int64
}

// CounterWorker пересчитывает денормализованные счетчики jobs.applications и blogs.comments
// по фактическому числу строк. Расписание задается cron-выражением.
type CounterWorker struct {
	db       *gorm.DB
	jobRepo  repositories.JobRepository
	blogRepo repositories.BlogRepository
	cron     *cron.Cron
	spec     string
}

func NewCounterWorker(db *gorm.DB, spec string) *CounterWorker {
	return &CounterWorker{
		db:       db,
		jobRepo:  repositories.NewJobRepository(),
		blogRepo: repositories.NewBlogRepository(),
		cron:     cron.New(),
		spec:     spec,
	}
}

// Start регистрирует задачу и запускает планировщик.
func (w *CounterWorker) Start(ctx context.Context) error {
	_, err := w.cron.AddFunc(w.spec, func() {
		// ошибка уже залогирована в Reconcile
		_, _ = w.Reconcile(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid reconcile schedule %q: %w", w.spec, err)
	}

	w.cron.Start()
	logger.Info("Counter worker started", "spec", w.spec)
	return nil
}

// Stop ждет завершения выполняющегося прохода.
func (w *CounterWorker) Stop() {
	<-w.cron.Stop().Done()
	logger.Info("Counter worker stopped")
}

// Reconcile выполняет один проход.
func (w *CounterWorker) Reconcile(ctx context.Context) (*ReconcileResult, error) {
	db := w.db.WithContext(ctx)
	result := &ReconcileResult{}

	fixed, err := w.jobRepo.ReconcileApplicationCounts(db)
	logger.WorkerLog(counterWorkerName, "reconcile_job_applications", err, "rows", fixed)
	if err != nil {
		return nil, err
	}
	metrics.AddReconciled("job_applications", fixed)
	result.JobApplications = fixed

	fixed, err = w.blogRepo.ReconcileCommentCounts(db)
	logger.WorkerLog(counterWorkerName, "reconcile_blog_comments", err, "rows", fixed)
	if err != nil {
		return nil, err
	}
	metrics.AddReconciled("blog_comments", fixed)
	result.BlogComments = fixed

	return result, nil
}
