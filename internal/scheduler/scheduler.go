package scheduler

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/chrisVisazure/StereoPipeline/internal/fetcher"
	"github.com/chrisVisazure/StereoPipeline/internal/output"
	"github.com/chrisVisazure/StereoPipeline/internal/utils"
)

// Run executes a set of fetch jobs over a worker pool with per-job progress
// display. All jobs share the authenticated client; connections bounds the
// parallel transfers within each job.
func Run(client *utils.Client, jobs []fetcher.Job, workers, connections int) error {
	if workers < 1 {
		workers = 1
	}
	outputMgr := output.NewManager()
	outputMgr.StartDisplay()

	jobCh := make(chan *fetcher.Job, len(jobs))
	for i := range jobs {
		jobCh <- &jobs[i]
	}
	close(jobCh)

	var failed int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			processJobs(client, jobCh, connections, outputMgr, &failed)
		}()
	}
	wg.Wait()

	outputMgr.StopDisplay()
	outputMgr.ShowSummary()
	if n := atomic.LoadInt64(&failed); n > 0 {
		return fmt.Errorf("%d job(s) failed", n)
	}
	return nil
}

func processJobs(client *utils.Client, jobCh <-chan *fetcher.Job, connections int, outputMgr *output.Manager, failed *int64) {
	for job := range jobCh {
		runID := uuid.NewString()[:8]
		funcID := outputMgr.Register(job.Label())
		logger := utils.GetLogger("scheduler").With().Str("job", runID).Logger()

		outputMgr.SetStatus(funcID, "pending")
		outputMgr.SetMessage(funcID, "Validating job")
		if err := job.Validate(); err != nil {
			logger.Error().Err(err).Msg("Job validation failed")
			outputMgr.ReportError(funcID, fmt.Errorf("validation failed: %v", err))
			atomic.AddInt64(failed, 1)
			continue
		}

		outputMgr.SetStatus(funcID, "active")
		outputMgr.SetMessage(funcID, fmt.Sprintf("Fetching into %s", job.OutputDir))
		job.Progress = func(done, total int) {
			outputMgr.SetProgress(funcID, int64(done), int64(total))
		}
		if err := fetcher.Run(client, job, connections); err != nil {
			logger.Error().Err(err).Msg("Job failed")
			outputMgr.ReportError(funcID, err)
			atomic.AddInt64(failed, 1)
			continue
		}
		outputMgr.Complete(funcID, fmt.Sprintf("Completed %s", job.OutputDir))
	}
}
