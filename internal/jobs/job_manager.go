package jobs

import "fmt"

// JobManager starts and stops every scheduled job of the service.
type JobManager struct {
	awaitingDriverJob *AwaitingDriverJob
}

func NewJobManager(awaitingDriverJob *AwaitingDriverJob) *JobManager {
	return &JobManager{awaitingDriverJob: awaitingDriverJob}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.awaitingDriverJob.Start(); err != nil {
		return fmt.Errorf("failed to start awaiting driver job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs, waiting for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.awaitingDriverJob.Stop()
}
