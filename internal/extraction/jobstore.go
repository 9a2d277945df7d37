package extraction

import (
	"sync"
	"time"
)

// JobStatus tracks an async extraction job through its lifecycle.
type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// Job is one async extraction request and, once finished, its outcome.
type Job struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Status    JobStatus `json:"status"`
	Context   Context   `json:"context"`
	Filename  string    `json:"filename,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Result    *Result   `json:"result,omitempty"`
	Path      Path      `json:"path,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// JobStore manages in-memory async extraction jobs with TTL cleanup.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[string]*Job
	ttl  time.Duration
	done chan struct{}
}

// NewJobStore creates a job store with background cleanup.
func NewJobStore(ttl time.Duration) *JobStore {
	js := &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
		done: make(chan struct{}),
	}
	go js.cleanup()
	return js
}

// Create stores a new extraction job.
func (js *JobStore) Create(job *Job) error {
	if job.ID == "" {
		return &ExtractionError{Code: ErrJobNotFound, Message: "job ID is required"}
	}
	js.mu.Lock()
	defer js.mu.Unlock()
	js.jobs[job.ID] = job
	return nil
}

// Get retrieves a job by ID.
func (js *JobStore) Get(id string) (*Job, error) {
	js.mu.RLock()
	defer js.mu.RUnlock()
	job, ok := js.jobs[id]
	if !ok {
		return nil, &ExtractionError{Code: ErrJobNotFound, Message: "job not found: " + id}
	}
	return job, nil
}

// Update modifies an existing job.
func (js *JobStore) Update(job *Job) error {
	js.mu.Lock()
	defer js.mu.Unlock()
	if _, ok := js.jobs[job.ID]; !ok {
		return &ExtractionError{Code: ErrJobNotFound, Message: "job not found: " + job.ID}
	}
	js.jobs[job.ID] = job
	return nil
}

// Stop signals the background cleanup goroutine to exit.
func (js *JobStore) Stop() {
	close(js.done)
}

func (js *JobStore) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-js.done:
			return
		case <-ticker.C:
			js.mu.Lock()
			now := time.Now()
			for id, job := range js.jobs {
				if now.Sub(job.CreatedAt) > js.ttl {
					delete(js.jobs, id)
				}
			}
			js.mu.Unlock()
		}
	}
}
