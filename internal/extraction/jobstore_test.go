package extraction

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestJobStoreLifecycle(t *testing.T) {
	store := NewJobStore(time.Hour)
	defer store.Stop()

	job := &Job{
		ID:        uuid.New().String(),
		UserID:    "user-1",
		Status:    JobPending,
		Context:   ContextExpense,
		Filename:  "receipt.pdf",
		CreatedAt: time.Now(),
	}
	if err := store.Create(job); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.Get(job.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != JobPending || got.UserID != "user-1" {
		t.Errorf("Get = %+v", got)
	}

	job.Status = JobCompleted
	job.Result = &Result{Amount: floatPtr(110)}
	job.Path = PathHeuristic
	if err := store.Update(job); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err = store.Get(job.ID)
	if err != nil {
		t.Fatalf("Get after update: %v", err)
	}
	if got.Status != JobCompleted {
		t.Errorf("Status = %q, want %q", got.Status, JobCompleted)
	}
	if got.Result == nil || got.Result.Amount == nil || *got.Result.Amount != 110 {
		t.Errorf("Result = %+v, want amount 110", got.Result)
	}
}

func TestJobStoreCreateRequiresID(t *testing.T) {
	store := NewJobStore(time.Hour)
	defer store.Stop()

	if err := store.Create(&Job{}); err == nil {
		t.Fatal("want error for empty job ID")
	}
}

func TestJobStoreGetMissing(t *testing.T) {
	store := NewJobStore(time.Hour)
	defer store.Stop()

	_, err := store.Get("missing")
	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("want *ExtractionError, got %v", err)
	}
	if extErr.Code != ErrJobNotFound {
		t.Errorf("Code = %q, want %q", extErr.Code, ErrJobNotFound)
	}
}

func TestJobStoreUpdateMissing(t *testing.T) {
	store := NewJobStore(time.Hour)
	defer store.Stop()

	err := store.Update(&Job{ID: "missing"})
	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("want *ExtractionError, got %v", err)
	}
	if extErr.Code != ErrJobNotFound {
		t.Errorf("Code = %q, want %q", extErr.Code, ErrJobNotFound)
	}
}
