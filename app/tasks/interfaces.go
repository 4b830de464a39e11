package tasks

// TaskSchedulerInterface defines the interface for background task
// scheduling. The API layer uses it to enqueue an enrichment sweep after
// a tip submission without waiting for the next tick.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
