package workers

type Workers struct {
	workers []Worker
}

// NewWorkers aggregates the given workers for unified startup.
func NewWorkers(w ...Worker) *Workers {
	return &Workers{workers: w}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
