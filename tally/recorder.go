package tally

// Recorder observes the count produced by each operation.
type Recorder interface {
	Observe(op Operation, count int)
}

type RecorderFunc func(op Operation, count int)

func (f RecorderFunc) Observe(op Operation, count int) {
	f(op, count)
}

type nopRecorder struct{}

func (nopRecorder) Observe(Operation, int) {}
