package reporter

// CompositeReporter forwards every event to each of its reporters in order.
type CompositeReporter []Reporter

// NewCompositeReporter creates a composite reporter. Nil entries are dropped.
func NewCompositeReporter(reporters ...Reporter) CompositeReporter {
	c := make(CompositeReporter, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			c = append(c, r)
		}
	}
	return c
}

func (c CompositeReporter) each(fn func(Reporter)) {
	for _, r := range c {
		fn(r)
	}
}

func (c CompositeReporter) BatchStarted(info BatchStartInfo) {
	c.each(func(r Reporter) { r.BatchStarted(info) })
}

func (c CompositeReporter) FileValidated(result FileResult) {
	c.each(func(r Reporter) { r.FileValidated(result) })
}

func (c CompositeReporter) BatchComplete(summary BatchSummary) {
	c.each(func(r Reporter) { r.BatchComplete(summary) })
}

func (c CompositeReporter) ProbeResult(summary ProbeSummary) {
	c.each(func(r Reporter) { r.ProbeResult(summary) })
}

func (c CompositeReporter) Warning(message string) {
	c.each(func(r Reporter) { r.Warning(message) })
}

func (c CompositeReporter) Error(err ReporterError) {
	c.each(func(r Reporter) { r.Error(err) })
}

func (c CompositeReporter) Verbose(message string) {
	c.each(func(r Reporter) { r.Verbose(message) })
}
