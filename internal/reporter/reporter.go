package reporter

// Reporter defines the interface for progress reporting. Implementations
// must be safe for concurrent use; FileValidated arrives from worker
// goroutines.
type Reporter interface {
	BatchStarted(info BatchStartInfo)
	FileValidated(result FileResult)
	BatchComplete(summary BatchSummary)
	ProbeResult(summary ProbeSummary)
	Warning(message string)
	Error(err ReporterError)
	Verbose(message string)
}

// NullReporter is a no-op reporter that discards all updates.
type NullReporter struct{}

func (NullReporter) BatchStarted(BatchStartInfo) {}
func (NullReporter) FileValidated(FileResult)    {}
func (NullReporter) BatchComplete(BatchSummary)  {}
func (NullReporter) ProbeResult(ProbeSummary)    {}
func (NullReporter) Warning(string)              {}
func (NullReporter) Error(ReporterError)         {}
func (NullReporter) Verbose(string)              {}
