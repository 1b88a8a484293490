package check

import "time"

type Status string

const (
	StatusOK       Status = "OK"
	StatusWarning  Status = "WARNING"
	StatusCritical Status = "CRITICAL"
	StatusInfo     Status = "INFO"
)

// severity orders statuses for worst-of aggregation. INFO outranks OK
// because it marks a reading that could not be taken.
var severity = map[Status]int{
	StatusOK:       0,
	StatusInfo:     1,
	StatusWarning:  2,
	StatusCritical: 3,
}

func (s Status) Severity() int {
	return severity[s]
}

// Worst returns the highest-severity status among results, OK when empty.
func Worst(results []Result) Status {
	worst := StatusOK
	for _, r := range results {
		if r.Status.Severity() > worst.Severity() {
			worst = r.Status
		}
	}
	return worst
}

type Result struct {
	Metric    string
	Status    Status
	Value     string
	Message   string
	CheckedAt time.Time
}

func New(metric string, status Status, value, message string) Result {
	return Result{
		Metric:    metric,
		Status:    status,
		Value:     value,
		Message:   message,
		CheckedAt: time.Now(),
	}
}

// Unavailable marks a metric that could not be measured. The run keeps
// going; the reader sees the reason instead of a fabricated zero.
func Unavailable(metric, reason string) Result {
	return Result{
		Metric:    metric,
		Status:    StatusInfo,
		Value:     "unknown",
		Message:   "cannot determine: " + reason,
		CheckedAt: time.Now(),
	}
}
