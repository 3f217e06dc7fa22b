// pkg/registry/schema.go
package registry

import "time"

// ActivityRegistry is the catalog of every BPMN service task this
// service implements, kept in configs/task-registry.json.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

// Activity describes one registered service task: its dotted ID
// (e.g. matching.score.calculate), the Zeebe task type workers
// subscribe to, and the contract modelers rely on.
type Activity struct {
	ID                   string                 `json:"id"`
	DisplayName          string                 `json:"displayName"`
	Description          string                 `json:"description"`
	Category             string                 `json:"category"`
	Version              string                 `json:"version"`
	TaskType             string                 `json:"taskType"`
	ImplementationStatus string                 `json:"implementationStatus"`
	InputSchema          map[string]interface{} `json:"inputSchema"`
	OutputSchema         map[string]interface{} `json:"outputSchema"`
	ErrorCodes           []string               `json:"errorCodes"`
	Timeout              string                 `json:"timeout"`
	Retries              int                    `json:"retries"`
	Workflows            []string               `json:"workflows"`
	Tags                 []string               `json:"tags"`
}

// TimeoutDuration parses the activity timeout ("10s", "2m"). Zero when
// the field is empty or malformed.
func (a *Activity) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(a.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Implemented reports whether the activity is backed by a running worker.
func (a *Activity) Implemented() bool {
	return a.ImplementationStatus == "completed" || a.ImplementationStatus == "verified"
}
