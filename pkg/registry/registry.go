// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

// FindByTaskType returns the activity registered for a Zeebe task type.
func (r *ActivityRegistry) FindByTaskType(taskType string) (*Activity, error) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], nil
		}
	}
	return nil, fmt.Errorf("no activity registered for task type %q", taskType)
}

// FindByID returns the activity with the given dotted ID.
func (r *ActivityRegistry) FindByID(id string) (*Activity, error) {
	for i := range r.Activities {
		if r.Activities[i].ID == id {
			return &r.Activities[i], nil
		}
	}
	return nil, fmt.Errorf("no activity registered with ID %q", id)
}

// TaskTypes lists every registered Zeebe task type in registry order.
func (r *ActivityRegistry) TaskTypes() []string {
	types := make([]string, 0, len(r.Activities))
	for i := range r.Activities {
		types = append(types, r.Activities[i].TaskType)
	}
	return types
}
