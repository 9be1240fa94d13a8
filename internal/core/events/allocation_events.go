package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeAllocationCreated = "allocation.created"
	EventTypeAllocationUpdated = "allocation.updated"
	EventTypeAllocationDeleted = "allocation.deleted"
	EventTypeStatusRecomputed  = "employee.status_recomputed"
)

type AllocationEvent struct {
	BaseEvent
	AllocationID   int64 `json:"allocation_id"`
	EmployeeID     int64 `json:"employee_id"`
	ProjectID      int64 `json:"project_id"`
	AllocatedHours int   `json:"allocated_hours"`
}

func newAllocationEvent(eventType string, allocationID, employeeID, projectID int64, hours int) *AllocationEvent {
	return &AllocationEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"allocation_id":   allocationID,
				"employee_id":     employeeID,
				"project_id":      projectID,
				"allocated_hours": hours,
			},
		},
		AllocationID:   allocationID,
		EmployeeID:     employeeID,
		ProjectID:      projectID,
		AllocatedHours: hours,
	}
}

func NewAllocationCreatedEvent(allocationID, employeeID, projectID int64, hours int) *AllocationEvent {
	return newAllocationEvent(EventTypeAllocationCreated, allocationID, employeeID, projectID, hours)
}

func NewAllocationUpdatedEvent(allocationID, employeeID, projectID int64, hours int) *AllocationEvent {
	return newAllocationEvent(EventTypeAllocationUpdated, allocationID, employeeID, projectID, hours)
}

func NewAllocationDeletedEvent(allocationID, employeeID, projectID int64, hours int) *AllocationEvent {
	return newAllocationEvent(EventTypeAllocationDeleted, allocationID, employeeID, projectID, hours)
}

type StatusRecomputedEvent struct {
	BaseEvent
	EmployeeID int64  `json:"employee_id"`
	Status     string `json:"status"`
}

func NewStatusRecomputedEvent(employeeID int64, status string) *StatusRecomputedEvent {
	return &StatusRecomputedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeStatusRecomputed,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"employee_id": employeeID,
				"status":      status,
			},
		},
		EmployeeID: employeeID,
		Status:     status,
	}
}
