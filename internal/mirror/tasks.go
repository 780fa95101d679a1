// Package mirror keeps an async Postgres copy of pipeline state: lead
// snapshots on every lifecycle event, and the assignable team roster.
// The in-memory stores stay authoritative; the mirror is reporting data.
package mirror

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskLeadSnapshot = "mirror.lead.snapshot"

const TaskLeadPurge = "mirror.lead.purge"

const TaskProfileSync = "mirror.profile.sync"

type LeadSnapshotPayload struct {
	LeadID    string          `json:"leadId"`
	Operation string          `json:"operation"`
	Snapshot  json.RawMessage `json:"snapshot"`
}

type LeadPurgePayload struct {
	LeadID string `json:"leadId"`
}

type ProfileSyncPayload struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

func NewLeadSnapshotTask(payload LeadSnapshotPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadSnapshot, data), nil
}

func ParseLeadSnapshotPayload(task *asynq.Task) (LeadSnapshotPayload, error) {
	var payload LeadSnapshotPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LeadSnapshotPayload{}, err
	}
	return payload, nil
}

func NewLeadPurgeTask(payload LeadPurgePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadPurge, data), nil
}

func ParseLeadPurgePayload(task *asynq.Task) (LeadPurgePayload, error) {
	var payload LeadPurgePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LeadPurgePayload{}, err
	}
	return payload, nil
}

func NewProfileSyncTask(payload ProfileSyncPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskProfileSync, data), nil
}

func ParseProfileSyncPayload(task *asynq.Task) (ProfileSyncPayload, error) {
	var payload ProfileSyncPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ProfileSyncPayload{}, err
	}
	return payload, nil
}
