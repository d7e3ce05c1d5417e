package dto

import "entity-journal-cli/internal/model"

type CreateEntityRequest struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Type        model.EntityType       `json:"type"`
	Icon        string                 `json:"icon,omitempty"`
	Color       string                 `json:"color,omitempty"`
	Tracking    *model.TrackingConfig  `json:"tracking,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

type UpdateEntityRequest struct {
	Name        string                 `json:"name,omitempty"`
	Description string                 `json:"description,omitempty"`
	Icon        string                 `json:"icon,omitempty"`
	Color       string                 `json:"color,omitempty"`
	Tracking    *model.TrackingConfig  `json:"tracking,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}
