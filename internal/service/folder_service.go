package service

import (
	"context"
	"fmt"

	"entity-journal-cli/internal/dto"
	"entity-journal-cli/internal/gateway"
	"entity-journal-cli/internal/model"
)

type IFolderService interface {
	Create(ctx context.Context, name, parentId string) (*model.Folder, error)
	List(ctx context.Context) ([]model.Folder, error)
	Rename(ctx context.Context, id, name string) (*model.Folder, error)
	Move(ctx context.Context, id string, parentId *string) (*model.Folder, error)
	Delete(ctx context.Context, id string) error
}

type folderService struct {
	api *gateway.Gateway
}

func NewFolderService(api *gateway.Gateway) IFolderService {
	return &folderService{api: api}
}

func (s *folderService) Create(ctx context.Context, name, parentId string) (*model.Folder, error) {
	var f model.Folder
	err := s.api.Post(ctx, "/api/folders", dto.CreateFolderRequest{Name: name, ParentId: parentId}, &f)
	if err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}
	return &f, nil
}

func (s *folderService) List(ctx context.Context) ([]model.Folder, error) {
	var folders []model.Folder
	if err := s.api.Get(ctx, "/api/folders", nil, &folders); err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return folders, nil
}

func (s *folderService) Rename(ctx context.Context, id, name string) (*model.Folder, error) {
	var f model.Folder
	err := s.api.Patch(ctx, "/api/folders/"+id+"/rename", dto.RenameFolderRequest{Name: name}, &f)
	if err != nil {
		return nil, fmt.Errorf("rename folder %s: %w", id, err)
	}
	return &f, nil
}

func (s *folderService) Move(ctx context.Context, id string, parentId *string) (*model.Folder, error) {
	var f model.Folder
	err := s.api.Patch(ctx, "/api/folders/"+id+"/move", dto.MoveFolderRequest{ParentId: parentId}, &f)
	if err != nil {
		return nil, fmt.Errorf("move folder %s: %w", id, err)
	}
	return &f, nil
}

func (s *folderService) Delete(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, "/api/folders/"+id, nil); err != nil {
		return fmt.Errorf("delete folder %s: %w", id, err)
	}
	return nil
}
