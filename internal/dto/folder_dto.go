package dto

type CreateFolderRequest struct {
	Name     string `json:"name"`
	ParentId string `json:"parentId,omitempty"`
}

type RenameFolderRequest struct {
	Name string `json:"name"`
}

type MoveFolderRequest struct {
	ParentId *string `json:"parentId"`
}
