package dto

type CreateAssignmentDTO struct {
	PersonnelID  uint64   `json:"personnel_id" validate:"required,gt=0"`
	AssetUnitIDs []uint64 `json:"asset_unit_ids" validate:"required,min=1,dive,gt=0"`
	Date         string   `json:"date" validate:"required,datetime=2006-01-02"`
	Detail       string   `json:"detail" validate:"required"`
	ApprovalDoc  *string  `json:"approval_doc,omitempty"`
}

type AssignmentDTO struct {
	ID           uint64   `json:"id"`
	UserID       uint64   `json:"user_id"`
	PersonnelID  uint64   `json:"personnel_id"`
	Date         string   `json:"date"`
	Detail       string   `json:"detail"`
	ApprovalDoc  *string  `json:"approval_doc,omitempty"`
	AssetUnitIDs []uint64 `json:"asset_unit_ids"`
	CreatedAt    string   `json:"created_at"`
}

type CreateReassignmentDTO struct {
	AssetUnitID    uint64  `json:"asset_unit_id" validate:"required,gt=0"`
	NewPersonnelID uint64  `json:"new_personnel_id" validate:"required,gt=0"`
	Date           string  `json:"date" validate:"required,datetime=2006-01-02"`
	Detail         string  `json:"detail" validate:"required"`
	ApprovalDoc    *string `json:"approval_doc,omitempty"`
}

type CreateDevolutionDTO struct {
	AssetUnitIDs []uint64 `json:"asset_unit_ids" validate:"required,min=1,dive,gt=0"`
	PersonnelID  uint64   `json:"personnel_id" validate:"required,gt=0"`
	Date         string   `json:"date" validate:"required,datetime=2006-01-02"`
	Detail       string   `json:"detail" validate:"required"`
	ActaDoc      *string  `json:"acta_doc,omitempty"`
}
