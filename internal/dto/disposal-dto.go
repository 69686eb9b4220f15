package dto

type CreateDisposalDTO struct {
	AssetUnitID uint64 `json:"asset_unit_id" validate:"required,gt=0"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Reason      string `json:"reason" validate:"required"`
}

type ResolveDisposalDTO struct {
	Approve bool `json:"approve"`
}

type DisposalDTO struct {
	ID          uint64  `json:"id"`
	AssetUnitID uint64  `json:"asset_unit_id"`
	Date        string  `json:"date"`
	Reason      string  `json:"reason"`
	Status      string  `json:"status"`
	RequestedBy uint64  `json:"requested_by"`
	ResolvedBy  *uint64 `json:"resolved_by,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type RestoreDisposalDTO struct {
	Reason string `json:"reason" validate:"required"`
}
