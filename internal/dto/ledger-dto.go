package dto

type LedgerEntryDTO struct {
	ID          uint64  `json:"id"`
	AssetUnitID uint64  `json:"asset_unit_id"`
	ChangeType  string  `json:"change_type"`
	Detail      string  `json:"detail"`
	Timestamp   string  `json:"timestamp"`
	ReferenceID *uint64 `json:"reference_id,omitempty"`
}

// AssetTrailDTO arma el seguimiento completo de una unidad para el frontend.
type AssetTrailDTO struct {
	Unit    AssetUnitDTO     `json:"unit"`
	Entries []LedgerEntryDTO `json:"entries"`
	Total   uint64           `json:"total"`
}
