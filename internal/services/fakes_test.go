package services

import (
	"context"
	"sync"
	"time"

	"asset-system/internal/entities"
	"asset-system/internal/repositories"
	"asset-system/pkg/constants"
	"asset-system/pkg/contextkeys"
	apperrors "asset-system/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Dobles en memoria para los tests de servicios. Las transacciones se
// serializan con un mutex, que es el mismo efecto observable que los
// bloqueos FOR UPDATE producen sobre estos casos de uso.

func testCtx(userID uint64, role constants.Role) context.Context {
	ctx := context.WithValue(context.Background(), contextkeys.UserIDKey, userID)
	return context.WithValue(ctx, contextkeys.UserRoleKey, role)
}

func testLogger() *zap.Logger { return zap.NewNop() }

type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(nil)
}

// --- unidades ---

type fakeUnitRepo struct {
	mu    sync.Mutex
	units map[uint64]*entities.AssetUnit
	seq   uint64
}

func newFakeUnitRepo(units ...*entities.AssetUnit) *fakeUnitRepo {
	r := &fakeUnitRepo{units: make(map[uint64]*entities.AssetUnit)}
	for _, u := range units {
		r.units[u.ID] = u
		if u.ID > r.seq {
			r.seq = u.ID
		}
	}
	return r
}

func (r *fakeUnitRepo) get(id uint64) (*entities.AssetUnit, error) {
	u, ok := r.units[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return u, nil
}

func (r *fakeUnitRepo) FindByID(ctx context.Context, id uint64) (*entities.AssetUnit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(id)
}

func (r *fakeUnitRepo) FindWithModel(ctx context.Context, id uint64) (*entities.AssetUnit, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeUnitRepo) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.AssetUnit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(id)
}

func (r *fakeUnitRepo) CreateInTx(ctx context.Context, tx pgx.Tx, unit *entities.AssetUnit) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	unit.ID = r.seq
	r.units[unit.ID] = unit
	return unit.ID, nil
}

func (r *fakeUnitRepo) UpdateAssignmentStateInTx(ctx context.Context, tx pgx.Tx, id uint64, assigned bool, stock entities.StockCondition, holderID null.Uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, err := r.get(id)
	if err != nil {
		return err
	}
	u.Assigned = assigned
	u.StockCondition = stock
	u.CurrentHolderID = holderID
	return nil
}

func (r *fakeUnitRepo) UpdatePhysicalStateInTx(ctx context.Context, tx pgx.Tx, id uint64, state entities.PhysicalCondition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, err := r.get(id)
	if err != nil {
		return err
	}
	u.PhysicalState = state
	return nil
}

func (r *fakeUnitRepo) UpdateCostInTx(ctx context.Context, tx pgx.Tx, id uint64, cost decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, err := r.get(id)
	if err != nil {
		return err
	}
	u.CurrentCost = cost
	return nil
}

func (r *fakeUnitRepo) List(ctx context.Context, filter repositories.AssetUnitFilter) ([]*entities.AssetUnit, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.AssetUnit
	for _, u := range r.units {
		if filter.ModelID != 0 && u.AssetModelID != filter.ModelID {
			continue
		}
		if filter.HolderID != 0 && (!u.CurrentHolderID.Valid || u.CurrentHolderID.Uint64 != filter.HolderID) {
			continue
		}
		if filter.StockCondition != "" && u.StockCondition != filter.StockCondition {
			continue
		}
		out = append(out, u)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeUnitRepo) ListIDsForDepreciation(ctx context.Context) ([]uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uint64
	for id, u := range r.units {
		if u.StockCondition != entities.StockDisposed {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *fakeUnitRepo) CountAssignedByModel(ctx context.Context, modelID uint64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, u := range r.units {
		if u.AssetModelID == modelID && u.Assigned {
			count++
		}
	}
	return count, nil
}

func (r *fakeUnitRepo) DeleteByModelInTx(ctx context.Context, tx pgx.Tx, modelID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.units {
		if u.AssetModelID == modelID {
			delete(r.units, id)
		}
	}
	return nil
}

// --- modelos ---

type fakeModelRepo struct {
	mu     sync.Mutex
	models map[uint64]*entities.AssetModel
	seq    uint64
}

func newFakeModelRepo(models ...*entities.AssetModel) *fakeModelRepo {
	r := &fakeModelRepo{models: make(map[uint64]*entities.AssetModel)}
	for _, m := range models {
		r.models[m.ID] = m
		if m.ID > r.seq {
			r.seq = m.ID
		}
	}
	return r
}

func (r *fakeModelRepo) CreateInTx(ctx context.Context, tx pgx.Tx, model *entities.AssetModel) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	model.ID = r.seq
	r.models[model.ID] = model
	return model.ID, nil
}

func (r *fakeModelRepo) FindByID(ctx context.Context, id uint64) (*entities.AssetModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.models[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return m, nil
}

func (r *fakeModelRepo) List(ctx context.Context, limit, offset uint64) ([]*entities.AssetModel, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.AssetModel
	for _, m := range r.models {
		out = append(out, m)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeModelRepo) DecrementAvailableInTx(ctx context.Context, tx pgx.Tx, id uint64, by int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.models[id]; ok {
		m.AvailableQty -= by
	}
	return nil
}

func (r *fakeModelRepo) IncrementAvailableInTx(ctx context.Context, tx pgx.Tx, id uint64, by int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.models[id]; ok {
		m.AvailableQty += by
	}
	return nil
}

func (r *fakeModelRepo) DeleteInTx(ctx context.Context, tx pgx.Tx, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.models, id)
	return nil
}

func (r *fakeModelRepo) NextSequenceByPartidaInTx(ctx context.Context, tx pgx.Tx, partidaID uint64) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count uint64
	for _, m := range r.models {
		if m.PartidaID == partidaID {
			count++
		}
	}
	return count + 1, nil
}

// --- asignaciones ---

type fakeAssignmentRepo struct {
	mu          sync.Mutex
	assignments map[uint64]*entities.Assignment
	unitLinks   map[uint64][]uint64
	seq         uint64
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{
		assignments: make(map[uint64]*entities.Assignment),
		unitLinks:   make(map[uint64][]uint64),
	}
}

func (r *fakeAssignmentRepo) CreateInTx(ctx context.Context, tx pgx.Tx, a *entities.Assignment) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	a.ID = r.seq
	now := time.Now()
	a.CreatedAt = &now
	r.assignments[a.ID] = a
	return a.ID, nil
}

func (r *fakeAssignmentRepo) AddUnitInTx(ctx context.Context, tx pgx.Tx, assignmentID, assetUnitID uint64) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unitLinks[assignmentID] = append(r.unitLinks[assignmentID], assetUnitID)
	return uint64(len(r.unitLinks[assignmentID])), nil
}

func (r *fakeAssignmentRepo) FindByID(ctx context.Context, id uint64) (*entities.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assignments[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	a.Units = nil
	for _, unitID := range r.unitLinks[id] {
		a.Units = append(a.Units, &entities.AssignmentUnit{AssignmentID: id, AssetUnitID: unitID})
	}
	return a, nil
}

func (r *fakeAssignmentRepo) List(ctx context.Context, limit, offset uint64) ([]*entities.Assignment, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Assignment
	for _, a := range r.assignments {
		out = append(out, a)
	}
	return out, uint64(len(out)), nil
}

// --- ledger ---

type fakeLedgerRepo struct {
	mu      sync.Mutex
	entries []entities.LifecycleLedgerEntry
}

func (r *fakeLedgerRepo) AppendInTx(ctx context.Context, tx pgx.Tx, entry *entities.LifecycleLedgerEntry) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = uint64(len(r.entries) + 1)
	r.entries = append(r.entries, *entry)
	return entry.ID, nil
}

func (r *fakeLedgerRepo) ListByUnit(ctx context.Context, assetUnitID uint64) ([]*entities.LifecycleLedgerEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.LifecycleLedgerEntry
	for i := range r.entries {
		if r.entries[i].AssetUnitID == assetUnitID {
			out = append(out, &r.entries[i])
		}
	}
	return out, nil
}

func (r *fakeLedgerRepo) CountByUnit(ctx context.Context, assetUnitID uint64) (uint64, error) {
	list, _ := r.ListByUnit(ctx, assetUnitID)
	return uint64(len(list)), nil
}

func (r *fakeLedgerRepo) byType(changeType entities.ChangeType) []entities.LifecycleLedgerEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.LifecycleLedgerEntry
	for _, e := range r.entries {
		if e.ChangeType == changeType {
			out = append(out, e)
		}
	}
	return out
}

// --- personal ---

type fakePersonnelRepo struct {
	mu     sync.Mutex
	people map[uint64]*entities.Personnel
	seq    uint64
}

func newFakePersonnelRepo(people ...*entities.Personnel) *fakePersonnelRepo {
	r := &fakePersonnelRepo{people: make(map[uint64]*entities.Personnel)}
	for _, p := range people {
		r.people[p.ID] = p
		if p.ID > r.seq {
			r.seq = p.ID
		}
	}
	return r
}

func (r *fakePersonnelRepo) Create(ctx context.Context, p *entities.Personnel) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	p.ID = r.seq
	r.people[p.ID] = p
	return p.ID, nil
}

func (r *fakePersonnelRepo) FindByID(ctx context.Context, id uint64) (*entities.Personnel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.people[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return p, nil
}

func (r *fakePersonnelRepo) List(ctx context.Context, limit, offset uint64) ([]*entities.Personnel, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Personnel
	for _, p := range r.people {
		out = append(out, p)
	}
	return out, uint64(len(out)), nil
}

func (r *fakePersonnelRepo) Delete(ctx context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.people, id)
	return nil
}

// --- bajas ---

type fakeDisposalRepo struct {
	mu        sync.Mutex
	disposals map[uint64]*entities.Disposal
	seq       uint64
}

func newFakeDisposalRepo() *fakeDisposalRepo {
	return &fakeDisposalRepo{disposals: make(map[uint64]*entities.Disposal)}
}

func (r *fakeDisposalRepo) CreateInTx(ctx context.Context, tx pgx.Tx, d *entities.Disposal) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	d.ID = r.seq
	r.disposals[d.ID] = d
	return d.ID, nil
}

func (r *fakeDisposalRepo) FindByID(ctx context.Context, id uint64) (*entities.Disposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.disposals[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return d, nil
}

func (r *fakeDisposalRepo) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Disposal, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeDisposalRepo) FindPendingByUnitInTx(ctx context.Context, tx pgx.Tx, assetUnitID uint64) (*entities.Disposal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.disposals {
		if d.AssetUnitID == assetUnitID && d.Status == entities.DisposalPending {
			return d, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeDisposalRepo) UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status entities.DisposalStatus, resolvedBy uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.disposals[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	d.Status = status
	d.ResolvedBy = null.Uint64From(resolvedBy)
	return nil
}

func (r *fakeDisposalRepo) List(ctx context.Context, filter repositories.DisposalFilter) ([]*entities.Disposal, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Disposal
	for _, d := range r.disposals {
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		out = append(out, d)
	}
	return out, uint64(len(out)), nil
}

// --- reasignaciones ---

type fakeReassignmentRepo struct {
	mu            sync.Mutex
	reassignments map[uint64]*entities.Reassignment
	seq           uint64
}

func newFakeReassignmentRepo() *fakeReassignmentRepo {
	return &fakeReassignmentRepo{reassignments: make(map[uint64]*entities.Reassignment)}
}

func (r *fakeReassignmentRepo) CreateInTx(ctx context.Context, tx pgx.Tx, re *entities.Reassignment) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	re.ID = r.seq
	r.reassignments[re.ID] = re
	return re.ID, nil
}

func (r *fakeReassignmentRepo) FindByID(ctx context.Context, id uint64) (*entities.Reassignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	re, ok := r.reassignments[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return re, nil
}

func (r *fakeReassignmentRepo) ListByUnit(ctx context.Context, assetUnitID uint64) ([]*entities.Reassignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Reassignment
	for _, re := range r.reassignments {
		if re.AssetUnitID == assetUnitID {
			out = append(out, re)
		}
	}
	return out, nil
}

// --- devoluciones ---

type fakeDevolutionRepo struct {
	mu          sync.Mutex
	devolutions map[uint64]*entities.Devolution
	seq         uint64
}

func newFakeDevolutionRepo() *fakeDevolutionRepo {
	return &fakeDevolutionRepo{devolutions: make(map[uint64]*entities.Devolution)}
}

func (r *fakeDevolutionRepo) CreateInTx(ctx context.Context, tx pgx.Tx, d *entities.Devolution) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	d.ID = r.seq
	r.devolutions[d.ID] = d
	return d.ID, nil
}

func (r *fakeDevolutionRepo) FindByID(ctx context.Context, id uint64) (*entities.Devolution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.devolutions[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return d, nil
}

func (r *fakeDevolutionRepo) ListByUnit(ctx context.Context, assetUnitID uint64) ([]*entities.Devolution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Devolution
	for _, d := range r.devolutions {
		if d.AssetUnitID == assetUnitID {
			out = append(out, d)
		}
	}
	return out, nil
}

// --- depreciaciones ---

type fakeDepreciationRepo struct {
	mu   sync.Mutex
	rows map[uint64]*entities.Depreciation
	seq  uint64
}

func newFakeDepreciationRepo() *fakeDepreciationRepo {
	return &fakeDepreciationRepo{rows: make(map[uint64]*entities.Depreciation)}
}

func (r *fakeDepreciationRepo) CreateInTx(ctx context.Context, tx pgx.Tx, d *entities.Depreciation) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	d.ID = r.seq
	r.rows[d.ID] = d
	return d.ID, nil
}

func (r *fakeDepreciationRepo) FindByUnitPeriodMethodInTx(ctx context.Context, tx pgx.Tx, assetUnitID uint64, period string, method entities.DepreciationMethod) (*entities.Depreciation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.rows {
		if d.AssetUnitID == assetUnitID && d.Period == period && d.Method == method {
			return d, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeDepreciationRepo) UpdateValuesInTx(ctx context.Context, tx pgx.Tx, id uint64, value, netValue decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.rows[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	d.Value = value
	d.NetValue = netValue
	return nil
}

func (r *fakeDepreciationRepo) ListByUnit(ctx context.Context, assetUnitID uint64) ([]*entities.Depreciation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Depreciation
	for _, d := range r.rows {
		if d.AssetUnitID == assetUnitID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDepreciationRepo) ListByPeriod(ctx context.Context, period string) ([]*entities.Depreciation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Depreciation
	for _, d := range r.rows {
		if d.Period == period {
			out = append(out, d)
		}
	}
	return out, nil
}

// --- partidas y cache ---

type fakePartidaRepo struct {
	mu       sync.Mutex
	partidas map[uint64]*entities.Partida
}

func newFakePartidaRepo(partidas ...*entities.Partida) *fakePartidaRepo {
	r := &fakePartidaRepo{partidas: make(map[uint64]*entities.Partida)}
	for _, p := range partidas {
		r.partidas[p.ID] = p
	}
	return r
}

func (r *fakePartidaRepo) Create(ctx context.Context, p *entities.Partida) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = uint64(len(r.partidas) + 1)
	r.partidas[p.ID] = p
	return p.ID, nil
}

func (r *fakePartidaRepo) FindByID(ctx context.Context, id uint64) (*entities.Partida, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.partidas[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return p, nil
}

func (r *fakePartidaRepo) List(ctx context.Context) ([]*entities.Partida, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Partida
	for _, p := range r.partidas {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePartidaRepo) Delete(ctx context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.partidas, id)
	return nil
}

type fakeCacheRepo struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{values: make(map[string]string)}
}

func (r *fakeCacheRepo) Get(ctx context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.values[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return v, nil
}

func (r *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := value.(string); ok {
		r.values[key] = s
	}
	return nil
}

func (r *fakeCacheRepo) Del(ctx context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range keys {
		delete(r.values, k)
	}
	return nil
}
