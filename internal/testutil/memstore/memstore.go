// Package memstore is an in-memory implementation of the ports unit of work.
// Use case tests run against it instead of PostgreSQL; it applies the same
// optimistic version checks and the same not-found and duplicate errors as
// the gorm repositories.
package memstore

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"logistics/internal/core/domain/model/account"
	"logistics/internal/core/domain/model/coin"
	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/profile"
	"logistics/internal/core/domain/model/record"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// ErrNoTransaction is returned by Commit and Rollback without a matching Begin.
var ErrNoTransaction = errors.New("memstore: no active transaction")

type deliveryRow struct {
	id        kernel.UUID
	company   kernel.Address
	metadata  delivery.Metadata
	driver    *kernel.Address
	cost      uint64
	escrow    uint64
	status    delivery.Status
	proof     []byte
	createdAt time.Time
	dueDate   time.Time
	version   uint64
}

type profileRow struct {
	id      kernel.UUID
	driver  kernel.Address
	name    string
	contact string
	rating  uint64
	version uint64
}

type accountRow struct {
	owner   kernel.Address
	balance uint64
	version uint64
}

type recordsRow struct {
	id      kernel.UUID
	company kernel.Address
	entries []record.DeliveryRecord
}

type state struct {
	deliveries map[kernel.UUID]deliveryRow
	profiles   map[kernel.UUID]profileRow
	accounts   map[string]accountRow
	records    map[string]recordsRow
	outbox     []ports.OutboxMessage
}

func newState() state {
	return state{
		deliveries: make(map[kernel.UUID]deliveryRow),
		profiles:   make(map[kernel.UUID]profileRow),
		accounts:   make(map[string]accountRow),
		records:    make(map[string]recordsRow),
	}
}

// Store holds committed state shared by every unit of work it creates.
type Store struct {
	mu        sync.Mutex
	committed state
	commits   int
}

func New() *Store {
	return &Store{committed: newState()}
}

// Create returns a unit of work bound to the store.
func (s *Store) Create() ports.UnitOfWork {
	return &UnitOfWork{store: s}
}

// Commits counts successful commits, letting tests assert that failed
// operations left nothing behind.
func (s *Store) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

// Outbox returns a copy of every committed outbox message.
func (s *Store) Outbox() []ports.OutboxMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ports.OutboxMessage(nil), s.committed.outbox...)
}

// UnitOfWork buffers writes until Commit. Reads see the buffered writes of
// the same unit of work on top of the committed state.
type UnitOfWork struct {
	store  *Store
	active bool
	staged state
	sent   map[kernel.UUID]time.Time
}

func (u *UnitOfWork) Begin(_ context.Context) error {
	if u.active {
		return nil
	}
	u.active = true
	u.staged = newState()
	u.sent = make(map[kernel.UUID]time.Time)
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}
	u.active = false

	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := u.checkVersions(); err != nil {
		return err
	}

	for id, row := range u.staged.deliveries {
		s.committed.deliveries[id] = row
	}
	for id, row := range u.staged.profiles {
		s.committed.profiles[id] = row
	}
	for owner, row := range u.staged.accounts {
		s.committed.accounts[owner] = row
	}
	for company, row := range u.staged.records {
		s.committed.records[company] = row
	}
	s.committed.outbox = append(s.committed.outbox, u.staged.outbox...)
	for i, msg := range s.committed.outbox {
		if at, ok := u.sent[msg.ID]; ok {
			sentAt := at
			s.committed.outbox[i].SentAt = &sentAt
		}
	}
	s.commits++
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return ErrNoTransaction
	}
	u.active = false
	u.staged = newState()
	u.sent = nil
	return nil
}

// checkVersions rejects the commit when another unit of work committed a
// newer version of a row this one changed.
func (u *UnitOfWork) checkVersions() error {
	c := u.store.committed
	for id, row := range u.staged.deliveries {
		if stored, ok := c.deliveries[id]; ok && stored.version+1 != row.version && row.version != 0 {
			return errs.NewVersionIsInvalidError("delivery")
		}
	}
	for id, row := range u.staged.profiles {
		if stored, ok := c.profiles[id]; ok && stored.version+1 != row.version && row.version != 0 {
			return errs.NewVersionIsInvalidError("driver profile")
		}
	}
	for owner, row := range u.staged.accounts {
		if stored, ok := c.accounts[owner]; ok && stored.version+1 != row.version && row.version != 0 {
			return errs.NewVersionIsInvalidError("account")
		}
	}
	return nil
}

func (u *UnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return deliveryRepository{u}
}

func (u *UnitOfWork) DriverProfileRepository() ports.DriverProfileRepository {
	return profileRepository{u}
}

func (u *UnitOfWork) DeliveryRecordsRepository() ports.DeliveryRecordsRepository {
	return recordsRepository{u}
}

func (u *UnitOfWork) AccountRepository() ports.AccountRepository {
	return accountRepository{u}
}

func (u *UnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxRepository{u}
}

func (u *UnitOfWork) deliveryRow(id kernel.UUID) (deliveryRow, bool) {
	if row, ok := u.staged.deliveries[id]; ok {
		return row, true
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	row, ok := u.store.committed.deliveries[id]
	return row, ok
}

func (u *UnitOfWork) profileRow(id kernel.UUID) (profileRow, bool) {
	if row, ok := u.staged.profiles[id]; ok {
		return row, true
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	row, ok := u.store.committed.profiles[id]
	return row, ok
}

func (u *UnitOfWork) accountRow(owner string) (accountRow, bool) {
	if row, ok := u.staged.accounts[owner]; ok {
		return row, true
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	row, ok := u.store.committed.accounts[owner]
	return row, ok
}

func (u *UnitOfWork) recordsRow(company string) (recordsRow, bool) {
	if row, ok := u.staged.records[company]; ok {
		return row, true
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	row, ok := u.store.committed.records[company]
	return row, ok
}

type deliveryRepository struct{ u *UnitOfWork }

func (r deliveryRepository) Add(_ context.Context, work *delivery.DeliveryWork) error {
	if err := work.Validate(); err != nil {
		return err
	}
	if _, exists := r.u.deliveryRow(work.ID()); exists {
		return errs.NewValueIsInvalidError("delivery already exists")
	}
	row := toDeliveryRow(work)
	row.version = 0
	r.u.staged.deliveries[work.ID()] = row
	return nil
}

func (r deliveryRepository) Update(_ context.Context, work *delivery.DeliveryWork) error {
	if err := work.Validate(); err != nil {
		return err
	}
	stored, ok := r.u.deliveryRow(work.ID())
	if !ok {
		return errs.NewObjectNotFoundError("delivery", work.ID())
	}
	if stored.version != work.Version() {
		return errs.NewVersionIsInvalidError("delivery")
	}
	row := toDeliveryRow(work)
	row.version = work.Version() + 1
	r.u.staged.deliveries[work.ID()] = row
	return nil
}

func (r deliveryRepository) Get(_ context.Context, id kernel.UUID) (*delivery.DeliveryWork, error) {
	row, ok := r.u.deliveryRow(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("delivery", id)
	}
	return delivery.RestoreDeliveryWork(
		row.id, row.company, row.metadata, row.driver, row.cost, coin.NewBalance(row.escrow),
		row.status, row.proof, row.createdAt, row.dueDate, row.version,
	)
}

func toDeliveryRow(work *delivery.DeliveryWork) deliveryRow {
	return deliveryRow{
		id:        work.ID(),
		company:   work.Company(),
		metadata:  work.Metadata(),
		driver:    work.Driver(),
		cost:      work.Cost(),
		escrow:    work.Escrow().Value(),
		status:    work.Status(),
		proof:     work.Proof(),
		createdAt: work.CreatedAt(),
		dueDate:   work.DueDate(),
		version:   work.Version(),
	}
}

type profileRepository struct{ u *UnitOfWork }

func (r profileRepository) Add(_ context.Context, p *profile.DriverProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, exists := r.u.profileRow(p.ID()); exists {
		return errs.NewValueIsInvalidError("driver profile already exists")
	}
	r.u.staged.profiles[p.ID()] = profileRow{
		id: p.ID(), driver: p.Driver(), name: p.Name(), contact: p.Contact(), rating: p.Rating(),
	}
	return nil
}

func (r profileRepository) Update(_ context.Context, p *profile.DriverProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	stored, ok := r.u.profileRow(p.ID())
	if !ok {
		return errs.NewObjectNotFoundError("driver profile", p.ID())
	}
	if stored.version != p.Version() {
		return errs.NewVersionIsInvalidError("driver profile")
	}
	r.u.staged.profiles[p.ID()] = profileRow{
		id: p.ID(), driver: p.Driver(), name: p.Name(), contact: p.Contact(), rating: p.Rating(),
		version: p.Version() + 1,
	}
	return nil
}

func (r profileRepository) Get(_ context.Context, id kernel.UUID) (*profile.DriverProfile, error) {
	row, ok := r.u.profileRow(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("driver profile", id)
	}
	return profile.RestoreDriverProfile(row.id, row.driver, row.name, row.contact, row.rating, row.version)
}

type accountRepository struct{ u *UnitOfWork }

func (r accountRepository) Add(_ context.Context, a *account.Account) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if _, exists := r.u.accountRow(a.Owner().String()); exists {
		return errs.NewValueIsInvalidError("account already exists")
	}
	r.u.staged.accounts[a.Owner().String()] = accountRow{owner: a.Owner(), balance: a.Balance().Value()}
	return nil
}

func (r accountRepository) Update(_ context.Context, a *account.Account) error {
	if err := a.Validate(); err != nil {
		return err
	}
	stored, ok := r.u.accountRow(a.Owner().String())
	if !ok {
		return errs.NewObjectNotFoundError("account", a.Owner().String())
	}
	if stored.version != a.Version() {
		return errs.NewVersionIsInvalidError("account")
	}
	r.u.staged.accounts[a.Owner().String()] = accountRow{
		owner: a.Owner(), balance: a.Balance().Value(), version: a.Version() + 1,
	}
	return nil
}

func (r accountRepository) Get(_ context.Context, owner kernel.Address) (*account.Account, error) {
	row, ok := r.u.accountRow(owner.String())
	if !ok {
		return nil, errs.NewObjectNotFoundError("account", owner.String())
	}
	return account.RestoreAccount(row.owner, coin.NewBalance(row.balance), row.version)
}

type recordsRepository struct{ u *UnitOfWork }

func (r recordsRepository) Add(_ context.Context, rs *record.DeliveryRecords) error {
	if err := rs.Validate(); err != nil {
		return err
	}
	if _, exists := r.u.recordsRow(rs.Company().String()); exists {
		return errs.NewValueIsInvalidError("records collection already exists")
	}
	if err := r.checkUnique(rs.Entries()); err != nil {
		return err
	}
	r.u.staged.records[rs.Company().String()] = recordsRow{id: rs.ID(), company: rs.Company(), entries: rs.Entries()}
	return nil
}

func (r recordsRepository) Update(_ context.Context, rs *record.DeliveryRecords) error {
	if err := rs.Validate(); err != nil {
		return err
	}
	stored, ok := r.u.recordsRow(rs.Company().String())
	if !ok {
		return errs.NewObjectNotFoundError("records", rs.Company().String())
	}
	added := rs.Added()
	if err := r.checkUnique(added); err != nil {
		return err
	}
	stored.entries = append(append([]record.DeliveryRecord(nil), stored.entries...), added...)
	r.u.staged.records[rs.Company().String()] = stored
	return nil
}

func (r recordsRepository) GetByCompany(_ context.Context, company kernel.Address) (*record.DeliveryRecords, error) {
	row, ok := r.u.recordsRow(company.String())
	if !ok {
		return nil, errs.NewObjectNotFoundError("records", company.String())
	}
	return record.RestoreDeliveryRecords(row.id, row.company, row.entries)
}

// checkUnique mirrors the unique index on delivery id across all companies.
func (r recordsRepository) checkUnique(entries []record.DeliveryRecord) error {
	seen := make(map[kernel.UUID]struct{})
	collect := func(rows map[string]recordsRow) {
		for _, row := range rows {
			for _, e := range row.entries {
				seen[e.DeliveryID()] = struct{}{}
			}
		}
	}

	r.u.store.mu.Lock()
	collect(r.u.store.committed.records)
	r.u.store.mu.Unlock()
	collect(r.u.staged.records)

	for _, e := range entries {
		if _, dup := seen[e.DeliveryID()]; dup {
			return errs.NewDuplicateRecordError(e.DeliveryID().String())
		}
	}
	return nil
}

type outboxRepository struct{ u *UnitOfWork }

func (r outboxRepository) Add(_ context.Context, msg ports.OutboxMessage) error {
	msg.Payload = bytes.Clone(msg.Payload)
	r.u.staged.outbox = append(r.u.staged.outbox, msg)
	return nil
}

func (r outboxRepository) GetPending(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	r.u.store.mu.Lock()
	all := append([]ports.OutboxMessage(nil), r.u.store.committed.outbox...)
	r.u.store.mu.Unlock()
	all = append(all, r.u.staged.outbox...)

	sort.SliceStable(all, func(i, j int) bool { return all[i].OccurredAt.Before(all[j].OccurredAt) })

	pending := make([]ports.OutboxMessage, 0, limit)
	for _, msg := range all {
		if len(pending) == limit {
			break
		}
		if _, sent := r.u.sent[msg.ID]; msg.SentAt == nil && !sent {
			pending = append(pending, msg)
		}
	}
	return pending, nil
}

func (r outboxRepository) MarkAsSent(_ context.Context, id kernel.UUID, sentAt time.Time) error {
	r.u.sent[id] = sentAt
	return nil
}
