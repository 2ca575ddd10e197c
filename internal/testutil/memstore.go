package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/alexanderramin/timelog/internal/domain"
	"github.com/alexanderramin/timelog/internal/repository"
)

// MemoryStore is an in-memory repository.Store. It enforces the same
// uniqueness and restrict-on-delete constraints as the SQLite schema and
// rolls a failed WithinTx back to a snapshot.
type MemoryStore struct {
	txMu sync.Mutex
	mu   sync.Mutex
	data memData
}

type memData struct {
	projects map[int64]domain.Project
	tasks    map[int64]domain.Task
	entries  map[int64]domain.TimeEntry
	nextID   int64
}

func (d memData) clone() memData {
	c := memData{
		projects: make(map[int64]domain.Project, len(d.projects)),
		tasks:    make(map[int64]domain.Task, len(d.tasks)),
		entries:  make(map[int64]domain.TimeEntry, len(d.entries)),
		nextID:   d.nextID,
	}
	for k, v := range d.projects {
		c.projects[k] = v
	}
	for k, v := range d.tasks {
		c.tasks[k] = v
	}
	for k, v := range d.entries {
		c.entries[k] = v
	}
	return c
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: memData{}.clone()}
}

func (s *MemoryStore) Projects() repository.ProjectRepo      { return memProjects{s} }
func (s *MemoryStore) Tasks() repository.TaskRepo            { return memTasks{s} }
func (s *MemoryStore) TimeEntries() repository.TimeEntryRepo { return memEntries{s} }

func (s *MemoryStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(ctx, memTx{s}); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// memTx joins the enclosing transaction on nested WithinTx calls.
type memTx struct {
	*MemoryStore
}

func (t memTx) WithinTx(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	return fn(ctx, t)
}

func (s *MemoryStore) id() int64 {
	s.data.nextID++
	return s.data.nextID
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func notFound(entity string) error {
	return fmt.Errorf("%s: %w", entity, repository.ErrNotFound)
}

// attach* return copies so callers never alias stored rows.

func (s *MemoryStore) attachProject(id int64) *domain.Project {
	p, ok := s.data.projects[id]
	if !ok {
		return nil
	}
	return &p
}

func (s *MemoryStore) attachTask(id int64) *domain.Task {
	t, ok := s.data.tasks[id]
	if !ok {
		return nil
	}
	t.Project = s.attachProject(t.ProjectID)
	return &t
}

type memProjects struct{ s *MemoryStore }

func (r memProjects) Create(_ context.Context, p *domain.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.data.projects {
		if other.Code == p.Code {
			return fmt.Errorf("inserting project: %w", repository.ErrDuplicate)
		}
	}
	p.ID = r.s.id()
	p.CreatedAt, p.UpdatedAt = now(), now()
	r.s.data.projects[p.ID] = *p
	return nil
}

func (r memProjects) GetByID(_ context.Context, id int64) (*domain.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p := r.s.attachProject(id); p != nil {
		return p, nil
	}
	return nil, notFound("project")
}

func (r memProjects) GetByCode(_ context.Context, code string) (*domain.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.data.projects {
		if p.Code == code {
			return &p, nil
		}
	}
	return nil, notFound("project")
}

func (r memProjects) List(_ context.Context) ([]*domain.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Project
	for _, p := range r.s.data.projects {
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r memProjects) Update(_ context.Context, p *domain.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.data.projects[p.ID]
	if !ok {
		return notFound("project")
	}
	for id, other := range r.s.data.projects {
		if id != p.ID && other.Code == p.Code {
			return fmt.Errorf("updating project: %w", repository.ErrDuplicate)
		}
	}
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = now()
	r.s.data.projects[p.ID] = *p
	return nil
}

func (r memProjects) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.projects[id]; !ok {
		return notFound("project")
	}
	for _, t := range r.s.data.tasks {
		if t.ProjectID == id {
			return fmt.Errorf("deleting project: FOREIGN KEY constraint failed")
		}
	}
	delete(r.s.data.projects, id)
	return nil
}

func (r memProjects) CodeTaken(_ context.Context, code string, excludeID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, p := range r.s.data.projects {
		if id != excludeID && p.Code == code {
			return true, nil
		}
	}
	return false, nil
}

type memTasks struct{ s *MemoryStore }

func (r memTasks) nameTaken(projectID int64, name string, excludeID int64) bool {
	for id, t := range r.s.data.tasks {
		if id != excludeID && t.ProjectID == projectID && t.Name == name {
			return true
		}
	}
	return false
}

func (r memTasks) Create(_ context.Context, t *domain.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.projects[t.ProjectID]; !ok {
		return fmt.Errorf("inserting task: FOREIGN KEY constraint failed")
	}
	if r.nameTaken(t.ProjectID, t.Name, 0) {
		return fmt.Errorf("inserting task: %w", repository.ErrDuplicate)
	}
	t.ID = r.s.id()
	t.CreatedAt, t.UpdatedAt = now(), now()
	stored := *t
	stored.Project = nil
	r.s.data.tasks[t.ID] = stored
	return nil
}

func (r memTasks) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t := r.s.attachTask(id); t != nil {
		return t, nil
	}
	return nil, notFound("task")
}

func (r memTasks) list(keep func(domain.Task) bool) []*domain.Task {
	var out []*domain.Task
	for id, t := range r.s.data.tasks {
		if keep(t) {
			out = append(out, r.s.attachTask(id))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r memTasks) List(_ context.Context, activeOnly bool) ([]*domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(t domain.Task) bool { return !activeOnly || t.Active }), nil
}

func (r memTasks) ListByProject(_ context.Context, projectID int64) ([]*domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.list(func(t domain.Task) bool { return t.ProjectID == projectID }), nil
}

func (r memTasks) Update(_ context.Context, t *domain.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.data.tasks[t.ID]
	if !ok {
		return notFound("task")
	}
	if r.nameTaken(t.ProjectID, t.Name, t.ID) {
		return fmt.Errorf("updating task: %w", repository.ErrDuplicate)
	}
	t.CreatedAt = cur.CreatedAt
	t.UpdatedAt = now()
	stored := *t
	stored.Project = nil
	r.s.data.tasks[t.ID] = stored
	return nil
}

func (r memTasks) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.tasks[id]; !ok {
		return notFound("task")
	}
	for _, e := range r.s.data.entries {
		if e.TaskID == id {
			return fmt.Errorf("deleting task: FOREIGN KEY constraint failed")
		}
	}
	delete(r.s.data.tasks, id)
	return nil
}

func (r memTasks) NameTaken(_ context.Context, projectID int64, name string, excludeID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.nameTaken(projectID, name, excludeID), nil
}

func (r memTasks) CountByProject(_ context.Context, projectID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, t := range r.s.data.tasks {
		if t.ProjectID == projectID {
			n++
		}
	}
	return n, nil
}

type memEntries struct{ s *MemoryStore }

func (r memEntries) attach(e domain.TimeEntry) *domain.TimeEntry {
	e.Task = r.s.attachTask(e.TaskID)
	return &e
}

func (r memEntries) Create(_ context.Context, e *domain.TimeEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.tasks[e.TaskID]; !ok {
		return fmt.Errorf("inserting time entry: FOREIGN KEY constraint failed")
	}
	e.ID = r.s.id()
	e.Date = domain.NormalizeDate(e.Date)
	e.CreatedAt, e.UpdatedAt = now(), now()
	stored := *e
	stored.Task = nil
	r.s.data.entries[e.ID] = stored
	return nil
}

func (r memEntries) GetByID(_ context.Context, id int64) (*domain.TimeEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.data.entries[id]
	if !ok {
		return nil, notFound("time entry")
	}
	return r.attach(e), nil
}

func (r memEntries) List(_ context.Context, f repository.EntryFilter) ([]*domain.TimeEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.TimeEntry
	for _, e := range r.s.data.entries {
		if f.From != nil && e.Date.Before(domain.NormalizeDate(*f.From)) {
			continue
		}
		if f.To != nil && e.Date.After(domain.NormalizeDate(*f.To)) {
			continue
		}
		if f.TaskID != 0 && e.TaskID != f.TaskID {
			continue
		}
		if f.ProjectID != 0 && r.s.data.tasks[e.TaskID].ProjectID != f.ProjectID {
			continue
		}
		out = append(out, r.attach(e))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r memEntries) Update(_ context.Context, e *domain.TimeEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.data.entries[e.ID]
	if !ok {
		return notFound("time entry")
	}
	e.Date = domain.NormalizeDate(e.Date)
	e.CreatedAt = cur.CreatedAt
	e.UpdatedAt = now()
	stored := *e
	stored.Task = nil
	r.s.data.entries[e.ID] = stored
	return nil
}

func (r memEntries) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.entries[id]; !ok {
		return notFound("time entry")
	}
	delete(r.s.data.entries, id)
	return nil
}

func (r memEntries) SumOnDate(_ context.Context, day time.Time) (domain.CentiHours, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	day = domain.NormalizeDate(day)
	var total domain.CentiHours
	for _, e := range r.s.data.entries {
		if e.Date.Equal(day) {
			total += domain.ToCentiHours(e.Hours)
		}
	}
	return total, nil
}

func (r memEntries) CountByTask(_ context.Context, taskID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, e := range r.s.data.entries {
		if e.TaskID == taskID {
			n++
		}
	}
	return n, nil
}

var _ repository.Store = (*MemoryStore)(nil)
