package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"employeehub/internal/database/mongodb/model"
	"employeehub/internal/database/store"
)

// Store 以 map 保存員工文件（STORE__DRIVER=memory 與測試使用），回傳值皆為拷貝
type Store struct {
	mu    sync.RWMutex
	docs  map[string]*model.Employee
	order []string
}

var _ store.DocumentStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{docs: make(map[string]*model.Employee)}
}

func (s *Store) QueryDocuments(ctx context.Context, query store.QueryTemplate, params store.Parameters) ([]*model.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	match, project, err := compile(query, params)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*model.Employee, 0)
	for _, id := range s.order {
		doc := s.docs[id]
		if match(doc) {
			results = append(results, project(doc))
		}
	}
	return results, nil
}

func (s *Store) ReadAllDocuments(ctx context.Context) ([]*model.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*model.Employee, 0, len(s.order))
	for _, id := range s.order {
		results = append(results, s.docs[id].Clone())
	}
	return results, nil
}

func (s *Store) InsertDocument(ctx context.Context, employee *model.Employee) (*model.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[employee.ID]; ok {
		return nil, fmt.Errorf("%w: %s", store.ErrConflict, employee.ID)
	}
	s.docs[employee.ID] = employee.Clone()
	s.order = append(s.order, employee.ID)
	return employee.Clone(), nil
}

func (s *Store) ReplaceDocument(ctx context.Context, id string, employee *model.Employee) (*model.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return nil, store.ErrNotFound
	}
	doc := employee.Clone()
	doc.ID = id
	s.docs[id] = doc
	return doc.Clone(), nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

type matcher func(*model.Employee) bool
type projector func(*model.Employee) *model.Employee

func compile(query store.QueryTemplate, params store.Parameters) (matcher, projector, error) {
	clone := func(e *model.Employee) *model.Employee { return e.Clone() }

	switch query {
	case store.QueryEmployeeByID:
		id := params.String(store.ParamID)
		return func(e *model.Employee) bool { return e.ID == id }, clone, nil
	case store.QueryEmployeesByDepartment:
		dept := params.String(store.ParamDepartment)
		return func(e *model.Employee) bool { return e.Department == dept }, clone, nil
	case store.QueryEmployeesSearch:
		needle := strings.ToLower(params.String(store.ParamSearch))
		return func(e *model.Employee) bool {
			return strings.Contains(strings.ToLower(e.FirstName), needle) ||
				strings.Contains(strings.ToLower(e.LastName), needle) ||
				strings.Contains(strings.ToLower(e.Email), needle)
		}, clone, nil
	case store.QueryActiveDepartments:
		return func(e *model.Employee) bool { return e.IsActive },
			func(e *model.Employee) *model.Employee {
				return &model.Employee{ID: e.ID, Department: e.Department}
			}, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", store.ErrUnknownQuery, query)
	}
}
