package client

import (
	"context"
	"sort"
	"sync"

	"github.com/xavierca1/creator-deals/internal/entity"
	"github.com/xavierca1/creator-deals/internal/usecase"
)

type OutreachAPI interface {
	ListOutreaches(ctx context.Context, creatorID string, includeArchived bool) ([]*entity.Outreach, error)
	GetOutreach(ctx context.Context, id string) (*entity.Outreach, error)
	Act(ctx context.Context, id, action string) (*entity.Outreach, error)
	SendEmail(ctx context.Context, id string, number int) (*usecase.SendEmailOutput, error)
	SetAutoSend(ctx context.Context, id string, enabled bool) (*entity.Outreach, error)
	DeleteOutreach(ctx context.Context, id string) error
}

// OutreachStore guarda a lista de outreaches de um criador. Mutações não
// são otimistas: o cache só muda com o registro que o servidor devolve,
// e fica intacto quando a chamada falha.
type OutreachStore struct {
	api       OutreachAPI
	creatorID string

	mu    sync.RWMutex
	items map[string]*entity.Outreach
}

func NewOutreachStore(api OutreachAPI, creatorID string) *OutreachStore {
	return &OutreachStore{api: api, creatorID: creatorID, items: map[string]*entity.Outreach{}}
}

// Refresh substitui o cache inteiro.
func (s *OutreachStore) Refresh(ctx context.Context) error {
	list, err := s.api.ListOutreaches(ctx, s.creatorID, true)
	if err != nil {
		return err
	}
	items := make(map[string]*entity.Outreach, len(list))
	for _, o := range list {
		if o.CreatorID != s.creatorID {
			continue
		}
		items[o.ID] = o
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

func (s *OutreachStore) Get(id string) (*entity.Outreach, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.items[id]
	if !ok {
		return nil, false
	}
	return o.Clone(), true
}

// List devolve cópias, mais recentes primeiro. Arquivados só com includeArchived.
func (s *OutreachStore) List(includeArchived bool) []*entity.Outreach {
	s.mu.RLock()
	out := make([]*entity.Outreach, 0, len(s.items))
	for _, o := range s.items {
		if o.Status == entity.StatusArchived && !includeArchived {
			continue
		}
		out = append(out, o.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out
}

func (s *OutreachStore) Act(ctx context.Context, id, action string) (*entity.Outreach, error) {
	return s.reconcile(s.api.Act(ctx, id, action))
}

func (s *OutreachStore) SetAutoSend(ctx context.Context, id string, enabled bool) (*entity.Outreach, error) {
	return s.reconcile(s.api.SetAutoSend(ctx, id, enabled))
}

// SendEmail busca o registro depois do envio porque o endpoint só
// devolve os timestamps.
func (s *OutreachStore) SendEmail(ctx context.Context, id string, number int) (*entity.Outreach, error) {
	if _, err := s.api.SendEmail(ctx, id, number); err != nil {
		return nil, err
	}
	return s.reconcile(s.api.GetOutreach(ctx, id))
}

func (s *OutreachStore) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteOutreach(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
	return nil
}

func (s *OutreachStore) reconcile(o *entity.Outreach, err error) (*entity.Outreach, error) {
	if err != nil {
		return nil, err
	}
	// o cache é de um criador só; registro de outro não entra
	s.mu.Lock()
	if o.CreatorID == s.creatorID {
		s.items[o.ID] = o
	} else {
		delete(s.items, o.ID)
	}
	s.mu.Unlock()
	return o.Clone(), nil
}
