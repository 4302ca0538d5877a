package client

import (
	"context"
	"sort"
	"sync"

	"github.com/xavierca1/creator-deals/internal/entity"
)

type BrandAPI interface {
	ListBrands(ctx context.Context, creatorID string) ([]*entity.Brand, error)
	MoveBrand(ctx context.Context, id string, stage entity.PipelineStage, position int) (*entity.Brand, error)
}

// BrandBoard é o kanban do pipeline. Move aplica a mudança na hora e
// depois reconcilia com o servidor, ou desfaz se a chamada falhar.
type BrandBoard struct {
	api       BrandAPI
	creatorID string

	mu     sync.RWMutex
	brands map[string]*entity.Brand
}

func NewBrandBoard(api BrandAPI, creatorID string) *BrandBoard {
	return &BrandBoard{api: api, creatorID: creatorID, brands: map[string]*entity.Brand{}}
}

func (b *BrandBoard) Refresh(ctx context.Context) error {
	list, err := b.api.ListBrands(ctx, b.creatorID)
	if err != nil {
		return err
	}
	brands := make(map[string]*entity.Brand, len(list))
	for _, br := range list {
		brands[br.ID] = br
	}
	b.mu.Lock()
	b.brands = brands
	b.mu.Unlock()
	return nil
}

// Column devolve as marcas de um estágio ordenadas por posição.
func (b *BrandBoard) Column(stage entity.PipelineStage) []entity.Brand {
	b.mu.RLock()
	var out []entity.Brand
	for _, br := range b.brands {
		if br.Stage == stage {
			out = append(out, *br)
		}
	}
	b.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (b *BrandBoard) Get(id string) (entity.Brand, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	br, ok := b.brands[id]
	if !ok {
		return entity.Brand{}, false
	}
	return *br, true
}

// Move é otimista. Na falha, volta o snapshot anterior só se ninguém
// mexeu na marca nesse meio tempo.
func (b *BrandBoard) Move(ctx context.Context, id string, stage entity.PipelineStage, position int) (entity.Brand, error) {
	b.mu.Lock()
	current, ok := b.brands[id]
	if !ok {
		b.mu.Unlock()
		return entity.Brand{}, entity.ErrNotFound
	}
	snapshot := *current
	moved := snapshot
	moved.Tags = append([]string(nil), snapshot.Tags...)
	moved.Stage = stage
	moved.Position = position
	b.brands[id] = &moved
	b.mu.Unlock()

	server, err := b.api.MoveBrand(ctx, id, stage, position)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		if b.brands[id] == &moved {
			b.brands[id] = &snapshot
		}
		return snapshot, err
	}
	b.brands[id] = server
	return *server, nil
}
