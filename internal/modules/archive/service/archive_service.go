package service

import (
	"context"
	"fmt"

	"passby/internal/modules/archive/domain"
	archiveout "passby/internal/modules/archive/port/out"
	"passby/internal/platform/clock"
	apperrors "passby/internal/platform/errors"
	"passby/internal/platform/id"
)

type ArchiveService struct {
	clock clock.Clock
	ids   id.Generator
	store archiveout.Store
}

func NewArchiveService(clk clock.Clock, ids id.Generator, store archiveout.Store) *ArchiveService {
	return &ArchiveService{clock: clk, ids: ids, store: store}
}

// Add snapshots a finished session. New archives are prepended: the list is
// kept most-recent-first, which governs the default display and export
// order.
func (s *ArchiveService) Add(ctx context.Context, info domain.Info, entries []domain.Entry) (domain.Archived, error) {
	if len(entries) == 0 {
		return domain.Archived{}, apperrors.ErrEmptySession
	}
	archived := domain.Archived{
		ID:        s.ids.New(),
		CreatedAt: s.clock.Now(),
		Info:      info,
		Entries:   append([]domain.Entry(nil), entries...),
	}
	existing, err := s.store.Load(ctx)
	if err != nil {
		return domain.Archived{}, fmt.Errorf("loading archives: %w", err)
	}
	archives := append([]domain.Archived{archived}, existing...)
	if err := s.store.Save(ctx, archives); err != nil {
		return domain.Archived{}, fmt.Errorf("saving archives: %w", err)
	}
	return archived, nil
}

func (s *ArchiveService) List(ctx context.Context) ([]domain.Archived, error) {
	return s.store.Load(ctx)
}

func (s *ArchiveService) Get(ctx context.Context, archiveID string) (domain.Archived, error) {
	archives, err := s.store.Load(ctx)
	if err != nil {
		return domain.Archived{}, fmt.Errorf("loading archives: %w", err)
	}
	for _, a := range archives {
		if a.ID == archiveID {
			return a, nil
		}
	}
	return domain.Archived{}, apperrors.ErrArchiveNotFound
}

// Delete removes a single archived session; the remainder keeps its order.
func (s *ArchiveService) Delete(ctx context.Context, archiveID string) error {
	archives, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading archives: %w", err)
	}
	kept := archives[:0]
	found := false
	for _, a := range archives {
		if a.ID == archiveID {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return apperrors.ErrArchiveNotFound
	}
	if err := s.store.Save(ctx, kept); err != nil {
		return fmt.Errorf("saving archives: %w", err)
	}
	return nil
}
