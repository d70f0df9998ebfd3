package out

import (
	"context"

	archivein "passby/internal/modules/archive/port/in"
	"passby/internal/modules/export/domain"
	exportout "passby/internal/modules/export/port/out"
)

// ArchiveSourceAdapter reads archived sessions through the archive module.
type ArchiveSourceAdapter struct {
	archive archivein.Usecase
}

var _ exportout.ArchiveSource = (*ArchiveSourceAdapter)(nil)

func NewArchiveSourceAdapter(archive archivein.Usecase) *ArchiveSourceAdapter {
	return &ArchiveSourceAdapter{archive: archive}
}

func (a *ArchiveSourceAdapter) Snapshot(ctx context.Context, id string) (domain.Report, error) {
	archived, err := a.archive.Get(ctx, id)
	if err != nil {
		return domain.Report{}, err
	}

	rows := make([]domain.Row, 0, len(archived.Entries))
	for _, e := range archived.Entries {
		rows = append(rows, domain.Row{
			ID:        e.ID,
			Timestamp: e.Timestamp,
			EpochMS:   e.EpochMS,
			Side:      e.Side,
			Group:     e.Group,
			Category:  e.Category,
			Pass:      e.Pass,
			Look:      e.Look,
			Stop:      e.Stop,
			Use:       e.Use,
			Note:      e.Note,
		})
	}
	return domain.Report{
		StartedAt: archived.StartedAt,
		EndedAt:   archived.EndedAt,
		Location:  archived.Location,
		Note:      archived.Note,
		Rows:      rows,
	}, nil
}
