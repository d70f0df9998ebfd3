package out

import (
	"context"

	"passby/internal/modules/export/domain"
	exportout "passby/internal/modules/export/port/out"
	observedto "passby/internal/modules/observe/dto"
	observein "passby/internal/modules/observe/port/in"
)

// SessionSourceAdapter reads the live session through the observe module.
type SessionSourceAdapter struct {
	observe observein.Usecase
}

var _ exportout.SessionSource = (*SessionSourceAdapter)(nil)

func NewSessionSourceAdapter(observe observein.Usecase) *SessionSourceAdapter {
	return &SessionSourceAdapter{observe: observe}
}

func (a *SessionSourceAdapter) Snapshot(ctx context.Context) (domain.Report, error) {
	status, err := a.observe.Status(ctx)
	if err != nil {
		return domain.Report{}, err
	}
	entries, err := a.observe.ListLogs(ctx)
	if err != nil {
		return domain.Report{}, err
	}
	return domain.Report{
		StartedAt: status.StartedAt,
		EndedAt:   status.EndedAt,
		Location:  status.Location,
		Note:      status.Note,
		Rows:      toRows(entries),
	}, nil
}

func toRows(entries []observedto.EntryOutput) []domain.Row {
	rows := make([]domain.Row, 0, len(entries))
	for _, e := range entries {
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
	return rows
}
