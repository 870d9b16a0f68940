package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/talenthub-hr/hr-backend-go/internal/domain/settings"
)

type Service struct {
	repo settings.Repository
}

func NewSettingsService(repo settings.Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the stored policy, or the hard-coded defaults when no row
// has ever been saved.
func (s *Service) Get(ctx context.Context) (settings.LeaveSettings, error) {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			return settings.Defaults(), nil
		}
		return settings.LeaveSettings{}, fmt.Errorf("failed to load leave settings: %w", err)
	}
	return stored, nil
}

// Save applies a partial update. The first write inserts exactly the
// payload, nothing else; later writes merge: scalars replace when
// present, lists replace only when non-empty, maps merge key by key.
// Defaults apply only on Get when no row exists.
func (s *Service) Save(ctx context.Context, req settings.UpdateSettingsRequest) (settings.LeaveSettings, error) {
	if err := req.Validate(); err != nil {
		return settings.LeaveSettings{}, err
	}

	stored, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, settings.ErrSettingsNotFound) {
			return settings.LeaveSettings{}, fmt.Errorf("failed to load leave settings: %w", err)
		}
		created, err := s.repo.Create(ctx, Merge(settings.LeaveSettings{}, req))
		if err != nil {
			return settings.LeaveSettings{}, err
		}
		slog.Info("Leave settings created", "settings_id", created.ID)
		return created, nil
	}

	merged := Merge(stored, req)
	if err := s.repo.Update(ctx, merged); err != nil {
		return settings.LeaveSettings{}, err
	}
	slog.Info("Leave settings updated", "settings_id", merged.ID)
	return merged, nil
}

// Merge folds a partial update into the current settings without touching
// the stored value for anything the update leaves out.
func Merge(current settings.LeaveSettings, req settings.UpdateSettingsRequest) settings.LeaveSettings {
	merged := current

	if len(req.WorkingDays) > 0 {
		merged.WorkingDays = append(settings.IntList{}, req.WorkingDays...)
	}
	if req.WorkingHours != nil {
		merged.WorkingHours = *req.WorkingHours
	}
	if req.LateThresholdMinutes != nil {
		merged.LateThresholdMinutes = *req.LateThresholdMinutes
	}
	if req.OvertimeThresholdMinutes != nil {
		merged.OvertimeThresholdMinutes = *req.OvertimeThresholdMinutes
	}

	// Lists are replaced only when the incoming list is non-empty, so a
	// partial payload never wipes configured leave types.
	if len(req.LeaveTypes) > 0 {
		merged.LeaveTypes = append(settings.StringList{}, req.LeaveTypes...)
	}
	if len(req.CustomLeaves) > 0 {
		merged.CustomLeaves = append(settings.StringList{}, req.CustomLeaves...)
	}
	if len(req.SelectedLeaves) > 0 {
		merged.SelectedLeaves = append(settings.StringList{}, req.SelectedLeaves...)
	}

	// Maps merge key by key; keys absent from the payload keep their value.
	if len(req.LeaveStatus) > 0 {
		status := make(settings.StatusMap, len(merged.LeaveStatus)+len(req.LeaveStatus))
		for k, v := range merged.LeaveStatus {
			status[k] = v
		}
		for k, v := range req.LeaveStatus {
			status[k] = v
		}
		merged.LeaveStatus = status
	}
	if len(req.LeaveQuotas) > 0 {
		quotas := make(settings.QuotaMap, len(merged.LeaveQuotas)+len(req.LeaveQuotas))
		for k, v := range merged.LeaveQuotas {
			quotas[k] = v
		}
		for k, v := range req.LeaveQuotas {
			quotas[k] = v
		}
		merged.LeaveQuotas = quotas
	}

	return merged
}
