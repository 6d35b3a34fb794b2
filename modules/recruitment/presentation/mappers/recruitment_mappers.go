package mappers

import (
	"time"

	"github.com/amasqis/hrms/modules/recruitment/domain/aggregates/job"
	"github.com/amasqis/hrms/modules/recruitment/presentation/viewmodels"
)

func JobToViewModel(entity job.Job) *viewmodels.Job {
	return &viewmodels.Job{
		ID:          entity.ID().String(),
		Title:       entity.Title(),
		Category:    entity.Category(),
		Location:    entity.Location(),
		Description: entity.Description(),
		Salary:      entity.SalaryRaw(),
		SalaryMin:   entity.SalaryMin(),
		SalaryMax:   entity.SalaryMax(),
		Type:        string(entity.Kind()),
		Status:      string(entity.Status()),
		PostedAt:    entity.PostedAt().Format(time.RFC3339),
		CreatedAt:   entity.CreatedAt().Format(time.RFC3339),
	}
}
