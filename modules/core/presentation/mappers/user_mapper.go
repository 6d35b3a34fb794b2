package mappers

import (
	"time"

	"github.com/amasqis/hrms/modules/core/domain/aggregates/user"
	"github.com/amasqis/hrms/modules/core/presentation/viewmodels"
)

func UserToViewModel(entity user.User) *viewmodels.User {
	return &viewmodels.User{
		ID:        entity.ID().String(),
		FirstName: entity.FirstName(),
		LastName:  entity.LastName(),
		FullName:  entity.FullName(),
		Email:     entity.Email(),
		Phone:     entity.Phone(),
		Role:      string(entity.Role()),
		AvatarURL: entity.AvatarURL(),
		Status:    string(entity.Status()),
		CreatedAt: entity.CreatedAt().Format(time.RFC3339),
	}
}
