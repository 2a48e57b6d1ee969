package postgres

import (
	"time"

	"github.com/google/uuid"

	"gitlab.com/campusfound/campusfound-backend/internal/domain/item"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/user"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/valueobject/role"
	"gitlab.com/campusfound/campusfound-backend/internal/domain/verification"
)

type UserDTO struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
	Role      string
	AvatarURL string
	Passhash  []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

type VerificationDTO struct {
	ID        uuid.UUID
	Email     string
	Code      string
	CreatedAt time.Time
}

type ItemDTO struct {
	ID          uuid.UUID
	ReporterID  uuid.UUID
	Kind        string
	Name        string
	Description string
	Location    string
	PhotoURL    string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ItemMatchDTO struct {
	ItemID           uuid.UUID
	MatchedItemID    uuid.UUID
	OverallScore     float64
	NameScore        float64
	DescriptionScore float64
	LocationScore    float64
	ImageScore       float64
	CreatedAt        time.Time
}

func DomainToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:        uuid.UUID(u.ID()),
		Email:     u.Email(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		Role:      u.Role().String(),
		AvatarURL: u.AvatarURL(),
		Passhash:  u.PassHash(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

func UserToDomain(dto UserDTO) *user.User {
	return user.Rehydrate(user.RehydrateArgs{
		ID:        user.ID(dto.ID),
		Email:     dto.Email,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Role:      role.Role(dto.Role),
		AvatarURL: dto.AvatarURL,
		PassHash:  dto.Passhash,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	})
}

func DomainToVerificationDTO(r *verification.Record) VerificationDTO {
	return VerificationDTO{
		ID:        uuid.UUID(r.ID()),
		Email:     r.Email(),
		Code:      r.Code(),
		CreatedAt: r.CreatedAt(),
	}
}

func VerificationToDomain(dto VerificationDTO) *verification.Record {
	return verification.Rehydrate(verification.RehydrateArgs{
		ID:        verification.ID(dto.ID),
		Email:     dto.Email,
		Code:      dto.Code,
		CreatedAt: dto.CreatedAt,
	})
}

func DomainToItemDTO(i *item.Item) ItemDTO {
	return ItemDTO{
		ID:          uuid.UUID(i.ID()),
		ReporterID:  uuid.UUID(i.ReporterID()),
		Kind:        i.Kind().String(),
		Name:        i.Name(),
		Description: i.Description(),
		Location:    i.Location(),
		PhotoURL:    i.PhotoURL(),
		Status:      i.Status().String(),
		CreatedAt:   i.CreatedAt(),
		UpdatedAt:   i.UpdatedAt(),
	}
}

func ItemToDomain(dto ItemDTO) *item.Item {
	return item.Rehydrate(item.RehydrateArgs{
		ID:          item.ID(dto.ID),
		ReporterID:  user.ID(dto.ReporterID),
		Kind:        item.Kind(dto.Kind),
		Name:        dto.Name,
		Description: dto.Description,
		Location:    dto.Location,
		PhotoURL:    dto.PhotoURL,
		Status:      item.Status(dto.Status),
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	})
}

func ItemMatchToDomain(dto ItemMatchDTO) item.Match {
	return item.Match{
		ItemID:        item.ID(dto.ItemID),
		MatchedItemID: item.ID(dto.MatchedItemID),
		Scores: item.Scores{
			Overall:     dto.OverallScore,
			Name:        dto.NameScore,
			Description: dto.DescriptionScore,
			Location:    dto.LocationScore,
			Image:       dto.ImageScore,
		},
		CreatedAt: dto.CreatedAt,
	}
}
