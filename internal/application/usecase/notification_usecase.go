package usecase

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/farmaviva/botica-api/internal/application/dto"
	"github.com/farmaviva/botica-api/internal/domain"
	"github.com/farmaviva/botica-api/internal/domain/entity"
	"github.com/farmaviva/botica-api/internal/domain/repository"
	"github.com/farmaviva/botica-api/pkg/clock"
)

// NotificationUseCase genera y consulta avisos derivados del estado de los
// productos. El generador deduplica: mientras exista un aviso no leído del
// mismo tipo para un producto, no crea otro igual.
type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
	productRepo      repository.ProductRepository
	clk              clock.Clock
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(notificationRepo repository.NotificationRepository, productRepo repository.ProductRepository, clk clock.Clock) *NotificationUseCase {
	return &NotificationUseCase{notificationRepo: notificationRepo, productRepo: productRepo, clk: clk}
}

// Generate recorre los productos en estado de alerta y crea los avisos que
// falten. Lo dispara el mismo scheduler del barrido de vencimientos.
func (uc *NotificationUseCase) Generate() (*dto.GenerateNotificationsResponse, error) {
	now := uc.clk.Now()
	created := 0

	alertStates := []struct {
		state   string
		ntype   string
		message func(p *entity.Product) string
	}{
		{entity.StateExpired, entity.NotificationExpired, func(p *entity.Product) string {
			return fmt.Sprintf("%s tiene lotes vencidos sin dar de baja", p.Name)
		}},
		{entity.StateExpiring, entity.NotificationExpiring, func(p *entity.Product) string {
			return fmt.Sprintf("%s tiene lotes que vencen pronto", p.Name)
		}},
		{entity.StateLowStock, entity.NotificationLowStock, func(p *entity.Product) string {
			return fmt.Sprintf("%s está por debajo del stock mínimo (%d)", p.Name, p.MinStock)
		}},
	}

	for _, alert := range alertStates {
		offset := 0
		for {
			products, err := uc.productRepo.List(alert.state, "", 100, offset)
			if err != nil {
				return nil, err
			}
			if len(products) == 0 {
				break
			}
			for _, p := range products {
				exists, err := uc.notificationRepo.ExistsUnread(p.ID, alert.ntype)
				if err != nil {
					return nil, err
				}
				if exists {
					continue
				}
				n := &entity.Notification{
					ID:        uuid.New().String(),
					ProductID: p.ID,
					Type:      alert.ntype,
					Message:   alert.message(p),
					CreatedAt: now,
				}
				if err := uc.notificationRepo.Create(n); err != nil {
					return nil, err
				}
				created++
			}
			offset += len(products)
		}
	}
	return &dto.GenerateNotificationsResponse{Created: created}, nil
}

// List lista avisos, opcionalmente solo los no leídos.
func (uc *NotificationUseCase) List(onlyUnread bool, page dto.PageRequest) ([]dto.NotificationResponse, error) {
	page.DefaultPage()
	notifications, err := uc.notificationRepo.List(onlyUnread, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, dto.NotificationResponse{
			ID:        n.ID,
			ProductID: n.ProductID,
			Type:      n.Type,
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
			ReadAt:    n.ReadAt,
		})
	}
	return out, nil
}

// MarkRead marca un aviso como leído.
func (uc *NotificationUseCase) MarkRead(id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.notificationRepo.MarkRead(id)
}
