package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ScheduleService/internal/service/reservations/models"
)

// Service сервис чтения и удаления броней.
// Мутации со сложной семантикой (создание, обновление, перенос)
// живут в отдельных usecase'ах с сериализуемыми транзакциями.
type Service struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса броней
func NewService(reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// GetByID получает бронь по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(res), nil
}

// GetDaySchedule получает расписание одного дня: сетку слотов и брони,
// упорядоченные по времени начала
func (s *Service) GetDaySchedule(ctx context.Context, dateStr string) (*models.DayScheduleResponse, error) {
	s.logger.Info("GetDaySchedule: fetching reservations for date=%s", dateStr)

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		s.logger.Warn("GetDaySchedule: invalid date %q", dateStr)
		return nil, fmt.Errorf("%w: invalid date format: %v", ErrInvalidInput, err)
	}

	reservations, err := s.reservationRepo.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("GetDaySchedule: repository error for date=%s: %v", dateStr, err)
		return nil, fmt.Errorf("%w: GetDaySchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetDaySchedule: found %d reservations for date=%s", len(reservations), dateStr)

	return &models.DayScheduleResponse{
		Date:         dateStr,
		Slots:        models.SlotGridLabels(),
		Reservations: models.FromDomainReservations(reservations),
	}, nil
}

// Delete удаляет бронь. Проверка пересечений не нужна - удаление
// только освобождает интервал.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting reservation id=%d", id)

	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Delete: reservation id=%d not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Delete: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted reservation id=%d", id)
	return nil
}
