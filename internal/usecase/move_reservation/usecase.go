package move_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reservation"
	specialistRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/specialist"
)

// UseCase use case для переноса брони на другой слот или колонку
type UseCase struct {
	reservationRepo ReservationRepository
	specialistRepo  SpecialistRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	specialistRepo SpecialistRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		specialistRepo:  specialistRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case переноса брони.
//
// Длительность и услуги берутся из сохраненной брони - перенос меняет
// только сотрудника и время начала. Решение о допустимости броска
// принимает domain.EvaluateDrop (тот же порядок правил, что и в
// интерактивной подсветке: same_slot → past → overlap), после чего
// внутри сериализуемой транзакции выполняется авторитетная проверка
// пересечения. Бросок на свой же слот - успешный no-op.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MoveReservation: id=%d → specialist=%d, date=%s, slot=%s",
		req.ReservationID, req.SpecialistID, req.Date, req.Slot)

	// 1. Валидация входных данных (формат даты, слот на сетке)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("MoveReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование целевого сотрудника
	if _, err := uc.specialistRepo.GetByID(ctx, req.SpecialistID); err != nil {
		if errors.Is(err, specialistRepo.ErrSpecialistNotFound) {
			uc.logger.Warn("MoveReservation: specialist id=%d not found", req.SpecialistID)
			return nil, ErrSpecialistNotFound
		}
		uc.logger.Error("MoveReservation: failed to get specialist id=%d: %v", req.SpecialistID, err)
		return nil, fmt.Errorf("%w: failed to get specialist: %v", ErrInternal, err)
	}

	// 3. Получаем живое время один раз на всю операцию
	now := uc.timeProvider.Now()

	var result *domain.Reservation
	moved := false

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем переносимую бронь
		res, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("MoveReservation: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("MoveReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// 3.2. Собираем брони дня и классифицируем бросок
		candStart, err := domain.ToAbsoluteTime(req.Date, req.Slot)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		dayReservations, err := uc.reservationRepo.ListByDate(txCtx, domain.ReservationDateOf(candStart))
		if err != nil {
			uc.logger.Error("MoveReservation: failed to list day reservations: %v", err)
			return fmt.Errorf("%w: failed to list day reservations: %v", ErrInternal, err)
		}

		drop, err := domain.EvaluateDrop(req.Date, req.SpecialistID, req.Slot, res, dayReservations, now)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if !drop.Valid {
			switch drop.Reason {
			case domain.DropReasonSameSlot:
				// Бросок на свой же слот - успех без записи
				uc.logger.Info("MoveReservation: id=%d dropped on its own slot, no-op", req.ReservationID)
				result = res
				return nil
			case domain.DropReasonPast:
				uc.logger.Warn("MoveReservation: target slot %s %s is in the past", req.Date, req.Slot)
				return ErrSlotInPast
			case domain.DropReasonOverlap:
				uc.logger.Warn("MoveReservation: target slot %s %s conflicts for specialist=%d",
					req.Date, req.Slot, req.SpecialistID)
				return ErrTimeSlotConflict
			}
		}

		candEnd := domain.AddMinutes(candStart, res.DurationMinutes)

		// 3.3. Авторитетная проверка пересечения (FOR UPDATE внутри транзакции)
		exists, err := uc.reservationRepo.ExistsOverlapping(
			txCtx, req.SpecialistID, domain.ReservationDateOf(candStart), candStart, candEnd, &res.ID)
		if err != nil {
			uc.logger.Error("MoveReservation: overlap check failed: %v", err)
			return fmt.Errorf("%w: overlap check failed: %v", ErrInternal, err)
		}
		if exists {
			uc.logger.Warn("MoveReservation: authoritative check found conflict at %s %s", req.Date, req.Slot)
			return ErrTimeSlotConflict
		}

		// 3.4. Переносим: меняются только сотрудник и временные поля
		res.SpecialistID = req.SpecialistID
		res.StartTime = candStart
		res.EndTime = candEnd
		res.ReservationDate = domain.ReservationDateOf(candStart)

		if err := uc.reservationRepo.Update(txCtx, res); err != nil {
			uc.logger.Error("MoveReservation: failed to update reservation id=%d: %v", res.ID, err)
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		result = res
		moved = true
		return nil
	})

	if err != nil {
		return nil, err
	}

	if moved {
		uc.logger.Info("MoveReservation: successfully moved reservation id=%d to specialist=%d %s %s",
			result.ID, req.SpecialistID, req.Date, req.Slot)
	}

	return toResponse(result, moved), nil
}
