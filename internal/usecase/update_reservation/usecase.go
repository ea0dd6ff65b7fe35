package update_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/reservation"
	serviceRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/service"
	specialistRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/specialist"
)

// UseCase use case для полного обновления брони
type UseCase struct {
	reservationRepo ReservationRepository
	specialistRepo  SpecialistRepository
	serviceRepo     ServiceRepository
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	specialistRepo SpecialistRepository,
	serviceRepo ServiceRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		specialistRepo:  specialistRepo,
		serviceRepo:     serviceRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case обновления брони.
// Собственная запись исключается из проверки пересечения, поэтому
// сдвиг внутри своего же интервала всегда проходит. Ссылки на услуги
// заменяются целиком, а не диффом.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateReservation: id=%d, specialist=%d, start=%s, duration=%d, services=%v",
		req.ReservationID, req.SpecialistID,
		req.StartTime.Format(domain.DateFormat+" "+domain.TimeFormat),
		req.DurationMinutes, req.ServiceIDs)

	// 1. Валидация входных данных до обращения к хранилищу
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование сотрудника
	if _, err := uc.specialistRepo.GetByID(ctx, req.SpecialistID); err != nil {
		if errors.Is(err, specialistRepo.ErrSpecialistNotFound) {
			uc.logger.Warn("UpdateReservation: specialist id=%d not found", req.SpecialistID)
			return nil, ErrSpecialistNotFound
		}
		uc.logger.Error("UpdateReservation: failed to get specialist id=%d: %v", req.SpecialistID, err)
		return nil, fmt.Errorf("%w: failed to get specialist: %v", ErrInternal, err)
	}

	// 3. Проверяем существование всех услуг (с сохранением порядка)
	services, err := uc.serviceRepo.GetByIDs(ctx, req.ServiceIDs)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("UpdateReservation: one of services %v not found", req.ServiceIDs)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("UpdateReservation: failed to get services %v: %v", req.ServiceIDs, err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	// 4. Выводим производные поля из startTime
	endTime := domain.AddMinutes(req.StartTime, req.DurationMinutes)
	reservationDate := domain.ReservationDateOf(req.StartTime)

	var result *domain.Reservation

	// 5. Проверка пересечения и запись в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Убеждаемся, что бронь существует
		current, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("UpdateReservation: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("UpdateReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// 5.2. Авторитетная проверка пересечения, исключая собственную запись
		exists, err := uc.reservationRepo.ExistsOverlapping(
			txCtx, req.SpecialistID, reservationDate, req.StartTime, endTime, &req.ReservationID)
		if err != nil {
			uc.logger.Error("UpdateReservation: overlap check failed: %v", err)
			return fmt.Errorf("%w: overlap check failed: %v", ErrInternal, err)
		}
		if exists {
			uc.logger.Warn("UpdateReservation: slot conflict for specialist=%d at %s",
				req.SpecialistID, req.StartTime.Format(domain.TimeFormat))
			return ErrTimeSlotConflict
		}

		// 5.3. Обновляем бронь
		current.SpecialistID = req.SpecialistID
		current.ReservationDate = reservationDate
		current.StartTime = req.StartTime
		current.EndTime = endTime
		current.DurationMinutes = req.DurationMinutes
		current.Services = serviceRefs(services)

		if err := uc.reservationRepo.Update(txCtx, current); err != nil {
			uc.logger.Error("UpdateReservation: failed to update reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		// 5.4. Полная замена ссылок на услуги (sort_order = индекс)
		if err := uc.reservationRepo.ReplaceServiceLinks(txCtx, current.ID, req.ServiceIDs); err != nil {
			uc.logger.Error("UpdateReservation: failed to replace service links: %v", err)
			return fmt.Errorf("%w: failed to replace service links: %v", ErrInternal, err)
		}

		result = current
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateReservation: successfully updated reservation id=%d", result.ID)

	return toResponse(result), nil
}
