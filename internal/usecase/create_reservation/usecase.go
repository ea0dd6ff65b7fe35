package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/service"
	specialistRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/specialist"
)

// UseCase use case для создания брони
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

// Execute выполняет use case создания брони.
// Проверка пересечения и запись выполняются в одной сериализуемой
// транзакции - конкурентные создания на один слот не могут пройти обе.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: specialist=%d, start=%s, duration=%d, services=%v",
		req.SpecialistID, req.StartTime.Format(domain.DateFormat+" "+domain.TimeFormat),
		req.DurationMinutes, req.ServiceIDs)

	// 1. Валидация входных данных до обращения к хранилищу
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование сотрудника
	if _, err := uc.specialistRepo.GetByID(ctx, req.SpecialistID); err != nil {
		if errors.Is(err, specialistRepo.ErrSpecialistNotFound) {
			uc.logger.Warn("CreateReservation: specialist id=%d not found", req.SpecialistID)
			return nil, ErrSpecialistNotFound
		}
		uc.logger.Error("CreateReservation: failed to get specialist id=%d: %v", req.SpecialistID, err)
		return nil, fmt.Errorf("%w: failed to get specialist: %v", ErrInternal, err)
	}

	// 3. Проверяем существование всех услуг (с сохранением порядка)
	services, err := uc.serviceRepo.GetByIDs(ctx, req.ServiceIDs)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateReservation: one of services %v not found", req.ServiceIDs)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateReservation: failed to get services %v: %v", req.ServiceIDs, err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	// 4. Выводим производные поля из startTime
	endTime := domain.AddMinutes(req.StartTime, req.DurationMinutes)
	reservationDate := domain.ReservationDateOf(req.StartTime)

	var result *domain.Reservation

	// 5. Проверка пересечения и запись в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Авторитетная проверка пересечения (FOR UPDATE внутри транзакции)
		exists, err := uc.reservationRepo.ExistsOverlapping(
			txCtx, req.SpecialistID, reservationDate, req.StartTime, endTime, nil)
		if err != nil {
			uc.logger.Error("CreateReservation: overlap check failed: %v", err)
			return fmt.Errorf("%w: overlap check failed: %v", ErrInternal, err)
		}
		if exists {
			uc.logger.Warn("CreateReservation: slot conflict for specialist=%d at %s",
				req.SpecialistID, req.StartTime.Format(domain.TimeFormat))
			return ErrTimeSlotConflict
		}

		// 5.2. Создаем бронь
		res := &domain.Reservation{
			SpecialistID:    req.SpecialistID,
			ReservationDate: reservationDate,
			StartTime:       req.StartTime,
			EndTime:         endTime,
			DurationMinutes: req.DurationMinutes,
			Services:        serviceRefs(services),
		}

		created, err := uc.reservationRepo.Create(txCtx, res)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		// 5.3. Сохраняем упорядоченные ссылки на услуги (sort_order = индекс)
		if err := uc.reservationRepo.ReplaceServiceLinks(txCtx, created.ID, req.ServiceIDs); err != nil {
			uc.logger.Error("CreateReservation: failed to save service links: %v", err)
			return fmt.Errorf("%w: failed to save service links: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	return toResponse(result), nil
}
