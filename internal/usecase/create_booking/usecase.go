package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/slot"
)

// UseCase use case для создания бронирования
// Занятие места в слоте и вставка бронирования выполняются в одной
// сериализуемой транзакции: либо применяются обе записи, либо ни одной
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: slot=%d, date=%s, guests=%d",
		req.SlotID, req.Date.Format(domain.DateFormat), req.GuestCount)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 2. Занимаем место и создаем запись в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Атомарно занимаем место в слоте
		if err := uc.slotRepo.Reserve(txCtx, req.SlotID); err != nil {
			switch {
			case errors.Is(err, slotRepo.ErrSlotNotFound):
				uc.logger.Warn("CreateBooking: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			case errors.Is(err, slotRepo.ErrSlotInactive):
				uc.logger.Warn("CreateBooking: slot id=%d is inactive", req.SlotID)
				return ErrSlotInactive
			case errors.Is(err, slotRepo.ErrSlotFull):
				uc.logger.Warn("CreateBooking: slot id=%d is full", req.SlotID)
				return ErrSlotFull
			default:
				uc.logger.Error("CreateBooking: failed to reserve slot id=%d: %v", req.SlotID, err)
				return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
			}
		}

		// 2.2. Создаем бронирование со свежим уникальным кодом
		// При конфликте кода генерируем новый и повторяем вставку
		for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
			code, err := generateUniqueCode()
			if err != nil {
				uc.logger.Error("CreateBooking: failed to generate unique code: %v", err)
				return fmt.Errorf("%w: failed to generate unique code: %v", ErrInternal, err)
			}

			booking := &domain.Booking{
				UniqueCode:    code,
				SlotID:        req.SlotID,
				Date:          req.Date,
				GuestCount:    req.GuestCount,
				Status:        domain.StatusPending,
				CustomerName:  req.CustomerName,
				CustomerEmail: req.CustomerEmail,
				CustomerPhone: req.CustomerPhone,
				Notes:         req.Notes,
			}

			created, err := uc.bookingRepo.Create(txCtx, booking)
			if err == nil {
				result = created
				return nil
			}

			if errors.Is(err, bookingRepo.ErrCodeCollision) {
				uc.logger.Warn("CreateBooking: unique code collision on attempt %d, regenerating", attempt)
				continue
			}

			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		uc.logger.Error("CreateBooking: exhausted %d unique code attempts", maxCodeAttempts)
		return ErrCodeGeneration
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, code=%s", result.ID, result.UniqueCode)

	return &Response{
		ID:            result.ID,
		UniqueCode:    result.UniqueCode,
		SlotID:        result.SlotID,
		Date:          result.Date,
		GuestCount:    result.GuestCount,
		Status:        string(result.Status),
		CustomerName:  result.CustomerName,
		CustomerEmail: result.CustomerEmail,
		CustomerPhone: result.CustomerPhone,
		Notes:         result.Notes,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}
