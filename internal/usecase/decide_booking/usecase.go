package decide_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
)

// UseCase use case для решения администратора по бронированию
// approved удерживает место в слоте, rejected освобождает его;
// изменение статуса и счётчика выполняются в одной транзакции
type UseCase struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	txManager   TransactionManager
	mailer      Mailer
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	mailer Mailer,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		txManager:   txManager,
		mailer:      mailer,
		logger:      logger,
	}
}

// Execute выполняет use case решения по бронированию
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("DecideBooking: booking=%d, outcome=%s", req.BookingID, req.Outcome)

	// 1. Валидируем решение
	var newStatus domain.BookingStatus
	switch req.Outcome {
	case string(domain.StatusApproved):
		newStatus = domain.StatusApproved
	case string(domain.StatusRejected):
		newStatus = domain.StatusRejected
	default:
		uc.logger.Warn("DecideBooking: invalid outcome=%q for booking=%d", req.Outcome, req.BookingID)
		return nil, ErrInvalidOutcome
	}

	var result *domain.Booking

	// 2. Переводим статус; для rejected освобождаем место в той же транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("DecideBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("DecideBooking: repository error for booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if !booking.CanBeDecided() {
			uc.logger.Warn("DecideBooking: booking id=%d already decided, status=%s", req.BookingID, booking.Status)
			return ErrAlreadyDecided
		}

		// Решение возможно только из pending; условие входит в UPDATE
		err = uc.bookingRepo.UpdateStatus(txCtx, req.BookingID,
			[]domain.BookingStatus{domain.StatusPending}, newStatus)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrIllegalTransition) {
				// Конкурентное решение успело раньше
				uc.logger.Warn("DecideBooking: booking id=%d decided concurrently", req.BookingID)
				return ErrAlreadyDecided
			}
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("DecideBooking: failed to update status for booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		// Отклоненное бронирование больше не удерживает место
		if newStatus == domain.StatusRejected {
			if err := uc.slotRepo.Release(txCtx, booking.SlotID); err != nil {
				uc.logger.Error("DecideBooking: failed to release slot id=%d: %v", booking.SlotID, err)
				return fmt.Errorf("%w: failed to release slot capacity: %v", ErrInternal, err)
			}
		}

		booking.Status = newStatus
		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("DecideBooking: booking id=%d is now %s", result.ID, result.Status)

	// 3. Уведомляем клиента (best-effort, уже вне транзакции)
	uc.notifyCustomer(result)

	return &Response{
		ID:            result.ID,
		UniqueCode:    result.UniqueCode,
		SlotID:        result.SlotID,
		Date:          result.Date,
		GuestCount:    result.GuestCount,
		Status:        string(result.Status),
		CustomerName:  result.CustomerName,
		CustomerEmail: result.CustomerEmail,
	}, nil
}

func (uc *UseCase) notifyCustomer(booking *domain.Booking) {
	var subject, body string

	switch booking.Status {
	case domain.StatusApproved:
		subject = "Ваше бронирование подтверждено"
		body = fmt.Sprintf("Бронирование %s на %s подтверждено. Ждем вас!",
			booking.UniqueCode, booking.Date.Format(domain.DateFormat))
	case domain.StatusRejected:
		subject = "Ваше бронирование отклонено"
		body = fmt.Sprintf("К сожалению, бронирование %s на %s отклонено.",
			booking.UniqueCode, booking.Date.Format(domain.DateFormat))
	default:
		return
	}

	// Доставка не влияет на результат решения
	uc.mailer.SendBestEffort(context.Background(), booking.CustomerEmail, subject, body)
}
