package customer_cancellation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ReservationService/internal/service/otp"
)

// UseCase use case самостоятельной отмены бронирования клиентом
// Поток: Lookup (поиск по коду) -> RequestCode (код на email) -> Confirm (отмена)
// Все операции доступны анонимно и работают только с публичным кодом бронирования
type UseCase struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	otpService  OtpService
	txManager   TransactionManager
	mailer      Mailer
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	otpService OtpService,
	txManager TransactionManager,
	mailer Mailer,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		otpService:  otpService,
		txManager:   txManager,
		mailer:      mailer,
		logger:      logger,
	}
}

// Lookup ищет бронирование по публичному коду и возвращает его сводку
// Контактные данные в ответе замаскированы
func (uc *UseCase) Lookup(ctx context.Context, req *LookupRequest) (*LookupResponse, error) {
	booking, err := uc.findBooking(ctx, req.UniqueCode)
	if err != nil {
		return nil, err
	}

	slot, err := uc.slotRepo.GetByID(ctx, booking.SlotID)
	if err != nil {
		uc.logger.Error("Lookup: failed to get slot id=%d for booking=%s: %v", booking.SlotID, booking.UniqueCode, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	masked, err := otp.MaskRecipient(booking.CustomerEmail)
	if err != nil {
		uc.logger.Error("Lookup: failed to mask recipient for booking=%s: %v", booking.UniqueCode, err)
		return nil, fmt.Errorf("%w: failed to mask recipient: %v", ErrInternal, err)
	}

	return &LookupResponse{
		UniqueCode:      booking.UniqueCode,
		SlotLabel:       slot.Label.String(),
		Date:            booking.Date,
		GuestCount:      booking.GuestCount,
		Status:          string(booking.Status),
		MaskedRecipient: masked,
		Cancellable:     booking.CanBeCancelled(),
	}, nil
}

// RequestCode выдает код подтверждения отмены и отправляет его на email
// бронирования. Повторный вызов замещает предыдущий код
func (uc *UseCase) RequestCode(ctx context.Context, req *RequestCodeRequest) (*RequestCodeResponse, error) {
	booking, err := uc.findBooking(ctx, req.UniqueCode)
	if err != nil {
		return nil, err
	}

	if err := uc.checkCancellable(booking); err != nil {
		return nil, err
	}

	issued, err := uc.otpService.Issue(ctx, booking.ID, booking.CustomerEmail, domain.PurposeCustomerCancel)
	if err != nil {
		uc.logger.Error("RequestCode: failed to issue code for booking=%s: %v", booking.UniqueCode, err)
		return nil, fmt.Errorf("%w: failed to issue code: %v", ErrInternal, err)
	}

	uc.mailer.SendBestEffort(ctx, booking.CustomerEmail,
		"Код подтверждения отмены бронирования",
		fmt.Sprintf("Код подтверждения отмены бронирования %s: %s. Код действует до %s.",
			booking.UniqueCode, issued.Code, issued.ExpiresAt.Format("15:04 02.01.2006")))

	uc.logger.Info("RequestCode: code sent for booking=%s to %s", booking.UniqueCode, issued.MaskedRecipient)

	return &RequestCodeResponse{
		MaskedRecipient: issued.MaskedRecipient,
		ExpiresAt:       issued.ExpiresAt,
	}, nil
}

// Confirm проверяет код подтверждения и отменяет бронирование
// Проверка кода, отмена и освобождение места выполняются в одной транзакции
func (uc *UseCase) Confirm(ctx context.Context, req *ConfirmRequest) (*ConfirmResponse, error) {
	booking, err := uc.findBooking(ctx, req.UniqueCode)
	if err != nil {
		return nil, err
	}

	// Терминальный статус проверяется до кода: ответ "уже отменено"
	// информативнее, чем "код не подошел"
	if err := uc.checkCancellable(booking); err != nil {
		return nil, err
	}

	var result *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Проверка кода внутри транзакции: если отмена не зафиксируется,
		// consume откатится вместе с ней и код останется действующим
		if err := uc.otpService.Verify(txCtx, booking.ID, req.Code); err != nil {
			switch {
			case errors.Is(err, otp.ErrNoActiveChallenge):
				return ErrNoActiveCode
			case errors.Is(err, otp.ErrChallengeExpired):
				return ErrCodeExpired
			case errors.Is(err, otp.ErrCodeMismatch):
				return ErrCodeMismatch
			default:
				uc.logger.Error("Confirm: verification failed for booking=%s: %v", booking.UniqueCode, err)
				return fmt.Errorf("%w: verification failed: %v", ErrInternal, err)
			}
		}

		err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID,
			domain.CapacityHoldingStatuses, domain.StatusCancelled)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrIllegalTransition) {
				// Конкурентная отмена или решение успели раньше
				uc.logger.Warn("Confirm: booking=%s changed concurrently", booking.UniqueCode)
				return ErrAlreadyCancelled
			}
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("Confirm: failed to cancel booking=%s: %v", booking.UniqueCode, err)
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		// Отмененное бронирование больше не удерживает место
		if err := uc.slotRepo.Release(txCtx, booking.SlotID); err != nil {
			uc.logger.Error("Confirm: failed to release slot id=%d: %v", booking.SlotID, err)
			return fmt.Errorf("%w: failed to release slot capacity: %v", ErrInternal, err)
		}

		updated, err := uc.bookingRepo.GetByUniqueCode(txCtx, booking.UniqueCode)
		if err != nil {
			uc.logger.Error("Confirm: failed to reload booking=%s: %v", booking.UniqueCode, err)
			return fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
		}
		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("Confirm: booking=%s cancelled by customer", result.UniqueCode)

	// Использованный код больше не нужен; отмена уже зафиксирована,
	// поэтому ошибку чистки только логируем
	if err := uc.otpService.Invalidate(ctx, result.ID); err != nil {
		uc.logger.Warn("Confirm: failed to invalidate challenge for booking id=%d: %v", result.ID, err)
	}

	uc.mailer.SendBestEffort(ctx, result.CustomerEmail,
		"Бронирование отменено",
		fmt.Sprintf("Бронирование %s на %s отменено.",
			result.UniqueCode, result.Date.Format(domain.DateFormat)))

	return &ConfirmResponse{
		UniqueCode:  result.UniqueCode,
		Status:      string(result.Status),
		CancelledAt: result.CancelledAt,
	}, nil
}

// findBooking ищет бронирование по публичному коду
// Любой неуспех поиска сводится к ErrBookingNotFound
func (uc *UseCase) findBooking(ctx context.Context, code string) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByUniqueCode(ctx, code)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("findBooking: unknown code")
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("findBooking: repository error: %v", err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	return booking, nil
}

// checkCancellable возвращает ошибку для терминальных статусов
func (uc *UseCase) checkCancellable(booking *domain.Booking) error {
	switch booking.Status {
	case domain.StatusCancelled:
		return ErrAlreadyCancelled
	case domain.StatusRejected:
		return ErrNotCancellable
	default:
		return nil
	}
}
