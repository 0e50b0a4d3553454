package admin_cancellation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ReservationService/internal/service/otp"
)

// UseCase use case отмены бронирования администратором
// Код подтверждения отправляется клиенту: администратор подтверждает
// отмену кодом, который клиент назвал (например, по телефону)
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

// RequestCode выдает код подтверждения отмены и отправляет его клиенту
// Повторный вызов замещает предыдущий код
func (uc *UseCase) RequestCode(ctx context.Context, req *RequestCodeRequest) (*RequestCodeResponse, error) {
	booking, err := uc.findBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	if err := uc.checkCancellable(booking); err != nil {
		return nil, err
	}

	issued, err := uc.otpService.Issue(ctx, booking.ID, booking.CustomerEmail, domain.PurposeAdminCancel)
	if err != nil {
		uc.logger.Error("RequestCode: failed to issue code for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to issue code: %v", ErrInternal, err)
	}

	uc.mailer.SendBestEffort(ctx, booking.CustomerEmail,
		"Код подтверждения отмены бронирования",
		fmt.Sprintf("Ресторан запросил отмену бронирования %s. Код подтверждения: %s. Код действует до %s.",
			booking.UniqueCode, issued.Code, issued.ExpiresAt.Format("15:04 02.01.2006")))

	uc.logger.Info("RequestCode: code sent for booking id=%d to %s", booking.ID, issued.MaskedRecipient)

	return &RequestCodeResponse{
		MaskedRecipient: issued.MaskedRecipient,
		ExpiresAt:       issued.ExpiresAt,
	}, nil
}

// Confirm проверяет код подтверждения и отменяет бронирование
// Проверка кода, отмена и освобождение места выполняются в одной транзакции
func (uc *UseCase) Confirm(ctx context.Context, req *ConfirmRequest) (*ConfirmResponse, error) {
	booking, err := uc.findBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

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
				uc.logger.Error("Confirm: verification failed for booking id=%d: %v", booking.ID, err)
				return fmt.Errorf("%w: verification failed: %v", ErrInternal, err)
			}
		}

		err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID,
			domain.CapacityHoldingStatuses, domain.StatusCancelled)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrIllegalTransition) {
				uc.logger.Warn("Confirm: booking id=%d changed concurrently", booking.ID)
				return ErrAlreadyCancelled
			}
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("Confirm: failed to cancel booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		if err := uc.slotRepo.Release(txCtx, booking.SlotID); err != nil {
			uc.logger.Error("Confirm: failed to release slot id=%d: %v", booking.SlotID, err)
			return fmt.Errorf("%w: failed to release slot capacity: %v", ErrInternal, err)
		}

		updated, err := uc.bookingRepo.GetByID(txCtx, booking.ID)
		if err != nil {
			uc.logger.Error("Confirm: failed to reload booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
		}
		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("Confirm: booking id=%d cancelled by admin", result.ID)

	// Использованный код больше не нужен; отмена уже зафиксирована,
	// поэтому ошибку чистки только логируем
	if err := uc.otpService.Invalidate(ctx, result.ID); err != nil {
		uc.logger.Warn("Confirm: failed to invalidate challenge for booking id=%d: %v", result.ID, err)
	}

	uc.mailer.SendBestEffort(ctx, result.CustomerEmail,
		"Бронирование отменено",
		fmt.Sprintf("Бронирование %s на %s отменено рестораном.",
			result.UniqueCode, result.Date.Format(domain.DateFormat)))

	return &ConfirmResponse{
		ID:          result.ID,
		UniqueCode:  result.UniqueCode,
		Status:      string(result.Status),
		CancelledAt: result.CancelledAt,
	}, nil
}

func (uc *UseCase) findBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("findBooking: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("findBooking: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	return booking, nil
}

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
