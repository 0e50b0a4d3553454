package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	challengeRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/challenge"
)

// Количество вариантов шестизначного кода (000000-999999)
var codeSpace = big.NewInt(1_000_000)

// Service сервис одноразовых кодов подтверждения отмены
// Инварианты:
//   - на одно бронирование действует не более одного кода; выдача нового
//     (включая повторную отправку) замещает предыдущий
//   - код одноразовый: успешная проверка помечает его использованным
//   - истечение проверяется в момент верификации по expires_at
type Service struct {
	challengeRepo ChallengeRepository
	ttl           time.Duration
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса кодов
func NewService(challengeRepo ChallengeRepository, ttl time.Duration, logger Logger) *Service {
	if ttl <= 0 {
		ttl = domain.DefaultOtpTTL
	}
	return &Service{
		challengeRepo: challengeRepo,
		ttl:           ttl,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Issue выдает новый код для бронирования, замещая предыдущий (если был)
func (s *Service) Issue(ctx context.Context, bookingID int64, recipientEmail string, purpose domain.ChallengePurpose) (*IssueResult, error) {
	masked, err := MaskRecipient(recipientEmail)
	if err != nil {
		s.logger.Warn("Issue: invalid recipient for booking id=%d", bookingID)
		return nil, err
	}

	code, err := generateCode()
	if err != nil {
		s.logger.Error("Issue: failed to generate code for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Issue - generate code: %v", ErrInternal, err)
	}

	expiresAt := s.timeProvider.Now().Add(s.ttl)

	ch := &domain.OtpChallenge{
		BookingID:       bookingID,
		Purpose:         purpose,
		Code:            code,
		MaskedRecipient: masked,
		ExpiresAt:       expiresAt,
	}

	if _, err := s.challengeRepo.Replace(ctx, ch); err != nil {
		s.logger.Error("Issue: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Issue - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Issue: challenge issued for booking id=%d, purpose=%s, recipient=%s, expires=%s",
		bookingID, purpose, masked, expiresAt.Format(time.RFC3339))

	return &IssueResult{
		Code:            code,
		MaskedRecipient: masked,
		ExpiresAt:       expiresAt,
	}, nil
}

// Resend выдает свежий код с новым окном действия
// Предыдущий код при этом перестает действовать
func (s *Service) Resend(ctx context.Context, bookingID int64, recipientEmail string, purpose domain.ChallengePurpose) (*IssueResult, error) {
	return s.Issue(ctx, bookingID, recipientEmail, purpose)
}

// Verify проверяет код и помечает его использованным
// Сравнение строковое: ведущие нули значимы
func (s *Service) Verify(ctx context.Context, bookingID int64, submittedCode string) error {
	ch, err := s.challengeRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, challengeRepo.ErrChallengeNotFound) {
			s.logger.Warn("Verify: no challenge for booking id=%d", bookingID)
			return ErrNoActiveChallenge
		}
		s.logger.Error("Verify: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Verify - repository error: %v", ErrInternal, err)
	}

	if ch.Consumed {
		s.logger.Warn("Verify: challenge already consumed for booking id=%d", bookingID)
		return ErrNoActiveChallenge
	}

	if ch.IsExpired(s.timeProvider.Now()) {
		s.logger.Warn("Verify: challenge expired for booking id=%d", bookingID)
		return ErrChallengeExpired
	}

	if ch.Code != submittedCode {
		s.logger.Warn("Verify: code mismatch for booking id=%d", bookingID)
		return ErrCodeMismatch
	}

	if err := s.challengeRepo.Consume(ctx, ch.ID); err != nil {
		if errors.Is(err, challengeRepo.ErrAlreadyConsumed) {
			// Конкурентная проверка успела раньше
			s.logger.Warn("Verify: challenge consumed concurrently for booking id=%d", bookingID)
			return ErrNoActiveChallenge
		}
		s.logger.Error("Verify: failed to consume challenge for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Verify - consume challenge: %v", ErrInternal, err)
	}

	s.logger.Info("Verify: challenge verified and consumed for booking id=%d", bookingID)
	return nil
}

// Invalidate удаляет код бронирования
// Вызывается после отмены: использованный код больше не нужен
func (s *Service) Invalidate(ctx context.Context, bookingID int64) error {
	if err := s.challengeRepo.DeleteByBookingID(ctx, bookingID); err != nil {
		s.logger.Error("Invalidate: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Invalidate - repository error: %v", ErrInternal, err)
	}
	return nil
}

// PurgeExpired удаляет истекшие коды
// Запускается фоновой чисткой, возвращает число удаленных строк
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	deleted, err := s.challengeRepo.DeleteExpired(ctx, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("PurgeExpired: repository error: %v", err)
		return 0, fmt.Errorf("%w: PurgeExpired - repository error: %v", ErrInternal, err)
	}

	if deleted > 0 {
		s.logger.Info("PurgeExpired: removed %d expired challenges", deleted)
	}
	return deleted, nil
}

// generateCode генерирует шестизначный код с сохранением ведущих нулей
// Равномерность распределения обеспечивает crypto/rand
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
