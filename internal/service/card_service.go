package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopcore/shopcore/internal/domain"
	"github.com/shopcore/shopcore/internal/dto"
	"github.com/shopcore/shopcore/internal/repository"
	"github.com/shopcore/shopcore/internal/utils"
)

type cardService struct {
	repos     *repository.Repositories
	encryptor *utils.Encryptor
	luhnCheck bool
}

// NewCardService creates the stored payment card service.
func NewCardService(repos *repository.Repositories, encryptor *utils.Encryptor, luhnCheck bool) CardService {
	return &cardService{
		repos:     repos,
		encryptor: encryptor,
		luhnCheck: luhnCheck,
	}
}

// AddCard validates and stores a payment card. The number is persisted
// only as authenticated ciphertext bound to the owning user; the CVV is
// checked and discarded.
func (s *cardService) AddCard(ctx context.Context, userID string, req *dto.CardRequest) (*dto.CardResponse, error) {
	number := strings.ReplaceAll(strings.TrimSpace(req.CardNumber), " ", "")
	if !utils.ValidateCardNumber(number, s.luhnCheck) {
		return nil, domain.Invalid("invalid card number")
	}

	if !utils.ValidateCVV(req.CVV) {
		return nil, domain.Invalid("invalid cvv")
	}

	holder := strings.TrimSpace(req.CardholderName)
	if holder == "" {
		return nil, domain.MissingField("cardholder_name")
	}

	if req.ExpiryMonth == nil {
		return nil, domain.MissingField("expiry_month")
	}
	if req.ExpiryYear == nil {
		return nil, domain.MissingField("expiry_year")
	}
	if !utils.ValidateExpiry(*req.ExpiryMonth, *req.ExpiryYear, time.Now().UTC()) {
		return nil, domain.Invalid("card is expired or expiry is malformed")
	}

	ciphertext, err := s.encryptor.Encrypt([]byte(number), []byte(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt card number: %w", err)
	}

	card := &domain.PaymentCard{
		UserID:              userID,
		EncryptedCardNumber: ciphertext,
		LastFour:            utils.LastFour(number),
		CardholderName:      holder,
		ExpiryMonth:         *req.ExpiryMonth,
		ExpiryYear:          *req.ExpiryYear,
	}

	if err := s.repos.Cards.Create(ctx, card); err != nil {
		return nil, err
	}

	return &dto.CardResponse{CardID: card.ID, LastFour: card.LastFour}, nil
}

// ListCards returns the caller's stored cards in masked form. The
// ciphertext never leaves the service.
func (s *cardService) ListCards(ctx context.Context, userID string) (*dto.CardListResponse, error) {
	cards, err := s.repos.Cards.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CardListItem, 0, len(cards))
	for _, card := range cards {
		items = append(items, dto.CardListItem{
			CardID:         card.ID,
			LastFour:       card.LastFour,
			CardholderName: card.CardholderName,
			ExpiryMonth:    card.ExpiryMonth,
			ExpiryYear:     card.ExpiryYear,
		})
	}

	return &dto.CardListResponse{Cards: items}, nil
}
