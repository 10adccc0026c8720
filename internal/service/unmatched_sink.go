package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"printpay/internal/models"
	"printpay/internal/repository"
	"printpay/pkg/idgen"
)

const fallbackUnmatchedPrefix = "UNM-"

// UnmatchedSink parks payloads that could not be tied to an order and user.
type UnmatchedSink struct {
	repo   *repository.UnmatchedPaymentRepository
	ids    *idgen.Generator
	logger *zap.Logger
	now    func() time.Time
}

func NewUnmatchedSink(repo *repository.UnmatchedPaymentRepository, ids *idgen.Generator, logger *zap.Logger) *UnmatchedSink {
	return &UnmatchedSink{repo: repo, ids: ids, logger: logger, now: time.Now}
}

// Stash stores data with a note explaining why it was not matched. orderID is
// set when an order was found but could not be used. It returns the stored id,
// or "" when the write failed; it never returns an error.
func (s *UnmatchedSink) Stash(ctx context.Context, data models.PaymentData, note, orderID string) string {
	id := data.TransactionID
	if id == "" {
		id = data.BillCode
	}
	if id == "" {
		id = s.ids.Next(fallbackUnmatchedPrefix)
	}
	u := &models.UnmatchedPayment{
		ID:         id,
		Data:       data,
		Note:       note,
		OrderID:    orderID,
		ReceivedAt: s.now(),
	}
	if err := s.repo.Save(ctx, u); err != nil {
		s.logger.Error("unmatched payment not stored",
			zap.String("id", id), zap.String("billcode", data.BillCode), zap.Error(err))
		return ""
	}
	s.logger.Info("unmatched payment stored",
		zap.String("id", id), zap.String("billcode", data.BillCode), zap.String("note", note))
	return id
}
