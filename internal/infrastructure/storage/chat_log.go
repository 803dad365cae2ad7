package storage

import (
	"fmt"
	"slices"

	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/pkg/errs"
)

// Ikkala chat repository (xotira va sqlite) uchun umumiy yordamchilar.

// latest oxirgi limit ta xabar nusxasi, eski -> yangi. limit <= 0 bo'lsa hammasi.
func latest(msgs []entity.Message, limit int) []entity.Message {
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return append([]entity.Message{}, msgs...)
}

// newestFirst vaqt bo'yicha yangi -> eski, teng vaqtlarda tartib saqlanadi
func newestFirst(msgs []entity.Message) {
	slices.SortStableFunc(msgs, func(a, b entity.Message) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
}

func chatContextOf(shopperID string, history []entity.Message) (*entity.ChatContext, error) {
	if len(history) == 0 {
		return nil, fmt.Errorf("%w: no assistant history for shopper %s", errs.ErrNotFound, shopperID)
	}
	return &entity.ChatContext{
		ShopperID: shopperID,
		Messages:  history,
		LastUsed:  history[len(history)-1].Timestamp,
	}, nil
}
