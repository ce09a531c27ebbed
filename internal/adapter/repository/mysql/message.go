package mysql

import (
	"context"

	messageDomain "crediasesor-backoffice/internal/domain/message"

	"gorm.io/gorm"
)

type MessageRepository struct{ db *gorm.DB }

func NewMessageRepository(db *gorm.DB) *MessageRepository { return &MessageRepository{db: db} }

func (r *MessageRepository) Create(ctx context.Context, m *messageDomain.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MessageRepository) Conversation(ctx context.Context, a, b uint64) ([]messageDomain.Message, error) {
	out := []messageDomain.Message{}
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("timestamp ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *MessageRepository) MarkRead(ctx context.Context, senderID, receiverID uint64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&messageDomain.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", senderID, receiverID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

type unreadRow struct {
	SenderID uint64
	Unread   int64
}

func (r *MessageRepository) UnreadCounts(ctx context.Context, receiverID uint64) (map[uint64]int64, error) {
	var rows []unreadRow
	err := r.db.WithContext(ctx).
		Model(&messageDomain.Message{}).
		Select("sender_id, COUNT(*) AS unread").
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Group("sender_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint64]int64, len(rows))
	for _, row := range rows {
		out[row.SenderID] = row.Unread
	}
	return out, nil
}
