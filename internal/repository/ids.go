package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewID возвращает новый идентификатор товара: 24 шестнадцатеричных символа ObjectID.
// Все драйверы хранилища используют один формат, поэтому идентификаторы переносимы.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidID проверяет формат идентификатора.
func IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// NextUpdatedAt возвращает новое значение updatedAt, строго большее предыдущего.
func NextUpdatedAt(prev, now time.Time) time.Time {
	if floor := prev.Add(time.Millisecond); now.Before(floor) {
		return floor
	}

	return now
}
