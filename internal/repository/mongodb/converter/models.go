package converter

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductModel представляет документ коллекции products в MongoDB.
// deletedAt хранится как null у активных товаров, поэтому поле без omitempty.
type ProductModel struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Category    string             `bson:"category"`
	CreatedBy   string             `bson:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedBy   string             `bson:"updatedBy"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
	DeletedAt   *time.Time         `bson:"deletedAt"`
	DeletedBy   *string            `bson:"deletedBy"`
}
