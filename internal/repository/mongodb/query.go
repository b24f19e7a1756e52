package mongodb

import (
	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/repository/mongodb/converter"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ActiveFilter выбирает документы без deletedAt (null или поле отсутствует).
func ActiveFilter() bson.D {
	return bson.D{{Key: "deletedAt", Value: nil}}
}

func ActiveByID(id string) (bson.D, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, e.ErrInvalidID
	}

	return bson.D{
		{Key: "_id", Value: oid},
		{Key: "deletedAt", Value: nil},
	}, nil
}

func ListSort() bson.D {
	return bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: 1},
	}
}

// nextUpdatedAt возвращает выражение max(now, updatedAt + 1ms) для стадии $set.
func nextUpdatedAt(stamp domain.AuditStamp) bson.D {
	return bson.D{{Key: "$max", Value: bson.A{
		converter.Millis(stamp.At),
		bson.D{{Key: "$add", Value: bson.A{"$updatedAt", 1}}},
	}}}
}

// literal защищает строки от интерпретации как путей полей ("$name") в конвейере.
func literal(v any) bson.D {
	return bson.D{{Key: "$literal", Value: v}}
}

func UpdatePipeline(patch domain.ProductPatch, stamp domain.AuditStamp) mongo.Pipeline {
	set := bson.D{}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: literal(*patch.Name)})
	}
	if patch.Description != nil {
		set = append(set, bson.E{Key: "description", Value: literal(*patch.Description)})
	}
	if patch.Category != nil {
		set = append(set, bson.E{Key: "category", Value: literal(*patch.Category)})
	}
	set = append(set,
		bson.E{Key: "updatedBy", Value: literal(stamp.By)},
		bson.E{Key: "updatedAt", Value: nextUpdatedAt(stamp)},
	)

	return mongo.Pipeline{{{Key: "$set", Value: set}}}
}

// DeletePipeline вычисляет deletedAt и updatedAt из одного и того же исходного updatedAt, значения совпадают.
func DeletePipeline(stamp domain.AuditStamp) mongo.Pipeline {
	set := bson.D{
		{Key: "updatedBy", Value: literal(stamp.By)},
		{Key: "deletedBy", Value: literal(stamp.By)},
		{Key: "updatedAt", Value: nextUpdatedAt(stamp)},
		{Key: "deletedAt", Value: nextUpdatedAt(stamp)},
	}

	return mongo.Pipeline{{{Key: "$set", Value: set}}}
}
