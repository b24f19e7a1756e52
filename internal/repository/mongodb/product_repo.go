package mongodb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/repository"
	"github.com/DRSN-tech/catalog-service/internal/repository/mongodb/converter"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/jimlawless/whereami"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductRepo реализует репозиторий продуктов поверх коллекции MongoDB.
type ProductRepo struct {
	coll *mongo.Collection
	conv converter.ProductConverter
}

func NewProductRepo(coll *mongo.Collection, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		coll: coll,
		conv: conv,
	}
}

// EnsureIndexes создаёт индекс для выборки активных товаров по дате создания.
func (p *ProductRepo) EnsureIndexes(ctx context.Context) error {
	_, err := p.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    append(bson.D{{Key: "deletedAt", Value: 1}}, ListSort()...),
		Options: options.Index().SetName("active_created_desc"),
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (p *ProductRepo) IsValidID(id string) bool {
	return repository.IsValidID(id)
}

// List возвращает страницу активных товаров. _id растёт с каждой вставкой и задаёт порядок при равных createdAt.
func (p *ProductRepo) List(ctx context.Context, offset, limit int) ([]domain.Product, error) {
	opts := options.Find().
		SetSort(ListSort()).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := p.coll.Find(ctx, ActiveFilter(), opts)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var models []converter.ProductModel
	if err := cursor.All(ctx, &models); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}

func (p *ProductRepo) GetActive(ctx context.Context, id string) (*domain.Product, error) {
	filter, err := ActiveByID(id)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.ProductModel
	if err := p.coll.FindOne(ctx, filter).Decode(&model); err != nil {
		return nil, p.mapErr(err)
	}

	return p.conv.ToEntity(&model), nil
}

// Create вставляет товар с новым ObjectID.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	model, err := p.conv.ToModel(product)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	model.ID = primitive.NewObjectID()
	model.CreatedAt = converter.Millis(model.CreatedAt)
	model.UpdatedAt = converter.Millis(model.UpdatedAt)

	if _, err := p.coll.InsertOne(ctx, model); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// UpdateActive применяет патч одной операцией FindOneAndUpdate по активному документу.
func (p *ProductRepo) UpdateActive(ctx context.Context, id string, patch domain.ProductPatch, stamp domain.AuditStamp) (*domain.Product, error) {
	filter, err := ActiveByID(id)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.findOneAndUpdate(ctx, filter, UpdatePipeline(patch, stamp))
}

// SoftDeleteActive проставляет deletedAt и deletedBy активному документу.
func (p *ProductRepo) SoftDeleteActive(ctx context.Context, id string, stamp domain.AuditStamp) (*domain.Product, error) {
	filter, err := ActiveByID(id)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.findOneAndUpdate(ctx, filter, DeletePipeline(stamp))
}

func (p *ProductRepo) findOneAndUpdate(ctx context.Context, filter bson.D, pipeline mongo.Pipeline) (*domain.Product, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var model converter.ProductModel
	if err := p.coll.FindOneAndUpdate(ctx, filter, pipeline, opts).Decode(&model); err != nil {
		return nil, p.mapErr(err)
	}

	return p.conv.ToEntity(&model), nil
}

func (p *ProductRepo) mapErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return e.ErrNotFound
	}

	return e.Wrap(whereami.WhereAmI(), err)
}
