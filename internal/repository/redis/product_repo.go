package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/DRSN-tech/catalog-service/internal/cfg"
	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/repository"
	"github.com/DRSN-tech/catalog-service/internal/repository/redis/converter"
	"github.com/DRSN-tech/catalog-service/pkg/clients"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

// updateActiveScript изменяет активный товар и возвращает новую запись.
// Если записи нет или она удалена, возвращает nil.
// KEYS[1]: ключ товара, KEYS[2]: sorted set активных товаров.
// ARGV: патч (JSON), автор, время в мс, режим ("update" | "delete").
var updateActiveScript = r.NewScript(`
local raw = redis.call('GET', KEYS[1])
if not raw then
	return false
end

local doc = cjson.decode(raw)
if doc.deletedAt ~= nil and doc.deletedAt ~= cjson.null then
	return false
end

local at = tonumber(ARGV[3])
local floor = doc.updatedAt + 1
if at < floor then
	at = floor
end

if ARGV[4] == 'delete' then
	doc.deletedAt = at
	doc.deletedBy = ARGV[2]
	redis.call('ZREM', KEYS[2], doc.member)
else
	for k, v in pairs(cjson.decode(ARGV[1])) do
		doc[k] = v
	end
end

doc.updatedBy = ARGV[2]
doc.updatedAt = at

local out = cjson.encode(doc)
redis.call('SET', KEYS[1], out)
return out
`)

const (
	modeUpdate = "update"
	modeDelete = "delete"
)

// ProductRepo хранит товары в Redis: JSON-запись на товар и sorted set активных товаров
// со score = createdAt в миллисекундах.
type ProductRepo struct {
	client *clients.RedisClient
	conv   converter.ProductConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewProductRepo(client *clients.RedisClient, conv converter.ProductConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *ProductRepo {
	return &ProductRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

func (p *ProductRepo) IsValidID(id string) bool {
	return repository.IsValidID(id)
}

// List читает страницу идентификаторов из sorted set и загружает записи одним MGET.
func (p *ProductRepo) List(ctx context.Context, offset, limit int) ([]domain.Product, error) {
	start := int64(offset)
	stop := int64(-1)
	if int64(limit) <= math.MaxInt64-start {
		stop = start + int64(limit) - 1
	}

	members, err := p.client.Client.ZRevRange(ctx, p.activeKey(), start, stop).Result()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if len(members) == 0 {
		return []domain.Product{}, nil
	}

	keys := make([]string, 0, len(members))
	for _, member := range members {
		id, err := idFromMember(member)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		keys = append(keys, p.productKey(id))
	}

	values, err := p.client.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	result := make([]domain.Product, 0, len(values))
	for i, val := range values {
		data, err := redisValueToBytes(val, keys[i])
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		if data == nil {
			p.logger.Warnf("active index points to missing product: %s", keys[i])
			continue
		}

		model, err := unmarshalProduct(data)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		product := p.conv.ToEntity(model)
		if !product.IsActive() {
			continue
		}
		result = append(result, *product)
	}

	return result, nil
}

func (p *ProductRepo) GetActive(ctx context.Context, id string) (*domain.Product, error) {
	data, err := p.client.Client.Get(ctx, p.productKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, e.ErrNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model, err := unmarshalProduct(data)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	product := p.conv.ToEntity(model)
	if !product.IsActive() {
		return nil, e.ErrNotFound
	}

	return product, nil
}

// Create назначает идентификатор и порядковый номер, затем атомарно (MULTI/EXEC)
// записывает товар и добавляет его в индекс активных.
func (p *ProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	seq, err := p.client.Client.Incr(ctx, p.seqKey()).Result()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	created := *product
	created.ID = repository.NewID()
	model := p.conv.ToRedisModel(&created, seq)

	data, err := json.Marshal(model)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	_, err = p.client.Client.TxPipelined(ctx, func(pipe r.Pipeliner) error {
		pipe.Set(ctx, p.productKey(created.ID), data, 0)
		pipe.ZAdd(ctx, p.activeKey(), r.Z{Score: float64(model.CreatedAt), Member: model.Member})
		return nil
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

func (p *ProductRepo) UpdateActive(ctx context.Context, id string, patch domain.ProductPatch, stamp domain.AuditStamp) (*domain.Product, error) {
	data, err := json.Marshal(p.conv.ToPatchModel(patch))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.runUpdate(ctx, id, string(data), stamp, modeUpdate)
}

func (p *ProductRepo) SoftDeleteActive(ctx context.Context, id string, stamp domain.AuditStamp) (*domain.Product, error) {
	return p.runUpdate(ctx, id, "{}", stamp, modeDelete)
}

func (p *ProductRepo) runUpdate(ctx context.Context, id, patch string, stamp domain.AuditStamp, mode string) (*domain.Product, error) {
	keys := []string{p.productKey(id), p.activeKey()}

	raw, err := updateActiveScript.Run(ctx, p.client.Client, keys, patch, stamp.By, stamp.At.UnixMilli(), mode).Text()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, e.ErrNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model, err := unmarshalProduct([]byte(raw))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// unmarshalProduct десериализует JSON-запись товара.
func unmarshalProduct(data []byte) (*converter.ProductRedisModel, error) {
	var model converter.ProductRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, err
	}

	return &model, nil
}

func (p *ProductRepo) productKey(id string) string {
	return fmt.Sprintf("%s:product:%s", p.cfg.KeyPrefix, id)
}

func (p *ProductRepo) activeKey() string {
	return p.cfg.KeyPrefix + ":products:active"
}

func (p *ProductRepo) seqKey() string {
	return p.cfg.KeyPrefix + ":products:seq"
}

// idFromMember извлекает идентификатор из элемента sorted set ("<seq>:<id>").
func idFromMember(member string) (string, error) {
	_, id, ok := strings.Cut(member, ":")
	if !ok || id == "" {
		return "", fmt.Errorf("malformed active index member: %q", member)
	}

	return id, nil
}

// redisValueToBytes конвертирует значение из Redis в []byte.
// Поддерживает string и []byte, возвращает ошибку для неизвестных типов.
func redisValueToBytes(val interface{}, key string) ([]byte, error) {
	switch v := val.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected Redis value type for key %s: %T", key, val)
	}
}
