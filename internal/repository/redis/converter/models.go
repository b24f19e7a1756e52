package converter

// ProductRedisModel — JSON-представление товара в Redis. Время хранится в миллисекундах Unix,
// чтобы Lua-скрипты могли сравнивать его как число.
type ProductRedisModel struct {
	ID          string  `json:"id"`
	Seq         int64   `json:"seq"`
	Member      string  `json:"member"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	CreatedBy   string  `json:"createdBy"`
	CreatedAt   int64   `json:"createdAt"`
	UpdatedBy   string  `json:"updatedBy"`
	UpdatedAt   int64   `json:"updatedAt"`
	DeletedAt   *int64  `json:"deletedAt,omitempty"`
	DeletedBy   *string `json:"deletedBy,omitempty"`
}

// PatchRedisModel — переданные поля обновления; отсутствующие не сериализуются.
type PatchRedisModel struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
}
