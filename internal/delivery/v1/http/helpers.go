package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/jimlawless/whereami"
)

type ErrorResponse struct {
	Error string `json:"error" example:"product not found"`
}

type MessageResponse struct {
	Message string `json:"message" example:"OK"`
}

// ProductResponse — публичное представление товара. Поля удаления не отдаются.
type ProductResponse struct {
	ID          string    `json:"id" example:"65f1c0a1b2c3d4e5f6a7b8c9"`
	Name        string    `json:"name" example:"Desk lamp"`
	Description string    `json:"description" example:"LED lamp with adjustable arm"`
	Category    string    `json:"category" example:"Home"`
	CreatedBy   string    `json:"createdBy" example:"John Doe"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedBy   string    `json:"updatedBy" example:"John Doe"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ProductEnvelope struct {
	Data ProductResponse `json:"data"`
}

type Pagination struct {
	Page  int `json:"page" example:"1"`
	Limit int `json:"limit" example:"10"`
}

type ProductListEnvelope struct {
	Data       []ProductResponse `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

// ProductPayload — тело POST и PUT. Допустимы только эти ключи; null равнозначен отсутствию ключа.
type ProductPayload struct {
	Name        *string `json:"name,omitempty" example:"Desk lamp"`
	Description *string `json:"description,omitempty" example:"LED lamp with adjustable arm"`
	Category    *string `json:"category,omitempty" example:"Home"`
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Error: message}
}

func NewProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedBy:   p.UpdatedBy,
		UpdatedAt:   p.UpdatedAt,
	}
}

func NewProductListResponse(products []domain.Product) []ProductResponse {
	result := make([]ProductResponse, 0, len(products))
	for i := range products {
		result = append(result, NewProductResponse(&products[i]))
	}

	return result
}

// ToHTTPResponse сопоставляет ошибку со статусом и публичным сообщением.
// Для непредвиденных ошибок детали не раскрываются.
func ToHTTPResponse(err error) (int, string) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Error()
	case errors.Is(err, e.ErrInvalidPayload):
		return http.StatusBadRequest, e.ErrInvalidPayload.Error()
	case errors.Is(err, e.ErrInvalidID):
		return http.StatusBadRequest, e.ErrInvalidID.Error()
	case errors.Is(err, e.ErrInvalidPagination):
		return http.StatusBadRequest, e.ErrInvalidPagination.Error()
	case errors.Is(err, e.ErrInvalidArgument):
		return http.StatusBadRequest, e.ErrInvalidArgument.Error()
	case errors.Is(err, e.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge, e.ErrPayloadTooLarge.Error()
	case errors.Is(err, e.ErrUnauthorized):
		return http.StatusUnauthorized, e.ErrUnauthorized.Error()
	case errors.Is(err, e.ErrNotFound):
		return http.StatusNotFound, e.ErrNotFound.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	WriteSuccess(w, code, NewErrorResponse(msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// decodeProductPayload читает JSON-объект товара. Ключи сравниваются точно, с учётом
// регистра: допустимы только name, description и category. Лишние данные после объекта
// и тело больше maxBytes отклоняются.
func decodeProductPayload(w http.ResponseWriter, r *http.Request, maxBytes int64) (*ProductPayload, error) {
	body := http.MaxBytesReader(w, r.Body, maxBytes)
	defer body.Close()

	dec := json.NewDecoder(body)

	var raw map[string]json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, payloadError(err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after JSON object")
		}
		return nil, payloadError(err)
	}

	var payload ProductPayload
	fields := map[string]**string{
		"name":        &payload.Name,
		"description": &payload.Description,
		"category":    &payload.Category,
	}

	for key, value := range raw {
		dst, ok := fields[key]
		if !ok {
			return nil, e.Wrap(fmt.Sprintf("unknown field %q", key), e.ErrInvalidPayload)
		}
		if err := json.Unmarshal(value, dst); err != nil {
			return nil, payloadError(err)
		}
	}

	return &payload, nil
}

func payloadError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return e.Wrap(whereami.WhereAmI(), e.ErrPayloadTooLarge)
	}

	return e.Wrap(err.Error(), e.ErrInvalidPayload)
}

// parsePagination читает page и limit. Отсутствующие значения заменяются значениями
// по умолчанию; проверку границ выполняет сервисный слой.
func parsePagination(r *http.Request) (int, int, error) {
	page, err := parseIntQuery(r, "page", usecase.DefaultPage)
	if err != nil {
		return 0, 0, err
	}

	limit, err := parseIntQuery(r, "limit", usecase.DefaultLimit)
	if err != nil {
		return 0, 0, err
	}

	return page, limit, nil
}

func parseIntQuery(r *http.Request, key string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, e.Wrap(key, e.ErrInvalidPagination)
	}

	return v, nil
}
