package http

import (
	"net/http"

	"github.com/DRSN-tech/catalog-service/internal/domain"
	"github.com/DRSN-tech/catalog-service/internal/identity"
	"github.com/DRSN-tech/catalog-service/internal/usecase"
	"github.com/DRSN-tech/catalog-service/pkg/e"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
	maxBodyBytes   int64
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger, maxBodyBytes int64) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger, maxBodyBytes: maxBodyBytes}
}

// listProducts
//
//	@Summary		Список товаров
//	@Description	Возвращает страницу активных товаров, новые первыми
//	@Tags			products
//	@Produce		json
//	@Param			page	query		int					false	"Номер страницы (с 1)"		default(1)
//	@Param			limit	query		int					false	"Размер страницы (от 1)"	default(10)
//	@Success		200		{object}	ProductListEnvelope
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	page, limit, err := parsePagination(r)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	products, err := p.productUsecase.ListProducts(r.Context(), usecase.NewListProductsReq(page, limit))
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, ProductListEnvelope{
		Data:       NewProductListResponse(products),
		Pagination: Pagination{Page: page, Limit: limit},
	})
}

// getProduct
//
//	@Summary		Получение товара
//	@Tags			products
//	@Produce		json
//	@Param			id	path		string	true	"Идентификатор товара"
//	@Success		200	{object}	ProductEnvelope
//	@Failure		400	{object}	ErrorResponse	"Некорректный идентификатор"
//	@Failure		404	{object}	ErrorResponse	"Товар не найден или удалён"
//	@Router			/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := p.productUsecase.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, ProductEnvelope{Data: NewProductResponse(product)})
}

// createProduct
//
//	@Summary		Создание товара
//	@Description	Создаёт товар от имени текущего пользователя
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			product	body		ProductPayload	true	"Поля товара"
//	@Success		201		{object}	ProductEnvelope
//	@Failure		400		{object}	ErrorResponse	"Ошибка валидации"
//	@Router			/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	payload, err := decodeProductPayload(w, r, p.maxBodyBytes)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	req := usecase.NewCreateProductReq(deref(payload.Name), deref(payload.Description), deref(payload.Category))
	product, err := p.productUsecase.CreateProduct(r.Context(), req, actor)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	p.logger.Infof("product created: %s by %s", product.ID, product.CreatedBy)
	WriteSuccess(w, http.StatusCreated, ProductEnvelope{Data: NewProductResponse(product)})
}

// updateProduct
//
//	@Summary		Обновление товара
//	@Description	Изменяет только переданные поля активного товара
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Идентификатор товара"
//	@Param			product	body		ProductPayload	true	"Изменяемые поля"
//	@Success		200		{object}	ProductEnvelope
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/products/{id} [put]
func (p *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	payload, err := decodeProductPayload(w, r, p.maxBodyBytes)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	req := usecase.NewUpdateProductReq(chi.URLParam(r, "id"), payload.Name, payload.Description, payload.Category)
	product, err := p.productUsecase.UpdateProduct(r.Context(), req, actor)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusOK, ProductEnvelope{Data: NewProductResponse(product)})
}

// deleteProduct
//
//	@Summary		Удаление товара
//	@Description	Помечает товар удалённым. Повторное удаление возвращает 404
//	@Tags			products
//	@Param			id	path	string	true	"Идентификатор товара"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/products/{id} [delete]
func (p *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	product, err := p.productUsecase.DeleteProduct(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		p.writeError(w, r, err)
		return
	}

	p.logger.Infof("product deleted: %s by %s", product.ID, product.UpdatedBy)
	w.WriteHeader(http.StatusNoContent)
}

// health
//
//	@Summary	Проверка доступности
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	MessageResponse
//	@Router		/health [get]
func health(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, http.StatusOK, MessageResponse{Message: "OK"})
}

// writeError логирует ошибку и отвечает клиенту. Клиентские ошибки пишутся как warn,
// непредвиденные пишутся как error с полным текстом.
func (p *ProductHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, _ := ToHTTPResponse(err)
	if code >= http.StatusInternalServerError {
		p.logger.Errorf(err, "%s %s failed", r.Method, r.URL.Path)
	} else {
		p.logger.Warnf("%d %s %s: %s", code, r.Method, r.URL.Path, err.Error())
	}

	WriteError(w, err)
}

func actorFromRequest(r *http.Request) (domain.Actor, error) {
	actor, ok := identity.ActorFromCtx(r.Context())
	if !ok {
		return domain.Actor{}, e.Wrap("actor missing in request context", e.ErrUnauthorized)
	}

	return actor, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
