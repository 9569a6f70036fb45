package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/grocery-pos/internal/application/dto"
	"github.com/tu-usuario/grocery-pos/internal/domain"
	"github.com/tu-usuario/grocery-pos/internal/domain/entity"
	"github.com/tu-usuario/grocery-pos/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos del catálogo.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Price.IsNegative() || in.Cost.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Barcode != "" {
		existing, err := uc.repo.GetByBarcode(in.Barcode)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Cost:        in.Cost,
		Stock:       in.Stock,
		Category:    in.Category,
		Barcode:     in.Barcode,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. Retorna (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// GetByBarcode obtiene un producto por código de barras (lector del POS).
func (uc *ProductUseCase) GetByBarcode(barcode string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar Stock (va por AdjustStock).
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Cost != nil {
		if in.Cost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Cost = *in.Cost
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// AdjustStock fija el stock del producto en el valor indicado. Usa la
// escritura condicional del repositorio: si el stock cambió entre la lectura
// y la escritura retorna ErrConflict y el cliente debe reintentar.
func (uc *ProductUseCase) AdjustStock(id string, in dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	if in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if err := uc.repo.UpdateStock(id, product.Stock, in.Stock); err != nil {
		return nil, err
	}
	product.Stock = in.Stock
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return toProductList(list, limit, offset), nil
}

// Search busca productos por nombre, descripción o código de barras.
func (uc *ProductUseCase) Search(query string) (*dto.ProductListResponse, error) {
	list, err := uc.repo.Search(query)
	if err != nil {
		return nil, err
	}
	return toProductList(list, 0, 0), nil
}

// ListLowStock productos con stock en o bajo el umbral.
func (uc *ProductUseCase) ListLowStock(threshold int64) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListLowStock(threshold)
	if err != nil {
		return nil, err
	}
	return toProductList(list, 0, 0), nil
}

// Delete elimina un producto por ID. Las ventas históricas no se tocan:
// guardan snapshots de los renglones, no referencias al catálogo.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toProductList(list []*entity.Product, limit, offset int) *dto.ProductListResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(items)},
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Cost:        p.Cost,
		Stock:       p.Stock,
		Category:    p.Category,
		Barcode:     p.Barcode,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
