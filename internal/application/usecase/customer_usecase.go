package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/grocery-pos/internal/application/dto"
	"github.com/tu-usuario/grocery-pos/internal/domain"
	"github.com/tu-usuario/grocery-pos/internal/domain/entity"
	"github.com/tu-usuario/grocery-pos/internal/domain/repository"
)

// CustomerUseCase casos de uso para clientes de cuenta corriente: CRUD y
// ajustes manuales del balance (cargos y abonos).
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un cliente con balance en cero.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.CreditLimit.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Phone:       in.Phone,
		Email:       in.Email,
		Address:     in.Address,
		CreditLimit: in.CreditLimit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente por ID. Retorna (nil, nil) si no existe.
func (uc *CustomerUseCase) GetByID(id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	return toCustomerResponse(customer), nil
}

// Update actualiza los datos del cliente. El balance no se toca por aquí.
func (uc *CustomerUseCase) Update(id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	if in.Name != nil {
		customer.Name = *in.Name
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	if in.CreditLimit != nil {
		if in.CreditLimit.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		customer.CreditLimit = *in.CreditLimit
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// AdjustBalance mueve el balance del cliente: Amount positivo carga deuda,
// negativo registra un abono. Sin Force, un cargo que exceda el límite de
// crédito retorna CreditLimitExceededError y un abono que deje el balance
// negativo retorna ErrNegativeBalance; con Force ambos pasan.
func (uc *CustomerUseCase) AdjustBalance(id string, in dto.AdjustBalanceRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	newBalance := customer.CurrentBalance.Add(in.Amount).Round(2)
	if !in.Force {
		if in.Amount.IsPositive() && newBalance.GreaterThan(customer.CreditLimit) {
			return nil, &domain.CreditLimitExceededError{
				CustomerID:     customer.ID,
				CurrentBalance: customer.CurrentBalance,
				CreditLimit:    customer.CreditLimit,
				AttemptedTotal: in.Amount,
			}
		}
		if newBalance.IsNegative() {
			return nil, domain.ErrNegativeBalance
		}
	}
	if err := uc.repo.UpdateBalance(id, newBalance); err != nil {
		return nil, err
	}
	customer.CurrentBalance = newBalance
	return toCustomerResponse(customer), nil
}

// List lista clientes con paginación.
func (uc *CustomerUseCase) List(limit, offset int) (*dto.CustomerListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return toCustomerList(list, limit, offset), nil
}

// Search busca clientes por nombre, teléfono o email.
func (uc *CustomerUseCase) Search(query string) (*dto.CustomerListResponse, error) {
	list, err := uc.repo.Search(query)
	if err != nil {
		return nil, err
	}
	return toCustomerList(list, 0, 0), nil
}

// Delete elimina un cliente. Un cliente con deuda pendiente no se elimina
// sin saldar primero.
func (uc *CustomerUseCase) Delete(id string) error {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return nil
	}
	if customer.CurrentBalance.IsPositive() {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

func toCustomerList(list []*entity.Customer, limit, offset int) *dto.CustomerListResponse {
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: len(items)},
	}
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:              c.ID,
		Name:            c.Name,
		Phone:           c.Phone,
		Email:           c.Email,
		Address:         c.Address,
		CreditLimit:     c.CreditLimit,
		CurrentBalance:  c.CurrentBalance,
		AvailableCredit: c.CreditLimit.Sub(c.CurrentBalance),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
