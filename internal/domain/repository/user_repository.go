package repository

import "github.com/tu-usuario/grocery-pos/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (operadores).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByUsername(username string) (*entity.User, error)
	List(limit, offset int) ([]*entity.User, error)
}
