package kvstore

import (
	"sort"

	"github.com/tu-usuario/grocery-pos/internal/domain"
	"github.com/tu-usuario/grocery-pos/internal/domain/entity"
	"github.com/tu-usuario/grocery-pos/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre el almacén de colecciones.
type UserRepo struct {
	store *Store
}

// NewUserRepository construye el adaptador sobre el almacén local.
func NewUserRepository(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

func (r *UserRepo) all() ([]entity.User, error) {
	var list []entity.User
	if err := r.store.Read(CollectionUsers, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Create agrega el usuario. Username duplicado retorna ErrDuplicate.
func (r *UserRepo) Create(user *entity.User) error {
	list, err := r.all()
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == user.ID || list[i].Username == user.Username {
			return domain.ErrDuplicate
		}
	}
	list = append(list, *user)
	return r.store.Write(CollectionUsers, list)
}

// GetByID obtiene un usuario por ID. Retorna (nil, nil) si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	list, err := r.all()
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			u := list[i]
			return &u, nil
		}
	}
	return nil, nil
}

// FindByUsername obtiene un usuario por nombre de usuario.
func (r *UserRepo) FindByUsername(username string) (*entity.User, error) {
	list, err := r.all()
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].Username == username {
			u := list[i]
			return &u, nil
		}
	}
	return nil, nil
}

// List lista usuarios ordenados por username, con paginación.
func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	list, err := r.all()
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Username < list[j].Username })
	return paginate(list, limit, offset), nil
}
