// seed puebla el almacén con datos de arranque: usuarios del turno, el
// catálogo de abarrotes y la cartera de clientes de cuenta corriente.
// Solo siembra si el almacén está vacío, para no duplicar datos.
//
// Uso: go run ./cmd/seed
// Respeta STORE_DRIVER/STORE_PATH y las variables de conexión de PostgreSQL.
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/grocery-pos/internal/domain/entity"
	"github.com/tu-usuario/grocery-pos/internal/domain/repository"
	"github.com/tu-usuario/grocery-pos/internal/infrastructure/kvstore"
	"github.com/tu-usuario/grocery-pos/internal/infrastructure/postgres"
	"github.com/tu-usuario/grocery-pos/pkg/config"
	"github.com/tu-usuario/grocery-pos/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	username, password, pin, fullName, role string
}

type seedProduct struct {
	name, description, price, cost string
	stock                          int64
	category, barcode              string
}

type seedCustomer struct {
	name, phone, email, address, creditLimit, balance string
}

var users = []seedUser{
	{"Memory_owner", "owner123", "1982", "Memory Tsindi", entity.RoleOwner},
	{"Tshiamo_assistant", "assist123", "1234", "Tshiamo Sebueng", entity.RoleAssistant},
	{"Martin_cashier", "cashier123", "1975", "Martin Tsindi", entity.RoleAssistant},
}

var products = []seedProduct{
	{"Bananas", "Fresh yellow bananas", "0.59", "0.35", 75, "Produce", "400000001"},
	{"Apples", "Red delicious apples", "1.29", "0.80", 60, "Produce", "400000002"},
	{"Carrots", "Organic carrots 1lb", "0.99", "0.60", 45, "Produce", "400000003"},
	{"Potatoes", "Russet potatoes 5lb bag", "3.99", "2.50", 30, "Produce", "400000004"},
	{"Milk", "Whole milk 1 gallon", "3.49", "2.20", 38, "Dairy", "400000005"},
	{"Eggs", "Large eggs dozen", "2.99", "1.80", 45, "Dairy", "400000006"},
	{"Butter", "Salted butter 1lb", "4.49", "2.80", 30, "Dairy", "400000007"},
	{"Yogurt", "Greek yogurt 32oz", "5.99", "3.50", 22, "Dairy", "400000008"},
	{"White Bread", "Fresh white bread loaf", "2.49", "1.40", 30, "Bakery", "400000009"},
	{"Croissants", "Buttery croissants 4pk", "3.99", "2.20", 22, "Bakery", "400000010"},
	{"Chicken Breast", "Boneless skinless 1lb", "5.99", "3.80", 22, "Meat", "400000011"},
	{"Ground Beef", "80/20 ground beef 1lb", "6.49", "4.00", 18, "Meat", "400000012"},
	{"Bacon", "Smoked bacon 12oz", "5.49", "3.20", 15, "Meat", "400000013"},
	{"Orange Juice", "100% pure OJ 64oz", "4.99", "3.00", 26, "Beverages", "400000014"},
	{"Coffee", "Ground coffee 12oz", "7.99", "4.50", 20, "Beverages", "400000015"},
	{"Soda", "Cola 2L bottle", "2.49", "1.20", 45, "Beverages", "400000016"},
	{"Bottled Water", "Purified water 24pk", "4.99", "2.80", 38, "Beverages", "400000017"},
	{"Chips", "Potato chips 10oz", "3.99", "2.00", 38, "Snacks", "400000018"},
	{"Cookies", "Chocolate chip cookies", "2.99", "1.50", 30, "Snacks", "400000019"},
	{"Pasta", "Spaghetti 1lb", "1.49", "0.80", 60, "Pantry", "400000020"},
	{"Rice", "Long grain rice 2lb", "2.99", "1.60", 45, "Pantry", "400000021"},
	{"Canned Soup", "Chicken noodle soup", "1.79", "0.90", 52, "Pantry", "400000022"},
	{"Cereal", "Corn flakes 18oz", "3.49", "1.80", 30, "Pantry", "400000023"},
}

var customers = []seedCustomer{
	{"Robert Wilson", "555-0101", "robert.wilson@email.com", "123 Main St", "500.00", "125.50"},
	{"Lisa Chen", "555-0102", "lisa.chen@email.com", "456 Oak Ave", "300.00", "45.75"},
	{"Mike Johnson", "555-0103", "mike.johnson@email.com", "789 Pine Rd", "1000.00", "320.25"},
	{"Sarah Davis", "555-0104", "sarah.davis@email.com", "321 Elm St", "200.00", "89.99"},
	{"David Martinez", "555-0105", "david.martinez@email.com", "654 Maple Dr", "750.00", "210.00"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	var (
		userRepo     repository.UserRepository
		productRepo  repository.ProductRepository
		customerRepo repository.CustomerRepository
	)
	switch cfg.Store.Driver {
	case config.StorePostgres:
		pool, err := postgres.NewPool(context.Background(), cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		userRepo = postgres.NewUserRepository(pool)
		productRepo = postgres.NewProductRepository(pool)
		customerRepo = postgres.NewCustomerRepository(pool)
	default:
		store, err := kvstore.Open(cfg.Store.Path)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Store.Path).Msg("abrir almacén local")
		}
		userRepo = kvstore.NewUserRepository(store)
		productRepo = kvstore.NewProductRepository(store)
		customerRepo = kvstore.NewCustomerRepository(store)
	}

	existingUsers, err := userRepo.List(1, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("leer usuarios")
	}
	existingProducts, err := productRepo.List(1, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("leer productos")
	}
	if len(existingUsers) > 0 || len(existingProducts) > 0 {
		log.Info().Msg("el almacén ya tiene datos, no se siembra nada")
		return
	}

	now := time.Now()
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hashear password")
		}
		pinHash, err := bcrypt.GenerateFromPassword([]byte(u.pin), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hashear pin")
		}
		user := &entity.User{
			ID:           uuid.New().String(),
			Username:     u.username,
			PasswordHash: string(hash),
			PIN:          string(pinHash),
			FullName:     u.fullName,
			Role:         u.role,
			Status:       "active",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(user); err != nil {
			log.Fatal().Err(err).Str("username", u.username).Msg("crear usuario")
		}
	}
	log.Info().Int("count", len(users)).Msg("usuarios sembrados")

	for _, p := range products {
		product := &entity.Product{
			ID:          uuid.New().String(),
			Name:        p.name,
			Description: p.description,
			Price:       decimal.RequireFromString(p.price),
			Cost:        decimal.RequireFromString(p.cost),
			Stock:       p.stock,
			Category:    p.category,
			Barcode:     p.barcode,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := productRepo.Create(product); err != nil {
			log.Fatal().Err(err).Str("name", p.name).Msg("crear producto")
		}
	}
	log.Info().Int("count", len(products)).Msg("productos sembrados")

	for _, c := range customers {
		customer := &entity.Customer{
			ID:             uuid.New().String(),
			Name:           c.name,
			Phone:          c.phone,
			Email:          c.email,
			Address:        c.address,
			CreditLimit:    decimal.RequireFromString(c.creditLimit),
			CurrentBalance: decimal.RequireFromString(c.balance),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := customerRepo.Create(customer); err != nil {
			log.Fatal().Err(err).Str("name", c.name).Msg("crear cliente")
		}
	}
	log.Info().Int("count", len(customers)).Msg("clientes sembrados")
}
