package kvstore_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/grocery-pos/internal/domain"
	"github.com/tu-usuario/grocery-pos/internal/domain/entity"
	"github.com/tu-usuario/grocery-pos/internal/domain/repository"
	"github.com/tu-usuario/grocery-pos/internal/infrastructure/kvstore"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedProduct(t *testing.T, repo *kvstore.ProductRepo, id, name, price string, stock int64) {
	t.Helper()
	now := time.Now()
	require.NoError(t, repo.Create(&entity.Product{
		ID: id, Name: name, Price: dec(price), Stock: stock,
		CreatedAt: now, UpdatedAt: now,
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Store — persistencia a disco
// ──────────────────────────────────────────────────────────────────────────────

// Lo escrito sobrevive a reabrir el almacén desde el mismo archivo.
func TestStore_SobreviveReapertura(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pos_store.json")

	store, err := kvstore.Open(path)
	require.NoError(t, err)
	repo := kvstore.NewProductRepository(store)
	seedProduct(t, repo, "p1", "Bananas", "0.59", 50)

	reopened, err := kvstore.Open(path)
	require.NoError(t, err)
	repo2 := kvstore.NewProductRepository(reopened)

	p, err := repo2.GetByID("p1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Bananas", p.Name)
	assert.True(t, p.Price.Equal(dec("0.59")), "el precio decimal debe sobrevivir el round-trip JSON")
	assert.Equal(t, int64(50), p.Stock)
}

// Colección ausente se comporta como lista vacía, no como error.
func TestStore_ColeccionAusenteEsVacia(t *testing.T) {
	store, err := kvstore.Open("")
	require.NoError(t, err)
	repo := kvstore.NewProductRepository(store)

	list, err := repo.List(0, 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	p, err := repo.GetByID("no-existe")
	require.NoError(t, err)
	assert.Nil(t, p, "ausente es (nil, nil), no un error")
}

// ──────────────────────────────────────────────────────────────────────────────
// ProductRepo — escritura condicional de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestProductRepo_UpdateStock_Condicional(t *testing.T) {
	store, _ := kvstore.Open("")
	repo := kvstore.NewProductRepository(store)
	seedProduct(t, repo, "p1", "Bananas", "0.59", 10)

	// expected correcto: escribe
	require.NoError(t, repo.UpdateStock("p1", 10, 7))
	p, _ := repo.GetByID("p1")
	assert.Equal(t, int64(7), p.Stock)

	// expected desactualizado: conflicto, sin escribir
	err := repo.UpdateStock("p1", 10, 5)
	assert.ErrorIs(t, err, domain.ErrConflict)
	p, _ = repo.GetByID("p1")
	assert.Equal(t, int64(7), p.Stock, "un conflicto no debe tocar el stock")

	// stock negativo: rechazado siempre
	err = repo.UpdateStock("p1", 7, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// producto inexistente
	err = repo.UpdateStock("fantasma", 0, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Update no toca el stock: solo UpdateStock lo muta.
func TestProductRepo_Update_PreservaStock(t *testing.T) {
	store, _ := kvstore.Open("")
	repo := kvstore.NewProductRepository(store)
	seedProduct(t, repo, "p1", "Bananas", "0.59", 42)

	p, _ := repo.GetByID("p1")
	p.Name = "Bananas Premium"
	p.Stock = 9999 // intento de mutar stock por la vía equivocada
	require.NoError(t, repo.Update(p))

	updated, _ := repo.GetByID("p1")
	assert.Equal(t, "Bananas Premium", updated.Name)
	assert.Equal(t, int64(42), updated.Stock, "Update no debe tocar el stock")
}

// ──────────────────────────────────────────────────────────────────────────────
// CustomerRepo — redondeo del balance
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomerRepo_UpdateBalance_RedondeaADosDecimales(t *testing.T) {
	store, _ := kvstore.Open("")
	repo := kvstore.NewCustomerRepository(store)
	now := time.Now()
	require.NoError(t, repo.Create(&entity.Customer{
		ID: "c1", Name: "Lisa Chen",
		CreditLimit: dec("300.00"), CurrentBalance: dec("45.75"),
		CreatedAt: now, UpdatedAt: now,
	}))

	require.NoError(t, repo.UpdateBalance("c1", dec("45.756")))

	c, _ := repo.GetByID("c1")
	assert.True(t, c.CurrentBalance.Equal(dec("45.76")), "el balance se guarda redondeado, fue %s", c.CurrentBalance)
}

// ──────────────────────────────────────────────────────────────────────────────
// SaleRepo — filtros del historial
// ──────────────────────────────────────────────────────────────────────────────

func TestSaleRepo_List_FiltraYOrdenaRecientesPrimero(t *testing.T) {
	store, _ := kvstore.Open("")
	repo := kvstore.NewSaleRepository(store)
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	mk := func(id, user, method string, at time.Time) *entity.Sale {
		return &entity.Sale{
			ID: id, Timestamp: at, UserID: user, PaymentMethod: method,
			Subtotal: dec("1.00"), Tax: dec("0.00"), Total: dec("1.00"),
		}
	}
	require.NoError(t, repo.Create(mk("s1", "u1", entity.PaymentCash, base)))
	require.NoError(t, repo.Create(mk("s2", "u2", entity.PaymentCredit, base.Add(time.Hour))))
	require.NoError(t, repo.Create(mk("s3", "u1", entity.PaymentCredit, base.Add(2*time.Hour))))

	// Sin filtro: todas, la más reciente primero
	all, err := repo.List(repository.SaleFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "s3", all[0].ID)
	assert.Equal(t, "s1", all[2].ID)

	// Por vendedor
	byUser, _ := repo.List(repository.SaleFilter{UserID: "u1"})
	require.Len(t, byUser, 2)

	// Por método de pago y rango de fechas
	filtered, _ := repo.List(repository.SaleFilter{
		PaymentMethod: entity.PaymentCredit,
		From:          base.Add(90 * time.Minute),
	})
	require.Len(t, filtered, 1)
	assert.Equal(t, "s3", filtered[0].ID)
}

// Las ventas son inmutables: un ID repetido se rechaza.
func TestSaleRepo_Create_RechazaIDRepetido(t *testing.T) {
	store, _ := kvstore.Open("")
	repo := kvstore.NewSaleRepository(store)
	sale := &entity.Sale{ID: "s1", Timestamp: time.Now(), UserID: "u1",
		PaymentMethod: entity.PaymentCash,
		Subtotal:      dec("1.00"), Tax: dec("0.00"), Total: dec("1.00")}

	require.NoError(t, repo.Create(sale))
	assert.ErrorIs(t, repo.Create(sale), domain.ErrDuplicate)
}
