// Package kvstore implementa el almacén local de colecciones JSON: cada
// colección nombrada (products, users, sales, customers) se lee y escribe
// completa, como un key-value store de documentos. Es el backend "local"
// del servicio y el doble de pruebas de los repositorios.
package kvstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Colecciones conocidas del almacén.
const (
	CollectionProducts  = "products"
	CollectionUsers     = "users"
	CollectionSales     = "sales"
	CollectionCustomers = "customers"
)

// Store persiste colecciones nombradas como un único documento JSON en disco.
// Un solo mutex serializa todas las operaciones: la disciplina de un escritor
// a la vez es todo el control de concurrencia del almacén.
type Store struct {
	mu   sync.Mutex
	path string // "" = solo memoria (tests)
	data map[string]json.RawMessage
}

// Open carga el almacén desde path, creando el archivo vacío si no existe.
// Con path vacío el almacén vive solo en memoria.
func Open(path string) (*Store, error) {
	s := &Store{path: path, data: make(map[string]json.RawMessage)}
	if path == "" {
		return s, nil
	}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio del almacén: %w", err)
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer almacén: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.data); err != nil {
			return nil, fmt.Errorf("almacén corrupto en %s: %w", path, err)
		}
	}
	return s, nil
}

// Read deserializa la colección en v. Una colección ausente deja v sin tocar
// (lista vacía para slices).
func (s *Store) Read(collection string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.data[collection]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("leer colección %s: %w", collection, err)
	}
	return nil
}

// Write serializa v como el nuevo contenido completo de la colección y
// persiste el almacén a disco.
func (s *Store) Write(collection string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("serializar colección %s: %w", collection, err)
	}
	s.data[collection] = raw
	return s.flush()
}

// flush escribe el documento completo a disco vía archivo temporal + rename.
// Llamar con el mutex tomado.
func (s *Store) flush() error {
	if s.path == "" {
		return nil
	}
	doc, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("serializar almacén: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, doc, 0o644); err != nil {
		return fmt.Errorf("escribir almacén: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("reemplazar almacén: %w", err)
	}
	return nil
}
