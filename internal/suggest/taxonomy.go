package suggest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// TaxonomyEntry maps category keywords to the option types usually configured
type TaxonomyEntry struct {
	Keywords []string `json:"keywords"`
	Options  []string `json:"options"`
}

// Taxonomy is the static keyword table plus the list returned when nothing matches
type Taxonomy struct {
	DefaultOptions []string        `json:"defaultOptions"`
	Entries        []TaxonomyEntry `json:"entries"`
}

var errEmptyTaxonomy = errors.New("taxonomy has no default options")

// DefaultTaxonomy returns the built-in marketplace table
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		DefaultOptions: []string{"Color", "Talla", "Tamaño", "Material", "Estilo", "Capacidad", "Sabor", "Peso"},
		Entries: []TaxonomyEntry{
			{
				Keywords: []string{"zapatos", "zapatillas", "tenis", "calzado", "sandalias", "botas", "botines", "tacones", "mocasines", "deportivas", "deportivos"},
				Options:  []string{"Talla", "Color", "Material", "Estilo"},
			},
			{
				Keywords: []string{"ropa", "camisa", "camiseta", "pantalon", "pantalones", "vestido", "blusa", "chaqueta", "sudadera", "jeans", "falda", "moda", "mujer", "hombre", "ninos"},
				Options:  []string{"Talla", "Color", "Material", "Corte"},
			},
			{
				Keywords: []string{"electronica", "celular", "celulares", "telefono", "smartphone", "tablet", "laptop", "computador", "portatil", "audifonos", "tecnologia"},
				Options:  []string{"Capacidad", "Color", "Memoria RAM", "Modelo"},
			},
			{
				Keywords: []string{"accesorios", "bolsos", "carteras", "mochilas", "cinturones", "gafas", "billeteras", "sombreros"},
				Options:  []string{"Color", "Material", "Tamaño"},
			},
			{
				Keywords: []string{"joyeria", "anillos", "collares", "aretes", "pulseras", "relojes", "bisuteria"},
				Options:  []string{"Material", "Talla", "Color", "Acabado"},
			},
			{
				Keywords: []string{"hogar", "muebles", "sofa", "mesa", "silla", "decoracion", "cama", "cocina", "colchon"},
				Options:  []string{"Color", "Material", "Tamaño", "Acabado"},
			},
			{
				Keywords: []string{"alimentos", "comida", "bebidas", "snacks", "cafe", "dulces", "panaderia", "postres", "restaurante"},
				Options:  []string{"Sabor", "Tamaño", "Presentación"},
			},
			{
				Keywords: []string{"belleza", "maquillaje", "cosmeticos", "perfumes", "perfumeria", "cuidado", "piel", "cabello"},
				Options:  []string{"Tono", "Tamaño", "Aroma"},
			},
			{
				Keywords: []string{"mascotas", "perros", "gatos", "veterinaria", "acuarios"},
				Options:  []string{"Tamaño", "Sabor", "Peso"},
			},
			{
				Keywords: []string{"deportes", "fitness", "gimnasio", "bicicletas", "pesas", "balones", "camping"},
				Options:  []string{"Talla", "Color", "Peso"},
			},
		},
	}
}

// LoadTaxonomyFile reads a JSON taxonomy file
func LoadTaxonomyFile(path string) (Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Taxonomy{}, fmt.Errorf("failed to read taxonomy file: %w", err)
	}

	var t Taxonomy
	if err := json.Unmarshal(data, &t); err != nil {
		return Taxonomy{}, fmt.Errorf("failed to unmarshal taxonomy: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Taxonomy{}, err
	}
	return t, nil
}

// Validate checks that the table can serve every lookup
func (t Taxonomy) Validate() error {
	if len(t.DefaultOptions) == 0 {
		return errEmptyTaxonomy
	}
	for i, e := range t.Entries {
		if len(e.Keywords) == 0 {
			return fmt.Errorf("taxonomy entry %d has no keywords", i)
		}
		if len(e.Options) == 0 {
			return fmt.Errorf("taxonomy entry %d has no options", i)
		}
	}
	return nil
}
