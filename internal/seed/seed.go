// Package seed produces a small demo catalog for manual testing. The output
// is a bootstrap dataset file the API loads at startup.
package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"mercadolibre-replica/internal/bootstrap"
	"mercadolibre-replica/internal/domain"
)

// Products returns the demo catalog.
func Products() []domain.Product {
	created := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	return []domain.Product{
		{
			ID:          "MLA1100001001",
			Title:       "Zapatillas Nike Air Max 270 - Negras",
			Description: "Zapatillas deportivas con cámara de aire visible",
			Price:       decimal.RequireFromString("89999.99"),
			CurrencyID:  "ARS",
			Condition:   domain.ConditionNew,
			Status:      domain.StatusActive,
			Thumbnail:   "http://http2.mlstatic.com/D_NQ_NP_air-max-270.jpg",
			DateCreated: created,
			LastUpdated: created,
			Pictures: []domain.Picture{
				{ID: "AM270-1", URL: "http://http2.mlstatic.com/D_NQ_NP_air-max-270.jpg", SecureURL: "https://http2.mlstatic.com/D_NQ_NP_air-max-270.jpg"},
			},
			Attributes: []domain.Attribute{
				{ID: domain.AttributeBrand, Name: "Marca", ValueName: "Nike"},
				{ID: domain.AttributeFootwearType, Name: "Tipo de calzado", ValueName: "Zapatillas"},
			},
			Variations: []domain.Variation{
				{
					ID:                1001,
					Price:             decimal.RequireFromString("89999.99"),
					AvailableQuantity: 5,
					AttributeCombinations: []domain.AttributeCombination{
						{Name: "Talle", ValueName: "42"},
						{Name: "Color", ValueName: "Negro"},
					},
				},
			},
		},
		{
			ID:          "MLA1100001002",
			Title:       "iPhone 15 Pro 128GB Titanio Natural",
			Description: "Apple iPhone 15 Pro con chip A17 Pro",
			Price:       decimal.RequireFromString("1299999.00"),
			CurrencyID:  "ARS",
			Condition:   domain.ConditionNew,
			Status:      domain.StatusActive,
			Thumbnail:   "http://http2.mlstatic.com/D_NQ_NP_iphone-15-pro.jpg",
			DateCreated: created.Add(24 * time.Hour),
			LastUpdated: created.Add(24 * time.Hour),
			Pictures: []domain.Picture{
				{ID: "IP15-1", URL: "http://http2.mlstatic.com/D_NQ_NP_iphone-15-pro.jpg", SecureURL: "https://http2.mlstatic.com/D_NQ_NP_iphone-15-pro.jpg"},
			},
			Attributes: []domain.Attribute{
				{ID: domain.AttributeBrand, Name: "Marca", ValueName: "Apple"},
				{ID: domain.AttributeModel, Name: "Modelo", ValueName: "iPhone 15 Pro"},
			},
		},
		{
			ID:          "MLA1100001003",
			Title:       "Remera Adidas Originals Trefoil",
			Description: "Remera de algodón con logo clásico",
			Price:       decimal.RequireFromString("24999.50"),
			CurrencyID:  "ARS",
			Condition:   domain.ConditionNew,
			Status:      domain.StatusActive,
			Thumbnail:   "http://http2.mlstatic.com/D_NQ_NP_remera-trefoil.jpg",
			DateCreated: created.Add(48 * time.Hour),
			LastUpdated: created.Add(48 * time.Hour),
			Pictures: []domain.Picture{
				{ID: "TRF-1", URL: "http://http2.mlstatic.com/D_NQ_NP_remera-trefoil.jpg", SecureURL: "https://http2.mlstatic.com/D_NQ_NP_remera-trefoil.jpg"},
			},
			Attributes: []domain.Attribute{
				{ID: domain.AttributeBrand, Name: "Marca", ValueName: "Adidas"},
				{ID: domain.AttributeClothingType, Name: "Tipo de prenda", ValueName: "Remera"},
			},
			Variations: []domain.Variation{
				{
					ID:                3001,
					Price:             decimal.RequireFromString("24999.50"),
					AvailableQuantity: 12,
					AttributeCombinations: []domain.AttributeCombination{
						{Name: "Talle", ValueName: "M"},
						{Name: "Color", ValueName: "Blanco"},
					},
				},
			},
		},
		{
			ID:          "MLA1100001004",
			Title:       "Notebook Lenovo ThinkPad E14 - Usada",
			Description: "Notebook usada en excelente estado, 16GB RAM",
			Price:       decimal.RequireFromString("549999.00"),
			CurrencyID:  "ARS",
			Condition:   domain.ConditionUsed,
			Status:      domain.StatusPaused,
			Thumbnail:   "http://http2.mlstatic.com/D_NQ_NP_thinkpad-e14.jpg",
			DateCreated: created.Add(72 * time.Hour),
			LastUpdated: created.Add(72 * time.Hour),
			Pictures: []domain.Picture{
				{ID: "TP14-1", URL: "http://http2.mlstatic.com/D_NQ_NP_thinkpad-e14.jpg", SecureURL: "https://http2.mlstatic.com/D_NQ_NP_thinkpad-e14.jpg"},
			},
			Attributes: []domain.Attribute{
				{ID: domain.AttributeBrand, Name: "Marca", ValueName: "Lenovo"},
				{ID: domain.AttributeModel, Name: "Modelo", ValueName: "ThinkPad E14"},
			},
		},
		{
			ID:          "MLA1100001005",
			Title:       "Botines Nike Mercurial Vapor 15",
			Description: "Botines de fútbol para césped natural",
			Price:       decimal.RequireFromString("129999.00"),
			CurrencyID:  "ARS",
			Condition:   domain.ConditionNew,
			Status:      domain.StatusActive,
			Thumbnail:   "http://http2.mlstatic.com/D_NQ_NP_mercurial-15.jpg",
			DateCreated: created.Add(96 * time.Hour),
			LastUpdated: created.Add(96 * time.Hour),
			Pictures: []domain.Picture{
				{ID: "MV15-1", URL: "http://http2.mlstatic.com/D_NQ_NP_mercurial-15.jpg", SecureURL: "https://http2.mlstatic.com/D_NQ_NP_mercurial-15.jpg"},
			},
			Attributes: []domain.Attribute{
				{ID: domain.AttributeBrand, Name: "Marca", ValueName: "Nike"},
				{ID: domain.AttributeFootwearType, Name: "Tipo de calzado", ValueName: "Botines"},
			},
		},
	}
}

// Write stores the demo catalog as a bootstrap JSON dataset at path.
func Write(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dataset dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(bootstrap.Container{Products: Products()}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}
