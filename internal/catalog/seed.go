package catalog

import "time"

// seedProducts is the demo catalog written on first start when the store
// is empty.
func seedProducts() []Product {
	now := time.Now().UTC()
	return []Product{
		{
			ID:               "SF-001",
			SKU:              "SURG-MET-001",
			Name:             "Micro-Scalpel Elite 45",
			Category:         "Scalpels",
			Specialty:        "Plastic Surgery",
			Stock:            145,
			SafetyStock:      30,
			MinimumThreshold: 40,
			StockStatus:      StatusInStock,
			Price:            12.50,
			PriceHistory:     []PricePoint{{Price: 12.50, Timestamp: now}},
			WarehouseLocation: WarehouseLocation{
				Aisle: "A", Rack: "01", Shelf: "02", Bin: "A1",
			},
			WarehouseIdentity: "WH-A01-02A1-001",
			Batches: []StockBatch{
				{
					ID:        "BATCH-2024-001",
					ProductID: "SF-001",
					MfgDate:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
					Quantity:  100,
					Location:  "A-01-02-A1",
					Stage:     StagePacked,
					QCHistory: []QCRecord{},
				},
				{
					ID:        "BATCH-2024-002",
					ProductID: "SF-001",
					MfgDate:   time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
					Quantity:  45,
					Location:  "A-01-02-A1",
					Stage:     StagePacked,
					QCHistory: []QCRecord{},
				},
			},
			Velocity:    1.2,
			LastUpdated: now,
		},
		{
			ID:               "SF-002",
			SKU:              "SURG-MET-002",
			Name:             "Adson Forceps (Toothed)",
			Category:         "Forceps",
			Specialty:        "General Surgery",
			Stock:            8,
			SafetyStock:      15,
			MinimumThreshold: 20,
			StockStatus:      StatusLowStock,
			Price:            45.00,
			PriceHistory:     []PricePoint{{Price: 45.00, Timestamp: now}},
			WarehouseLocation: WarehouseLocation{
				Aisle: "B", Rack: "04", Shelf: "01", Bin: "C3",
			},
			WarehouseIdentity: "WH-B04-01C3-002",
			Batches: []StockBatch{
				{
					ID:        "BATCH-2023-442",
					ProductID: "SF-002",
					MfgDate:   time.Date(2023, 11, 5, 0, 0, 0, 0, time.UTC),
					Quantity:  8,
					Location:  "B-04-01-C3",
					Stage:     StagePacked,
					QCHistory: []QCRecord{},
				},
			},
			Velocity:    0.8,
			LastUpdated: now,
		},
		{
			ID:               "SF-003",
			SKU:              "SURG-CRV-003",
			Name:             "Curved Artery Forceps",
			Category:         "Forceps",
			Specialty:        "General Surgery",
			Stock:            0,
			SafetyStock:      10,
			MinimumThreshold: 15,
			StockStatus:      StatusOutOfStock,
			Price:            32.00,
			PriceHistory:     []PricePoint{{Price: 32.00, Timestamp: now}},
			WarehouseLocation: WarehouseLocation{
				Aisle: "C", Rack: "02", Shelf: "04", Bin: "B2",
			},
			WarehouseIdentity: "WH-C02-04B2-003",
			Batches:           []StockBatch{},
			Velocity:          2.1,
			LastUpdated:       now,
		},
	}
}
