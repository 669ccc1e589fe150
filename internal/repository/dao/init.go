package dao

import "gorm.io/gorm"

// InitTables migrates every table. Order matters: referenced tables first.
func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Employee{},
		&Category{},
		&Item{},
		&StockReceipt{},
		&Sale{},
		&SaleLine{},
	)
}
