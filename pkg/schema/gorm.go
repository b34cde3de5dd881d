package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate.
// Referenced tables come before the tables that reference them.
func AllModels() []any {
	return []any{
		&Organisation{},
		&Alias{},
		&ContactInfo{},
		&LegalDetails{},
		&DGREndorsement{},
		&Relationship{},
		&ProgramService{},
		&ResourcesAssets{},
		&Accreditation{},
		&FinancialInfo{},
		&HistoricalInfo{},
		&Governance{},
		&OperationalDetails{},
		&PerformanceMetrics{},
		&OrgMember{},
		&OrgVisibility{},
	}
}

// Migrate runs GORM AutoMigrate to create or update tables.
// The schema, extension and enum types have to exist already,
// see PrepareDDL.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
