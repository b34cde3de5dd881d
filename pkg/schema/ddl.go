package schema

import (
	"fmt"
	"strings"
)

// DDLGenerator is implemented by models that need statements beyond
// what AutoMigrate creates.
type DDLGenerator interface {
	// TableName returns the schema-qualified table name.
	TableName() string

	// IndexDDL returns idempotent CREATE INDEX statements.
	IndexDDL() []string

	// ConstraintDDL returns idempotent statements adding check
	// constraints.
	ConstraintDDL() []string
}

// AliasTypes are the values of alias_type_enum.
var AliasTypes = []string{"trading_name", "abbreviation", "former_name"}

// MemberRoles are the allowed values of org_members.role.
var MemberRoles = []string{"admin", "member", "viewer"}

// VisibilityTypes are the allowed values of org_visibility.visibility_type.
var VisibilityTypes = []string{"public", "limited", "restricted"}

// PrepareDDL returns statements that have to run before AutoMigrate.
func PrepareDDL() []string {
	return []string{
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,
		"CREATE SCHEMA IF NOT EXISTS " + Namespace,
		fmt.Sprintf(`DO $$
BEGIN
  IF NOT EXISTS (
    SELECT 1 FROM pg_type t
    JOIN pg_namespace n ON n.oid = t.typnamespace
    WHERE t.typname = 'alias_type_enum' AND n.nspname = '%s'
  ) THEN
    CREATE TYPE %s.alias_type_enum AS ENUM (%s);
  END IF;
END $$`, Namespace, Namespace, quoteList(AliasTypes)),
	}
}

// FinalizeDDL returns index and constraint statements of all models.
func FinalizeDDL() []string {
	var res []string
	for _, m := range AllModels() {
		gen, ok := m.(DDLGenerator)
		if !ok {
			continue
		}
		res = append(res, gen.IndexDDL()...)
		res = append(res, gen.ConstraintDDL()...)
	}
	return res
}

// checkDDL adds a named check constraint unless it already exists.
func checkDDL(table, name, column string, vals []string) string {
	return fmt.Sprintf(`DO $$
BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
    ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s IN (%s));
  END IF;
END $$`, name, table, name, column, quoteList(vals))
}

func quoteList(vals []string) string {
	res := make([]string, len(vals))
	for i, v := range vals {
		res[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
	}
	return strings.Join(res, ", ")
}

func table(name string) string {
	return Namespace + "." + name
}

func (Organisation) TableName() string { return table("organisations") }

func (Organisation) IndexDDL() []string {
	t := table("organisations")
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_org_date ON " + t + "(date_established)",
		"CREATE INDEX IF NOT EXISTS idx_org_legal_name ON " + t + "(entity_name)",
		"CREATE INDEX IF NOT EXISTS idx_organisations_public ON " + t +
			"(is_public) WHERE is_public = TRUE",
	}
}

func (Organisation) ConstraintDDL() []string { return nil }

func (LegalDetails) TableName() string { return table("legal_details") }

func (LegalDetails) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_org_abn ON " +
			table("legal_details") + "(abn)",
	}
}

func (LegalDetails) ConstraintDDL() []string { return nil }

func (OrgMember) TableName() string { return table("org_members") }

func (OrgMember) IndexDDL() []string { return nil }

func (OrgMember) ConstraintDDL() []string {
	return []string{
		checkDDL(table("org_members"), "org_members_role_check",
			"role", MemberRoles),
	}
}

func (OrgVisibility) TableName() string { return table("org_visibility") }

func (OrgVisibility) IndexDDL() []string { return nil }

func (OrgVisibility) ConstraintDDL() []string {
	return []string{
		checkDDL(table("org_visibility"),
			"org_visibility_visibility_type_check",
			"visibility_type", VisibilityTypes),
	}
}

func (Alias) TableName() string              { return table("aliases") }
func (ContactInfo) TableName() string        { return table("contact_info") }
func (DGREndorsement) TableName() string     { return table("dgr_endorsement") }
func (Relationship) TableName() string       { return table("relationships") }
func (ProgramService) TableName() string     { return table("programs_services") }
func (ResourcesAssets) TableName() string    { return table("resources_assets") }
func (Accreditation) TableName() string      { return table("accreditation") }
func (FinancialInfo) TableName() string      { return table("financial_info") }
func (HistoricalInfo) TableName() string     { return table("historical_info") }
func (Governance) TableName() string         { return table("governance") }
func (OperationalDetails) TableName() string { return table("operational_details") }
func (PerformanceMetrics) TableName() string { return table("performance_metrics") }
