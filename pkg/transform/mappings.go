package transform

// Table names of the community_orgs schema.
const (
	Organisations      = "organisations"
	DGREndorsement     = "dgr_endorsement"
	Accreditation      = "accreditation"
	ContactInfo        = "contact_info"
	Aliases            = "aliases"
	LegalDetails       = "legal_details"
	Relationships      = "relationships"
	ProgramsServices   = "programs_services"
	ResourcesAssets    = "resources_assets"
	FinancialInfo      = "financial_info"
	HistoricalInfo     = "historical_info"
	Governance         = "governance"
	OperationalDetails = "operational_details"
	PerformanceMetrics = "performance_metrics"
	OrgMembers         = "org_members"
	OrgVisibility      = "org_visibility"
)

var (
	aliasTypes      = []string{"trading_name", "abbreviation", "former_name"}
	memberRoles     = []string{"admin", "member", "viewer"}
	visibilityTypes = []string{"public", "limited", "restricted"}
)

func f(src, target string, k Kind) Field {
	return Field{Source: src, Target: target, Kind: k}
}

func fMax(src, target string, k Kind, limit int) Field {
	return Field{Source: src, Target: target, Kind: k, Max: limit}
}

func fEnum(src, target string, allowed []string) Field {
	return Field{Source: src, Target: target, Kind: Enum, Allowed: allowed}
}

// editors are fields shared by all tables.
func editors(fs ...Field) []Field {
	return append(fs,
		f("inserted_by_id", "inserted_by", UUID),
		f("last_edited_by_id", "last_edited_by", UUID),
	)
}

// satellite adds editors and the link to the organisation.
func satellite(fs ...Field) []Field {
	return append(editors(fs...), f("organisation_id", "org_id", UUID))
}

func stamps(id string) []string {
	return []string{id, "inserted_at", "last_edited_at"}
}

// Mappings returns the registry of all tables of the schema.
func Mappings() Registry {
	tables := []Table{
		{
			Name: Organisations,
			Fields: editors(
				f("name", "entity_name", Trim),
				f("established_date", "date_established", Date),
				f("description_text", "description", Trim),
				Field{
					Source: "public_status", Target: "is_public",
					Kind: Bool, Default: true,
				},
				f("slug_value", "slug", Slug),
			),
			Defaults: []string{
				"org_id", "created_at", "inserted_at", "last_edited_at",
			},
		},
		{
			Name: DGREndorsement,
			Fields: append(editors(
				f("start_date", "endorsement_start_date", Date),
				f("end_date", "endorsement_end_date", Date),
				f("items", "dgr_items", Trim),
				f("funds", "dgr_funds", Trim),
			), f("legal_id", "legal_id", UUID)),
			Defaults: []string{"endorsement_id", "last_edited_at"},
		},
		{
			Name: Accreditation,
			Fields: satellite(
				fMax("cert_type", "certification_type", TrimMax, 255),
				fMax("issuer", "issuing_body", TrimMax, 255),
				f("start_date", "valid_from", Date),
				f("end_date", "valid_until", Date),
			),
			Defaults: stamps("accreditation_id"),
		},
		{
			Name: ContactInfo,
			Fields: satellite(
				f("physical_addr", "physical_address", Trim),
				f("postal_addr", "postal_address", Trim),
				fMax("phone_number", "phone", TrimMax, 50),
				fMax("email_address", "email", TrimLowerMax, 255),
				fMax("website_url", "website", TrimMax, 255),
				f("social_media_data", "social_media", JSON),
			),
			Defaults: stamps("contact_id"),
		},
		{
			Name: Aliases,
			Fields: satellite(
				fEnum("alias_type", "alias_type", aliasTypes),
				f("alias_name", "alias", Trim),
			),
			Defaults: []string{"alias_id", "last_edited_at"},
		},
		{
			Name: LegalDetails,
			Fields: satellite(
				f("entity_type", "entity_type", Trim),
				f("abn", "abn", Trim),
				f("acn", "acn", Trim),
				f("acnc_status", "acnc_status", Bool),
				f("tax_concession_date", "tax_concession_endorsement", Date),
				f("insurance_data", "insurance_details", JSON),
				f("charity_type", "charity_type", Trim),
				f("incorporation_num", "incorporation_number", Trim),
				f("incorporation_status", "incorporation_status", Bool),
				f("incorporation_date", "incorporation_registration_date", Date),
				f("abn_status", "abn_status", Bool),
				f("abn_active_date", "abn_activated", Date),
				f("abn_updated_date", "abn_last_updated", Date),
				f("acnc_registered", "acnc_registered", Bool),
				f("acnc_registered_date", "acnc_registered_date", Date),
				f("gst_concession_date", "gst_concession_endorsement_date", Trim),
				f("dgr_endorsement", "dgr_endorsement", Bool),
			),
			Defaults: stamps("legal_id"),
		},
		{
			Name: Relationships,
			Fields: satellite(
				fMax("partner_organisation", "partner_org", TrimMax, 255),
				fMax("rel_type", "relationship_type", TrimMax, 100),
				f("start_date", "start_date", Date),
				f("end_date", "end_date", Date),
			),
			Defaults: stamps("relationship_id"),
		},
		{
			Name: ProgramsServices,
			Fields: satellite(
				fMax("program_name", "program_name", TrimMax, 255),
				f("program_description", "description", Trim),
				f("fee_structure_data", "fee_structure", JSON),
				f("locations", "delivery_location", JSONList),
			),
			Defaults: stamps("program_id"),
		},
		{
			Name: ResourcesAssets,
			Fields: satellite(
				f("asset_type", "asset_type", Trim),
				f("asset_description", "asset_description", Trim),
				f("acquisition_date", "acquisition_date", Date),
				f("asset_value", "asset_value", Decimal),
			),
			Defaults: stamps("asset_id"),
		},
		{
			Name: FinancialInfo,
			Fields: satellite(
				f("funding_sources", "funding_sources", JSONList),
				f("annual_budget", "annual_budget", Decimal),
				f("financial_year_end", "financial_year_end", Date),
				f("auditor_details", "auditor_details", JSON),
			),
			Defaults: stamps("finance_id"),
		},
		{
			Name: HistoricalInfo,
			Fields: satellite(
				f("founding_members", "founding_members", JSONList),
				f("milestone_date", "milestone_date", Date),
				f("milestone_description", "milestone_description", Trim),
				f("structural_changes", "structural_changes", JSON),
			),
			Defaults: stamps("history_id"),
		},
		{
			Name: Governance,
			Fields: satellite(
				f("board_structure", "board_structure", JSON),
				f("constitution", "constitution", Trim),
				f("org_chart", "org_chart", Trim),
			),
			Defaults: stamps("governance_id"),
		},
		{
			Name: OperationalDetails,
			Fields: satellite(
				f("service_area", "service_area", Trim),
				f("target_demographics", "target_demographics", Trim),
				f("operating_hours", "operating_hours", JSON),
				f("staff_count_paid", "staff_count_paid", Int),
				f("staff_count_volunteer", "staff_count_volunteer", Int),
				f("languages_supported", "languages_supported", JSONList),
				f("accessibility_features", "accessibility_features", JSONList),
			),
			Defaults: stamps("op_id"),
		},
		{
			Name: PerformanceMetrics,
			Fields: satellite(
				f("metric_type", "metric_type", Trim),
				f("metric_value", "metric_value", JSON),
				f("measurement_date", "measurement_date", Date),
				f("reporting_period", "reporting_period", Trim),
			),
			Defaults: stamps("metric_id"),
		},
		{
			Name: OrgMembers,
			Fields: editors(
				f("user_id", "user_id", UUID),
				fEnum("role", "role", memberRoles),
				f("org_id", "org_id", UUID),
			),
			Defaults: []string{
				"member_id", "created_at", "inserted_at", "last_edited_at",
			},
		},
		{
			Name: OrgVisibility,
			Fields: editors(
				fEnum("visibility_type", "visibility_type", visibilityTypes),
				f("allowed_org_ids", "allowed_org_ids", IntList),
				f("org_id", "org_id", UUID),
			),
			Defaults: []string{
				"visibility_id", "created_at", "inserted_at", "last_edited_at",
			},
		},
	}

	res := make(Registry, len(tables))
	for _, t := range tables {
		res[t.Name] = t
	}
	return res
}
