// Package schema provides GORM models of the community_orgs schema.
// All tables live in one PostgreSQL schema. Primary keys are UUIDs
// generated by the uuid-ossp extension, timestamps default to the time
// of insertion.
package schema

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Namespace is the PostgreSQL schema of all tables.
const Namespace = "community_orgs"

// Editors are the users that inserted and last edited a row.
type Editors struct {
	InsertedBy   *uuid.UUID `gorm:"type:uuid"`
	LastEditedBy *uuid.UUID `gorm:"type:uuid"`
}

// Stamps are insertion and modification times maintained by the store.
type Stamps struct {
	InsertedAt   *time.Time `gorm:"type:timestamptz;default:CURRENT_TIMESTAMP"`
	LastEditedAt *time.Time `gorm:"type:timestamptz;default:CURRENT_TIMESTAMP"`
}

// Organisation is the central entity, identified externally by its slug.
type Organisation struct {
	OrgID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	EntityName      string     `gorm:"not null"`
	DateEstablished *time.Time `gorm:"type:date"`
	CreatedAt       *time.Time `gorm:"type:timestamptz;default:CURRENT_TIMESTAMP"`
	Slug            string     `gorm:"not null;uniqueIndex:organisations_slug_key"`
	Description     *string
	IsPublic        bool `gorm:"not null;default:true"`
	Stamps
	Editors
}

// Alias is an alternative name of an organisation.
type Alias struct {
	AliasID      uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OrgID        *uuid.UUID    `gorm:"type:uuid"`
	Organisation *Organisation `gorm:"foreignKey:OrgID;references:OrgID"`
	AliasType    *string       `gorm:"type:community_orgs.alias_type_enum"`
	Alias        *string
	LastEditedAt *time.Time `gorm:"type:timestamptz;default:CURRENT_TIMESTAMP"`
	Editors
}

// ContactInfo keeps addresses and contact channels.
type ContactInfo struct {
	ContactID       uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OrgID           *uuid.UUID    `gorm:"type:uuid"`
	Organisation    *Organisation `gorm:"foreignKey:OrgID;references:OrgID"`
	PhysicalAddress *string
	PostalAddress   *string
	Phone           *string        `gorm:"size:50"`
	Email           *string        `gorm:"size:255"`
	Website         *string        `gorm:"size:255"`
	SocialMedia     datatypes.JSON `gorm:"type:jsonb"`
	Stamps
	Editors
}

// LegalDetails keeps registrations of an organisation with the ABN,
// ACNC and incorporation registers.
type LegalDetails struct {
	LegalID                       uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OrgID                         *uuid.UUID    `gorm:"type:uuid"`
	Organisation                  *Organisation `gorm:"foreignKey:OrgID;references:OrgID"`
	EntityType                    *string
	ABN                           *string        `gorm:"column:abn"`
	ACN                           *string        `gorm:"column:acn"`
	ACNCStatus                    *bool          `gorm:"column:acnc_status"`
	TaxConcessionEndorsement      *time.Time     `gorm:"type:date"`
	InsuranceDetails              datatypes.JSON `gorm:"type:jsonb"`
	CharityType                   *string
	IncorporationNumber           *string
	IncorporationStatus           *bool
	IncorporationRegistrationDate *time.Time `gorm:"type:date"`
	ABNStatus                     *bool      `gorm:"column:abn_status"`
	ABNActivated                  *time.Time `gorm:"column:abn_activated;type:date"`
	ABNLastUpdated                *time.Time `gorm:"column:abn_last_updated;type:date"`
	ACNCRegistered                *bool      `gorm:"column:acnc_registered"`
	ACNCRegisteredDate            *time.Time `gorm:"column:acnc_registered_date;type:date"`
	GSTConcessionEndorsementDate  *string    `gorm:"column:gst_concession_endorsement_date"`
	DGREndorsement                *bool      `gorm:"column:dgr_endorsement"`
	Stamps
	Editors
}

// DGREndorsement is the deductible gift recipient status of a legal
// entity, at most one per legal details row.
type DGREndorsement struct {
	EndorsementID        uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	LegalID              *uuid.UUID    `gorm:"type:uuid;uniqueIndex:dgr_endorsement_legal_id_key"`
	LegalDetails         *LegalDetails `gorm:"foreignKey:LegalID;references:LegalID"`
	EndorsementStartDate *time.Time    `gorm:"type:date"`
	EndorsementEndDate   *time.Time    `gorm:"type:date"`
	DGRItems             *string       `gorm:"column:dgr_items"`
	DGRFunds             *string       `gorm:"column:dgr_funds"`
	LastEditedAt         *time.Time    `gorm:"type:timestamptz;default:CURRENT_TIMESTAMP"`
	Editors
}

// Relationship links an organisation with a partner.
type Relationship struct {
	RelationshipID   uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OrgID            *uuid.UUID    `gorm:"type:uuid"`
	Organisation     *Organisation `gorm:"foreignKey:OrgID;references:OrgID"`
	PartnerOrg       *string       `gorm:"size:255"`
	RelationshipType *string       `gorm:"size:100"`
	StartDate        *time.Time    `gorm:"type:date"`
	EndDate          *time.Time    `gorm:"type:date"`
	Stamps
	Editors
}

// ProgramService is a program or service run by an organisation.
type ProgramService struct {
	ProgramID        uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OrgID            *uuid.UUID    `gorm:"type:uuid"`
	Organisation     *Organisation `gorm:"foreignKey:OrgID;references:OrgID"`
	ProgramName      *string       `gorm:"size:255"`
	Description      *string
	FeeStructure     datatypes.JSON `gorm:"type:jsonb"`
	DeliveryLocation pq.StringArray `gorm:"type:text[]"`
	Stamps
	Editors
}

// ResourcesAssets is an asset owned by an organisation.
type ResourcesAssets struct {
	AssetID          uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OrgID            *uuid.UUID    `gorm:"type:uuid"`
	Organisation     *Organisation `gorm:"foreignKey:OrgID;references:OrgID"`
	AssetType        *string
	AssetDescription *string
	AcquisitionDate  *time.Time `gorm:"type:date"`
	AssetValue       *float64   `gorm:"type:numeric(15,2)"`
	Stamps
	Editors
}

// Accreditation is a certification held by an organisation.
type Accreditation struct {
	AccreditationID   uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OrgID             *uuid.UUID    `gorm:"type:uuid"`
	Organisation      *Organisation `gorm:"foreignKey:OrgID;references:OrgID"`
	CertificationType *string       `gorm:"size:255"`
	IssuingBody       *string       `gorm:"size:255"`
	ValidFrom         *time.Time    `gorm:"type:date"`
	ValidUntil        *time.Time    `gorm:"type:date"`
	Stamps
	Editors
}

// FinancialInfo keeps funding and budget data.
type FinancialInfo struct {
	FinanceID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OrgID            *uuid.UUID     `gorm:"type:uuid"`
	Organisation     *Organisation  `gorm:"foreignKey:OrgID;references:OrgID"`
	FundingSources   pq.StringArray `gorm:"type:text[]"`
	AnnualBudget     *float64       `gorm:"type:numeric(15,2)"`
	FinancialYearEnd *time.Time     `gorm:"type:date"`
	AuditorDetails   datatypes.JSON `gorm:"type:jsonb"`
	Stamps
	Editors
}

// HistoricalInfo is a milestone in the history of an organisation.
type HistoricalInfo struct {
	HistoryID            uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OrgID                *uuid.UUID     `gorm:"type:uuid"`
	Organisation         *Organisation  `gorm:"foreignKey:OrgID;references:OrgID"`
	FoundingMembers      pq.StringArray `gorm:"type:text[]"`
	MilestoneDate        *time.Time     `gorm:"type:date"`
	MilestoneDescription *string
	StructuralChanges    datatypes.JSON `gorm:"type:jsonb"`
	Stamps
	Editors
}

// Governance describes the board and constitution.
type Governance struct {
	GovernanceID   uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OrgID          *uuid.UUID     `gorm:"type:uuid"`
	Organisation   *Organisation  `gorm:"foreignKey:OrgID;references:OrgID"`
	BoardStructure datatypes.JSON `gorm:"type:jsonb"`
	Constitution   *string
	OrgChart       *string
	Stamps
	Editors
}

// OperationalDetails describes how an organisation operates.
type OperationalDetails struct {
	OpID                  uuid.UUID     `gorm:"column:op_id;type:uuid;primaryKey;default:uuid_generate_v4()"`
	OrgID                 *uuid.UUID    `gorm:"type:uuid"`
	Organisation          *Organisation `gorm:"foreignKey:OrgID;references:OrgID"`
	ServiceArea           *string
	TargetDemographics    *string
	OperatingHours        datatypes.JSON `gorm:"type:jsonb"`
	StaffCountPaid        *int
	StaffCountVolunteer   *int
	LanguagesSupported    pq.StringArray `gorm:"type:text[]"`
	AccessibilityFeatures pq.StringArray `gorm:"type:text[]"`
	Stamps
	Editors
}

// PerformanceMetrics is a measurement reported by an organisation.
type PerformanceMetrics struct {
	MetricID        uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OrgID           *uuid.UUID    `gorm:"type:uuid"`
	Organisation    *Organisation `gorm:"foreignKey:OrgID;references:OrgID"`
	MetricType      *string
	MetricValue     datatypes.JSON `gorm:"type:jsonb"`
	MeasurementDate *time.Time     `gorm:"type:date"`
	ReportingPeriod *string
	Stamps
	Editors
}

// OrgMember grants a user a role in an organisation.
type OrgMember struct {
	MemberID     uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OrgID        *uuid.UUID    `gorm:"type:uuid"`
	Organisation *Organisation `gorm:"foreignKey:OrgID;references:OrgID"`
	UserID       *uuid.UUID    `gorm:"type:uuid"`
	Role         *string
	CreatedAt    *time.Time `gorm:"type:timestamptz;default:CURRENT_TIMESTAMP"`
	InsertedAt   *time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP"`
	LastEditedAt *time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP"`
	Editors
}

// OrgVisibility limits who can see an organisation.
type OrgVisibility struct {
	VisibilityID   uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OrgID          *uuid.UUID    `gorm:"type:uuid"`
	Organisation   *Organisation `gorm:"foreignKey:OrgID;references:OrgID"`
	VisibilityType *string
	AllowedOrgIDs  pq.Int64Array `gorm:"column:allowed_org_ids;type:integer[]"`
	CreatedAt      *time.Time    `gorm:"type:timestamptz;default:CURRENT_TIMESTAMP"`
	InsertedAt     *time.Time    `gorm:"type:timestamp;default:CURRENT_TIMESTAMP"`
	LastEditedAt   *time.Time    `gorm:"type:timestamp;default:CURRENT_TIMESTAMP"`
	Editors
}
