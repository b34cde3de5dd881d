package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Config errors
	ConfigReadError
	TargetsConfigError
	TargetsValidationError
	MissingCredentialError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBEmptyDatabaseError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaPrepareError
	SchemaConstraintError

	// Harvest errors
	ABNMaintenanceError
	ABNSearchError
	ABNLookupError
	ABNParseError
	CharityQueryError
	AssocFormNotFoundError
	AssocFetchError
	HarvestCancelledError
	HarvestABNUnavailableError
	OutputWriteError

	// Clean errors
	CleanMissingColumnsError

	// ETL errors
	ETLReadInputError
	ETLUnknownSourceError
	ETLMissingSlugError
	ETLTransactionError
	ETLUpsertError
)
