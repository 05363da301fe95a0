package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/deppfellow/bookshelf/internal/errs"
)

// uniqueKeyPattern matches Postgres' default "<table>_<column>_key" names.
var uniqueKeyPattern = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// ErrCode reports the Code of the first *Error in err's chain, Other if none.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	return Other
}

// ConvertPgError converts a raw Postgres error into an Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// Classify turns an error returned by a gorm call against table into an
// *Error.
//
// Postgres errors keep every diagnostic field. Other dialects are mapped
// through gorm's ErrorTranslator when the dialector implements it. Errors
// that are not database errors (context cancellation, already classified
// errors) are returned unchanged.
func Classify(dialector gorm.Dialector, table string, err error) error {
	if err == nil {
		return nil
	}

	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return &Error{
			Code:      NoRows,
			Severity:  SeverityError,
			Message:   err.Error(),
			TableName: table,
			driverErr: err,
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		converted := ConvertPgError(pgErr)
		if converted.TableName == "" {
			converted.TableName = table
		}
		return converted
	}

	translator, ok := dialector.(gorm.ErrorTranslator)
	if !ok {
		return err
	}

	var code Code
	switch translated := translator.Translate(err); {
	case errors.Is(translated, gorm.ErrDuplicatedKey):
		code = UniqueViolation
	case errors.Is(translated, gorm.ErrForeignKeyViolated):
		code = ForeignKeyViolation
	default:
		return err
	}

	return &Error{
		Code:      code,
		Severity:  SeverityError,
		Message:   err.Error(),
		TableName: table,
		driverErr: err,
	}
}

// generateErrorCode creates "<DOMAIN>_<ACTION>" codes such as
// USER_ALREADY_EXISTS from the table name and error category.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation, NoRows:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, InvalidTextRepresentation, NumericValueOutOfRange:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// foreignKeyColumn returns the referencing column of a foreign key violation.
// Postgres leaves ColumnName empty for those, the default constraint name
// "<table>_<column>_fkey" carries it instead.
func foreignKeyColumn(sqlErr *Error) string {
	if sqlErr.ColumnName != "" {
		return sqlErr.ColumnName
	}

	name := sqlErr.ConstraintName
	if sqlErr.TableName == "" || !strings.HasPrefix(name, sqlErr.TableName+"_") || !strings.HasSuffix(name, "_fkey") {
		return ""
	}
	return strings.TrimSuffix(strings.TrimPrefix(name, sqlErr.TableName+"_"), "_fkey")
}

// formatUserFriendlyMessage produces the client-facing message for sqlErr.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", getEntityName(sqlErr.TableName, foreignKeyColumn(sqlErr)))

	case UniqueViolation:
		// "identifier" is replaced by the column once it can be inferred.
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation, InvalidTextRepresentation, NumericValueOutOfRange:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	case NoRows:
		return fmt.Sprintf("%s not found", getEntityName(sqlErr.TableName, ""))

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName infers an entity name: "author_id" -> "Author",
// "books" -> "Book", otherwise "record".
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText converts "first_name" into "First Name".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation infers the column from a unique constraint
// name. Supports "unique_<table>_<column>" and "<table>_<column>_(key|ukey)".
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	matches := uniqueKeyPattern.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// ToHTTPError maps a classified error onto the client-facing HTTPError.
func ToHTTPError(sqlErr *Error) *errs.HTTPError {
	errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
	userMessage := formatUserFriendlyMessage(sqlErr)

	switch sqlErr.Code {
	case NoRows:
		return errs.NewNotFoundError(userMessage, true, &errorCode)

	case ForeignKeyViolation:
		// The code names the missing entity: AUTHOR_NOT_FOUND for books.author_id.
		if column := foreignKeyColumn(sqlErr); column != "" {
			errorCode = generateErrorCode(strings.TrimSuffix(column, "_id"), ForeignKeyViolation)
		}
		return errs.NewBadRequestError(userMessage, false, &errorCode, nil, nil)

	case UniqueViolation:
		if columnName := extractColumnForUniqueViolation(sqlErr.ConstraintName); columnName != "" {
			userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
		}
		return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

	case NotNullViolation:
		fieldErrors := []errs.FieldError{
			{
				Field: strings.ToLower(sqlErr.ColumnName),
				Error: "is required",
			},
		}
		return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

	case CheckViolation, InvalidTextRepresentation, NumericValueOutOfRange:
		return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

	case TooManyConnections:
		return &errs.HTTPError{
			Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(http.StatusServiceUnavailable)),
			Message: http.StatusText(http.StatusServiceUnavailable),
			Status:  http.StatusServiceUnavailable,
		}

	default:
		return errs.NewInternalServerError()
	}
}

// HandleError converts a low-level database error into an application error.
//
// Output:
//   - *errs.HTTPError: returned unchanged
//   - *Error (already classified) or *pgconn.PgError: mapped by ToHTTPError
//   - no rows (gorm, pgx, database/sql): 404
//   - anything else: generic 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return ToHTTPError(sqlErr)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ToHTTPError(ConvertPgError(pgErr))
	}

	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
