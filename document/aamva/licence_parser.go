package aamva

// AAMVA data element identifiers read into a Record
const (
	JURISDICTION_VEHICLE_CLASS = "DCA"
	JURISDICTION_RESTRICTIONS  = "DCB"
	JURISDICTION_ENDORSEMENTS  = "DCD"
	DOCUMENT_EXPIRATION_DATE   = "DBA"
	CUSTOMER_FAMILY_NAME       = "DCS"
	CUSTOMER_FIRST_NAME        = "DAC"
	CUSTOMER_MIDDLE_NAME       = "DAD"
	DOCUMENT_ISSUE_DATE        = "DBD"
	DATE_OF_BIRTH              = "DBB"
	PHYSICAL_SEX               = "DBC"
	PHYSICAL_EYE_COLOR         = "DAY"
	PHYSICAL_HEIGHT            = "DAU"
	ADDRESS_STREET_1           = "DAG"
	ADDRESS_CITY               = "DAI"
	ADDRESS_JURISDICTION_CODE  = "DAJ"
	ADDRESS_POSTAL_CODE        = "DAK"
)

// element binds an identifier to the record field it fills
type element struct {
	id    string
	field string
	set   func(r *Record, value string)
	// get is nil for fields that are not strings
	get func(r *Record) string
	// sentinel is the failure value of the field's normalizer, empty for
	// fields copied verbatim
	sentinel string
}

func identity(value string) string { return value }

func stringElement(id, field string, target func(r *Record) *string, normalize func(string) string) element {
	return element{
		id:    id,
		field: field,
		set:   func(r *Record, value string) { *target(r) = normalize(value) },
		get:   func(r *Record) string { return *target(r) },
	}
}

func dateElement(id, field string, target func(r *Record) *string) element {
	el := stringElement(id, field, target, StandardizeDate)
	el.sentinel = INVALID_DATE
	return el
}

func heightElement(id, field string, target func(r *Record) *string) element {
	el := stringElement(id, field, target, ConvertHeight)
	el.sentinel = INVALID_HEIGHT
	return el
}

// elements is the closed identifier to field mapping, in schema order.
// Supporting another AAMVA element means adding a row here.
var elements = []element{
	stringElement(JURISDICTION_VEHICLE_CLASS, "vehicle_class", func(r *Record) *string { return &r.VehicleClass }, identity),
	stringElement(JURISDICTION_RESTRICTIONS, "driving_privileges", func(r *Record) *string { return &r.DrivingPrivileges }, identity),
	stringElement(JURISDICTION_ENDORSEMENTS, "additional_privileges", func(r *Record) *string { return &r.AdditionalPrivileges }, identity),
	dateElement(DOCUMENT_EXPIRATION_DATE, "expiration_date", func(r *Record) *string { return &r.ExpirationDate }),
	stringElement(CUSTOMER_FAMILY_NAME, "last_name", func(r *Record) *string { return &r.LastName }, identity),
	stringElement(CUSTOMER_FIRST_NAME, "first_name", func(r *Record) *string { return &r.FirstName }, identity),
	stringElement(CUSTOMER_MIDDLE_NAME, "middle_name", func(r *Record) *string { return &r.MiddleName }, identity),
	dateElement(DOCUMENT_ISSUE_DATE, "issue_date", func(r *Record) *string { return &r.IssueDate }),
	dateElement(DATE_OF_BIRTH, "date_of_birth", func(r *Record) *string { return &r.DateOfBirth }),
	{
		id:    PHYSICAL_SEX,
		field: "gender",
		set:   func(r *Record, value string) { r.Gender = DecodeGender(value) },
	},
	stringElement(PHYSICAL_EYE_COLOR, "eye_color", func(r *Record) *string { return &r.EyeColor }, identity),
	heightElement(PHYSICAL_HEIGHT, "height", func(r *Record) *string { return &r.Height }),
	stringElement(ADDRESS_STREET_1, "street", func(r *Record) *string { return &r.Street }, identity),
	stringElement(ADDRESS_CITY, "city", func(r *Record) *string { return &r.City }, identity),
	stringElement(ADDRESS_JURISDICTION_CODE, "state", func(r *Record) *string { return &r.State }, identity),
	stringElement(ADDRESS_POSTAL_CODE, "postal_code", func(r *Record) *string { return &r.PostalCode }, identity),
}

// ElementField pairs an AAMVA identifier with the record field it fills
type ElementField struct {
	ID    string
	Field string
}

// Elements returns the identifiers the assembler reads, in schema order
func Elements() []ElementField {
	out := make([]ElementField, 0, len(elements))
	for _, el := range elements {
		out = append(out, ElementField{ID: el.id, Field: el.field})
	}
	return out
}

// Assemble builds a Record from tokenized elements. Identifiers outside the
// mapping are ignored, missing ones leave the field at its zero value.
func Assemble(elementMap ElementMap) Record {
	record := NewRecord()
	for _, el := range elements {
		if value, ok := elementMap.Lookup(el.id); ok {
			el.set(&record, value)
		}
	}
	return record
}

// Parse decodes a newline separated AAMVA payload. It never fails; values
// that cannot be normalized carry INVALID_DATE or INVALID_HEIGHT.
func Parse(raw string) Record {
	return Assemble(Tokenize(raw))
}
