package formschema

// Messages are plain English format strings naming the path of the offending
// value. They are not translated.
const (
	msgSchemaTypeMissing = "The schema does not define the data type."
	msgUnsupportedType   = "%s declares the unsupported type %q."
	msgTypeUnion         = "%s must contain a value that is one of these types: %s"

	msgNotObject       = "%s must contain an object value."
	msgRequired        = "The %s property is required in the %s object."
	msgUnknownProperty = "%s is not a valid property in the %s object."

	msgNotArray = "%s must contain an array value."

	msgNotString    = "%s must contain a string value."
	msgInvalidEnum  = "%q is not a valid value for the %s property."
	msgPattern      = "The value of %s does not match the required pattern."
	msgInvalidEmail = "%s must contain a valid email address."
	msgTooShort     = "%s must be at least %d characters long."
	msgTooLong      = "%s must be at most %d characters long."

	msgNotNumeric = "%s must contain a numeric value."
	msgNotInteger = "%s must contain an integer value."
	msgTooSmall   = "The value of %s must be at least %f."
	msgTooBig     = "The value of %s must be at most %f."

	msgNotBoolean = "%s must contain a boolean value."
)
