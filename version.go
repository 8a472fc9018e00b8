package modelvalidator

// Version is the current version of the validator module.
const Version = "0.1.0"

// UserAgent returns an identifier string suitable for diagnostics.
func UserAgent() string {
	return "gomodel-validator/" + Version
}
