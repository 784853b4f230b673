package types

import "fmt"

// ChangeType is the kind of account modification requested by a change request
type ChangeType string

const (
	ChangeTypeAddressUpdate      ChangeType = "Address Update"
	ChangeTypeEntityTypeChange   ChangeType = "Entity Type Change"
	ChangeTypeNameChange         ChangeType = "Name Change"
	ChangeTypeContactInformation ChangeType = "Contact Information"
	ChangeTypeOther              ChangeType = "Other"
)

// AllChangeTypes returns all valid change types
func AllChangeTypes() []ChangeType {
	return []ChangeType{
		ChangeTypeAddressUpdate,
		ChangeTypeEntityTypeChange,
		ChangeTypeNameChange,
		ChangeTypeContactInformation,
		ChangeTypeOther,
	}
}

// IsValid checks if the change type is valid
func (t ChangeType) IsValid() bool {
	switch t {
	case ChangeTypeAddressUpdate,
		ChangeTypeEntityTypeChange,
		ChangeTypeNameChange,
		ChangeTypeContactInformation,
		ChangeTypeOther:
		return true
	default:
		return false
	}
}

// String returns the string representation of the change type
func (t ChangeType) String() string {
	return string(t)
}

// ParseChangeType parses a string into a ChangeType
func ParseChangeType(s string) (ChangeType, error) {
	t := ChangeType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid change type: %s", s)
	}
	return t, nil
}
